package ledger

import "context"

// AdjustmentSource tags corrective transactions proposed by the built-in
// proposer, so a whole reconciliation run can be reversed as a batch.
const AdjustmentSource = "reconcile-adjustment"

// AdjustmentProposer is the built-in fix proposer. For each discrepancy
// it proposes a single balancing adjustment against equity, dated at the
// checkpoint, that offsets the delta exactly.
//
// It is deliberately blunt: it makes the books match the statement and
// leaves the investigation of the root cause to the human. Anything
// smarter (re-categorizing, splitting, matching missed imports) belongs
// in a custom FixProposer.
type AdjustmentProposer struct{}

func (AdjustmentProposer) Propose(_ context.Context, d Discrepancy) ([]Transaction, error) {
	delta := d.Checkpoint.Delta()
	if delta.IsZero() {
		return nil, nil
	}
	amount := delta.Abs()
	tx := Transaction{
		Account: d.Checkpoint.Account,
		On:      d.Checkpoint.On,
		Memo:    "reconciliation adjustment",
		Source:  AdjustmentSource,
	}
	if delta.IsPositive() {
		// Books above the statement: take cash out.
		tx.Postings = []Posting{
			{Side: Debit, Class: Equity, Amount: amount, Type: "adjustment"},
			{Side: Credit, Class: Cash, Amount: amount, Type: "adjustment"},
		}
	} else {
		// Books below the statement: put cash in.
		tx.Postings = []Posting{
			{Side: Debit, Class: Cash, Amount: amount, Type: "adjustment"},
			{Side: Credit, Class: Equity, Amount: amount, Type: "adjustment"},
		}
	}
	return []Transaction{tx}, nil
}
