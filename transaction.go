package ledger

import (
	"github.com/corfou/ledger/date"
	"github.com/shopspring/decimal"
)

// TxID identifies a transaction within a journal.
type TxID int64

// Transaction is an ordered, dated group of at least two postings that
// balance. A transaction belongs to exactly one account.
type Transaction struct {
	ID      TxID
	Account string
	On      date.Date
	Memo    string

	// Source tags the originating import batch. A whole batch can be
	// removed atomically with Journal.RemoveBatch.
	Source string

	// CrossCurrency marks transactions whose legs settle in different
	// currencies. Only those are allowed the explicit rounding epsilon.
	CrossCurrency bool

	Postings []Posting
}

// crossCurrencyEpsilon is the explicit rounding tolerance permitted on
// cross-currency transactions.
var crossCurrencyEpsilon = decimal.RequireFromString("0.01")

// deltas computes, per currency, the net of debit amounts minus credit amounts.
func (t Transaction) deltas() map[string]Money {
	out := make(map[string]Money)
	for _, p := range t.Postings {
		d, ok := out[p.Amount.Currency()]
		if !ok {
			d = M(0, p.Amount.Currency())
		}
		if p.Side == Debit {
			d = d.Add(p.Amount)
		} else {
			d = d.Sub(p.Amount)
		}
		out[p.Amount.Currency()] = d
	}
	return out
}

// Balanced reports whether debits equal credits. Same-currency transactions
// must balance to the currency's minimum unit; cross-currency transactions
// are allowed the explicit 0.01 epsilon per currency.
// The failing per-currency deltas are returned for diagnostics.
func (t Transaction) Balanced() (bool, map[string]Money) {
	bad := make(map[string]Money)
	for curr, d := range t.deltas() {
		tolerance := d.MinorUnit().Amount()
		if t.CrossCurrency {
			tolerance = crossCurrencyEpsilon
		}
		if d.Amount().Abs().GreaterThanOrEqual(tolerance) {
			bad[curr] = d
		}
	}
	if len(bad) > 0 {
		return false, bad
	}
	return true, nil
}

// Reversed returns a new transaction carrying the inverse postings, dated
// 'on'. Appending it cancels the effect of t while preserving full history.
func (t Transaction) Reversed(on date.Date) Transaction {
	rev := Transaction{
		Account:       t.Account,
		On:            on,
		Memo:          "reversal of " + t.Memo,
		Source:        t.Source,
		CrossCurrency: t.CrossCurrency,
		Postings:      make([]Posting, 0, len(t.Postings)),
	}
	for _, p := range t.Postings {
		q := p
		if p.Side == Debit {
			q.Side = Credit
		} else {
			q.Side = Debit
		}
		q.On, q.Seq, q.Tx = date.Date{}, 0, 0
		rev.Postings = append(rev.Postings, q)
	}
	return rev
}
