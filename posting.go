package ledger

import (
	"fmt"
	"strings"

	"github.com/corfou/ledger/date"
)

// Side is the double-entry side of a posting.
type Side int

const (
	Debit Side = iota
	Credit
)

func (s Side) String() string {
	switch s {
	case Debit:
		return "debit"
	case Credit:
		return "credit"
	default:
		return "side?"
	}
}

// ParseSide parses a posting side name.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit", "dr":
		return Debit, nil
	case "credit", "cr":
		return Credit, nil
	default:
		return Debit, fmt.Errorf("unknown side %q", s)
	}
}

// AccountClass is the accounting classification of the account a posting
// touches. The classification alone decides the sign of a posting's effect;
// asset symbols never do.
type AccountClass int

const (
	Cash AccountClass = iota
	Asset
	Income
	Expense
	Equity
	Liability
)

func (c AccountClass) String() string {
	switch c {
	case Cash:
		return "cash"
	case Asset:
		return "asset"
	case Income:
		return "income"
	case Expense:
		return "expense"
	case Equity:
		return "equity"
	case Liability:
		return "liability"
	default:
		return "class?"
	}
}

// ParseAccountClass parses an account classification name.
func ParseAccountClass(s string) (AccountClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return Cash, nil
	case "asset":
		return Asset, nil
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	case "equity":
		return Equity, nil
	case "liability":
		return Liability, nil
	default:
		return Cash, fmt.Errorf("unknown account class %q", s)
	}
}

// signs is the single (account class × side) → signed effect table.
// A debit increases balance-sheet holdings (cash, asset, expense) and
// decreases the sources of funds (income, equity, liability).
var signs = map[AccountClass][2]int{
	//          Debit, Credit
	Cash:      {+1, -1},
	Asset:     {+1, -1},
	Expense:   {+1, -1},
	Income:    {-1, +1},
	Equity:    {-1, +1},
	Liability: {-1, +1},
}

// Effect returns the signed effect (+1 or -1) of a posting with the given
// class and side on the balance of its account.
func Effect(class AccountClass, side Side) int {
	return signs[class][side]
}

// Posting is one debit or credit line within a transaction. It is immutable
// once appended; corrections are new postings, never edits.
type Posting struct {
	Side     Side
	Class    AccountClass
	Asset    string   // asset symbol for asset postings, empty for pure cash
	Amount   Money    // always positive; the side carries the direction
	Quantity Quantity // signed quantity for asset postings, zero otherwise
	Unit     string   // unit of the quantity (e.g. "share"), optional
	Category string   // grouping label attached by the categorization layer
	Type     string   // posting type label (e.g. "buy", "sell", "dividend")

	// Set by the journal at append time.
	On  date.Date
	Seq int64 // per-account insertion order, ties on the same date
	Tx  TxID
}

// SignedAmount returns the posting's monetary effect on its account.
func (p Posting) SignedAmount() Money {
	if Effect(p.Class, p.Side) < 0 {
		return p.Amount.Neg()
	}
	return p.Amount
}

// SignedQuantity returns the posting's quantity effect on its account.
func (p Posting) SignedQuantity() Quantity {
	if Effect(p.Class, p.Side) < 0 {
		return p.Quantity.Neg()
	}
	return p.Quantity
}

// TopCategory returns the top-level segment of a hierarchical category
// (the part before the first ':'), or the whole category if flat.
func (p Posting) TopCategory() string {
	if i := strings.IndexByte(p.Category, ':'); i >= 0 {
		return p.Category[:i]
	}
	return p.Category
}
