package ledger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/corfou/ledger/date"
)

// Sentinel errors, for use with errors.Is.
var (
	// ErrImbalanced is returned when a transaction's debits and credits do
	// not balance within the instrument's tolerance.
	ErrImbalanced = errors.New("imbalanced transaction")

	// ErrUnknownTransaction is returned when a referenced transaction id
	// does not exist in the journal.
	ErrUnknownTransaction = errors.New("unknown transaction")

	// ErrEmptyTransaction is returned when a transaction carries fewer than
	// two postings.
	ErrEmptyTransaction = errors.New("transaction needs at least two postings")
)

// ImbalancedTransactionError details which currencies fail to balance.
type ImbalancedTransactionError struct {
	Account string
	On      date.Date
	Deltas  map[string]Money // per-currency net of debits minus credits
}

func (e *ImbalancedTransactionError) Error() string {
	currencies := slices.Sorted(maps.Keys(e.Deltas))
	parts := make([]string, 0, len(currencies))
	for _, curr := range currencies {
		parts = append(parts, fmt.Sprintf("%s off by %s", curr, e.Deltas[curr].String()))
	}
	return fmt.Sprintf("imbalanced transaction on %s for %q: %s",
		e.On, e.Account, strings.Join(parts, ", "))
}

func (e *ImbalancedTransactionError) Unwrap() error { return ErrImbalanced }
