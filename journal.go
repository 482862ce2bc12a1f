package ledger

import (
	"fmt"
	"iter"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/corfou/ledger/date"
)

// Journal is the append-only store of double-entry transactions.
//
// Appends to the same account serialize on the account's shard, preserving
// the (date, sequence) total order every timeline fold relies on; appends to
// different accounts are independent. There is no update or delete of
// individual postings: corrections are reversals, and only a whole import
// batch can be removed atomically.
type Journal struct {
	mu       sync.RWMutex
	accounts map[string]*accountShard
	nextTx   atomic.Int64
}

// accountShard holds one account's transactions and its posting log,
// ordered by (date, seq).
type accountShard struct {
	mu       sync.RWMutex
	nextSeq  int64
	txs      map[TxID]Transaction
	postings []Posting // sorted by (On, Seq)
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{accounts: make(map[string]*accountShard)}
}

func (j *Journal) shard(account string) *accountShard {
	j.mu.RLock()
	s, ok := j.accounts[account]
	j.mu.RUnlock()
	if ok {
		return s
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if s, ok = j.accounts[account]; ok {
		return s
	}
	s = &accountShard{txs: make(map[TxID]Transaction)}
	j.accounts[account] = s
	return s
}

// Append validates and stores a transaction, returning its id. A transaction
// whose postings do not balance within tolerance is rejected with an
// *ImbalancedTransactionError and never stored.
func (j *Journal) Append(tx Transaction) (TxID, error) {
	if len(tx.Postings) < 2 {
		return 0, fmt.Errorf("on %s for %q: %w", tx.On, tx.Account, ErrEmptyTransaction)
	}
	if ok, deltas := tx.Balanced(); !ok {
		return 0, &ImbalancedTransactionError{Account: tx.Account, On: tx.On, Deltas: deltas}
	}

	s := j.shard(tx.Account)
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = TxID(j.nextTx.Add(1))
	tx.Postings = slices.Clone(tx.Postings)
	for i := range tx.Postings {
		s.nextSeq++
		tx.Postings[i].On = tx.On
		tx.Postings[i].Seq = s.nextSeq
		tx.Postings[i].Tx = tx.ID
	}
	s.txs[tx.ID] = tx
	s.insert(tx.Postings)
	return tx.ID, nil
}

// insert merges postings into the shard's (date, seq) ordered log.
// Chronological appends hit the fast path.
func (s *accountShard) insert(ps []Posting) {
	for _, p := range ps {
		n := len(s.postings)
		if n == 0 || !postingLess(p, s.postings[n-1]) {
			s.postings = append(s.postings, p)
			continue
		}
		i, _ := slices.BinarySearchFunc(s.postings, p, func(a, b Posting) int {
			if c := a.On.Compare(b.On); c != 0 {
				return c
			}
			switch {
			case a.Seq < b.Seq:
				return -1
			case a.Seq > b.Seq:
				return 1
			default:
				return 0
			}
		})
		s.postings = slices.Insert(s.postings, i, p)
	}
}

func postingLess(a, b Posting) bool {
	if c := a.On.Compare(b.On); c != 0 {
		return c < 0
	}
	return a.Seq < b.Seq
}

// Transaction returns the stored transaction with the given id.
func (j *Journal) Transaction(account string, id TxID) (Transaction, error) {
	s := j.shard(account)
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.txs[id]
	if !ok {
		return Transaction{}, fmt.Errorf("id %d in %q: %w", id, account, ErrUnknownTransaction)
	}
	return tx, nil
}

// Reverse appends the inverse of the transaction with the given id, dated
// 'on', preserving full audit history. It returns the new transaction's id.
func (j *Journal) Reverse(account string, id TxID, on date.Date) (TxID, error) {
	tx, err := j.Transaction(account, id)
	if err != nil {
		return 0, err
	}
	return j.Append(tx.Reversed(on))
}

// RemoveBatch atomically removes every transaction of the account carrying
// the given source tag, and returns how many were removed. This is the only
// destructive operation, reserved for explicit user-initiated batch
// reversal of an import.
func (j *Journal) RemoveBatch(account, source string) int {
	s := j.shard(account)
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make(map[TxID]struct{})
	for id, tx := range s.txs {
		if tx.Source == source {
			removed[id] = struct{}{}
		}
	}
	if len(removed) == 0 {
		return 0
	}
	for id := range removed {
		delete(s.txs, id)
	}
	kept := s.postings[:0]
	for _, p := range s.postings {
		if _, gone := removed[p.Tx]; !gone {
			kept = append(kept, p)
		}
	}
	s.postings = kept
	return len(removed)
}

// Postings returns an iterator over the account's postings within the
// range, ordered by (date, sequence). The iterator walks a snapshot, so it
// is safe against concurrent appends.
func (j *Journal) Postings(account string, r date.Range) iter.Seq[Posting] {
	s := j.shard(account)
	s.mu.RLock()
	snapshot := slices.Clone(s.postings)
	s.mu.RUnlock()

	return func(yield func(Posting) bool) {
		for _, p := range snapshot {
			if p.On.Before(r.From) {
				continue
			}
			if p.On.After(r.To) {
				// The log is sorted by date, so it is safe to stop.
				return
			}
			if !yield(p) {
				return
			}
		}
	}
}

// AllPostings returns an iterator over all the account's postings in
// (date, sequence) order.
func (j *Journal) AllPostings(account string) iter.Seq[Posting] {
	return j.Postings(account, date.Range{From: date.New(1, 1, 1), To: date.New(9999, 12, 31)})
}

// Accounts returns the sorted list of account names seen by the journal.
func (j *Journal) Accounts() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	names := make([]string, 0, len(j.accounts))
	for name := range j.accounts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Transactions returns the account's transactions in (date, id) order.
func (j *Journal) Transactions(account string) []Transaction {
	s := j.shard(account)
	s.mu.RLock()
	defer s.mu.RUnlock()
	txs := make([]Transaction, 0, len(s.txs))
	for _, tx := range s.txs {
		txs = append(txs, tx)
	}
	slices.SortFunc(txs, func(a, b Transaction) int {
		if c := a.On.Compare(b.On); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return txs
}

// OldestPostingDate returns the date of the account's earliest posting, or
// the zero date when the account is empty.
func (j *Journal) OldestPostingDate(account string) date.Date {
	s := j.shard(account)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.postings) == 0 {
		return date.Date{}
	}
	return s.postings[0].On
}

// NewestPostingDate returns the date of the account's latest posting, or
// the zero date when the account is empty.
func (j *Journal) NewestPostingDate(account string) date.Date {
	s := j.shard(account)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.postings) == 0 {
		return date.Date{}
	}
	return s.postings[len(s.postings)-1].On
}
