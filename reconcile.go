package ledger

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/corfou/ledger/date"
)

// CheckpointState is the lifecycle state of a reconciliation checkpoint.
type CheckpointState int

const (
	Unchecked CheckpointState = iota
	Matched
	Discrepant
	Resolved
)

func (s CheckpointState) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Matched:
		return "matched"
	case Discrepant:
		return "discrepant"
	case Resolved:
		return "resolved"
	default:
		return "state?"
	}
}

// AssertedBalance is one externally reported (statement/CSV) cash balance.
type AssertedBalance struct {
	On      date.Date
	Balance Money
}

// Checkpoint pairs a balance computed from the journal against an
// externally asserted balance at the same account and date.
type Checkpoint struct {
	Account  string
	On       date.Date
	Computed Money
	Asserted Money
	State    CheckpointState
}

// Delta returns computed minus asserted.
func (c Checkpoint) Delta() Money { return c.Computed.Sub(c.Asserted) }

// Severity classifies a discrepancy by its magnitude relative to the
// account scale.
type Severity int

const (
	Low Severity = iota
	Medium
	High
	Critical
)

func (s Severity) String() string {
	switch s {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case Critical:
		return "critical"
	default:
		return "severity?"
	}
}

// severityFor derives severity from |delta| relative to the account scale:
// above 10% critical, 5% high, 1% medium, else low.
func severityFor(delta, scale Money) Severity {
	if scale.IsZero() {
		return Critical
	}
	ratio := delta.Abs().Ratio(scale.Abs()).Decimal().InexactFloat64()
	switch {
	case ratio > 0.10:
		return Critical
	case ratio > 0.05:
		return High
	case ratio > 0.01:
		return Medium
	default:
		return Low
	}
}

// Discrepancy is a materialized checkpoint mismatch exceeding tolerance.
// Discrepancies are append-only observations: resolution is a state
// transition recorded on a new observation, never an edit of history.
type Discrepancy struct {
	Checkpoint Checkpoint
	Severity   Severity
	Evidence   string
	Resolution Money // net corrective effect applied, zero while open
	Resolved   bool
}

// FixProposer supplies candidate corrective transactions for a
// discrepancy. It is an external collaborator: the engine only verifies
// that a proposal shrinks the delta before appending it.
type FixProposer interface {
	Propose(ctx context.Context, d Discrepancy) ([]Transaction, error)
}

// ReconcileOptions configures a reconciliation session.
type ReconcileOptions struct {
	// MaxIterations bounds the resolve loop. Hitting the cap is a
	// terminal session state, not an error.
	MaxIterations int
	// Tolerance is the maximum |delta| considered matched.
	Tolerance Money
	// Proposer supplies candidate fixes; nil disables resolution.
	Proposer FixProposer
}

// NewReconcileOptions returns the conventional defaults: three iterations,
// tolerance of one minor currency unit.
func NewReconcileOptions(currency string) ReconcileOptions {
	return ReconcileOptions{
		MaxIterations: 3,
		Tolerance:     M(0, currency).MinorUnit(),
	}
}

// Session summarizes one reconciliation run.
type Session struct {
	Account          string
	Iterations       int
	CheckpointsBuilt int
	Found            int // discrepancy observations across iterations
	ResolvedCount    int
	FixesApplied     int
	MaxResidual      Money // largest remaining |delta|
	FullyReconciled  bool
	LimitReached     bool

	Checkpoints []Checkpoint  // final state, one per asserted balance
	Open        []Discrepancy // discrepancies still open at the end
}

// checkpointsAt pairs fresh computed balances against the asserted ones.
func checkpointsAt(j *Journal, account string, asserted []AssertedBalance, tolerance Money) []Checkpoint {
	ts := BuildTimelines(j, account)
	cps := make([]Checkpoint, 0, len(asserted))
	for _, a := range asserted {
		computed := M(ts.Cash(a.Balance.Currency()).ValueAsOf(a.On).Decimal(), a.Balance.Currency())
		cp := Checkpoint{Account: account, On: a.On, Computed: computed, Asserted: a.Balance}
		if cp.Delta().Abs().LessThanOrEqual(tolerance) {
			cp.State = Matched
		} else {
			cp.State = Discrepant
		}
		cps = append(cps, cp)
	}
	return cps
}

// cashEffectAsOf returns the transaction's net cash effect in one currency
// at or before 'on'.
func cashEffectAsOf(tx Transaction, on date.Date, currency string) Money {
	effect := M(0, currency)
	if tx.On.After(on) {
		return effect
	}
	for _, p := range tx.Postings {
		if p.Class == Cash && p.Amount.Currency() == currency {
			effect = effect.Add(p.SignedAmount())
		}
	}
	return effect
}

// Reconcile compares the account's computed cash balances against the
// asserted statement balances and iteratively applies verified corrective
// transactions.
//
// Each iteration builds checkpoints, classifies mismatches beyond tolerance
// as discrepancies, and asks the proposer for fixes. A fix is appended only
// when it verifiably shrinks the delta; otherwise it is rejected and the
// discrepancy stays open. The loop stops early at zero open discrepancies
// or at the iteration cap. Cancellation is honored between iterations,
// never mid-write, so the journal is always left consistent.
func Reconcile(ctx context.Context, j *Journal, account string, asserted []AssertedBalance, opts ReconcileOptions) (*Session, error) {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 3
	}
	asserted = slices.Clone(asserted)
	slices.SortFunc(asserted, func(a, b AssertedBalance) int { return a.On.Compare(b.On) })

	session := &Session{Account: account}

	for range opts.MaxIterations {
		if err := ctx.Err(); err != nil {
			return session, err
		}
		session.Iterations++

		cps := checkpointsAt(j, account, asserted, opts.Tolerance)
		session.CheckpointsBuilt += len(cps)

		var open []Discrepancy
		for _, cp := range cps {
			if cp.State != Discrepant {
				continue
			}
			delta := cp.Delta()
			d := Discrepancy{
				Checkpoint: cp,
				Severity:   severityFor(delta, cp.Asserted),
				Evidence: fmt.Sprintf("computed %s vs asserted %s on %s (delta %s)",
					cp.Computed, cp.Asserted, cp.On, delta.SignedString()),
			}
			open = append(open, d)
		}
		session.Found += len(open)

		if len(open) == 0 {
			break
		}
		if opts.Proposer == nil {
			break
		}

		progress := false
		for i := range open {
			d := &open[i]
			fixes, err := opts.Proposer.Propose(ctx, *d)
			if err != nil {
				// A failing proposal leaves the discrepancy open for the
				// next iteration or the final report.
				log.Printf("reconcile %s on %s: proposer: %v", account, d.Checkpoint.On, err)
				continue
			}
			delta := d.Checkpoint.Delta()
			for _, fix := range fixes {
				effect := cashEffectAsOf(fix, d.Checkpoint.On, delta.Currency())
				newDelta := delta.Add(effect)
				if !newDelta.Abs().LessThan(delta.Abs()) {
					// The fix does not verifiably shrink the discrepancy.
					continue
				}
				if _, err := j.Append(fix); err != nil {
					log.Printf("reconcile %s on %s: rejected fix: %v", account, d.Checkpoint.On, err)
					continue
				}
				session.FixesApplied++
				progress = true
				delta = newDelta
				d.Resolution = d.Resolution.Add(effect)
				if delta.Abs().LessThanOrEqual(opts.Tolerance) {
					d.Resolved = true
					session.ResolvedCount++
					break
				}
			}
		}
		if !progress {
			break
		}
	}

	// Final assessment from a fresh reconstruction.
	session.Checkpoints = checkpointsAt(j, account, asserted, opts.Tolerance)
	session.FullyReconciled = true
	session.MaxResidual = M(0, opts.Tolerance.Currency())
	for _, cp := range session.Checkpoints {
		if cp.State != Discrepant {
			continue
		}
		session.FullyReconciled = false
		delta := cp.Delta()
		session.Open = append(session.Open, Discrepancy{
			Checkpoint: cp,
			Severity:   severityFor(delta, cp.Asserted),
			Evidence: fmt.Sprintf("computed %s vs asserted %s on %s (delta %s)",
				cp.Computed, cp.Asserted, cp.On, delta.SignedString()),
		})
		if delta.Abs().GreaterThan(session.MaxResidual) {
			session.MaxResidual = delta.Abs()
		}
	}
	session.LimitReached = !session.FullyReconciled && session.Iterations == opts.MaxIterations
	return session, nil
}
