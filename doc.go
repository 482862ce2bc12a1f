// Package ledger implements a temporal reconstruction and reconciliation
// engine for a personal-finance double-entry ledger. It is designed to be
// local-first and auditable: the journal is an append-only log of balanced
// postings, and everything else is recomputed from it on demand.
//
// The core functionalities include:
//   - Journal Store: an immutable, chronological record of double-entry
//     transactions, validated for balance at write time. Corrections are
//     reversals, never edits.
//   - Price Resolution: strict as-of price lookup per asset with explicit
//     handling of cash-equivalent instruments and of missing prices.
//   - Position Timelines: per (account, asset) stepwise-constant curves of
//     cumulative quantity or cash balance, reconstructed once and reused by
//     all downstream queries.
//   - Aggregation: bucketing of posting flows by calendar period and by a
//     grouping dimension (category, type, asset), in flow or cumulative mode.
//   - Valuation & Allocation: market values and percentage allocations at
//     sampled dates, with dust filtering and unpriced-asset exclusion.
//   - Reconciliation: iterative comparison of computed balances against
//     externally asserted statement balances, with severity-classified
//     discrepancies and verified corrective postings.
//
// This package serves as the foundational logic for the `lgr` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package ledger
