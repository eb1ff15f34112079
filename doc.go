// Package ledger implements a running cash ledger for a perishable-goods
// supply operation.
//
// Purchases are weight-based and priced per pound, bank deposits are grouped
// by day and counterparty, and debit notes adjust a day's balance. The
// reconciliation engine recomputes every derived monetary field (per-row
// totals, daily nets, cumulative balances) from the source facts on each
// mutation, deterministically and idempotently, and hands the full dataset
// back to a Store for a whole-collection replace.
package ledger
