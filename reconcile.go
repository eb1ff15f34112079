package ledger

import (
	"maps"
	"slices"
)

// DayBalance is the authoritative per-date aggregate produced by a
// reconciliation run.
//
// RowNet is the figure that actually feeds the cumulative chain: the sum of
// per-row (deposit join − row total) values. Because the deposit join
// attaches the full day+counterparty deposit sum to every row, RowNet can
// differ from DepositTotal − PurchaseTotal when one counterparty has
// several rows on one day. That behavior is inherited from the books this
// system replaces and is kept as is; DayBalance exposes the clean totals
// alongside it so reports can show both.
type DayBalance struct {
	Date          Date
	PurchaseTotal Money // sum of row totals on the date
	DepositTotal  Money // sum of all deposit records on the date
	RowNet        Money // sum of per-row daily nets (see above)
	NoteAdjust    Money // sum of the date's declared real discounts
	AdjustedNet   Money // RowNet + NoteAdjust
	Cumulative    Money // running balance through the date
}

// Reconcile recomputes every derived monetary field from the source facts.
//
// It runs the full pass in one direction: per-row derivation, deposit and
// debit-note aggregation, per-day adjusted nets, chronological cumulative
// propagation seeded with InitialBalance, and finally the broadcast of each
// date's figures back onto its rows. The input slices are not modified; the
// returned dataset is sorted by (date, sequence) and is meant to replace
// the persisted purchase collection in full.
//
// Running it twice on the same inputs yields identical output: every
// derived field is overwritten wholesale, never accumulated.
func Reconcile(purchases []PurchaseRecord, deposits []DepositRecord, notes []DebitNote) ([]PurchaseRecord, []DayBalance) {
	// 1. Split the anchor row from the operational rows.
	hasAnchor := false
	ops := make([]PurchaseRecord, 0, len(purchases))
	for _, p := range purchases {
		if p.IsAnchor() {
			hasAnchor = true
			continue
		}
		ops = append(ops, p)
	}

	// 2. Re-derive every operational row, even unchanged ones. This is what
	// guarantees consistency after any external edit of a source field.
	for i := range ops {
		ops[i].Derive()
	}

	// 3. Attach the (date, counterparty) deposit sums. No match joins zero.
	depositSums := AggregateDeposits(deposits)
	for i := range ops {
		ops[i].DepositAmount = depositSums[DayKey{Date: ops[i].Date, Counterparty: ops[i].Supplier}]
	}

	// 4. Per-row nets, grouped by date, then adjusted with the day's notes.
	// Notes on dates with no purchase rows never enter the chain.
	noteSums := AggregateNotes(notes)
	rowNets := make(map[Date]Money)
	purchaseTotals := make(map[Date]Money)
	for i := range ops {
		d := ops[i].Date
		rowNets[d] = rowNets[d].Add(ops[i].DepositAmount.Sub(ops[i].Total))
		purchaseTotals[d] = purchaseTotals[d].Add(ops[i].Total)
	}
	depositTotals := make(map[Date]Money)
	for _, dep := range deposits {
		depositTotals[dep.Date] = depositTotals[dep.Date].Add(dep.Amount)
	}

	// 5. Chronological prefix sum seeded with the starting constant.
	dates := slices.Collect(maps.Keys(rowNets))
	slices.SortFunc(dates, func(a, b Date) int {
		if a.Before(b) {
			return -1
		}
		if a.After(b) {
			return 1
		}
		return 0
	})

	days := make([]DayBalance, 0, len(dates))
	adjustedByDate := make(map[Date]Money, len(dates))
	cumulativeByDate := make(map[Date]Money, len(dates))
	running := InitialBalance
	for _, d := range dates {
		adjusted := rowNets[d].Add(noteSums[d])
		running = running.Add(adjusted)
		days = append(days, DayBalance{
			Date:          d,
			PurchaseTotal: purchaseTotals[d],
			DepositTotal:  depositTotals[d],
			RowNet:        rowNets[d],
			NoteAdjust:    noteSums[d],
			AdjustedNet:   adjusted,
			Cumulative:    running,
		})
		adjustedByDate[d] = adjusted
		cumulativeByDate[d] = running
	}

	// 6. Broadcast each date's figures onto every row of the date. Rows on
	// the same day are not distinguished here, only in their own Total.
	for i := range ops {
		ops[i].DailyNet = adjustedByDate[ops[i].Date]
		c, ok := cumulativeByDate[ops[i].Date]
		if !ok {
			// Cannot happen given step 4–5 construction; fall back to the
			// starting constant rather than a stale value.
			c = InitialBalance
		}
		ops[i].Cumulative = c
	}

	// 7. Re-attach the anchor with its fixed fields, then
	// 8. sort the whole dataset by (date, sequence).
	out := ops
	if hasAnchor {
		out = append(out, NewAnchorRow())
	}
	slices.SortStableFunc(out, func(a, b PurchaseRecord) int {
		if a.Date.Before(b.Date) {
			return -1
		}
		if a.Date.After(b.Date) {
			return 1
		}
		return a.Seq - b.Seq
	})
	return out, days
}
