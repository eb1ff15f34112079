package ledger

// DayKey identifies a (date, counterparty) aggregation bucket. Matching is
// exact value equality on both fields; there is no fuzzy matching and no
// case normalization, so a misspelled counterparty silently joins to zero.
type DayKey struct {
	Date         Date
	Counterparty string
}

// AggregateDeposits groups deposit records by (date, counterparty) into a
// per-bucket amount sum. Empty input yields an empty map.
func AggregateDeposits(deposits []DepositRecord) map[DayKey]Money {
	sums := make(map[DayKey]Money, len(deposits))
	for _, d := range deposits {
		k := DayKey{Date: d.Date, Counterparty: d.Counterparty}
		sums[k] = sums[k].Add(d.Amount)
	}
	return sums
}

// AggregateNotes groups debit notes by date into a per-day sum of declared
// real discounts. Only the real discount feeds the balance; the note's
// possible discount is informational and never aggregated here.
func AggregateNotes(notes []DebitNote) map[Date]Money {
	sums := make(map[Date]Money, len(notes))
	for _, n := range notes {
		sums[n.Date] = sums[n.Date].Add(n.RealDiscount)
	}
	return sums
}
