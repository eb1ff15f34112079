package ledger

import "slices"

// Summary provides an at-a-glance overview of the whole ledger: current
// balance, collection totals, and a per-supplier breakdown.
type Summary struct {
	FirstDate Date // earliest operational date, zero on an empty ledger
	LastDate  Date // latest operational date
	Balance   Money

	PurchaseCount int
	TotalPounds   Weight
	TotalBought   Money

	DepositCount  int
	TotalDeposits Money

	NoteCount      int
	TotalDiscounts Money

	Suppliers []SupplierSummary
}

// SupplierSummary aggregates one supplier's activity across the ledger.
// Net is deposits minus purchases; a negative value means the supplier has
// delivered more than has been paid for.
type SupplierSummary struct {
	Name      string
	Purchases int
	Pounds    Weight
	Bought    Money
	Deposited Money
	Net       Money
}

// NewSummary computes the ledger-wide overview from the book's reconciled
// state. The anchor row never counts as activity.
func NewSummary(b *Book) *Summary {
	s := &Summary{Balance: b.Balance()}

	bySupplier := make(map[string]*SupplierSummary)
	supplier := func(name string) *SupplierSummary {
		ss := bySupplier[name]
		if ss == nil {
			ss = &SupplierSummary{Name: name}
			bySupplier[name] = ss
		}
		return ss
	}

	for _, p := range b.Purchases() {
		if p.IsAnchor() {
			continue
		}
		if s.FirstDate.IsZero() || p.Date.Before(s.FirstDate) {
			s.FirstDate = p.Date
		}
		if p.Date.After(s.LastDate) {
			s.LastDate = p.Date
		}
		s.PurchaseCount++
		s.TotalPounds = s.TotalPounds.Add(p.NetPounds)
		s.TotalBought = s.TotalBought.Add(p.Total)
		ss := supplier(p.Supplier)
		ss.Purchases++
		ss.Pounds = ss.Pounds.Add(p.NetPounds)
		ss.Bought = ss.Bought.Add(p.Total)
	}
	for _, d := range b.Deposits() {
		s.DepositCount++
		s.TotalDeposits = s.TotalDeposits.Add(d.Amount)
		supplier(d.Counterparty).Deposited = supplier(d.Counterparty).Deposited.Add(d.Amount)
	}
	for _, n := range b.Notes() {
		s.NoteCount++
		s.TotalDiscounts = s.TotalDiscounts.Add(n.RealDiscount)
	}

	for _, ss := range bySupplier {
		ss.Net = ss.Deposited.Sub(ss.Bought)
		s.Suppliers = append(s.Suppliers, *ss)
	}
	slices.SortFunc(s.Suppliers, func(a, b SupplierSummary) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return s
}
