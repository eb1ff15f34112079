package ledger

import (
	"github.com/shopspring/decimal"
)

// dec parses a decimal literal, panicking on malformed test input.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// memStore is an in-memory Store for tests. It records the number of saves
// per collection so tests can assert on persistence behavior.
type memStore struct {
	purchases []PurchaseRecord
	deposits  []DepositRecord
	notes     []DebitNote

	purchaseSaves int
	depositSaves  int
	noteSaves     int
}

func (s *memStore) LoadPurchases() ([]PurchaseRecord, error) { return s.purchases, nil }
func (s *memStore) LoadDeposits() ([]DepositRecord, error)   { return s.deposits, nil }
func (s *memStore) LoadNotes() ([]DebitNote, error)          { return s.notes, nil }

func (s *memStore) SavePurchases(rows []PurchaseRecord) error {
	s.purchases = rows
	s.purchaseSaves++
	return nil
}

func (s *memStore) SaveDeposits(deposits []DepositRecord) error {
	s.deposits = deposits
	s.depositSaves++
	return nil
}

func (s *memStore) SaveNotes(notes []DebitNote) error {
	s.notes = notes
	s.noteSaves++
	return nil
}
