package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrAnchorImmutable is returned when an operation targets the
// starting-balance row.
var ErrAnchorImmutable = errors.New("the starting-balance row cannot be edited or deleted")

// Validate checks a purchase's user-entered fields at the add/edit boundary.
// Unlike the coercion fallback used during recompute, these failures block
// the mutation.
func (r PurchaseRecord) Validate() error {
	if r.Supplier == "" {
		return errors.New("purchase supplier is missing")
	}
	if r.Supplier == AnchorSupplier {
		return fmt.Errorf("supplier name %q is reserved", AnchorSupplier)
	}
	if r.Units < 0 || r.Crates < 0 {
		return errors.New("unit and crate counts cannot be negative")
	}
	if r.WeightOut.IsNegative() || r.WeightIn.IsNegative() {
		return errors.New("weights cannot be negative")
	}
	if r.UnitPrice.IsNegative() {
		return errors.New("unit price cannot be negative")
	}
	if r.WeightOut.LessThan(r.WeightIn) {
		return fmt.Errorf("inbound weight %s cannot exceed outbound weight %s", r.WeightIn, r.WeightOut)
	}
	if r.Units == 0 && r.WeightOut.IsZero() && r.WeightIn.IsZero() {
		return errors.New("enter a unit count and/or weights")
	}
	if _, err := ParseDocType(string(r.DocType)); err != nil {
		return err
	}
	return nil
}

// Validate checks a deposit's user-entered fields at the add/edit boundary.
func (r DepositRecord) Validate() error {
	if r.Counterparty == "" {
		return errors.New("deposit counterparty is missing")
	}
	if r.Agency == "" {
		return errors.New("deposit agency is missing")
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("deposit amount must be positive, got %s", r.Amount)
	}
	return nil
}

// Validate checks a debit note's user-entered fields at the add/edit boundary.
func (n DebitNote) Validate() error {
	if n.Rate.IsNegative() || n.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("discount rate must be a fraction in [0, 1], got %s", n.Rate)
	}
	if n.RealDiscount.IsNegative() {
		return fmt.Errorf("real discount cannot be negative, got %s", n.RealDiscount)
	}
	if n.Rate.IsZero() && n.RealDiscount.IsZero() {
		return errors.New("enter a discount rate or a real discount greater than zero")
	}
	return nil
}
