package ledger

import (
	"testing"
	"time"
)

func validPurchase() PurchaseRecord {
	return PurchaseRecord{
		Date:      NewDate(2025, time.January, 2),
		Supplier:  "LIRIS SA",
		Units:     10,
		WeightOut: W(50),
		WeightIn:  W(5),
		DocType:   DocInvoice,
		UnitPrice: M(1.10),
	}
}

func TestPurchaseValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PurchaseRecord)
		ok     bool
	}{
		{"valid", func(r *PurchaseRecord) {}, true},
		{"missing supplier", func(r *PurchaseRecord) { r.Supplier = "" }, false},
		{"reserved supplier", func(r *PurchaseRecord) { r.Supplier = AnchorSupplier }, false},
		{"negative units", func(r *PurchaseRecord) { r.Units = -1 }, false},
		{"negative crates", func(r *PurchaseRecord) { r.Crates = -1 }, false},
		{"negative price", func(r *PurchaseRecord) { r.UnitPrice = M(-1) }, false},
		{"inbound above outbound", func(r *PurchaseRecord) { r.WeightIn = W(60) }, false},
		{"all zero", func(r *PurchaseRecord) { r.Units = 0; r.WeightOut = W(0); r.WeightIn = W(0) }, false},
		{"unknown doc type", func(r *PurchaseRecord) { r.DocType = "Recibo" }, false},
		{"zero price is allowed", func(r *PurchaseRecord) { r.UnitPrice = M(0) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validPurchase()
			tt.mutate(&r)
			err := r.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestDepositValidate(t *testing.T) {
	valid := DepositRecord{
		Date:         NewDate(2025, time.January, 2),
		Counterparty: "LIRIS SA",
		Agency:       "Banco Pichincha",
		Amount:       M(100),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid deposit rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*DepositRecord)
	}{
		{"missing counterparty", func(r *DepositRecord) { r.Counterparty = "" }},
		{"missing agency", func(r *DepositRecord) { r.Agency = "" }},
		{"zero amount", func(r *DepositRecord) { r.Amount = M(0) }},
		{"negative amount", func(r *DepositRecord) { r.Amount = M(-5) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestDebitNoteValidate(t *testing.T) {
	tests := []struct {
		name string
		note DebitNote
		ok   bool
	}{
		{"rate only", DebitNote{Rate: dec("0.02")}, true},
		{"real only", DebitNote{RealDiscount: M(12.50)}, true},
		{"both", DebitNote{Rate: dec("0.02"), RealDiscount: M(12.50)}, true},
		{"both zero", DebitNote{}, false},
		{"negative rate", DebitNote{Rate: dec("-0.1")}, false},
		{"rate above one", DebitNote{Rate: dec("1.5")}, false},
		{"rate of exactly one", DebitNote{Rate: dec("1")}, true},
		{"negative real", DebitNote{RealDiscount: M(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.note.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
