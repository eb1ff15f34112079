package cmd

import (
	"flag"
	"testing"

	"github.com/ecuafarm/ledger"
)

func parsePurchaseFlags(t *testing.T, args ...string) (*purchaseFlags, *flag.FlagSet) {
	t.Helper()
	p := &purchaseFlags{}
	fs := flag.NewFlagSet("buy", flag.ContinueOnError)
	p.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error: %v", args, err)
	}
	return p, fs
}

func existingPurchase() ledger.PurchaseRecord {
	return ledger.PurchaseRecord{
		Date:      ledger.NewDate(2025, 1, 2),
		Supplier:  "LIRIS SA",
		Units:     10,
		WeightOut: ledger.W(50),
		WeightIn:  ledger.W(5),
		DocType:   ledger.DocInvoice,
		UnitPrice: ledger.M(1.10),
	}
}

func TestPurchaseFlagsApplyOverlay(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, r ledger.PurchaseRecord)
	}{
		{
			name: "only the set flag changes",
			args: []string{"-out", "95"},
			check: func(t *testing.T, r ledger.PurchaseRecord) {
				if got, want := r.WeightOut.String(), "95.00"; got != want {
					t.Errorf("WeightOut = %s, want %s", got, want)
				}
				if r.Supplier != "LIRIS SA" || r.Units != 10 {
					t.Errorf("unset fields changed: supplier %q, units %d", r.Supplier, r.Units)
				}
				if got, want := r.Date.String(), "2025-01-02"; got != want {
					t.Errorf("Date = %s, want %s", got, want)
				}
			},
		},
		{
			name: "an explicit zero overwrites",
			args: []string{"-units", "0"},
			check: func(t *testing.T, r ledger.PurchaseRecord) {
				if r.Units != 0 {
					t.Errorf("Units = %d, want 0", r.Units)
				}
			},
		},
		{
			name: "several flags at once",
			args: []string{"-s", "Medina", "-price", "0.90", "-d", "2025-02-03"},
			check: func(t *testing.T, r ledger.PurchaseRecord) {
				if r.Supplier != "Medina" {
					t.Errorf("Supplier = %q, want Medina", r.Supplier)
				}
				if !r.UnitPrice.Equal(ledger.M(0.90)) {
					t.Errorf("UnitPrice = %s, want $0.90", r.UnitPrice)
				}
				if got, want := r.Date.String(), "2025-02-03"; got != want {
					t.Errorf("Date = %s, want %s", got, want)
				}
				if got, want := r.WeightOut.String(), "50.00"; got != want {
					t.Errorf("WeightOut = %s, want %s", got, want)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, fs := parsePurchaseFlags(t, tt.args...)
			r := existingPurchase()
			if err := p.apply(fs, &r, false); err != nil {
				t.Fatalf("apply() error: %v", err)
			}
			tt.check(t, r)
		})
	}
}

func TestPurchaseFlagsApplyFresh(t *testing.T) {
	p, fs := parsePurchaseFlags(t, "-s", "Gallina 1", "-units", "20", "-out", "12.5", "-price", "0.90")

	var r ledger.PurchaseRecord
	if err := p.apply(fs, &r, true); err != nil {
		t.Fatalf("apply() error: %v", err)
	}
	if r.Supplier != "Gallina 1" || r.Units != 20 {
		t.Errorf("got supplier %q, units %d", r.Supplier, r.Units)
	}
	if got, want := r.WeightOut.String(), "12.50"; got != want {
		t.Errorf("WeightOut = %s, want %s", got, want)
	}
	// the omitted date flag defaults to today on a fresh record
	if r.Date.IsZero() {
		t.Error("fresh record was left without a date")
	}
	if r.DocType != ledger.DocInvoice {
		t.Errorf("DocType = %s, want %s", r.DocType, ledger.DocInvoice)
	}
}

func TestPurchaseFlagsApplyRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"weight", []string{"-out", "heavy"}},
		{"price", []string{"-price", "$1.10"}},
		{"date", []string{"-d", "02/01/2025x"}},
		{"document type", []string{"-doc", "Recibo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, fs := parsePurchaseFlags(t, tt.args...)
			r := existingPurchase()
			if err := p.apply(fs, &r, false); err == nil {
				t.Errorf("apply(%v) accepted a malformed value", tt.args)
			}
		})
	}
}
