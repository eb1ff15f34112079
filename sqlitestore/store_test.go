package sqlitestore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecuafarm/ledger"
)

func decimalFrom(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEmptyDatabase(t *testing.T) {
	s := newTestStore(t)

	rows, err := s.LoadPurchases()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("fresh database has %d purchases", len(rows))
	}
}

func TestPurchasesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	rows := []ledger.PurchaseRecord{ledger.NewAnchorRow(), {
		Seq:       1,
		Date:      ledger.NewDate(2025, time.January, 2),
		Supplier:  "LIRIS SA",
		Product:   ledger.ProductName,
		Units:     100,
		WeightOut: ledger.W(100),
		WeightIn:  ledger.W(20),
		DocType:   ledger.DocInvoice,
		Crates:    12,
		UnitPrice: ledger.M(1.10),
	}}
	rows[1].Derive()

	if err := s.SavePurchases(rows); err != nil {
		t.Fatal(err)
	}
	back, err := s.LoadPurchases()
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 {
		t.Fatalf("got %d rows, want 2", len(back))
	}
	// rows come back ordered by (date, seq): the anchor first
	if !back[0].IsAnchor() {
		t.Errorf("first row is %q, want the anchor", back[0].Supplier)
	}
	got := back[1]
	if got.Supplier != "LIRIS SA" || got.Date != rows[1].Date {
		t.Errorf("identity fields lost: %+v", got)
	}
	if !got.Total.Equal(rows[1].Total) {
		t.Errorf("Total = %s, want %s", got.Total, rows[1].Total)
	}
	if !got.NetPounds.Equal(rows[1].NetPounds) {
		t.Errorf("NetPounds = %s, want %s", got.NetPounds, rows[1].NetPounds)
	}
}

func TestSaveReplacesWholeTable(t *testing.T) {
	s := newTestStore(t)

	first := []ledger.DepositRecord{
		{Seq: 1, Date: ledger.NewDate(2025, time.January, 2), Counterparty: "Medina", Agency: "Banco Pichincha", Amount: ledger.M(10)},
		{Seq: 2, Date: ledger.NewDate(2025, time.January, 3), Counterparty: "Medina", Agency: "Banco Pichincha", Amount: ledger.M(20)},
	}
	if err := s.SaveDeposits(first); err != nil {
		t.Fatal(err)
	}
	second := []ledger.DepositRecord{
		{Seq: 9, Date: ledger.NewDate(2025, time.February, 1), Counterparty: "LIRIS SA", Agency: "Cajero Automatico Pichincha", Amount: ledger.M(30)},
	}
	if err := s.SaveDeposits(second); err != nil {
		t.Fatal(err)
	}

	back, err := s.LoadDeposits()
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 || back[0].Seq != 9 {
		t.Errorf("save did not replace the table: %+v", back)
	}
	// the kind is derived on load
	if back[0].Kind != ledger.KindDeposit {
		t.Errorf("Kind = %s, want %s", back[0].Kind, ledger.KindDeposit)
	}
}

func TestNotesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	notes := []ledger.DebitNote{{
		Seq:              1,
		Date:             ledger.NewDate(2025, time.January, 2),
		Rate:             decimalFrom(t, "0.02"),
		RealDiscount:     ledger.M(10),
		EligiblePounds:   ledger.W(176.37),
		PossibleDiscount: ledger.M(3.53),
	}}
	if err := s.SaveNotes(notes); err != nil {
		t.Fatal(err)
	}
	back, err := s.LoadNotes()
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 {
		t.Fatalf("got %d notes, want 1", len(back))
	}
	if !back[0].Rate.Equal(notes[0].Rate) {
		t.Errorf("Rate = %s, want %s", back[0].Rate, notes[0].Rate)
	}
	if !back[0].PossibleDiscount.Equal(notes[0].PossibleDiscount) {
		t.Errorf("PossibleDiscount = %s, want %s", back[0].PossibleDiscount, notes[0].PossibleDiscount)
	}
}

// TestBookOnSQLite runs the whole load-reconcile-save cycle against the
// database backend.
func TestBookOnSQLite(t *testing.T) {
	s := newTestStore(t)

	book, err := ledger.NewBook(s)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := book.AddPurchase(ledger.PurchaseRecord{
		Date:      ledger.NewDate(2025, time.January, 2),
		Supplier:  "LIRIS SA",
		Units:     100,
		WeightOut: ledger.W(100),
		WeightIn:  ledger.W(20),
		DocType:   ledger.DocInvoice,
		UnitPrice: ledger.M(1),
	})
	if err != nil {
		t.Fatal(err)
	}

	reopened, err := ledger.NewBook(s)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := reopened.Purchase(seq)
	if !ok {
		t.Fatal("purchase lost across reopen")
	}
	if !p.Total.Equal(ledger.M(176.37)) {
		t.Errorf("Total after reopen = %s, want $176.37", p.Total)
	}
	if !reopened.Balance().Equal(ledger.InitialBalance.Sub(ledger.M(176.37))) {
		t.Errorf("Balance after reopen = %s", reopened.Balance())
	}
}
