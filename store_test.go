package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	rows := []PurchaseRecord{NewAnchorRow(), {
		Seq: 1, Date: NewDate(2025, time.January, 2), Supplier: "Medina",
		Units: 10, WeightOut: W(10), DocType: DocInvoice, UnitPrice: M(1),
	}}
	rows[1].Derive()
	deposits := []DepositRecord{{
		Seq: 1, Date: NewDate(2025, time.January, 2), Counterparty: "Medina",
		Agency: "Banco Pichincha", Amount: M(20),
	}}
	notes := []DebitNote{{Seq: 1, Date: NewDate(2025, time.January, 2), RealDiscount: M(1)}}

	if err := store.SavePurchases(rows); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveDeposits(deposits); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveNotes(notes); err != nil {
		t.Fatal(err)
	}

	gotRows, err := store.LoadPurchases()
	if err != nil {
		t.Fatal(err)
	}
	if len(gotRows) != 2 || gotRows[1].Supplier != "Medina" {
		t.Errorf("purchases round trip lost rows: %+v", gotRows)
	}
	gotDeposits, err := store.LoadDeposits()
	if err != nil {
		t.Fatal(err)
	}
	if len(gotDeposits) != 1 || !gotDeposits[0].Amount.Equal(M(20)) {
		t.Errorf("deposits round trip lost rows: %+v", gotDeposits)
	}
	gotNotes, err := store.LoadNotes()
	if err != nil {
		t.Fatal(err)
	}
	if len(gotNotes) != 1 || !gotNotes[0].RealDiscount.Equal(M(1)) {
		t.Errorf("notes round trip lost rows: %+v", gotNotes)
	}
}

func TestFileStoreMissingFiles(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist-yet"))

	rows, err := store.LoadPurchases()
	if err != nil || rows != nil {
		t.Errorf("LoadPurchases() = %v, %v, want empty with no error", rows, err)
	}
	deposits, err := store.LoadDeposits()
	if err != nil || deposits != nil {
		t.Errorf("LoadDeposits() = %v, %v, want empty with no error", deposits, err)
	}
	notes, err := store.LoadNotes()
	if err != nil || notes != nil {
		t.Errorf("LoadNotes() = %v, %v, want empty with no error", notes, err)
	}
}

func TestFileStoreSaveReplaces(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := store.SaveNotes([]DebitNote{
		{Seq: 1, Date: NewDate(2025, time.January, 2), RealDiscount: M(1)},
		{Seq: 2, Date: NewDate(2025, time.January, 3), RealDiscount: M(2)},
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveNotes([]DebitNote{
		{Seq: 7, Date: NewDate(2025, time.January, 4), RealDiscount: M(3)},
	}); err != nil {
		t.Fatal(err)
	}

	notes, err := store.LoadNotes()
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Seq != 7 {
		t.Errorf("save did not replace the collection: %+v", notes)
	}

	// no temp file left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("stray temp file %s", e.Name())
		}
	}
}
