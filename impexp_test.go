package ledger

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook assembles an in-memory interchange workbook from header and
// row literals, one sheet per entry.
func buildWorkbook(t *testing.T, sheets map[string][][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			f.SetSheetName("Sheet1", name)
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatal(err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestImportExcel(t *testing.T) {
	r := buildWorkbook(t, map[string][][]any{
		SheetPurchases: {
			{"Fecha", "Proveedor", "Cantidad", "Peso Salida (kg)", "Peso Entrada (kg)", "Tipo Documento", "Cantidad de gavetas", "Precio Unitario ($)"},
			{"2025-01-02", "LIRIS SA", 100, 100, 20, "Factura", 12, 1},
			{"not a date", "Medina", 1, 1, 0, "Factura", 0, 1}, // dropped
			{"2025-01-03", "Medina", 10, 10, "oops", "Factura", 1, 0.5},
		},
		SheetDeposits: {
			{"Fecha", "Empresa", "Agencia", "Monto"},
			{"2025-01-02", "LIRIS SA", "Cajero Automatico Pichincha", 80},
		},
		SheetNotes: {
			{"Fecha", "Descuento", "Descuento real"},
			{"2025-01-02", 0.02, 10},
		},
	})

	purchases, deposits, notes, err := ImportExcel(r)
	if err != nil {
		t.Fatal(err)
	}

	if len(purchases) != 2 {
		t.Fatalf("got %d purchases, want 2 (bad date dropped)", len(purchases))
	}
	p := purchases[0]
	if p.Supplier != "LIRIS SA" || p.Date != NewDate(2025, time.January, 2) {
		t.Errorf("identity fields: %+v", p)
	}
	// derived on import, not read from the sheet
	if !p.Total.Equal(M(176.37)) {
		t.Errorf("Total = %s, want $176.37", p.Total)
	}
	// the malformed weight degrades to zero
	if !purchases[1].WeightIn.IsZero() {
		t.Errorf("malformed weight = %s, want zero", purchases[1].WeightIn)
	}

	if len(deposits) != 1 {
		t.Fatalf("got %d deposits, want 1", len(deposits))
	}
	if deposits[0].Kind != KindDeposit {
		t.Errorf("Kind = %s, want %s", deposits[0].Kind, KindDeposit)
	}

	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	if !notes[0].Rate.Equal(dec("0.02")) {
		t.Errorf("Rate = %s, want 0.02", notes[0].Rate)
	}
}

func TestImportExcelMissingColumn(t *testing.T) {
	r := buildWorkbook(t, map[string][][]any{
		SheetPurchases: {
			{"Fecha", "Proveedor"}, // far from complete
			{"2025-01-02", "LIRIS SA"},
		},
		SheetDeposits: {
			{"Fecha", "Empresa", "Agencia", "Monto"},
			{"2025-01-02", "LIRIS SA", "Banco Pichincha", 80},
		},
	})

	purchases, deposits, notes, err := ImportExcel(r)
	if err != nil {
		t.Fatal(err)
	}
	if purchases != nil {
		t.Errorf("incomplete sheet should be skipped, got %d rows", len(purchases))
	}
	if len(deposits) != 1 {
		t.Errorf("valid sheet should still import, got %d deposits", len(deposits))
	}
	if notes != nil {
		t.Errorf("absent sheet should be skipped, got %d notes", len(notes))
	}
}

func TestExportExcel(t *testing.T) {
	b, _ := newTestBook(t)
	r := validPurchase()
	r.Date = NewDate(2025, time.January, 2)
	b.AddPurchase(r)
	b.AddDeposit(DepositRecord{
		Date: r.Date, Counterparty: r.Supplier,
		Agency: "Banco Pichincha", Amount: M(40),
	})

	var buf bytes.Buffer
	if err := ExportExcel(&buf, b); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for _, sheet := range []string{SheetPurchases, SheetDeposits, SheetNotes} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}

	rows, err := f.GetRows(SheetPurchases)
	if err != nil {
		t.Fatal(err)
	}
	// header plus the one operational row, the anchor is not exported
	if len(rows) != 2 {
		t.Fatalf("got %d purchase rows, want 2", len(rows))
	}
	if rows[1][2] != "LIRIS SA" {
		t.Errorf("supplier cell = %q, want LIRIS SA", rows[1][2])
	}
}
