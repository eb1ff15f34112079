package ledger

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"
)

// This file handles the Excel interchange format the bookkeeping has always
// used: one workbook with up to three sheets, one per record collection.
// Sheet and column names are kept in Spanish to stay compatible with the
// historical files.

const (
	SheetPurchases = "registro de proveedores"
	SheetDeposits  = "registro de depositos"
	SheetNotes     = "registro de notas de debito"
)

// Required import columns per sheet. Extra columns are ignored; derived
// columns present in exported files are recomputed, never trusted.
var (
	purchaseColumns = []string{"Fecha", "Proveedor", "Cantidad", "Peso Salida (kg)", "Peso Entrada (kg)", "Tipo Documento", "Cantidad de gavetas", "Precio Unitario ($)"}
	depositColumns  = []string{"Fecha", "Empresa", "Agencia", "Monto"}
	noteColumns     = []string{"Fecha", "Descuento", "Descuento real"}
)

// ImportExcel reads an interchange workbook. A sheet that is absent or
// lacks a required column is skipped with a nil slice; inside a valid
// sheet, rows without a parseable date are dropped and malformed numerics
// degrade to zero. Sequence numbers are not read from the file, the book
// assigns fresh ones on append.
func ImportExcel(r io.Reader) (purchases []PurchaseRecord, deposits []DepositRecord, notes []DebitNote, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	if rows, ok := sheetRows(f, SheetPurchases, purchaseColumns); ok {
		for _, row := range rows {
			date := ParseDateLenient(row["Fecha"])
			if date.IsZero() {
				continue
			}
			p := PurchaseRecord{
				Date:      date,
				Supplier:  row["Proveedor"],
				Product:   ProductName,
				Units:     intOrZero(row["Cantidad"]),
				WeightOut: W(numOrZero(row["Peso Salida (kg)"])),
				WeightIn:  W(numOrZero(row["Peso Entrada (kg)"])),
				DocType:   DocType(row["Tipo Documento"]),
				Crates:    intOrZero(row["Cantidad de gavetas"]),
				UnitPrice: M(numOrZero(row["Precio Unitario ($)"])),
			}
			p.Derive()
			purchases = append(purchases, p)
		}
	}

	if rows, ok := sheetRows(f, SheetDeposits, depositColumns); ok {
		for _, row := range rows {
			date := ParseDateLenient(row["Fecha"])
			if date.IsZero() {
				continue
			}
			d := DepositRecord{
				Date:         date,
				Counterparty: row["Empresa"],
				Agency:       row["Agencia"],
				Amount:       M(numOrZero(row["Monto"])),
			}
			d.Derive()
			deposits = append(deposits, d)
		}
	}

	if rows, ok := sheetRows(f, SheetNotes, noteColumns); ok {
		for _, row := range rows {
			date := ParseDateLenient(row["Fecha"])
			if date.IsZero() {
				continue
			}
			notes = append(notes, DebitNote{
				Date:         date,
				Rate:         numOrZero(row["Descuento"]),
				RealDiscount: M(numOrZero(row["Descuento real"])),
			})
		}
	}
	return purchases, deposits, notes, nil
}

// ExportExcel writes the book's collections as an interchange workbook with
// the three historical sheets. The anchor row is excluded: the starting
// balance is a constant of the system, not data to exchange.
func ExportExcel(w io.Writer, b *Book) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetPurchases)
	headers := []any{
		"N", "Fecha", "Proveedor", "Producto", "Cantidad",
		"Peso Salida (kg)", "Peso Entrada (kg)", "Tipo Documento",
		"Cantidad de gavetas", "Precio Unitario ($)", "Promedio",
		"Kilos Restantes", "Libras Restantes", "Total ($)",
		"Monto Deposito", "Saldo diario", "Saldo Acumulado",
	}
	if err := f.SetSheetRow(SheetPurchases, "A1", &headers); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	n := 2
	for _, p := range b.Purchases() {
		if p.IsAnchor() {
			continue
		}
		row := []any{
			fmt.Sprintf("%02d", p.Seq), p.Date.String(), p.Supplier, p.Product, p.Units,
			p.WeightOut.Float64(), p.WeightIn.Float64(), string(p.DocType),
			p.Crates, p.UnitPrice.Float64(), p.Average.Float64(),
			p.NetKilos.Float64(), p.NetPounds.Float64(), p.Total.Float64(),
			p.DepositAmount.Float64(), p.DailyNet.Float64(), p.Cumulative.Float64(),
		}
		if err := f.SetSheetRow(SheetPurchases, fmt.Sprintf("A%d", n), &row); err != nil {
			return fmt.Errorf("cannot write purchase %d: %w", p.Seq, err)
		}
		n++
	}

	if _, err := f.NewSheet(SheetDeposits); err != nil {
		return fmt.Errorf("cannot create sheet: %w", err)
	}
	headers = []any{"Fecha", "Empresa", "Agencia", "Monto", "Documento", "N"}
	if err := f.SetSheetRow(SheetDeposits, "A1", &headers); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	for i, d := range b.Deposits() {
		row := []any{d.Date.String(), d.Counterparty, d.Agency, d.Amount.Float64(), string(d.Kind), fmt.Sprintf("%02d", d.Seq)}
		if err := f.SetSheetRow(SheetDeposits, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("cannot write deposit %d: %w", d.Seq, err)
		}
	}

	if _, err := f.NewSheet(SheetNotes); err != nil {
		return fmt.Errorf("cannot create sheet: %w", err)
	}
	headers = []any{"Fecha", "Libras calculadas", "Descuento", "Descuento posible", "Descuento real"}
	if err := f.SetSheetRow(SheetNotes, "A1", &headers); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	for i, nt := range b.Notes() {
		rate, _ := nt.Rate.Float64()
		row := []any{nt.Date.String(), nt.EligiblePounds.Float64(), rate, nt.PossibleDiscount.Float64(), nt.RealDiscount.Float64()}
		if err := f.SetSheetRow(SheetNotes, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("cannot write debit note %d: %w", nt.Seq, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

// sheetRows returns the sheet's data rows keyed by header name, or ok=false
// when the sheet is absent or a required column is missing.
func sheetRows(f *excelize.File, sheet string, required []string) ([]map[string]string, bool) {
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) == 0 {
		return nil, false
	}
	header := rows[0]
	for _, col := range required {
		if !slices.Contains(header, col) {
			return nil, false
		}
	}
	var out []map[string]string
	for _, row := range rows[1:] {
		m := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				m[name] = row[i]
			}
		}
		out = append(out, m)
	}
	return out, true
}
