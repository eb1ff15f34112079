package ledger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// This file persists the three record collections as JSONL, one record per
// line, with a stable key order so files stay diff-friendly.
//
// Decoding is deliberately lenient on values: a structurally broken line is
// an error, but a malformed numeric or date inside a valid JSON object
// degrades to zero/empty per the coercion policy (coerce.go). Historical
// files touched by hand must never block a recompute.

// EncodePurchases writes the purchase dataset in JSONL format.
func EncodePurchases(w io.Writer, rows []PurchaseRecord) error {
	for _, r := range rows {
		var o jsonObjectWriter
		o.Append("seq", r.Seq)
		o.Append("date", r.Date)
		o.Append("supplier", r.Supplier)
		o.Optional("product", r.Product)
		o.Append("units", r.Units)
		o.Append("weightOut", r.WeightOut)
		o.Append("weightIn", r.WeightIn)
		o.Optional("docType", string(r.DocType))
		o.Append("crates", r.Crates)
		o.Append("unitPrice", r.UnitPrice)
		o.Append("netKilos", r.NetKilos)
		o.Append("netPounds", r.NetPounds)
		o.Append("average", r.Average)
		o.Append("total", r.Total)
		o.Append("deposit", r.DepositAmount)
		o.Append("dailyNet", r.DailyNet)
		o.Append("cumulative", r.Cumulative)
		if err := writeLine(w, &o); err != nil {
			return fmt.Errorf("failed to write purchase %d: %w", r.Seq, err)
		}
	}
	return nil
}

// DecodePurchases reads a JSONL purchase dataset.
func DecodePurchases(r io.Reader) ([]PurchaseRecord, error) {
	var rows []PurchaseRecord
	err := scanLines(r, func(obj map[string]any) {
		rows = append(rows, PurchaseRecord{
			Seq:           intOrZero(obj["seq"]),
			Date:          dateOrZero(obj["date"]),
			Supplier:      strOrEmpty(obj["supplier"]),
			Product:       strOrEmpty(obj["product"]),
			Units:         intOrZero(obj["units"]),
			WeightOut:     W(numOrZero(obj["weightOut"])),
			WeightIn:      W(numOrZero(obj["weightIn"])),
			DocType:       DocType(strOrEmpty(obj["docType"])),
			Crates:        intOrZero(obj["crates"]),
			UnitPrice:     M(numOrZero(obj["unitPrice"])),
			NetKilos:      W(numOrZero(obj["netKilos"])),
			NetPounds:     W(numOrZero(obj["netPounds"])),
			Average:       W(numOrZero(obj["average"])),
			Total:         M(numOrZero(obj["total"])),
			DepositAmount: M(numOrZero(obj["deposit"])),
			DailyNet:      M(numOrZero(obj["dailyNet"])),
			Cumulative:    M(numOrZero(obj["cumulative"])),
		})
	})
	return rows, err
}

// EncodeDeposits writes the deposit collection in JSONL format.
func EncodeDeposits(w io.Writer, deposits []DepositRecord) error {
	for _, d := range deposits {
		var o jsonObjectWriter
		o.Append("seq", d.Seq)
		o.Append("date", d.Date)
		o.Append("counterparty", d.Counterparty)
		o.Append("agency", d.Agency)
		o.Append("amount", d.Amount)
		o.Optional("kind", string(d.Kind))
		if err := writeLine(w, &o); err != nil {
			return fmt.Errorf("failed to write deposit %d: %w", d.Seq, err)
		}
	}
	return nil
}

// DecodeDeposits reads a JSONL deposit collection. The deposit kind is
// re-derived from the agency rather than trusted from disk.
func DecodeDeposits(r io.Reader) ([]DepositRecord, error) {
	var deposits []DepositRecord
	err := scanLines(r, func(obj map[string]any) {
		d := DepositRecord{
			Seq:          intOrZero(obj["seq"]),
			Date:         dateOrZero(obj["date"]),
			Counterparty: strOrEmpty(obj["counterparty"]),
			Agency:       strOrEmpty(obj["agency"]),
			Amount:       M(numOrZero(obj["amount"])),
		}
		d.Derive()
		deposits = append(deposits, d)
	})
	return deposits, err
}

// EncodeNotes writes the debit-note collection in JSONL format.
func EncodeNotes(w io.Writer, notes []DebitNote) error {
	for _, n := range notes {
		var o jsonObjectWriter
		o.Append("seq", n.Seq)
		o.Append("date", n.Date)
		o.Append("rate", json.RawMessage(n.Rate.String()))
		o.Append("realDiscount", n.RealDiscount)
		o.Append("eligiblePounds", n.EligiblePounds)
		o.Append("possibleDiscount", n.PossibleDiscount)
		if err := writeLine(w, &o); err != nil {
			return fmt.Errorf("failed to write debit note %d: %w", n.Seq, err)
		}
	}
	return nil
}

// DecodeNotes reads a JSONL debit-note collection.
func DecodeNotes(r io.Reader) ([]DebitNote, error) {
	var notes []DebitNote
	err := scanLines(r, func(obj map[string]any) {
		notes = append(notes, DebitNote{
			Seq:              intOrZero(obj["seq"]),
			Date:             dateOrZero(obj["date"]),
			Rate:             numOrZero(obj["rate"]),
			RealDiscount:     M(numOrZero(obj["realDiscount"])),
			EligiblePounds:   W(numOrZero(obj["eligiblePounds"])),
			PossibleDiscount: M(numOrZero(obj["possibleDiscount"])),
		})
	})
	return notes, err
}

// writeLine emits a single canonical JSON object followed by a newline.
func writeLine(w io.Writer, o *jsonObjectWriter) error {
	b, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// scanLines decodes each non-empty JSONL line into a generic object and
// hands it to the callback. Numbers stay json.Number so the coercion
// primitives can parse them exactly.
func scanLines(r io.Reader, fn func(map[string]any)) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(bytes.TrimSpace(b)) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return fmt.Errorf("format error on line %d %q: %w", line, string(b), err)
		}
		fn(obj)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading from input: %w", err)
	}
	return nil
}
