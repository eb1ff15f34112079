// Package renderer turns ledger reports into markdown documents.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/ecuafarm/ledger"
)

// seqString formats a sequence number the way the historical books did,
// zero-padded to two digits.
func seqString(seq int) string { return fmt.Sprintf("%02d", seq) }

// Transactions renders the reconciled purchase dataset, anchor included.
func Transactions(rows []ledger.PurchaseRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Purchases")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"N", "Date", "Supplier", "Units", "Net lb", "Price", "Total", "Deposit", "Daily Net", "Balance"},
	}
	for _, r := range rows {
		if r.IsAnchor() {
			table.Rows = append(table.Rows, []string{
				seqString(r.Seq), r.Date.String(), md.Bold(r.Supplier),
				"", "", "", "", "", "", r.Cumulative.String(),
			})
			continue
		}
		table.Rows = append(table.Rows, []string{
			seqString(r.Seq), r.Date.String(), r.Supplier,
			fmt.Sprint(r.Units), r.NetPounds.String(), r.UnitPrice.String(),
			r.Total.String(), r.DepositAmount.String(),
			r.DailyNet.SignedString(), r.Cumulative.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// Deposits renders the deposit collection.
func Deposits(deposits []ledger.DepositRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Deposits")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft,
		},
		Header: []string{"N", "Date", "Counterparty", "Agency", "Amount", "Kind"},
	}
	for _, d := range deposits {
		table.Rows = append(table.Rows, []string{
			seqString(d.Seq), d.Date.String(), d.Counterparty, d.Agency,
			d.Amount.String(), string(d.Kind),
		})
	}
	doc.Table(table)
	return doc.String()
}

// Notes renders the debit-note collection.
func Notes(notes []ledger.DebitNote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Debit Notes")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"N", "Date", "Rate", "Eligible lb", "Possible", "Real"},
	}
	for _, n := range notes {
		table.Rows = append(table.Rows, []string{
			seqString(n.Seq), n.Date.String(), n.Rate.String(),
			n.EligiblePounds.String(), n.PossibleDiscount.String(),
			n.RealDiscount.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// Daily renders the per-date balances of a reconciliation run, oldest
// first, ending with the current cumulative balance.
func Daily(days []ledger.DayBalance) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Daily Balances")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"Date", "Purchases", "Deposits", "Discounts", "Day Net", "Balance"},
	}
	for _, day := range days {
		table.Rows = append(table.Rows, []string{
			day.Date.String(), day.PurchaseTotal.String(), day.DepositTotal.String(),
			day.NoteAdjust.String(), day.AdjustedNet.SignedString(), day.Cumulative.String(),
		})
	}
	doc.Table(table)

	balance := ledger.InitialBalance
	if len(days) > 0 {
		balance = days[len(days)-1].Cumulative
	}
	doc.PlainTextf("%s %s", md.Bold("Current balance:"), balance)
	return doc.String()
}

// Summary renders the ledger-wide overview.
func Summary(s *ledger.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Ledger Summary")
	overview := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Current Balance"), md.Bold(s.Balance.String())},
	}
	if !s.FirstDate.IsZero() {
		overview.Rows = append(overview.Rows, []string{"Period", fmt.Sprintf("%s to %s", s.FirstDate, s.LastDate)})
	}
	overview.Rows = append(overview.Rows,
		[]string{"Purchases", fmt.Sprintf("%d rows, %s lb, %s", s.PurchaseCount, s.TotalPounds, s.TotalBought)},
		[]string{"Deposits", fmt.Sprintf("%d rows, %s", s.DepositCount, s.TotalDeposits)},
		[]string{"Debit notes", fmt.Sprintf("%d rows, %s", s.NoteCount, s.TotalDiscounts)},
	)
	doc.Table(overview)

	if len(s.Suppliers) > 0 {
		doc.H2("By Supplier")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
			},
			Header: []string{"Supplier", "Purchases", "Pounds", "Bought", "Deposited", "Net"},
		}
		for _, ss := range s.Suppliers {
			table.Rows = append(table.Rows, []string{
				ss.Name, fmt.Sprint(ss.Purchases), ss.Pounds.String(),
				ss.Bought.String(), ss.Deposited.String(), ss.Net.SignedString(),
			})
		}
		doc.Table(table)
	}
	return doc.String()
}
