package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ecuafarm/ledger"
)

// purchaseFlags are the user-entered purchase fields, shared by the add and
// edit subcommands. Numeric fields are strings so edit can tell an omitted
// flag from a zero.
type purchaseFlags struct {
	date      string
	supplier  string
	units     int
	weightOut string
	weightIn  string
	docType   string
	crates    int
	unitPrice string
}

func (p *purchaseFlags) register(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the purchase (defaults to today)")
	f.StringVar(&p.supplier, "s", "", "Supplier name")
	f.IntVar(&p.units, "units", 0, "Number of birds")
	f.StringVar(&p.weightOut, "out", "0", "Outbound weight in kg")
	f.StringVar(&p.weightIn, "in", "0", "Inbound weight in kg")
	f.StringVar(&p.docType, "doc", string(ledger.DocInvoice), "Document type (Factura, Nota de debito, Nota de credito)")
	f.IntVar(&p.crates, "crates", 0, "Number of crates")
	f.StringVar(&p.unitPrice, "price", "0", "Price per pound in dollars")
}

// apply overlays the set flags onto a record, leaving the other fields as
// they are. For a fresh record every flag applies through its default.
func (p *purchaseFlags) apply(f *flag.FlagSet, r *ledger.PurchaseRecord, fresh bool) error {
	set := map[string]bool{}
	if fresh {
		f.VisitAll(func(fl *flag.Flag) { set[fl.Name] = true })
	} else {
		f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	}

	var err error
	if set["d"] || fresh {
		if p.date == "" {
			r.Date = ledger.Today()
		} else if r.Date, err = ledger.ParseDate(p.date); err != nil {
			return err
		}
	}
	if set["s"] {
		r.Supplier = p.supplier
	}
	if set["units"] {
		r.Units = p.units
	}
	if set["out"] {
		v, err := decimal.NewFromString(p.weightOut)
		if err != nil {
			return fmt.Errorf("invalid outbound weight %q: %w", p.weightOut, err)
		}
		r.WeightOut = ledger.W(v)
	}
	if set["in"] {
		v, err := decimal.NewFromString(p.weightIn)
		if err != nil {
			return fmt.Errorf("invalid inbound weight %q: %w", p.weightIn, err)
		}
		r.WeightIn = ledger.W(v)
	}
	if set["doc"] {
		dt, err := ledger.ParseDocType(p.docType)
		if err != nil {
			return err
		}
		r.DocType = dt
	}
	if set["crates"] {
		r.Crates = p.crates
	}
	if set["price"] {
		v, err := decimal.NewFromString(p.unitPrice)
		if err != nil {
			return fmt.Errorf("invalid unit price %q: %w", p.unitPrice, err)
		}
		r.UnitPrice = ledger.M(v)
	}
	return nil
}

type buyCmd struct {
	purchaseFlags
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase" }
func (*buyCmd) Usage() string {
	return `flb buy -s <supplier> -units <n> -out <kg> -in <kg> -price <$/lb> [-d <date>] [-doc <type>] [-crates <n>]

  Records a purchase and recomputes the whole balance chain.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	var r ledger.PurchaseRecord
	if err := c.apply(f, &r, true); err != nil {
		return fail(err)
	}
	seq, err := book.AddPurchase(r)
	if err != nil {
		return fail(err)
	}
	p, _ := book.Purchase(seq)
	fmt.Printf("Recorded purchase %02d: %s lb for %s, balance %s\n", seq, p.NetPounds, p.Total, book.Balance())
	return subcommands.ExitSuccess
}

type editBuyCmd struct {
	purchaseFlags
	seq int
}

func (*editBuyCmd) Name() string     { return "edit-buy" }
func (*editBuyCmd) Synopsis() string { return "edit a purchase by sequence number" }
func (*editBuyCmd) Usage() string {
	return `flb edit-buy -n <seq> [flags of buy]

  Replaces the given fields of a purchase, then recomputes the balance chain.
`
}

func (c *editBuyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.seq, "n", 0, "Sequence number of the purchase to edit")
	c.register(f)
}

func (c *editBuyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	r, ok := book.Purchase(c.seq)
	if !ok {
		return fail(fmt.Errorf("no purchase with sequence number %d", c.seq))
	}
	if err := c.apply(f, &r, false); err != nil {
		return fail(err)
	}
	if err := book.EditPurchase(c.seq, r); err != nil {
		return fail(err)
	}
	fmt.Printf("Edited purchase %02d, balance %s\n", c.seq, book.Balance())
	return subcommands.ExitSuccess
}

type deleteBuyCmd struct {
	seq int
}

func (*deleteBuyCmd) Name() string     { return "delete-buy" }
func (*deleteBuyCmd) Synopsis() string { return "delete a purchase by sequence number" }
func (*deleteBuyCmd) Usage() string {
	return `flb delete-buy -n <seq>

  Removes a purchase and recomputes the balance chain.
`
}

func (c *deleteBuyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.seq, "n", 0, "Sequence number of the purchase to delete")
}

func (c *deleteBuyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	if err := book.DeletePurchase(c.seq); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted purchase %02d, balance %s\n", c.seq, book.Balance())
	return subcommands.ExitSuccess
}
