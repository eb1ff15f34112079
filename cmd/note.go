package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ecuafarm/ledger"
)

type noteFlags struct {
	date string
	rate string
	real string
}

func (p *noteFlags) register(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the debit note (defaults to today)")
	f.StringVar(&p.rate, "rate", "0", "Discount rate as a fraction, e.g. 0.02")
	f.StringVar(&p.real, "real", "0", "Real discount in dollars")
}

func (p *noteFlags) apply(f *flag.FlagSet, n *ledger.DebitNote, fresh bool) error {
	set := map[string]bool{}
	if fresh {
		f.VisitAll(func(fl *flag.Flag) { set[fl.Name] = true })
	} else {
		f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	}

	var err error
	if set["d"] || fresh {
		if p.date == "" {
			n.Date = ledger.Today()
		} else if n.Date, err = ledger.ParseDate(p.date); err != nil {
			return err
		}
	}
	if set["rate"] {
		v, err := decimal.NewFromString(p.rate)
		if err != nil {
			return fmt.Errorf("invalid rate %q: %w", p.rate, err)
		}
		n.Rate = v
	}
	if set["real"] {
		v, err := decimal.NewFromString(p.real)
		if err != nil {
			return fmt.Errorf("invalid real discount %q: %w", p.real, err)
		}
		n.RealDiscount = ledger.M(v)
	}
	return nil
}

type noteCmd struct {
	noteFlags
}

func (*noteCmd) Name() string     { return "note" }
func (*noteCmd) Synopsis() string { return "record a debit-note discount" }
func (*noteCmd) Usage() string {
	return `flb note -rate <fraction> -real <$> [-d <date>]

  Records a debit note. The eligible pounds and the possible discount are
  computed from the date's purchases; the real discount feeds the balance.
`
}

func (c *noteCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *noteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	var n ledger.DebitNote
	if err := c.apply(f, &n, true); err != nil {
		return fail(err)
	}
	seq, err := book.AddNote(n)
	if err != nil {
		return fail(err)
	}
	saved, _ := book.Note(seq)
	fmt.Printf("Recorded debit note %02d on %s lb, possible %s, real %s, balance %s\n",
		seq, saved.EligiblePounds, saved.PossibleDiscount, saved.RealDiscount, book.Balance())
	return subcommands.ExitSuccess
}

type editNoteCmd struct {
	noteFlags
	seq int
}

func (*editNoteCmd) Name() string     { return "edit-note" }
func (*editNoteCmd) Synopsis() string { return "edit a debit note by sequence number" }
func (*editNoteCmd) Usage() string {
	return `flb edit-note -n <seq> [flags of note]

  Replaces the given fields of a debit note, then recomputes the balance
  chain and the note's derived fields.
`
}

func (c *editNoteCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.seq, "n", 0, "Sequence number of the debit note to edit")
	c.register(f)
}

func (c *editNoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	n, ok := book.Note(c.seq)
	if !ok {
		return fail(fmt.Errorf("no debit note with sequence number %d", c.seq))
	}
	if err := c.apply(f, &n, false); err != nil {
		return fail(err)
	}
	if err := book.EditNote(c.seq, n); err != nil {
		return fail(err)
	}
	fmt.Printf("Edited debit note %02d, balance %s\n", c.seq, book.Balance())
	return subcommands.ExitSuccess
}

type deleteNoteCmd struct {
	seq int
}

func (*deleteNoteCmd) Name() string     { return "delete-note" }
func (*deleteNoteCmd) Synopsis() string { return "delete a debit note by sequence number" }
func (*deleteNoteCmd) Usage() string {
	return `flb delete-note -n <seq>

  Removes a debit note and recomputes the balance chain.
`
}

func (c *deleteNoteCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.seq, "n", 0, "Sequence number of the debit note to delete")
}

func (c *deleteNoteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	if err := book.DeleteNote(c.seq); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted debit note %02d, balance %s\n", c.seq, book.Balance())
	return subcommands.ExitSuccess
}
