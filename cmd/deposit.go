package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ecuafarm/ledger"
)

type depositFlags struct {
	date         string
	counterparty string
	agency       string
	amount       string
}

func (p *depositFlags) register(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the deposit (defaults to today)")
	f.StringVar(&p.counterparty, "c", "", "Counterparty the deposit pays for")
	f.StringVar(&p.agency, "agency", "", "Bank or ATM channel the money went through")
	f.StringVar(&p.amount, "amount", "0", "Deposited amount in dollars")
}

func (p *depositFlags) apply(f *flag.FlagSet, r *ledger.DepositRecord, fresh bool) error {
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
	if set["c"] {
		r.Counterparty = p.counterparty
	}
	if set["agency"] {
		r.Agency = p.agency
	}
	if set["amount"] {
		v, err := decimal.NewFromString(p.amount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", p.amount, err)
		}
		r.Amount = ledger.M(v)
	}
	return nil
}

type depositCmd struct {
	depositFlags
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a bank deposit or transfer" }
func (*depositCmd) Usage() string {
	return `flb deposit -c <counterparty> -agency <agency> -amount <$> [-d <date>]

  Records a deposit. Whether it counts as a deposit or a transfer is derived
  from the agency name.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	var r ledger.DepositRecord
	if err := c.apply(f, &r, true); err != nil {
		return fail(err)
	}
	seq, err := book.AddDeposit(r)
	if err != nil {
		return fail(err)
	}
	d, _ := book.Deposit(seq)
	fmt.Printf("Recorded %s %02d of %s, balance %s\n", d.Kind, seq, d.Amount, book.Balance())
	return subcommands.ExitSuccess
}

type editDepositCmd struct {
	depositFlags
	seq int
}

func (*editDepositCmd) Name() string     { return "edit-deposit" }
func (*editDepositCmd) Synopsis() string { return "edit a deposit by sequence number" }
func (*editDepositCmd) Usage() string {
	return `flb edit-deposit -n <seq> [flags of deposit]

  Replaces the given fields of a deposit, then recomputes the balance chain.
`
}

func (c *editDepositCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.seq, "n", 0, "Sequence number of the deposit to edit")
	c.register(f)
}

func (c *editDepositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	r, ok := book.Deposit(c.seq)
	if !ok {
		return fail(fmt.Errorf("no deposit with sequence number %d", c.seq))
	}
	if err := c.apply(f, &r, false); err != nil {
		return fail(err)
	}
	if err := book.EditDeposit(c.seq, r); err != nil {
		return fail(err)
	}
	fmt.Printf("Edited deposit %02d, balance %s\n", c.seq, book.Balance())
	return subcommands.ExitSuccess
}

type deleteDepositCmd struct {
	seq int
}

func (*deleteDepositCmd) Name() string     { return "delete-deposit" }
func (*deleteDepositCmd) Synopsis() string { return "delete a deposit by sequence number" }
func (*deleteDepositCmd) Usage() string {
	return `flb delete-deposit -n <seq>

  Removes a deposit and recomputes the balance chain.
`
}

func (c *deleteDepositCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.seq, "n", 0, "Sequence number of the deposit to delete")
}

func (c *deleteDepositCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	if err := book.DeleteDeposit(c.seq); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted deposit %02d, balance %s\n", c.seq, book.Balance())
	return subcommands.ExitSuccess
}
