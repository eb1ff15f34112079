package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ecuafarm/ledger"
	"github.com/ecuafarm/ledger/renderer"
)

type txCmd struct {
	start string
	end   string
	head  int
	tail  int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the reconciled purchase rows" }
func (*txCmd) Usage() string {
	return `flb tx [-s <start_date>] [-d <end_date>] [-head <n>] [-tail <n>]

  Lists purchases with their deposit joins, daily nets and running balance.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "Start date of the range")
	f.StringVar(&p.end, "d", "", "End date of the range")
	f.IntVar(&p.head, "head", 0, "Show only the first N rows")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N rows")
}

func (p *txCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	rows := book.Purchases()
	if p.start != "" || p.end != "" {
		var start, end ledger.Date
		if p.start != "" {
			if start, err = ledger.ParseDate(p.start); err != nil {
				return fail(err)
			}
		}
		if p.end != "" {
			if end, err = ledger.ParseDate(p.end); err != nil {
				return fail(err)
			}
		}
		var filtered []ledger.PurchaseRecord
		for _, r := range rows {
			if p.start != "" && r.Date.Before(start) {
				continue
			}
			if p.end != "" && r.Date.After(end) {
				continue
			}
			filtered = append(filtered, r)
		}
		rows = filtered
	}

	if p.head > 0 && len(rows) > p.head {
		rows = rows[:p.head]
	}
	if p.tail > 0 && len(rows) > p.tail {
		rows = rows[len(rows)-p.tail:]
	}

	printMarkdown(renderer.Transactions(rows))
	return subcommands.ExitSuccess
}

type depositsCmd struct{}

func (*depositsCmd) Name() string     { return "deposits" }
func (*depositsCmd) Synopsis() string { return "list the recorded deposits" }
func (*depositsCmd) Usage() string {
	return `flb deposits

  Lists every deposit and transfer with its agency and derived kind.
`
}

func (*depositsCmd) SetFlags(*flag.FlagSet) {}

func (*depositsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	printMarkdown(renderer.Deposits(book.Deposits()))
	return subcommands.ExitSuccess
}

type notesCmd struct{}

func (*notesCmd) Name() string     { return "notes" }
func (*notesCmd) Synopsis() string { return "list the recorded debit notes" }
func (*notesCmd) Usage() string {
	return `flb notes

  Lists every debit note with its derived eligible pounds and discounts.
`
}

func (*notesCmd) SetFlags(*flag.FlagSet) {}

func (*notesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	printMarkdown(renderer.Notes(book.Notes()))
	return subcommands.ExitSuccess
}
