package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ecuafarm/ledger"
	"github.com/ecuafarm/ledger/renderer"
)

type dailyCmd struct {
	start string
	end   string
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display the reconciled daily balances" }
func (*dailyCmd) Usage() string {
	return `flb daily [-s <start_date>] [-d <end_date>]

  Displays one line per operational day: purchases, deposits, discounts,
  the day's net and the running balance.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the range")
	f.StringVar(&c.end, "d", "", "End date of the range")
}

func (c *dailyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	days := book.DailyBalances()
	if c.start != "" || c.end != "" {
		var start, end ledger.Date
		if c.start != "" {
			if start, err = ledger.ParseDate(c.start); err != nil {
				return fail(err)
			}
		}
		if c.end != "" {
			if end, err = ledger.ParseDate(c.end); err != nil {
				return fail(err)
			}
		}
		var filtered []ledger.DayBalance
		for _, d := range days {
			if c.start != "" && d.Date.Before(start) {
				continue
			}
			if c.end != "" && d.Date.After(end) {
				continue
			}
			filtered = append(filtered, d)
		}
		days = filtered
	}

	printMarkdown(renderer.Daily(days))
	return subcommands.ExitSuccess
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a ledger-wide overview" }
func (*summaryCmd) Usage() string {
	return `flb summary

  Displays the current balance, collection totals and a per-supplier
  breakdown.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	printMarkdown(renderer.Summary(ledger.NewSummary(book)))
	return subcommands.ExitSuccess
}
