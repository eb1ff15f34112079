package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ecuafarm/ledger"
)

type importCmd struct {
	file string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import records from an Excel workbook" }
func (*importCmd) Usage() string {
	return `flb import -f <workbook.xlsx>

  Appends the workbook's purchases, deposits and debit notes to the ledger
  with fresh sequence numbers. Sheets that are absent or lack the required
  columns are skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Workbook to import")
}

func (c *importCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f is required.")
		return subcommands.ExitUsageError
	}
	f, err := os.Open(c.file)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	purchases, deposits, notes, err := ledger.ImportExcel(f)
	if err != nil {
		return fail(err)
	}

	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	if err := book.Import(purchases, deposits, notes); err != nil {
		return fail(err)
	}
	fmt.Printf("Imported %d purchases, %d deposits, %d debit notes, balance %s\n",
		len(purchases), len(deposits), len(notes), book.Balance())
	return subcommands.ExitSuccess
}

type exportCmd struct {
	file string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as an Excel workbook" }
func (*exportCmd) Usage() string {
	return `flb export -f <workbook.xlsx>

  Writes the three record collections as one workbook, one sheet each.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Workbook to write")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f is required.")
		return subcommands.ExitUsageError
	}
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	f, err := os.Create(c.file)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	if err := ledger.ExportExcel(f, book); err != nil {
		return fail(err)
	}
	fmt.Printf("Exported ledger to %s\n", c.file)
	return subcommands.ExitSuccess
}

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the stored collections in canonical form" }
func (*fmtCmd) Usage() string {
	return `flb fmt

  Loads, reconciles and rewrites every collection. Useful after editing the
  data files by hand.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	// Loading already reconciled and rewrote the purchase dataset; rewrite
	// the other two collections for the same canonical form.
	if err := book.Rewrite(); err != nil {
		return fail(err)
	}
	fmt.Printf("Rewrote ledger, balance %s\n", book.Balance())
	return subcommands.ExitSuccess
}
