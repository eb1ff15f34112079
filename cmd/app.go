// Package cmd implements the CLI application to manage the ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/ecuafarm/ledger"
	"github.com/ecuafarm/ledger/sqlitestore"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&initCmd{},
	&buyCmd{},
	&editBuyCmd{},
	&deleteBuyCmd{},
	&depositCmd{},
	&editDepositCmd{},
	&deleteDepositCmd{},
	&noteCmd{},
	&editNoteCmd{},
	&deleteNoteCmd{},
	&txCmd{},
	&depositsCmd{},
	&notesCmd{},
	&dailyCmd{},
	&summaryCmd{},
	&importCmd{},
	&exportCmd{},
	&fmtCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "ledger.toml", "Path to the ledger configuration file")

// LoadBook opens the configured store backend and loads the book from it.
// The returned closer releases the backend and must be called before exit.
func LoadBook() (*ledger.Book, func() error, error) {
	cfg, err := ledger.LoadConfig(*configFile)
	if err != nil {
		return nil, nil, err
	}
	var store ledger.Store
	closer := func() error { return nil }
	if cfg.Store.Backend == "sqlite" {
		s, err := sqlitestore.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		store = s
		closer = s.Close
	} else {
		store = ledger.NewFileStore(cfg.Store.Dir)
	}
	book, err := ledger.NewBook(store)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return book, closer, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// document when the renderer cannot be built.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// fail reports an error on stderr and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
