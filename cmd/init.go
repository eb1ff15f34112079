package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/ecuafarm/ledger"
)

type initCmd struct {
	dir     string
	backend string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new ledger in the given directory" }
func (*initCmd) Usage() string {
	return `flb init [-dir <dir>] [-backend file|sqlite]

  Writes the configuration file and creates the starting-balance row.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", ".", "Directory to hold the ledger data")
	f.StringVar(&c.backend, "backend", "file", "Persistence backend (file or sqlite)")
}

func (c *initCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.backend != "file" && c.backend != "sqlite" {
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q, want file or sqlite\n", c.backend)
		return subcommands.ExitUsageError
	}
	cfg := ledger.DefaultConfig(c.dir)
	cfg.Store.Backend = c.backend
	path := filepath.Join(c.dir, "ledger.toml")
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists\n", path)
		return subcommands.ExitFailure
	}
	if err := ledger.WriteConfig(path, cfg); err != nil {
		return fail(err)
	}

	*configFile = path
	book, closer, err := LoadBook()
	if err != nil {
		return fail(err)
	}
	defer closer()

	fmt.Printf("Created ledger in %s with starting balance %s\n", c.dir, book.Balance())
	return subcommands.ExitSuccess
}
