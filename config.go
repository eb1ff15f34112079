package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration, a single TOML file next to the data.
type Config struct {
	Store   StoreConfig   `toml:"store"`
	Catalog CatalogConfig `toml:"catalog"`
}

// StoreConfig selects and locates the persistence backend.
type StoreConfig struct {
	// Backend is "file" for JSONL files or "sqlite" for a single database
	// file.
	Backend string `toml:"backend"`
	// Dir holds the JSONL files of the file backend.
	Dir string `toml:"dir"`
	// Path is the database file of the sqlite backend.
	Path string `toml:"path"`
}

// CatalogConfig lists the known counterparties and deposit channels, used
// by interactive pickers. Free-form names remain accepted everywhere.
type CatalogConfig struct {
	Suppliers []string `toml:"suppliers"`
	Agencies  []string `toml:"agencies"`
}

// DefaultConfig returns the configuration used when no file exists,
// pre-seeded with the operation's historical counterparties.
func DefaultConfig(dir string) Config {
	return Config{
		Store: StoreConfig{
			Backend: "file",
			Dir:     dir,
			Path:    filepath.Join(dir, "ledger.db"),
		},
		Catalog: CatalogConfig{
			Suppliers: []string{"LIRIS SA", "Gallina 1", "Monze Anzules", "Medina"},
			Agencies: []string{
				"Cajero Automatico Pichincha", "Cajero Automatico Pacifico",
				"Cajero Automatico Guayaquil", "Cajero Automatico Bolivariano",
				"Banco Pichincha", "Banco del Pacifico", "Banco de Guayaquil",
				"Banco Bolivariano",
			},
		},
	}
}

// LoadConfig reads the TOML file at path, falling back to DefaultConfig
// rooted at the file's directory when it does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	if cfg.Store.Backend != "file" && cfg.Store.Backend != "sqlite" {
		return Config{}, fmt.Errorf("unknown store backend %q, want file or sqlite", cfg.Store.Backend)
	}
	return cfg, nil
}

// WriteConfig writes the configuration as TOML, creating the directory.
func WriteConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create config %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	return nil
}
