// Package config loads the CLI's TOML configuration file, the way
// dekarrin-tunaq's internal/tqw package loads its TOML-based world data:
// decode the whole file into a typed struct with toml tags and let the
// library do the parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the CLI's on-disk configuration: which canned example grammar
// to run commands against by default, and how verbose diagnostic output
// should be.
type Config struct {
	Grammar     GrammarConfig     `toml:"grammar"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

// GrammarConfig selects which examples.* grammar a command targets when
// --grammar is not given on the command line.
type GrammarConfig struct {
	Name string `toml:"name"`
}

// DiagnosticsConfig controls how much a command prints about the analysis
// it performed before (or instead of) running a parse.
type DiagnosticsConfig struct {
	PrintGrammar bool `toml:"print_grammar"`
	PrintSets    bool `toml:"print_sets"`
	PrintTable   bool `toml:"print_table"`
	Trace        bool `toml:"trace"`
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	return Config{Grammar: GrammarConfig{Name: "paren-arithmetic"}}
}

// Load reads and decodes a TOML configuration file. A missing file is not
// an error: Load returns Default() unchanged, the way a CLI commonly
// treats an absent config as "use defaults" rather than failing the
// command that merely didn't ask for one.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return cfg, nil
}
