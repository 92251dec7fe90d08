// Command ll1gen drives the ll1gen library against the library's own
// canned example grammars: analyze prints the computed nullable/FIRST/
// FOLLOW sets and the built table, parse runs a hand-typed token sequence
// through the generated driver. Per-subcommand-file layout and pflag
// usage grounded on dhamidi-sai's cmd/sai and dekarrin-tunaq's cmd/tqi.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shadowCow/ll1gen/config"
	"github.com/shadowCow/ll1gen/examples"
	"github.com/shadowCow/ll1gen/ir"
)

var configPath string

func grammarByName(name string) (ir.Grammar, error) {
	switch name {
	case "paren-arithmetic":
		return examples.ParenArithmetic(), nil
	case "boolean-expression":
		return examples.BooleanExpression(), nil
	case "arithmetic":
		return examples.Arithmetic(), nil
	default:
		return ir.Grammar{}, fmt.Errorf("unknown grammar %q (want paren-arithmetic, boolean-expression, or arithmetic)", name)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "ll1gen",
		Short: "Inspect and run the LL(1) parser generator's example grammars",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newParseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ll1gen:", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}
