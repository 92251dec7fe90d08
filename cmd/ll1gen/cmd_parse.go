package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shadowCow/ll1gen"
	"github.com/shadowCow/ll1gen/diagnostics"
	"github.com/shadowCow/ll1gen/ir"
	"github.com/shadowCow/ll1gen/runtime"
	"github.com/shadowCow/ll1gen/table"
)

// cliToken wraps a terminal name typed on the command line as a
// runtime.Token; there is no lexer in scope, so the caller must already
// name terminals the way the grammar declares them (e.g. "(" "NUMBER" ")").
type cliToken string

func (t cliToken) TokenType() string { return string(t) }

func newParseCmd() *cobra.Command {
	var grammarName string
	var trace bool

	cmd := &cobra.Command{
		Use:   "parse [tokens...]",
		Short: "Run a hand-typed token sequence through an example grammar's driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("grammar") && grammarName == "" {
				grammarName = cfg.Grammar.Name
			}
			if !cmd.Flags().Changed("trace") {
				trace = cfg.Diagnostics.Trace
			}

			g, err := grammarByName(grammarName)
			if err != nil {
				return err
			}

			gen, err := ll1gen.Generate(g)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", grammarName, err)
			}

			driver := gen.NewParser(structuralReducers(gen.Table))
			if trace {
				driver.SetTrace(diagnostics.NewTracer(os.Stdout))
			}

			tokens := make([]runtime.Token, len(args))
			for i, a := range args {
				tokens[i] = cliToken(a)
			}

			value, err := driver.Run(runtime.NewSliceStream(tokens))
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			fmt.Fprintf(os.Stdout, "accepted: %v\n", value)
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarName, "grammar", "", "grammar to parse against (paren-arithmetic, boolean-expression, arithmetic)")
	cmd.Flags().BoolVar(&trace, "trace", false, "print a step-by-step parse trace")
	return cmd
}

// structuralReducers builds a reducer for every production in tbl that
// reports which production fired and what it consumed, without
// attempting to interpret action code (out of scope: this binary has no
// target-language runtime to execute user actions against).
func structuralReducers(tbl *table.Table) map[table.ProductionID]runtime.Reducer {
	reducers := make(map[table.ProductionID]runtime.Reducer)
	for _, cell := range tbl.Cells() {
		entry := cell.Entry
		if _, exists := reducers[entry.ID]; exists {
			continue
		}
		reducers[entry.ID] = func(fragments []any) (any, error) {
			return describeReduction(entry.Nonterminal, entry.Production, fragments), nil
		}
	}
	return reducers
}

func describeReduction(nonterminal string, prod ir.Production, fragments []any) string {
	if len(fragments) == 0 {
		return nonterminal
	}
	return fmt.Sprintf("%s(%v)", nonterminal, fragments)
}
