package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shadowCow/ll1gen"
	"github.com/shadowCow/ll1gen/diagnostics"
)

func newAnalyzeCmd() *cobra.Command {
	var grammarName string
	var printGrammar, printSets, printTable bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the analysis pipeline over an example grammar and print its results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("grammar") && grammarName == "" {
				grammarName = cfg.Grammar.Name
			}
			if !cmd.Flags().Changed("print-grammar") {
				printGrammar = cfg.Diagnostics.PrintGrammar
			}
			if !cmd.Flags().Changed("print-sets") {
				printSets = cfg.Diagnostics.PrintSets
			}
			if !cmd.Flags().Changed("print-table") {
				printTable = cfg.Diagnostics.PrintTable
			}

			g, err := grammarByName(grammarName)
			if err != nil {
				return err
			}

			gen, err := ll1gen.Generate(g)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", grammarName, err)
			}

			if printGrammar {
				diagnostics.PrintGrammar(gen.Grammar, os.Stdout)
			}
			if printSets {
				diagnostics.PrintNullable(gen.Grammar, gen.Nullable, os.Stdout)
				diagnostics.PrintFirst(gen.Grammar, gen.First, os.Stdout)
				diagnostics.PrintFollow(gen.Grammar, gen.Follow, os.Stdout)
			}
			if printTable {
				diagnostics.PrintTable(gen.Table, os.Stdout)
			}
			if !printGrammar && !printSets && !printTable {
				fmt.Fprintf(os.Stdout, "%s is LL(1): %d table cells, %d nonterminals\n",
					grammarName, len(gen.Table.Cells()), len(gen.Table.Nonterminals()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarName, "grammar", "", "grammar to analyze (paren-arithmetic, boolean-expression, arithmetic)")
	cmd.Flags().BoolVar(&printGrammar, "print-grammar", false, "print the grammar's productions")
	cmd.Flags().BoolVar(&printSets, "print-sets", false, "print nullable/FIRST/FOLLOW sets")
	cmd.Flags().BoolVar(&printTable, "print-table", false, "print the built LL(1) table")
	return cmd
}
