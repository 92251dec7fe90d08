package table_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowCow/ll1gen/analysis"
	"github.com/shadowCow/ll1gen/ir"
	"github.com/shadowCow/ll1gen/ll1err"
	"github.com/shadowCow/ll1gen/startwrap"
	"github.com/shadowCow/ll1gen/table"
)

func build(t *testing.T, g ir.Grammar) (*table.Table, error) {
	t.Helper()
	require.NoError(t, g.Validate())
	nullable := analysis.ComputeNullable(g)
	first := analysis.ComputeFirst(g, nullable)
	follow := analysis.ComputeFollow(g, nullable, first)
	return table.Build(g, nullable, first, follow)
}

// TestConflictDetection mirrors the teacher's TestLL1ConflictDetection:
// S -> A | B, A -> a x, B -> a y share FIRST {"a"} so [S, a] conflicts.
func TestConflictDetection(t *testing.T) {
	g := ir.Grammar{
		TokenDecl: ir.TokenDecl{Aliases: []ir.TokenAlias{{Term: "a"}, {Term: "x"}, {Term: "y"}}},
		Nonterminals: []ir.Nonterminal{
			{Name: "S", Public: true, Productions: []ir.Production{
				{Symbols: []ir.Symbol{ir.NonterminalSymbol{Name: "A"}}},
				{Symbols: []ir.Symbol{ir.NonterminalSymbol{Name: "B"}}},
			}},
			{Name: "A", Productions: []ir.Production{
				{Symbols: []ir.Symbol{ir.TerminalSymbol{Term: "a"}, ir.TerminalSymbol{Term: "x"}}},
			}},
			{Name: "B", Productions: []ir.Production{
				{Symbols: []ir.Symbol{ir.TerminalSymbol{Term: "a"}, ir.TerminalSymbol{Term: "y"}}},
			}},
		},
	}

	_, err := build(t, g)
	require.Error(t, err)

	var typed *ll1err.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, ll1err.LLConflict, typed.Kind)

	var confErr *table.ConflictError
	require.True(t, errors.As(err, &confErr))
	require.Len(t, confErr.Conflicts, 1)
	assert.Equal(t, "S", confErr.Conflicts[0].Nonterminal)
	assert.Equal(t, "a", confErr.Conflicts[0].Lookahead)
	assert.Len(t, confErr.Conflicts[0].Productions, 2)
}

func TestValidGrammarBuildsWithoutConflict(t *testing.T) {
	g := ir.Grammar{
		TokenDecl: ir.TokenDecl{Aliases: []ir.TokenAlias{{Term: "a"}, {Term: "b"}}},
		Nonterminals: []ir.Nonterminal{
			{Name: "S", Public: true, Productions: []ir.Production{
				{Symbols: []ir.Symbol{ir.TerminalSymbol{Term: "a"}}},
				{Symbols: []ir.Symbol{ir.TerminalSymbol{Term: "b"}}},
			}},
		},
	}

	tbl, err := build(t, g)
	require.NoError(t, err)

	_, ok := tbl.Get("S", "a")
	assert.True(t, ok)
	_, ok = tbl.Get("S", "b")
	assert.True(t, ok)
	_, ok = tbl.Get("S", "c")
	assert.False(t, ok)
}

// parenGrammar reproduces spec.md section 8's concrete scenario grammar:
//
//	Term   -> Number | "(" Term ")"
//	Number -> "NUMBER"
func parenGrammar() ir.Grammar {
	return ir.Grammar{
		TokenDecl: ir.TokenDecl{
			Aliases: []ir.TokenAlias{{Term: "("}, {Term: ")"}, {Term: "NUMBER"}},
		},
		Nonterminals: []ir.Nonterminal{
			{Name: "Term", Public: true, Productions: []ir.Production{
				{Symbols: []ir.Symbol{ir.NonterminalSymbol{Name: "Number"}}},
				{Symbols: []ir.Symbol{ir.TerminalSymbol{Term: "("}, ir.NonterminalSymbol{Name: "Term"}, ir.TerminalSymbol{Term: ")"}}},
			}},
			{Name: "Number", Productions: []ir.Production{
				{Symbols: []ir.Symbol{ir.TerminalSymbol{Term: "NUMBER"}}},
			}},
		},
	}
}

func TestParenGrammarTableCells(t *testing.T) {
	wrapped, err := startwrap.Wrap(parenGrammar())
	require.NoError(t, err)

	tbl, err := build(t, wrapped)
	require.NoError(t, err)

	termNumber, ok := tbl.Get("Term", "NUMBER")
	require.True(t, ok)
	assert.Equal(t, 0, termNumber.Index)

	termParen, ok := tbl.Get("Term", "(")
	require.True(t, ok)
	assert.Equal(t, 1, termParen.Index)

	_, ok = tbl.Get("Term", ")")
	assert.False(t, ok)

	start, ok := tbl.Get(ir.ReservedStartName, "NUMBER")
	require.True(t, ok)
	assert.Len(t, start.Production.Symbols, 2)
}

func TestProductionIDsAreStableAndDistinct(t *testing.T) {
	g := parenGrammar()
	tbl, err := build(t, g)
	require.NoError(t, err)
	tbl2, err := build(t, g)
	require.NoError(t, err)

	a, _ := tbl.Get("Term", "NUMBER")
	b, _ := tbl2.Get("Term", "NUMBER")
	assert.Equal(t, a.ID, b.ID, "hashing the same production twice must be stable")

	c, _ := tbl.Get("Term", "(")
	assert.NotEqual(t, a.ID, c.ID)
}
