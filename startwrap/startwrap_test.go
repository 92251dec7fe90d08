package startwrap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowCow/ll1gen/ir"
	"github.com/shadowCow/ll1gen/ll1err"
	"github.com/shadowCow/ll1gen/startwrap"
)

func simpleGrammar(public bool) ir.Grammar {
	return ir.Grammar{
		TokenDecl: ir.TokenDecl{
			Name:    "Token",
			Aliases: []ir.TokenAlias{{Term: "NUMBER"}},
		},
		Nonterminals: []ir.Nonterminal{
			{
				Name:       "Number",
				Public:     public,
				ResultType: "int",
				Productions: []ir.Production{
					{Symbols: []ir.Symbol{ir.TerminalSymbol{Term: "NUMBER"}}},
				},
			},
		},
	}
}

func TestWrapAddsSyntheticStart(t *testing.T) {
	wrapped, err := startwrap.Wrap(simpleGrammar(true))
	require.NoError(t, err)

	require.Len(t, wrapped.Nonterminals, 2)

	realStart, ok := wrapped.Nonterminal("Number")
	require.True(t, ok)
	assert.False(t, realStart.Public)

	start, ok := wrapped.Nonterminal(ir.ReservedStartName)
	require.True(t, ok)
	assert.True(t, start.Public)
	assert.Equal(t, "int", start.ResultType)
	require.Len(t, start.Productions, 1)
	require.Len(t, start.Productions[0].Symbols, 2)
	assert.Equal(t, ir.NamedNonterminalSymbol{Binding: "result", Name: "Number"}, start.Productions[0].Symbols[0])
	assert.Equal(t, ir.TerminalSymbol{Term: ir.EOF}, start.Productions[0].Symbols[1])
}

func TestWrapFailsWithNoPublicStart(t *testing.T) {
	_, err := startwrap.Wrap(simpleGrammar(false))
	var typed *ll1err.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, ll1err.NoPublicStart, typed.Kind)
}

func TestWrapFailsWithMultiplePublicStarts(t *testing.T) {
	g := simpleGrammar(true)
	g.Nonterminals = append(g.Nonterminals, ir.Nonterminal{
		Name:   "Other",
		Public: true,
		Productions: []ir.Production{
			{Symbols: []ir.Symbol{ir.TerminalSymbol{Term: "NUMBER"}}},
		},
	})

	_, err := startwrap.Wrap(g)
	var typed *ll1err.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, ll1err.MultiplePublicStarts, typed.Kind)
}

func TestWrapFailsOnReservedNonterminalName(t *testing.T) {
	g := simpleGrammar(true)
	g.Nonterminals = append(g.Nonterminals, ir.Nonterminal{Name: ir.ReservedStartName})

	_, err := startwrap.Wrap(g)
	var typed *ll1err.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, ll1err.ReservedName, typed.Kind)
}

func TestWrapFailsOnReservedTerminalAlias(t *testing.T) {
	g := simpleGrammar(true)
	g.TokenDecl.Aliases = append(g.TokenDecl.Aliases, ir.TokenAlias{Term: ir.ReservedEOFAlias})

	_, err := startwrap.Wrap(g)
	var typed *ll1err.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, ll1err.ReservedName, typed.Kind)
}

func TestWrapDoesNotMutateInput(t *testing.T) {
	g := simpleGrammar(true)
	_, err := startwrap.Wrap(g)
	require.NoError(t, err)
	assert.True(t, g.Nonterminals[0].Public, "original grammar must be left untouched")
	assert.Len(t, g.Nonterminals, 1)
}
