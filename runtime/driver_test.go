package runtime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowCow/ll1gen/analysis"
	"github.com/shadowCow/ll1gen/ir"
	"github.com/shadowCow/ll1gen/ll1err"
	"github.com/shadowCow/ll1gen/runtime"
	"github.com/shadowCow/ll1gen/startwrap"
	"github.com/shadowCow/ll1gen/table"
)

// parenGrammar reproduces the spec's worked scenario grammar:
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

// token is the simplest possible runtime.Token: a bare terminal name.
type token string

func (t token) TokenType() string { return string(t) }

func toks(names ...string) []runtime.Token {
	out := make([]runtime.Token, len(names))
	for i, n := range names {
		out[i] = token(n)
	}
	return out
}

func entryFor(tbl *table.Table, nonterminal string, index int) table.Entry {
	for _, c := range tbl.Cells() {
		if c.Entry.Nonterminal == nonterminal && c.Entry.Index == index {
			return c.Entry
		}
	}
	panic("no cell found for " + nonterminal)
}

// buildDriver assembles the full pipeline and registers reducers that
// pass parenthesized values through and tag leaves, exercising control
// flow only — action-code semantics are out of scope here.
func buildDriver(t *testing.T) *runtime.Driver {
	t.Helper()
	g := parenGrammar()
	require.NoError(t, g.Validate())
	wrapped, err := startwrap.Wrap(g)
	require.NoError(t, err)

	nullable := analysis.ComputeNullable(wrapped)
	first := analysis.ComputeFirst(wrapped, nullable)
	follow := analysis.ComputeFollow(wrapped, nullable, first)
	tbl, err := table.Build(wrapped, nullable, first, follow)
	require.NoError(t, err)

	passThrough := func(fragments []any) (any, error) { return fragments[0], nil }
	leaf := func(fragments []any) (any, error) { return "number", nil }

	reducers := map[table.ProductionID]runtime.Reducer{
		entryFor(tbl, "Term", 0).ID:              passThrough,
		entryFor(tbl, "Term", 1).ID:              passThrough,
		entryFor(tbl, "Number", 0).ID:            leaf,
		entryFor(tbl, ir.ReservedStartName, 0).ID: passThrough,
	}

	return runtime.NewDriver(wrapped, tbl, first, reducers)
}

func TestRunParsesBareNumber(t *testing.T) {
	d := buildDriver(t)
	value, err := d.Run(runtime.NewSliceStream(toks("NUMBER")))
	require.NoError(t, err)
	assert.Equal(t, "number", value)
}

func TestRunParsesParenthesizedNumber(t *testing.T) {
	d := buildDriver(t)
	value, err := d.Run(runtime.NewSliceStream(toks("(", "NUMBER", ")")))
	require.NoError(t, err)
	assert.Equal(t, "number", value)
}

func TestRunFailsOnEmptyInput(t *testing.T) {
	d := buildDriver(t)
	_, err := d.Run(runtime.NewSliceStream(toks()))
	assertKind(t, err, ll1err.UnexpectedEOF)
}

func TestRunFailsOnUnclosedParen(t *testing.T) {
	d := buildDriver(t)
	_, err := d.Run(runtime.NewSliceStream(toks("(", "(", "NUMBER", ")")))
	assertKind(t, err, ll1err.UnexpectedEOF)
}

func TestRunFailsOnExtraTrailingToken(t *testing.T) {
	d := buildDriver(t)
	_, err := d.Run(runtime.NewSliceStream(toks("(", "NUMBER", ")", ")")))
	assertKind(t, err, ll1err.ExtraToken)
}

func TestRunFailsOnUnexpectedSecondNumber(t *testing.T) {
	d := buildDriver(t)
	_, err := d.Run(runtime.NewSliceStream(toks("(", "NUMBER", "NUMBER", ")")))
	assertKind(t, err, ll1err.UnrecognizedToken)

	var typed *ll1err.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, []string{`")"`}, typed.Expected)
	assert.Equal(t, token("NUMBER"), typed.Found)
}

func TestRunFailsOnEmptyParens(t *testing.T) {
	d := buildDriver(t)
	_, err := d.Run(runtime.NewSliceStream(toks("(", ")")))
	assertKind(t, err, ll1err.UnrecognizedToken)

	var typed *ll1err.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, []string{`"("`, `"NUMBER"`}, typed.Expected)
	assert.Equal(t, token(")"), typed.Found)
}

func assertKind(t *testing.T, err error, kind ll1err.Kind) {
	t.Helper()
	require.Error(t, err)
	var typed *ll1err.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, kind, typed.Kind)
}
