package runtime

import (
	"fmt"
	"io"
	"strings"

	"github.com/shadowCow/ll1gen/analysis"
	"github.com/shadowCow/ll1gen/ir"
	"github.com/shadowCow/ll1gen/ll1err"
	"github.com/shadowCow/ll1gen/table"
)

// Reducer runs a production's action code: fragments holds the already
// reduced value of each nonterminal symbol on the production's right-hand
// side, left to right, terminals excluded since they carry no value of
// their own. Out of scope here is what a Reducer actually does with them —
// this package only guarantees it is called with the right values in the
// right order.
type Reducer func(fragments []any) (any, error)

// Driver is a reusable table-driven stack machine: one Driver, built once
// per grammar, can run many parses of independent token streams.
//
// Generalized from the teacher's tooling/ll1.Parser, which runs the same
// two-stack algorithm but always builds a generic parsetree.ParseTree;
// here every completed production invokes its registered Reducer instead,
// and the second stack carries typed values tagged by nonterminal name
// rather than tree nodes.
type Driver struct {
	grammar  ir.Grammar
	table    *table.Table
	first    *analysis.First
	reducers map[table.ProductionID]Reducer
	trace    io.Writer
}

// NewDriver builds a Driver for a start-wrapped grammar. first is needed
// only to render FIRST(A) into user-visible expected-symbol lists on
// UnrecognizedToken errors; reducers must have one entry per ProductionID
// the table can select, or Run panics the first time a missing one would
// be invoked.
func NewDriver(g ir.Grammar, tbl *table.Table, first *analysis.First, reducers map[table.ProductionID]Reducer) *Driver {
	return &Driver{grammar: g, table: tbl, first: first, reducers: reducers}
}

// SetTrace turns on step tracing, writing one line per expand/match/reduce
// to w. Passing nil (the default) disables tracing, mirroring the
// teacher's Parser.SetTrace boolean but exposing the destination instead
// of assuming stdout.
func (d *Driver) SetTrace(w io.Writer) {
	d.trace = w
}

// itemKind distinguishes the three kinds of item the work stack carries.
type itemKind int

const (
	itemTerminal itemKind = iota
	itemNonterminal
	itemMarker
)

// workItem is one entry of the work stack: a terminal or nonterminal
// symbol still to be processed, or a reduction marker recording which
// production to reduce once its symbols have all been processed.
type workItem struct {
	kind   itemKind
	name   string
	marker markerFrame
}

// markerFrame is the reduction marker the teacher calls a "marker item":
// pushed below a production's (reversed) right-hand side, it triggers a
// reduction once popped, after every symbol above it on the work stack has
// been consumed.
type markerFrame struct {
	nonterminal  string
	entry        table.Entry
	nontermCount int
}

// valueFrame is one entry of the value stack: a reduced value tagged with
// the nonterminal it belongs to, so a reduction can assert it is popping
// the fragment it expects.
type valueFrame struct {
	tag   string
	value any
}

// Run parses one token stream to completion and returns the value the
// start nonterminal's own Reducer produced, or the first error
// encountered. A Driver may be reused across multiple calls to Run; no
// state survives between them.
func (d *Driver) Run(tokens TokenStream) (any, error) {
	startName, ok := publicNonterminal(d.grammar)
	if !ok {
		panic("runtime: grammar has no public nonterminal; call startwrap.Wrap before building a Driver")
	}

	workStack := []workItem{{kind: itemNonterminal, name: startName}}
	var valueStack []valueFrame

	for len(workStack) > 0 {
		top := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]

		switch top.kind {
		case itemMarker:
			reduced, err := d.reduce(top.marker, valueStack)
			if err != nil {
				return nil, err
			}
			valueStack = reduced

		case itemTerminal:
			if err := d.consumeTerminal(top.name, tokens); err != nil {
				return nil, err
			}

		case itemNonterminal:
			expansion, err := d.expand(top.name, tokens)
			if err != nil {
				return nil, err
			}
			workStack = append(workStack, expansion...)
		}
	}

	if len(valueStack) != 1 || valueStack[0].tag != startName {
		panic(fmt.Sprintf("runtime: internal invariant violated: parse finished with value stack %v, expected a single %s value", valueStack, startName))
	}
	return valueStack[0].value, nil
}

// expand looks up the production M(nonterminal, lookahead) and returns the
// work items it pushes: a reduction marker followed by the production's
// symbols in reverse order, so popping the work stack visits them left to
// right. Grounded on Parser.Parse's nonterminal branch.
func (d *Driver) expand(nonterminal string, tokens TokenStream) ([]workItem, error) {
	tok, hasToken := tokens.Peek()

	var entry table.Entry
	var found bool
	if !hasToken {
		entry, found = d.table.Get(nonterminal, ir.EOF)
		if !found {
			return nil, ll1err.New(ll1err.UnexpectedEOF, fmt.Sprintf("unexpected end of input while parsing %s", nonterminal))
		}
	} else {
		entry, found = d.table.Get(nonterminal, tok.TokenType())
		if !found {
			expected := renderExpected(d.first.Get(nonterminal))
			return nil, ll1err.Unrecognized(
				fmt.Sprintf("unexpected token %q while parsing %s", tok.TokenType(), nonterminal),
				expected, tok)
		}
	}

	if d.trace != nil {
		fmt.Fprintf(d.trace, "expand %s -> %s\n", nonterminal, formatSymbols(entry.Production.Symbols))
	}

	symbols := entry.Production.Symbols
	nontermCount := 0
	rhs := make([]workItem, len(symbols))
	for i, sym := range symbols {
		if term, ok := ir.TerminalName(sym); ok {
			rhs[i] = workItem{kind: itemTerminal, name: term}
			continue
		}
		name, _ := ir.NonterminalName(sym)
		rhs[i] = workItem{kind: itemNonterminal, name: name}
		nontermCount++
	}

	items := make([]workItem, 0, len(rhs)+1)
	items = append(items, workItem{kind: itemMarker, marker: markerFrame{nonterminal: nonterminal, entry: entry, nontermCount: nontermCount}})
	for i := len(rhs) - 1; i >= 0; i-- {
		items = append(items, rhs[i])
	}
	return items, nil
}

// consumeTerminal matches the work stack's top terminal against the next
// input token. Grounded on Parser.Parse's terminal branch, including its
// special-cased EOF handling.
func (d *Driver) consumeTerminal(term string, tokens TokenStream) error {
	if term == ir.EOF {
		if _, hasToken := tokens.Peek(); !hasToken {
			return nil
		}
		tok, _ := tokens.Next()
		return ll1err.Extra(fmt.Sprintf("unexpected token %q after end of input", tok.TokenType()), tok)
	}

	tok, hasToken := tokens.Next()
	if !hasToken {
		return ll1err.New(ll1err.UnexpectedEOF, fmt.Sprintf("unexpected end of input, expected %q", term))
	}
	if tok.TokenType() != term {
		return ll1err.Unrecognized(
			fmt.Sprintf("unexpected token %q, expected %q", tok.TokenType(), term),
			renderExpected([]string{term}), tok)
	}

	if d.trace != nil {
		fmt.Fprintf(d.trace, "match %q\n", term)
	}
	return nil
}

// reduce pops the fragments a production's nonterminal symbols produced,
// runs its Reducer, and pushes the result tagged with the nonterminal
// being reduced.
//
// Because every nonterminal symbol in a production is processed strictly
// left to right (the work stack only ever exposes the next one once its
// predecessor has fully reduced down to a single tagged value), the top
// nontermCount entries of the value stack are already in left-to-right
// order by the time the marker is reached — no reversal needed, unlike
// the teacher's node-stack collection loop, which reverses because it
// counts every symbol (terminals included) rather than nonterminals alone.
func (d *Driver) reduce(marker markerFrame, valueStack []valueFrame) ([]valueFrame, error) {
	if len(valueStack) < marker.nontermCount {
		panic(fmt.Sprintf("runtime: internal invariant violated: reducing %s needs %d values, value stack has %d", marker.nonterminal, marker.nontermCount, len(valueStack)))
	}

	split := len(valueStack) - marker.nontermCount
	popped := valueStack[split:]
	valueStack = valueStack[:split]

	symbols := marker.entry.Production.Symbols
	fragments := make([]any, 0, marker.nontermCount)
	pos := 0
	for _, sym := range symbols {
		expectedTag, ok := ir.NonterminalName(sym)
		if !ok {
			continue
		}
		frag := popped[pos]
		if frag.tag != expectedTag {
			panic(fmt.Sprintf("runtime: internal invariant violated: expected value tagged %s, found %s", expectedTag, frag.tag))
		}
		fragments = append(fragments, frag.value)
		pos++
	}

	reducer, ok := d.reducers[marker.entry.ID]
	if !ok {
		panic(fmt.Sprintf("runtime: no reducer registered for production %s of %s", marker.entry.ID, marker.nonterminal))
	}

	if d.trace != nil {
		fmt.Fprintf(d.trace, "reduce %s with %d fragment(s)\n", marker.nonterminal, len(fragments))
	}

	value, err := reducer(fragments)
	if err != nil {
		return nil, err
	}
	return append(valueStack, valueFrame{tag: marker.nonterminal, value: value}), nil
}

func publicNonterminal(g ir.Grammar) (string, bool) {
	for _, nt := range g.Nonterminals {
		if nt.Public {
			return nt.Name, true
		}
	}
	return "", false
}

// renderExpected formats a list of terminal names the way user-facing
// errors quote them: each wrapped in double quotes, except a lone EOF,
// which reads as "end of input" rather than "EOF".
func renderExpected(terms []string) []string {
	if len(terms) == 1 && terms[0] == ir.EOF {
		return []string{"end of input"}
	}
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = fmt.Sprintf("%q", t)
	}
	return out
}

func formatSymbols(symbols []ir.Symbol) string {
	if len(symbols) == 0 {
		return "epsilon"
	}
	parts := make([]string, len(symbols))
	for i, sym := range symbols {
		switch s := sym.(type) {
		case ir.TerminalSymbol:
			parts[i] = fmt.Sprintf("%q", s.Term)
		case ir.NonterminalSymbol:
			parts[i] = s.Name
		case ir.NamedNonterminalSymbol:
			parts[i] = fmt.Sprintf("%s:%s", s.Binding, s.Name)
		}
	}
	return strings.Join(parts, " ")
}
