// Package diagnostics prints grammars, analysis results and parse tables in
// the human-readable form the teacher's tooling/ll1/debug.go prints, and
// records a step-by-step trace of a Driver run the same way the teacher's
// ParseTracer does.
package diagnostics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shadowCow/ll1gen/analysis"
	"github.com/shadowCow/ll1gen/ir"
	"github.com/shadowCow/ll1gen/table"
)

// PrintGrammar renders every nonterminal's productions in declaration
// order, marking the public one. Grounded on debug.go's PrintGrammar.
func PrintGrammar(g ir.Grammar, out io.Writer) {
	fmt.Fprintln(out, "GRAMMAR:")
	fmt.Fprintln(out, "========")
	for _, nt := range g.Nonterminals {
		marker := ""
		if nt.Public {
			marker = " (public)"
		}
		fmt.Fprintf(out, "%s%s:\n", nt.Name, marker)
		for _, prod := range nt.Productions {
			fmt.Fprintf(out, "  -> %s\n", formatSymbols(prod.Symbols))
		}
	}
	fmt.Fprintln(out)
}

// PrintNullable lists every nullable nonterminal, sorted for stable
// output. Grounded on debug.go's FIRST-set "[nullable]" annotation, pulled
// out into its own printer since Nullable has no symbol-keyed set to walk.
func PrintNullable(g ir.Grammar, nullable *analysis.Nullable, out io.Writer) {
	fmt.Fprintln(out, "NULLABLE:")
	fmt.Fprintln(out, "=========")
	names := make([]string, 0, len(g.Nonterminals))
	for _, nt := range g.Nonterminals {
		if nullable.IsNullable(nt.Name) {
			names = append(names, nt.Name)
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out)
}

// PrintFirst renders FIRST(A) for every nonterminal, sorted by name with
// its terminals sorted too. Grounded on debug.go's PrintFirstSets.
func PrintFirst(g ir.Grammar, first *analysis.First, out io.Writer) {
	fmt.Fprintln(out, "FIRST SETS:")
	fmt.Fprintln(out, "===========")
	for _, name := range nonterminalNames(g) {
		terms := first.Get(name)
		sort.Strings(terms)
		fmt.Fprintf(out, "  FIRST(%s) = {%s}\n", name, strings.Join(terms, ", "))
	}
	fmt.Fprintln(out)
}

// PrintFollow renders FOLLOW(A) for every nonterminal. Grounded on
// debug.go's PrintFollowSets.
func PrintFollow(g ir.Grammar, follow *analysis.Follow, out io.Writer) {
	fmt.Fprintln(out, "FOLLOW SETS:")
	fmt.Fprintln(out, "============")
	for _, name := range nonterminalNames(g) {
		terms := follow.Get(name)
		sort.Strings(terms)
		fmt.Fprintf(out, "  FOLLOW(%s) = {%s}\n", name, strings.Join(terms, ", "))
	}
	fmt.Fprintln(out)
}

// PrintTable renders the built table as a grid of nonterminal rows against
// terminal columns, each cell showing the selected production's symbols.
// Grounded on debug.go's PrintParseTable, adapted from its map-key lookup
// to Table.Get.
func PrintTable(tbl *table.Table, out io.Writer) {
	fmt.Fprintln(out, "LL(1) PARSE TABLE:")
	fmt.Fprintln(out, "==================")

	nonterminals := append([]string(nil), tbl.Nonterminals()...)
	sort.Strings(nonterminals)
	terminals := append([]string(nil), tbl.Terminals()...)
	sort.Strings(terminals)

	if len(nonterminals) == 0 || len(terminals) == 0 {
		fmt.Fprintln(out, "  (empty table)")
		return
	}

	ntWidth := 10
	for _, nt := range nonterminals {
		if len(nt) > ntWidth {
			ntWidth = len(nt)
		}
	}
	termWidth := 15
	for _, term := range terminals {
		if len(term) > termWidth {
			termWidth = len(term)
		}
	}

	fmt.Fprintf(out, "  %*s |", ntWidth, "")
	for _, term := range terminals {
		fmt.Fprintf(out, " %-*s |", termWidth, term)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %s-+", strings.Repeat("-", ntWidth))
	for range terminals {
		fmt.Fprintf(out, "-%s-+", strings.Repeat("-", termWidth))
	}
	fmt.Fprintln(out)

	for _, nt := range nonterminals {
		fmt.Fprintf(out, "  %-*s |", ntWidth, nt)
		for _, term := range terminals {
			cell := ""
			if entry, ok := tbl.Get(nt, term); ok {
				cell = formatSymbols(entry.Production.Symbols)
				if len(cell) > termWidth {
					cell = cell[:termWidth-2] + ".."
				}
			}
			fmt.Fprintf(out, " %-*s |", termWidth, cell)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)
}

func nonterminalNames(g ir.Grammar) []string {
	names := make([]string, len(g.Nonterminals))
	for i, nt := range g.Nonterminals {
		names[i] = nt.Name
	}
	sort.Strings(names)
	return names
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

// Tracer records one line per driver step, the way the teacher's
// ParseTracer numbers and formats stack/input/action triples.
type Tracer struct {
	out  io.Writer
	step int
}

// NewTracer wraps out so it can be passed directly to Driver.SetTrace.
func NewTracer(out io.Writer) *Tracer {
	return &Tracer{out: out}
}

// Write implements io.Writer so a *Tracer can be handed to
// runtime.Driver.SetTrace directly: every call is numbered as one step.
func (tr *Tracer) Write(p []byte) (int, error) {
	tr.step++
	fmt.Fprintf(tr.out, "step %d: %s", tr.step, p)
	if len(p) == 0 || p[len(p)-1] != '\n' {
		fmt.Fprintln(tr.out)
	}
	return len(p), nil
}
