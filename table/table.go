// Package table implements the LL(1) predictive parse-table builder
// (component C6): it combines nullable/FIRST/FOLLOW into a mapping from
// (nonterminal, lookahead terminal) to a production, flags conflicts, and
// renders them deterministically. Grounded on the teacher's
// tooling/ll1/table.go (ParseTable, Conflict, GrammarNotLL1Error,
// addEntry), adapted from the teacher's regex-combinator production shape
// to the flat per-production symbol lists this module's ir.Grammar uses.
package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"

	"github.com/shadowCow/ll1gen/analysis"
	"github.com/shadowCow/ll1gen/ir"
	"github.com/shadowCow/ll1gen/ll1err"
)

// ProductionID stably identifies a production across builds of the same
// grammar: the nonterminal name and the production's index within it,
// content-hashed together via structhash so that the emitted identifier is
// immune to accidental collisions the way a bare index would not be if two
// productions were ever compared across different grammars. Grounded on
// npillmayer-gorgo's lr/earley.hash helper, which fingerprints parser
// items the same way.
type ProductionID string

// Entry is one production belonging to a nonterminal, addressable by its
// stable ProductionID.
type Entry struct {
	ID          ProductionID
	Nonterminal string
	Index       int
	Production  ir.Production
}

func newProductionID(nonterminal string, index int, prod ir.Production) ProductionID {
	hash, err := structhash.Hash(struct {
		Nonterminal string
		Index       int
	}{Nonterminal: nonterminal, Index: index}, 1)
	if err != nil {
		// structhash.Hash only fails on unsupported types; the struct
		// above is always hashable, so this is an internal invariant
		// violation, not a caller error.
		panic(fmt.Sprintf("table: failed to hash production id: %v", err))
	}
	return ProductionID(hash)
}

// cellKey is the composite key for one table cell.
type cellKey struct {
	nonterminal string
	terminal    string
}

// Cell is one deterministic-order entry of the built table, suitable for
// an emitter to enumerate without touching map iteration order.
type Cell struct {
	Nonterminal string
	Terminal    string
	Entry       Entry
}

// Conflict describes a single LL(1) conflict: more than one production
// competes for the same (nonterminal, lookahead) cell.
type Conflict struct {
	Nonterminal string
	Lookahead   string
	Productions []Entry
}

// Error renders the conflict the way spec.md section 4.3 and section 7
// require: the offending nonterminal, the offending lookahead, and the
// competing productions in grammar order.
func (c Conflict) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "LL(1) conflict at [%s, %s]: %d productions compete\n", c.Nonterminal, c.Lookahead, len(c.Productions))
	for i, entry := range c.Productions {
		fmt.Fprintf(&b, "  %d. %s -> %s\n", i+1, c.Nonterminal, formatSymbols(entry.Production.Symbols))
	}
	return b.String()
}

// ConflictError wraps every conflict found while building a table; it is
// always the cause of an *ll1err.Error of kind ll1err.LLConflict.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	lines := make([]string, 0, len(e.Conflicts)+1)
	lines = append(lines, fmt.Sprintf("grammar is not LL(1): found %d conflict(s)", len(e.Conflicts)))
	for _, c := range e.Conflicts {
		lines = append(lines, strings.TrimRight(c.Error(), "\n"))
	}
	return strings.Join(lines, "\n")
}

// Table is the built LL(1) predictive parse table, conflict-free by
// construction: Build never returns a Table alongside an error.
type Table struct {
	cells        map[cellKey]Entry
	order        []cellKey
	nonterminals []string
	terminals    []string
}

// Get returns the entry to use for (nonterminal, lookahead), and whether
// one exists.
func (t *Table) Get(nonterminal, lookahead string) (Entry, bool) {
	e, ok := t.cells[cellKey{nonterminal, lookahead}]
	return e, ok
}

// Cells enumerates the table in the deterministic order cells were first
// inserted during Build (grammar order, then FIRST/FOLLOW order), for an
// emitter that needs a stable rendering across runs.
func (t *Table) Cells() []Cell {
	out := make([]Cell, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, Cell{Nonterminal: key.nonterminal, Terminal: key.terminal, Entry: t.cells[key]})
	}
	return out
}

// Nonterminals returns the grammar's nonterminal names in first-appearance
// order.
func (t *Table) Nonterminals() []string { return append([]string(nil), t.nonterminals...) }

// Terminals returns the grammar's terminal names (EOF included) in
// first-appearance order.
func (t *Table) Terminals() []string { return append([]string(nil), t.terminals...) }

// Build constructs the LL(1) predictive table for g. For every
// nonterminal A and production p = A -> alpha: for every terminal t in
// FIRST(alpha), p is inserted into M(A, t); if alpha is fully nullable, p
// is additionally inserted into M(A, t) for every t in FOLLOW(A).
//
// If any cell ends up with more than one production, Build returns an
// *ll1err.Error of kind ll1err.LLConflict wrapping a *ConflictError
// listing every conflicting cell, sorted by nonterminal name and then by
// lookahead (each cell's competing productions in grammar order), rather than failing on
// the first one — matching the teacher's GrammarNotLL1Error, which groups
// every Conflict it finds.
func Build(g ir.Grammar, nullable *analysis.Nullable, first *analysis.First, follow *analysis.Follow) (*Table, error) {
	t := &Table{cells: make(map[cellKey]Entry)}

	t.nonterminals = make([]string, 0, len(g.Nonterminals))
	for _, nt := range g.Nonterminals {
		t.nonterminals = append(t.nonterminals, nt.Name)
	}
	t.terminals = terminalsInOrder(g)

	var conflicts []Conflict
	conflictCells := make(map[cellKey][]Entry)

	for _, nt := range g.Nonterminals {
		for i, prod := range nt.Productions {
			entry := Entry{ID: newProductionID(nt.Name, i, prod), Nonterminal: nt.Name, Index: i, Production: prod}

			seqFirst, seqNullable := first.OfSequence(prod.Symbols, nullable)
			for _, term := range seqFirst {
				t.addEntry(nt.Name, term, entry, conflictCells)
			}
			if seqNullable {
				for _, term := range follow.Get(nt.Name) {
					t.addEntry(nt.Name, term, entry, conflictCells)
				}
			}
		}
	}

	for key, entries := range conflictCells {
		if len(entries) > 1 {
			conflicts = append(conflicts, Conflict{Nonterminal: key.nonterminal, Lookahead: key.terminal, Productions: entries})
		}
	}
	if len(conflicts) > 0 {
		sort.Slice(conflicts, func(i, j int) bool {
			if conflicts[i].Nonterminal != conflicts[j].Nonterminal {
				return conflicts[i].Nonterminal < conflicts[j].Nonterminal
			}
			return conflicts[i].Lookahead < conflicts[j].Lookahead
		})
		return nil, ll1err.Wrap(ll1err.LLConflict, "grammar is not LL(1)", &ConflictError{Conflicts: conflicts})
	}

	return t, nil
}

// addEntry records that production entry claims cell (nonterminal,
// terminal). Each distinct production claiming the cell is also recorded in
// conflictCells, once only, so a later pass can tell a genuine conflict (two distinct
// productions claiming the same cell) from the same production being
// reachable through more than one FIRST/FOLLOW path.
func (t *Table) addEntry(nonterminal, terminal string, entry Entry, conflictCells map[cellKey][]Entry) {
	key := cellKey{nonterminal, terminal}

	entries := conflictCells[key]
	for _, existing := range entries {
		if existing.ID == entry.ID {
			return
		}
	}
	conflictCells[key] = append(entries, entry)

	if _, exists := t.cells[key]; !exists {
		t.cells[key] = entry
		t.order = append(t.order, key)
	}
}

func terminalsInOrder(g ir.Grammar) []string {
	terms := make([]string, 0, len(g.TokenDecl.Aliases)+1)
	for _, alias := range g.TokenDecl.Aliases {
		terms = append(terms, alias.Term)
	}
	terms = append(terms, ir.EOF)
	return terms
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
			parts[i] = fmt.Sprintf("<%s:%s>", s.Binding, s.Name)
		}
	}
	return strings.Join(parts, " ")
}
