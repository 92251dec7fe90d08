package analysis

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/shadowCow/ll1gen/ir"
)

// First holds, for every terminal and nonterminal in a grammar, the set of
// terminals that can begin a derivation of it. Sets are backed by
// gods/sets/treeset instead of bare map[string]bool, grounded on
// npillmayer-gorgo's lr.LRAnalysis (lr/tables.go), so every query already
// yields its terminals in canonical sorted order — serving the parse-table
// builder's determinism requirement without a separate sort pass at every
// call site.
type First struct {
	sets map[string]*treeset.Set
}

func newStringSet() *treeset.Set {
	return treeset.NewWithStringComparator()
}

func setStrings(s *treeset.Set) []string {
	values := s.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.(string)
	}
	return out
}

// ComputeFirst computes the FIRST fixed point for g given its nullable
// sets. Initialises FIRST(t) = {t} for every terminal (EOF included) and
// FIRST(A) = {} for every nonterminal, then repeatedly folds in
// FIRST(X1...Xn) for each production A -> X1...Xn.
func ComputeFirst(g ir.Grammar, nullable *Nullable) *First {
	f := &First{sets: make(map[string]*treeset.Set)}

	for _, alias := range g.TokenDecl.Aliases {
		set := newStringSet()
		set.Add(alias.Term)
		f.sets[alias.Term] = set
	}
	eof := newStringSet()
	eof.Add(ir.EOF)
	f.sets[ir.EOF] = eof

	for _, nt := range g.Nonterminals {
		f.sets[nt.Name] = newStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.Nonterminals {
			for _, prod := range nt.Productions {
				seqFirst, _ := f.ofSequence(prod.Symbols, nullable)
				before := f.sets[nt.Name].Size()
				f.sets[nt.Name].Add(seqFirst.Values()...)
				if f.sets[nt.Name].Size() != before {
					changed = true
				}
			}
		}
	}

	return f
}

// Get returns the sorted FIRST set for a terminal or nonterminal name.
func (f *First) Get(symbol string) []string {
	set, ok := f.sets[symbol]
	if !ok {
		return nil
	}
	return setStrings(set)
}

// Contains reports whether terminal is in the FIRST set of symbol.
func (f *First) Contains(symbol, terminal string) bool {
	set, ok := f.sets[symbol]
	if !ok {
		return false
	}
	return set.Contains(terminal)
}

// setFor returns the underlying FIRST set referenced by a grammar symbol:
// for a terminal, its own singleton set; for a (named) nonterminal, that
// nonterminal's FIRST set.
func (f *First) setFor(sym ir.Symbol) *treeset.Set {
	if term, ok := ir.TerminalName(sym); ok {
		return f.sets[term]
	}
	if name, ok := ir.NonterminalName(sym); ok {
		return f.sets[name]
	}
	return newStringSet()
}

// OfSequence computes FIRST(X1...Xn) for an arbitrary symbol sequence by
// running through the prefix, accumulating FIRST of each symbol and
// stopping at the first non-nullable one, and reports whether the whole
// sequence is nullable. This is the shared primitive the FOLLOW
// computation and the parse-table builder both use.
func (f *First) OfSequence(symbols []ir.Symbol, nullable *Nullable) ([]string, bool) {
	set, isNullable := f.ofSequence(symbols, nullable)
	return setStrings(set), isNullable
}

func (f *First) ofSequence(symbols []ir.Symbol, nullable *Nullable) (*treeset.Set, bool) {
	result := newStringSet()
	prefixNullable := true
	for _, sym := range symbols {
		if !prefixNullable {
			break
		}
		result.Add(f.setFor(sym).Values()...)
		prefixNullable = nullable.symbolNullable(sym)
	}
	return result, prefixNullable
}
