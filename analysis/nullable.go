// Package analysis implements the nullable, FIRST, and FOLLOW fixed-point
// computations (components C3, C4, C5). Each is a worklist-free monotone
// fixed point: initialise, then repeat a single pass over all productions
// until no set grows, grounded on the teacher's ComputeFirstSets /
// ComputeFollowSets (tooling/ll1) and cross-checked against
// original_source's compute_nullable/compute_first/compute_follow, which
// operate over the same flat per-production symbol lists this package's
// ir.Grammar uses.
package analysis

import "github.com/shadowCow/ll1gen/ir"

// Nullable holds, for every terminal (including EOF) and nonterminal in a
// grammar, whether it derives the empty string.
type Nullable struct {
	nullable map[string]bool
}

// ComputeNullable computes the nullable fixed point for g. Initialises
// every terminal (EOF included) and nonterminal to false, then repeatedly
// marks a nonterminal nullable if some production's symbols are all
// already nullable — the empty production makes its nonterminal trivially
// nullable, since the all-of-zero-elements check is vacuously true.
func ComputeNullable(g ir.Grammar) *Nullable {
	n := &Nullable{nullable: make(map[string]bool)}

	for _, alias := range g.TokenDecl.Aliases {
		n.nullable[alias.Term] = false
	}
	n.nullable[ir.EOF] = false

	for _, nt := range g.Nonterminals {
		n.nullable[nt.Name] = false
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.Nonterminals {
			if n.nullable[nt.Name] {
				continue
			}
			for _, prod := range nt.Productions {
				if n.allNullable(prod.Symbols) {
					n.nullable[nt.Name] = true
					changed = true
					break
				}
			}
		}
	}

	return n
}

// IsNullable reports whether the terminal or nonterminal named symbol
// derives the empty string.
func (n *Nullable) IsNullable(symbol string) bool {
	return n.nullable[symbol]
}

// symbolNullable reports whether a grammar symbol is nullable: terminals
// are never nullable, a plain or named nonterminal symbol defers to its
// referenced nonterminal's nullable bit.
func (n *Nullable) symbolNullable(s ir.Symbol) bool {
	if name, ok := ir.NonterminalName(s); ok {
		return n.nullable[name]
	}
	return false
}

// allNullable reports whether every symbol in symbols is nullable. An
// empty slice is vacuously nullable.
func (n *Nullable) allNullable(symbols []ir.Symbol) bool {
	for _, s := range symbols {
		if !n.symbolNullable(s) {
			return false
		}
	}
	return true
}
