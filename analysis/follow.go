package analysis

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/shadowCow/ll1gen/ir"
)

// Follow holds, for every nonterminal in a grammar, the set of terminals
// that may appear immediately after it in some sentential form.
type Follow struct {
	sets map[string]*treeset.Set
}

// ComputeFollow computes the FOLLOW fixed point for g given its nullable
// and FIRST sets. FOLLOW(A) starts empty for every nonterminal; the
// wrapper's synthetic start nonterminal keeps an empty FOLLOW set because
// EOF is already explicit in its single production
// (__start_wrapper -> result:RealStart EOF), so FOLLOW(RealStart) picks up
// EOF naturally from that production without any special seeding — unlike
// the teacher's ComputeFollowSets, which must seed FOLLOW(start) with its
// "$" marker by hand because it has no such explicit wrapper production.
//
// For every production A -> X1...Xn and every position i where Xi is a
// nonterminal: FIRST(X(i+1)...Xn) is added to FOLLOW(Xi), and if
// X(i+1)...Xn is fully nullable, FOLLOW(A) is added to FOLLOW(Xi) as well.
// Both facts are exactly what First.OfSequence already reports for the
// remainder of the production, so each position needs only one call to it.
func ComputeFollow(g ir.Grammar, nullable *Nullable, first *First) *Follow {
	fo := &Follow{sets: make(map[string]*treeset.Set)}
	for _, nt := range g.Nonterminals {
		fo.sets[nt.Name] = newStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.Nonterminals {
			for _, prod := range nt.Productions {
				symbols := prod.Symbols
				for i, sym := range symbols {
					name, ok := ir.NonterminalName(sym)
					if !ok {
						continue
					}
					rest := symbols[i+1:]
					restFirst, restNullable := first.ofSequence(rest, nullable)

					before := fo.sets[name].Size()
					fo.sets[name].Add(restFirst.Values()...)
					if restNullable {
						fo.sets[name].Add(fo.sets[nt.Name].Values()...)
					}
					if fo.sets[name].Size() != before {
						changed = true
					}
				}
			}
		}
	}

	return fo
}

// Get returns the sorted FOLLOW set for a nonterminal name.
func (fo *Follow) Get(nonterminal string) []string {
	set, ok := fo.sets[nonterminal]
	if !ok {
		return nil
	}
	return setStrings(set)
}

// Contains reports whether terminal is in the FOLLOW set of nonterminal.
func (fo *Follow) Contains(nonterminal, terminal string) bool {
	set, ok := fo.sets[nonterminal]
	if !ok {
		return false
	}
	return set.Contains(terminal)
}
