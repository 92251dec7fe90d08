// Package startwrap implements the start-wrapper pass (component C2): it
// rewrites a validated grammar IR to add a synthetic start nonterminal
// producing RealStart EOF, making end-of-input explicit so LL(1)
// predictive parsing has a lookahead symbol for the final accept step.
package startwrap

import (
	"github.com/shadowCow/ll1gen/ir"
	"github.com/shadowCow/ll1gen/ll1err"
)

// startAction is the opaque action text attached to the wrapper's single
// production; it is spliced verbatim by an eventual emitter and otherwise
// carries no meaning here.
const startAction = "return result"

// Wrap locates the grammar's single public nonterminal S (with result
// type T), clears its public flag, and appends a new public nonterminal
// __start_wrapper with result type T and a single production
// <result:S> EOF whose action returns result.
//
// It fails with ll1err.NoPublicStart if no nonterminal is public, with
// ll1err.MultiplePublicStarts if more than one is, and with
// ll1err.ReservedName if the grammar already uses either of the
// identifiers this pass reserves (ir.ReservedStartName as a nonterminal
// name, ir.EOF or ir.ReservedEOFAlias as a terminal alias).
func Wrap(g ir.Grammar) (ir.Grammar, error) {
	if err := checkReservedNames(g); err != nil {
		return ir.Grammar{}, err
	}

	startIdx := -1
	for i, nt := range g.Nonterminals {
		if nt.Public {
			if startIdx != -1 {
				return ir.Grammar{}, ll1err.New(ll1err.MultiplePublicStarts,
					"grammar declares more than one public nonterminal: "+
						g.Nonterminals[startIdx].Name+" and "+nt.Name)
			}
			startIdx = i
		}
	}
	if startIdx == -1 {
		return ir.Grammar{}, ll1err.New(ll1err.NoPublicStart,
			"grammar declares no public nonterminal")
	}

	out := g
	out.Nonterminals = make([]ir.Nonterminal, len(g.Nonterminals), len(g.Nonterminals)+1)
	copy(out.Nonterminals, g.Nonterminals)

	realStart := out.Nonterminals[startIdx]
	realStart.Public = false
	out.Nonterminals[startIdx] = realStart

	out.Nonterminals = append(out.Nonterminals, ir.Nonterminal{
		Name:       ir.ReservedStartName,
		Public:     true,
		ResultType: realStart.ResultType,
		Productions: []ir.Production{
			{
				Symbols: []ir.Symbol{
					ir.NamedNonterminalSymbol{Binding: "result", Name: realStart.Name},
					ir.TerminalSymbol{Term: ir.EOF},
				},
				Action: startAction,
			},
		},
	})

	return out, nil
}

func checkReservedNames(g ir.Grammar) error {
	for _, nt := range g.Nonterminals {
		if nt.Name == ir.ReservedStartName {
			return ll1err.New(ll1err.ReservedName,
				"nonterminal name is reserved for the start-wrapper pass: "+nt.Name)
		}
	}
	for _, alias := range g.TokenDecl.Aliases {
		if alias.Term == ir.ReservedEOFAlias || alias.Term == ir.EOF {
			return ll1err.New(ll1err.ReservedName,
				"terminal name is reserved for the synthetic end-of-input marker: "+alias.Term)
		}
	}
	return nil
}
