// Package ir is the in-memory representation of a grammar: imports, the
// token declaration with its terminal aliases, and the ordered list of
// nonterminals and their productions. It is built once by a surface parser
// (out of scope here) and treated as read-only by every analysis package
// except startwrap, which mutates it exactly once before analysis begins.
package ir

import "github.com/shadowCow/ll1gen/ll1err"

// EOF is the synthetic end-of-input terminal name the start-wrapper pass
// introduces. It participates in FIRST/FOLLOW/table lookups exactly like a
// user-declared terminal, and is rendered as "end of input" in
// user-visible expected-symbol lists when it is the sole candidate.
const EOF = "EOF"

// ReservedStartName is the nonterminal identifier the start-wrapper pass
// reserves for the synthetic start symbol it introduces.
const ReservedStartName = "__start_wrapper"

// ReservedEOFAlias is a terminal-alias name the start-wrapper pass reserves
// alongside EOF itself; a user grammar may not declare an alias with either
// name.
const ReservedEOFAlias = "__eof"

// TokenPattern is an opaque reference to how a terminal is recognized at
// the token-lexer level: a type name and a variant name within it (e.g.
// Go's `token.NUMBER` would be Type: "token", Variant: "NUMBER"). Neither
// field is interpreted here; they are carried by value for the code
// emitter (out of scope) to splice into generated matcher code.
type TokenPattern struct {
	Type    string
	Variant string
}

// TokenAlias maps one quoted terminal name used in productions to the
// pattern that recognizes it in the token stream.
type TokenAlias struct {
	Term    string
	Pattern TokenPattern
}

// TokenDecl is the grammar's single named token type and its ordered list
// of terminal aliases.
type TokenDecl struct {
	Name    string
	Aliases []TokenAlias
}

// Symbol is one element of a production's right-hand side: a terminal, a
// plain nonterminal reference, or a nonterminal reference bound to a name
// usable from the production's action code. It is a closed sum type in
// the style of the teacher's ProductionRule/LexicalPattern marker
// interfaces, restructured around the flat per-production symbol list the
// specification's grammar IR requires instead of the teacher's recursive
// regex-combinator shape.
type Symbol interface {
	isSymbol()
}

// TerminalSymbol references a token alias by its quoted-string terminal
// name.
type TerminalSymbol struct {
	Term string
}

func (TerminalSymbol) isSymbol() {}

// NonterminalSymbol references another nonterminal by name, with no
// binding available to action code.
type NonterminalSymbol struct {
	Name string
}

func (NonterminalSymbol) isSymbol() {}

// NamedNonterminalSymbol is a NonterminalSymbol tagged with a binding name
// so the reduced value can be referenced from the production's action
// code. Binding is metadata for the eventual emitter; analysis treats it
// identically to NonterminalSymbol.
type NamedNonterminalSymbol struct {
	Binding string
	Name    string
}

func (NamedNonterminalSymbol) isSymbol() {}

// NonterminalName returns the referenced nonterminal name and true if s is
// a NonterminalSymbol or NamedNonterminalSymbol.
func NonterminalName(s Symbol) (string, bool) {
	switch sym := s.(type) {
	case NonterminalSymbol:
		return sym.Name, true
	case NamedNonterminalSymbol:
		return sym.Name, true
	default:
		return "", false
	}
}

// TerminalName returns the referenced terminal name and true if s is a
// TerminalSymbol.
func TerminalName(s Symbol) (string, bool) {
	if t, ok := s.(TerminalSymbol); ok {
		return t.Term, true
	}
	return "", false
}

// Production is one right-hand-side alternative of a nonterminal: an
// ordered sequence of symbols plus an opaque action-code fragment.
type Production struct {
	Symbols []Symbol
	Action  string
}

// Nonterminal is a named grammar symbol with a result type used only by
// the emitter and an ordered list of productions.
type Nonterminal struct {
	Name        string
	Public      bool
	ResultType  string
	Productions []Production
}

// Grammar is the full grammar IR: imports passed through verbatim, the
// token declaration, and the ordered nonterminals.
type Grammar struct {
	Imports      []string
	TokenDecl    TokenDecl
	Nonterminals []Nonterminal
}

// Nonterminal looks up a nonterminal by name.
func (g Grammar) Nonterminal(name string) (Nonterminal, bool) {
	for _, nt := range g.Nonterminals {
		if nt.Name == name {
			return nt, true
		}
	}
	return Nonterminal{}, false
}

// HasTerminal reports whether the grammar's token declaration carries an
// alias for the given terminal name, or whether it is the synthetic EOF
// sentinel.
func (g Grammar) HasTerminal(term string) bool {
	if term == EOF {
		return true
	}
	for _, alias := range g.TokenDecl.Aliases {
		if alias.Term == term {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants that must hold before any
// analysis runs: every terminal mentioned in a production is declared (the
// synthetic EOF terminal counts as declared, as in HasTerminal), every nonterminal referenced by a symbol is declared, and terminal and
// nonterminal names are each unique. It does not check invariant 1 (exactly
// one public nonterminal) — that is startwrap's contract, since it names
// the specific wrapper errors NoPublicStart/MultiplePublicStarts.
func (g Grammar) Validate() error {
	seenTerms := make(map[string]bool, len(g.TokenDecl.Aliases))
	for _, alias := range g.TokenDecl.Aliases {
		if seenTerms[alias.Term] {
			return ll1err.New(ll1err.InvalidGrammar,
				"duplicate terminal name declared: "+alias.Term)
		}
		seenTerms[alias.Term] = true
	}

	seenNonterms := make(map[string]bool, len(g.Nonterminals))
	for _, nt := range g.Nonterminals {
		if seenNonterms[nt.Name] {
			return ll1err.New(ll1err.InvalidGrammar,
				"duplicate nonterminal name declared: "+nt.Name)
		}
		seenNonterms[nt.Name] = true
	}

	for _, nt := range g.Nonterminals {
		for _, prod := range nt.Productions {
			for _, sym := range prod.Symbols {
				if term, ok := TerminalName(sym); ok {
					if !seenTerms[term] && term != EOF {
						return ll1err.New(ll1err.InvalidGrammar,
							"production for "+nt.Name+" references undeclared terminal "+term)
					}
				}
				if name, ok := NonterminalName(sym); ok {
					if !seenNonterms[name] {
						return ll1err.New(ll1err.InvalidGrammar,
							"production for "+nt.Name+" references undeclared nonterminal "+name)
					}
				}
			}
		}
	}

	return nil
}
