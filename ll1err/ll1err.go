// Package ll1err defines the unified structured error type shared by every
// analysis and runtime package in ll1gen. It plays the same role as
// dekarrin-tunaq's server/serr package: a single Error type, inspectable by
// kind via errors.Is, instead of one bespoke error type per failure mode.
package ll1err

import "fmt"

// Kind identifies one of the error cases named in the specification's
// error taxonomy. Analysis-time kinds are fatal for generation; runtime
// kinds are returned to the caller of a parse.
type Kind string

const (
	// NoPublicStart: no nonterminal in the grammar is marked public.
	NoPublicStart Kind = "NoPublicStart"
	// MultiplePublicStarts: more than one nonterminal is marked public.
	MultiplePublicStarts Kind = "MultiplePublicStarts"
	// ReservedName: the grammar uses an identifier reserved for the
	// start-wrapper pass.
	ReservedName Kind = "ReservedName"
	// LLConflict: the grammar is not LL(1); table.Build found competing
	// productions in one or more table cells.
	LLConflict Kind = "LLConflict"
	// UnexpectedEOF: input ended while the work stack still required
	// tokens.
	UnexpectedEOF Kind = "UnexpectedEOF"
	// ExtraToken: input contained tokens beyond the last consumed
	// terminal.
	ExtraToken Kind = "ExtraToken"
	// UnrecognizedToken: the next token satisfies neither a specific
	// terminal nor any production for a nonterminal.
	UnrecognizedToken Kind = "UnrecognizedToken"
	// InvalidGrammar: a structural IR invariant (unique names, declared
	// references) was violated.
	InvalidGrammar Kind = "InvalidGrammar"
)

// Error is the error value returned by every package in this module for a
// failure named in the specification's error taxonomy.
//
// Expected is populated only for UnrecognizedToken, Found for
// UnrecognizedToken and ExtraToken; Found holds
// whatever token representation the caller's TokenStream produces, so this
// package stays independent of any concrete token type.
type Error struct {
	Kind     Kind
	Message  string
	Expected []string
	Found    any
	cause    error
}

// New creates an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error that chains a cause, reachable via errors.Unwrap.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Unrecognized creates an UnrecognizedToken error carrying the rendered
// list of expected symbols and the offending token.
func Unrecognized(message string, expected []string, found any) *Error {
	return &Error{Kind: UnrecognizedToken, Message: message, Expected: expected, Found: found}
}

// Extra creates an ExtraToken error carrying the offending token.
func Extra(message string, found any) *Error {
	return &Error{Kind: ExtraToken, Message: message, Found: found}
}

// Error implements the error interface. If a cause is present its message
// is appended, matching the teacher-pack's serr.Error rendering style.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause.Error())
	}
	return e.Message
}

// Unwrap exposes the wrapped cause, if any, to the standard errors API.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error of the same Kind, letting callers
// write errors.Is(err, ll1err.New(ll1err.UnexpectedEOF, "")) without caring
// about message text.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
