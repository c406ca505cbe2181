package parser

import "github.com/michaeljones/gleam-templates/token"

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// UnmatchedCloser: endif/endfor/endfn/else with no opener.
	UnmatchedCloser ErrorKind = iota
	// MismatchedCloser: e.g. expected endif, found endfor.
	MismatchedCloser
	// UnclosedBlock: end of input with a non-empty block stack.
	UnclosedBlock
	// TopLevelOnly: with/import appearing inside an if/for/fn.
	TopLevelOnly
)

var kindNames = [...]string{
	UnmatchedCloser:  "unmatched closer",
	MismatchedCloser: "mismatched closer",
	UnclosedBlock:    "unclosed block",
	TopLevelOnly:     "top-level-only construct",
}

func (k ErrorKind) String() string { return kindNames[k] }

// Error is a parse failure naming the first violation.
type Error struct {
	Kind    ErrorKind
	Span    token.Span
	Message string
}

func (e *Error) Error() string {
	return e.Span.String() + ": " + e.Kind.String() + ": " + e.Message
}
