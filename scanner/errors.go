package scanner

import "github.com/michaeljones/gleam-templates/token"

// ErrorKind classifies a scanning failure.
type ErrorKind int

const (
	// UnterminatedDelimiter: an opening delimiter has no matching close.
	UnterminatedDelimiter ErrorKind = iota
	// UnknownKeyword: a {% %} or {> EOL body starts with an unrecognized token.
	UnknownKeyword
	// MalformedDirective: a recognized keyword's shape is malformed (e.g.
	// "for" without "in").
	MalformedDirective
)

var kindNames = [...]string{
	UnterminatedDelimiter: "unterminated delimiter",
	UnknownKeyword:        "unknown keyword",
	MalformedDirective:    "malformed directive",
}

func (k ErrorKind) String() string { return kindNames[k] }

// Error is a scanner failure identifying the offending span.
type Error struct {
	Kind    ErrorKind
	Span    token.Span
	Message string
}

func (e *Error) Error() string {
	return e.Span.String() + ": " + e.Kind.String() + ": " + e.Message
}
