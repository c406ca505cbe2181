package matcha

import (
	"github.com/michaeljones/gleam-templates/parser"
	"github.com/michaeljones/gleam-templates/scanner"
	"github.com/michaeljones/gleam-templates/token"
)

// CompileError wraps whichever stage of Compile failed without re-deriving
// its position: it exposes the failing stage's span and message directly,
// the way scriggo's BuildError wraps a compiler.Error.
type CompileError struct {
	err error
}

func (e *CompileError) Error() string { return e.err.Error() }

// Unwrap exposes the underlying *scanner.Error or *parser.Error.
func (e *CompileError) Unwrap() error { return e.err }

// Span returns the source span where the error occurred.
func (e *CompileError) Span() token.Span {
	switch err := e.err.(type) {
	case *scanner.Error:
		return err.Span
	case *parser.Error:
		return err.Span
	}
	return token.Span{}
}

// Message returns the error message without position information.
func (e *CompileError) Message() string {
	switch err := e.err.(type) {
	case *scanner.Error:
		return err.Message
	case *parser.Error:
		return err.Message
	}
	return e.err.Error()
}
