package matcha

import (
	"github.com/michaeljones/gleam-templates/generator"
	"github.com/michaeljones/gleam-templates/parser"
	"github.com/michaeljones/gleam-templates/scanner"
)

// Compile reads src as matcha template source and returns the Gleam module
// it describes, or the first error encountered scanning or parsing it.
// Compile never fails once a valid ast.Module has been produced: the
// generator is total (spec.md §4.3).
func Compile(src []byte) (string, error) {
	tokens, err := scanner.Tokenize(src)
	if err != nil {
		return "", &CompileError{err: err}
	}
	module, err := parser.Parse(tokens)
	if err != nil {
		return "", &CompileError{err: err}
	}
	return generator.Generate(module), nil
}
