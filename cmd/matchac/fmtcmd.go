package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/michaeljones/gleam-templates/scanner"
	"github.com/michaeljones/gleam-templates/token"
)

// runFmt scans path and prints the concatenation of the source bytes
// covered by every token's span. It is a debugging aid for the scanner's
// span-coverage invariant (spec.md §3: spans monotonically increase and
// cover the entire source with no gaps) and has no bearing on the
// compiled Gleam output.
func runFmt(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tokens, err := scanner.Tokenize(src)
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, t := range tokens {
		if t.Kind == token.EOF {
			continue
		}
		sb.Write(src[t.Span.Start:t.Span.End])
	}
	fmt.Print(sb.String())
	return nil
}
