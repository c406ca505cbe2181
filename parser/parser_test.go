package parser

import (
	"testing"

	"github.com/michaeljones/gleam-templates/ast"
	"github.com/michaeljones/gleam-templates/scanner"
	"github.com/michaeljones/gleam-templates/token"
)

func parseSrc(t *testing.T, src string) *ast.Module {
	t.Helper()
	tokens, err := scanner.Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	m, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m
}

func TestParseWithAndBody(t *testing.T) {
	m := parseSrc(t, "{> with name as String\nHello {{ name }}\n")
	if len(m.Withs) != 1 || m.Withs[0].Name != "name" || m.Withs[0].Type != "String" {
		t.Fatalf("unexpected withs: %+v", m.Withs)
	}
	if len(m.Body) != 3 {
		t.Fatalf("expected 3 body nodes, got %d: %+v", len(m.Body), m.Body)
	}
	if m.LibraryOnly {
		t.Fatal("expected LibraryOnly false")
	}
}

func TestParseIfElse(t *testing.T) {
	m := parseSrc(t, "{% if x %}A{% else %}B{% endif %}")
	if len(m.Body) != 1 {
		t.Fatalf("expected 1 body node, got %d", len(m.Body))
	}
	ifNode, ok := m.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", m.Body[0])
	}
	if ifNode.Cond != "x" {
		t.Fatalf("expected condition %q, got %q", "x", ifNode.Cond)
	}
	if len(ifNode.Then) != 1 || ifNode.Then[0].(*ast.Text).Value != "A" {
		t.Fatalf("unexpected then branch: %+v", ifNode.Then)
	}
	if len(ifNode.Else) != 1 || ifNode.Else[0].(*ast.Text).Value != "B" {
		t.Fatalf("unexpected else branch: %+v", ifNode.Else)
	}
}

func TestParseIfNoElse(t *testing.T) {
	m := parseSrc(t, "{% if x %}A{% endif %}")
	ifNode := m.Body[0].(*ast.If)
	if ifNode.Else != nil {
		t.Fatalf("expected nil else branch, got %+v", ifNode.Else)
	}
}

func TestParseFor(t *testing.T) {
	m := parseSrc(t, "{% for x as Int in xs %}{{ x }}{% endfor %}")
	forNode, ok := m.Body[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", m.Body[0])
	}
	if forNode.Binding != "x" || !forNode.HasType || forNode.Type != "Int" || forNode.Iterable != "xs" {
		t.Fatalf("unexpected for node: %+v", forNode)
	}
	if len(forNode.Body) != 1 {
		t.Fatalf("expected 1 body node, got %d", len(forNode.Body))
	}
}

func TestParseNestedIfInsideFor(t *testing.T) {
	m := parseSrc(t, "{% for x in xs %}{% if x %}Y{% endif %}{% endfor %}")
	forNode := m.Body[0].(*ast.For)
	if len(forNode.Body) != 1 {
		t.Fatalf("expected 1 node in for body, got %d: %+v", len(forNode.Body), forNode.Body)
	}
	if _, ok := forNode.Body[0].(*ast.If); !ok {
		t.Fatalf("expected nested if, got %T", forNode.Body[0])
	}
}

func TestParseFnDef(t *testing.T) {
	m := parseSrc(t, "{> fn greet(name: String)\nHi {{ name }}\n{> endfn\n")
	if len(m.Funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(m.Funcs))
	}
	fn := m.Funcs[0]
	if fn.Public || fn.Name != "greet" || fn.Params != "name: String" {
		t.Fatalf("unexpected fn: %+v", fn)
	}
	if len(m.Body) != 0 || !m.LibraryOnly {
		t.Fatalf("expected empty, library-only body, got body=%+v libraryOnly=%v", m.Body, m.LibraryOnly)
	}
}

func TestParseLibraryOnlyWhitespaceBody(t *testing.T) {
	m := parseSrc(t, "{> fn greet(name: String)\nHi\n{> endfn\n\n  \n")
	if !m.LibraryOnly {
		t.Fatal("expected whitespace-only top-level body to be library-only")
	}
}

func TestParseImport(t *testing.T) {
	m := parseSrc(t, "{> import gleam/string\nHello\n")
	if len(m.Imports) != 1 || m.Imports[0].Text != "gleam/string" {
		t.Fatalf("unexpected imports: %+v", m.Imports)
	}
}

func TestParseElseWithNoOpener(t *testing.T) {
	_, err := Parse(tokensOrFatal(t, "{% else %}"))
	assertParserError(t, err, UnmatchedCloser)
}

func TestParseMismatchedCloser(t *testing.T) {
	_, err := Parse(tokensOrFatal(t, "{% if x %}A{% endfor %}"))
	assertParserError(t, err, MismatchedCloser)
}

func TestParseUnclosedIf(t *testing.T) {
	_, err := Parse(tokensOrFatal(t, "{% if x %}A"))
	assertParserError(t, err, UnclosedBlock)
}

func TestParseUnclosedFor(t *testing.T) {
	_, err := Parse(tokensOrFatal(t, "{% for x in xs %}A"))
	assertParserError(t, err, UnclosedBlock)
}

func TestParseWithInsideIfRejected(t *testing.T) {
	_, err := Parse(tokensOrFatal(t, "{% if x %}{> with y as String\n{% endif %}"))
	assertParserError(t, err, TopLevelOnly)
}

func TestParseWithInsideFnRejected(t *testing.T) {
	_, err := Parse(tokensOrFatal(t, "{> fn f()\n{> with y as String\n{> endfn\n"))
	assertParserError(t, err, TopLevelOnly)
}

func TestParseWithAfterBodyRejected(t *testing.T) {
	_, err := Parse(tokensOrFatal(t, "Hello\n{> with y as String\n"))
	assertParserError(t, err, TopLevelOnly)
}

func TestParseFnDoesNotNest(t *testing.T) {
	_, err := Parse(tokensOrFatal(t, "{> fn f()\n{> fn g()\n{> endfn\n{> endfn\n"))
	assertParserError(t, err, TopLevelOnly)
}

func tokensOrFatal(t *testing.T, src string) []token.Token {
	t.Helper()
	tokens, err := scanner.Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	return tokens
}

func assertParserError(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if perr.Kind != kind {
		t.Fatalf("expected error kind %v, got %v", kind, perr.Kind)
	}
}
