package generator

import (
	"strings"
	"testing"

	"github.com/michaeljones/gleam-templates/ast"
	"github.com/michaeljones/gleam-templates/parser"
	"github.com/michaeljones/gleam-templates/scanner"
	"github.com/michaeljones/gleam-templates/token"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	tokens, err := scanner.Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	m, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return Generate(m)
}

func TestGeneratePrelude(t *testing.T) {
	out := generate(t, "plain text")
	if !strings.HasPrefix(out, "import gleam/list\nimport gleam/string_tree\n") {
		t.Fatalf("expected prelude imports, got:\n%s", out)
	}
}

func TestGenerateLibraryOnlyOmitsRender(t *testing.T) {
	out := generate(t, "{> fn f()\nhi\n{> endfn\n")
	if strings.Contains(out, "fn render") {
		t.Fatalf("expected no render/render_tree in library-only output, got:\n%s", out)
	}
	if !strings.Contains(out, "fn f(") {
		t.Fatalf("expected fn f to be emitted, got:\n%s", out)
	}
}

func TestGeneratePublicFn(t *testing.T) {
	out := generate(t, "{> pub fn f()\nhi\n{> endfn\n")
	if !strings.Contains(out, "pub fn f(") {
		t.Fatalf("expected pub fn f, got:\n%s", out)
	}
}

func TestGenerateUserImports(t *testing.T) {
	out := generate(t, "{> import gleam/string\nhi\n")
	if !strings.Contains(out, "\nimport gleam/string\n") {
		t.Fatalf("expected user import to be emitted verbatim, got:\n%s", out)
	}
}

func TestGenerateWithParamsLabeled(t *testing.T) {
	out := generate(t, "{> with name as String\nhi\n")
	if !strings.Contains(out, "render_tree(name name: String)") {
		t.Fatalf("expected labeled parameter, got:\n%s", out)
	}
	if !strings.Contains(out, "render_tree(name: name)") {
		t.Fatalf("expected forwarded label argument, got:\n%s", out)
	}
}

func TestGenerateEscapesQuotes(t *testing.T) {
	out := generate(t, `{> with x as String
<a href="x">`)
	if !strings.Contains(out, `\"x\"`) {
		t.Fatalf("expected escaped quotes, got:\n%s", out)
	}
}

func TestGenerateIfFoldsAccumulator(t *testing.T) {
	out := generate(t, "{% if c %}Y{% else %}N{% endif %}")
	if !strings.Contains(out, "case c {") || !strings.Contains(out, "True -> {") || !strings.Contains(out, "False -> {") {
		t.Fatalf("expected case expression over the condition, got:\n%s", out)
	}
}

func TestGenerateForUsesListFold(t *testing.T) {
	out := generate(t, "{% for x in xs %}{{ x }}{% endfor %}")
	if !strings.Contains(out, "list.fold(xs, acc, fn(acc, x) {") {
		t.Fatalf("expected list.fold over the iterable, got:\n%s", out)
	}
}

func TestTrimTrailingNewlineStripsOneNewline(t *testing.T) {
	var span token.Span
	m := &ast.Module{
		Funcs: []*ast.FnDef{
			ast.NewFnDef(span, false, "f", "", []ast.Node{ast.NewText(span, "x\n")}),
		},
		LibraryOnly: true,
	}
	out := Generate(m)
	if strings.Contains(out, `"x\n"`) {
		t.Fatalf("expected trailing newline trimmed, got:\n%s", out)
	}
	if !strings.Contains(out, `"x"`) {
		t.Fatalf("expected remaining text preserved, got:\n%s", out)
	}
}
