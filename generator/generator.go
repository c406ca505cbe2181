// Package generator lowers a matcha ast.Module into Gleam source text.
//
// The generator is total given a valid ast.Module: every node kind has a
// defined emission and nothing in this package can fail (spec.md §4.3's
// "Errors" clause). It never inspects expression text; opaque fragments
// from {{ }}, {[ ]}, {% if %}, {% for %} and fn parameter lists are
// emitted verbatim and left for Gleam's own compiler to check.
package generator

import (
	"fmt"
	"strings"

	"github.com/michaeljones/gleam-templates/ast"
)

// accVar is the name of the accumulator variable rebound while lowering a
// node list. It is reused, shadowed, inside every nested case/fold block.
const accVar = "acc"

// Generate walks m and returns the Gleam module source it describes.
func Generate(m *ast.Module) string {
	g := &generator{}
	g.writePrelude()
	g.writeUserImports(m.Imports)
	for _, fn := range m.Funcs {
		g.writeFnDef(fn)
	}
	if !m.LibraryOnly || len(m.Funcs) == 0 {
		g.writeRenderTree(m.Withs, m.Body)
		g.writeRender(m.Withs)
	}
	return g.sb.String()
}

type generator struct {
	sb strings.Builder
}

func (g *generator) writePrelude() {
	g.sb.WriteString("import gleam/list\n")
	g.sb.WriteString("import gleam/string_tree\n")
}

func (g *generator) writeUserImports(imports []*ast.Import) {
	if len(imports) == 0 {
		return
	}
	g.sb.WriteString("\n")
	for _, imp := range imports {
		g.sb.WriteString("import " + imp.Text + "\n")
	}
}

func (g *generator) writeFnDef(fn *ast.FnDef) {
	visibility := "fn"
	if fn.Public {
		visibility = "pub fn"
	}
	g.sb.WriteString("\n")
	g.sb.WriteString(fmt.Sprintf("%s %s(%s) -> string_tree.StringTree {\n", visibility, fn.Name, fn.Params))
	g.writeBody(trimTrailingNewline(fn.Body), "  ")
	g.sb.WriteString("}\n")
}

func (g *generator) writeRenderTree(withs []*ast.With, body []ast.Node) {
	g.sb.WriteString("\n")
	g.sb.WriteString(fmt.Sprintf("pub fn render_tree(%s) -> string_tree.StringTree {\n", labeledParams(withs)))
	g.writeBody(body, "  ")
	g.sb.WriteString("}\n")
}

func (g *generator) writeRender(withs []*ast.With) {
	g.sb.WriteString("\n")
	g.sb.WriteString(fmt.Sprintf("pub fn render(%s) -> String {\n", labeledParams(withs)))
	g.sb.WriteString(fmt.Sprintf("  string_tree.to_string(render_tree(%s))\n", labeledArgs(withs)))
	g.sb.WriteString("}\n")
}

// writeBody emits the accumulator initializer, the lowered node list, and
// the trailing "acc" that makes it the block's return value.
func (g *generator) writeBody(nodes []ast.Node, indent string) {
	g.sb.WriteString(indent + "let " + accVar + " = string_tree.new()\n")
	g.genNodes(nodes, indent)
	g.sb.WriteString(indent + accVar + "\n")
}

// genNodes lowers nodes in order, each rebinding accVar per spec.md §4.3's
// node-lowering table. It assumes accVar is already bound in the
// enclosing scope and leaves it rebound after the last node.
func (g *generator) genNodes(nodes []ast.Node, indent string) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *ast.Text:
			g.sb.WriteString(fmt.Sprintf("%slet %s = string_tree.append(%s, \"%s\")\n", indent, accVar, accVar, escapeGleamString(n.Value)))
		case *ast.Identifier:
			g.sb.WriteString(fmt.Sprintf("%slet %s = string_tree.append(%s, %s)\n", indent, accVar, accVar, n.Expr))
		case *ast.Builder:
			g.sb.WriteString(fmt.Sprintf("%slet %s = string_tree.append_tree(%s, %s)\n", indent, accVar, accVar, n.Expr))
		case *ast.If:
			g.genIf(n, indent)
		case *ast.For:
			g.genFor(n, indent)
		default:
			panic(fmt.Sprintf("generator: unhandled node %T", n))
		}
	}
}

func (g *generator) genIf(n *ast.If, indent string) {
	inner := indent + "    "
	g.sb.WriteString(fmt.Sprintf("%slet %s = case %s {\n", indent, accVar, n.Cond))
	g.sb.WriteString(indent + "  True -> {\n")
	g.genNodes(n.Then, inner)
	g.sb.WriteString(inner + accVar + "\n")
	g.sb.WriteString(indent + "  }\n")
	g.sb.WriteString(indent + "  False -> {\n")
	g.genNodes(n.Else, inner)
	g.sb.WriteString(inner + accVar + "\n")
	g.sb.WriteString(indent + "  }\n")
	g.sb.WriteString(indent + "}\n")
}

func (g *generator) genFor(n *ast.For, indent string) {
	inner := indent + "  "
	binding := n.Binding
	if n.HasType {
		binding = fmt.Sprintf("%s: %s", n.Binding, n.Type)
	}
	g.sb.WriteString(fmt.Sprintf("%slet %s = list.fold(%s, %s, fn(%s, %s) {\n", indent, accVar, n.Iterable, accVar, accVar, binding))
	g.genNodes(n.Body, inner)
	g.sb.WriteString(inner + accVar + "\n")
	g.sb.WriteString(indent + "})\n")
}

// labeledParams renders withs as Gleam named parameters whose label equals
// the declared name, e.g. "name name: String, age age: Int".
func labeledParams(withs []*ast.With) string {
	parts := make([]string, len(withs))
	for i, w := range withs {
		parts[i] = fmt.Sprintf("%s %s: %s", w.Name, w.Name, w.Type)
	}
	return strings.Join(parts, ", ")
}

// labeledArgs renders withs as a label-forwarding argument list, e.g.
// "name: name, age: age".
func labeledArgs(withs []*ast.With) string {
	parts := make([]string, len(withs))
	for i, w := range withs {
		parts[i] = fmt.Sprintf("%s: %s", w.Name, w.Name)
	}
	return strings.Join(parts, ", ")
}

// trimTrailingNewline removes exactly one trailing "\n" from the last node
// of body if it is Text ending in one, dropping the node entirely if doing
// so empties it (spec.md §4.3).
func trimTrailingNewline(body []ast.Node) []ast.Node {
	if len(body) == 0 {
		return body
	}
	last, ok := body[len(body)-1].(*ast.Text)
	if !ok || !strings.HasSuffix(last.Value, "\n") {
		return body
	}
	trimmed := strings.TrimSuffix(last.Value, "\n")
	out := make([]ast.Node, len(body))
	copy(out, body)
	if trimmed == "" {
		return out[:len(out)-1]
	}
	out[len(out)-1] = ast.NewText(last.Span(), trimmed)
	return out
}

// escapeGleamString escapes s for embedding inside a Gleam double-quoted
// string literal: backslashes, double quotes, and control characters that
// would otherwise break the literal or its single-line layout.
func escapeGleamString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
