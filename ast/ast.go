// Package ast declares the node types produced by the matcha parser.
//
// For example the template
//
//	{> with name as String
//	Hello {{ name }}
//
// parses to a Module with one With (name, "String") and a Body of
// []Node{Text("Hello "), Identifier("name"), Text("\n")}.
package ast

import "github.com/michaeljones/gleam-templates/token"

// Node is an element of the parsed tree.
type Node interface {
	Span() token.Span
}

type base struct {
	span token.Span
}

func (b base) Span() token.Span { return b.span }

// Text is a run of literal characters taken verbatim from the source.
type Text struct {
	base
	Value string
}

func NewText(span token.Span, value string) *Text {
	return &Text{base{span}, value}
}

// Identifier is a {{ expr }} node; it renders by appending a string.
type Identifier struct {
	base
	Expr string
}

func NewIdentifier(span token.Span, expr string) *Identifier {
	return &Identifier{base{span}, expr}
}

// Builder is a {[ expr ]} node; it renders by appending a string tree.
type Builder struct {
	base
	Expr string
}

func NewBuilder(span token.Span, expr string) *Builder {
	return &Builder{base{span}, expr}
}

// If is a {% if cond %} ... {% else %} ... {% endif %} node. Else is nil
// when there was no {% else %}.
type If struct {
	base
	Cond string
	Then []Node
	Else []Node
}

func NewIf(span token.Span, cond string, then, els []Node) *If {
	return &If{base{span}, cond, then, els}
}

// For is a {% for binding [as type] in iterable %} ... {% endfor %} node.
type For struct {
	base
	Binding  string
	Type     string // empty when HasType is false
	HasType  bool
	Iterable string
	Body     []Node
}

func NewFor(span token.Span, binding, typ string, hasType bool, iterable string, body []Node) *For {
	return &For{base{span}, binding, typ, hasType, iterable, body}
}

// FnDef is a {> fn NAME(params) ... {> endfn node. It is only legal at
// the top level of a template and does not nest.
type FnDef struct {
	base
	Public bool
	Name   string
	Params string
	Body   []Node
}

func NewFnDef(span token.Span, public bool, name, params string, body []Node) *FnDef {
	return &FnDef{base{span}, public, name, params, body}
}

// Import is a {> import ... node. Top-level only; floats to the header.
type Import struct {
	base
	Text string
}

func NewImport(span token.Span, text string) *Import {
	return &Import{base{span}, text}
}

// With is a {> with NAME as TYPE node. Top-level only; floats to the
// render/render_tree parameter list.
type With struct {
	base
	Name string
	Type string
}

func NewWith(span token.Span, name, typ string) *With {
	return &With{base{span}, name, typ}
}

// Module is the parser's output: the fully classified contents of one
// template file.
type Module struct {
	Imports []*Import // in source order, duplicates preserved
	Withs   []*With   // in source order; the render/render_tree parameter list
	Funcs   []*FnDef  // in source order

	// Body holds the nodes that appear outside any FnDef, in source order.
	Body []Node

	// LibraryOnly is true iff Body is empty or consists exclusively of
	// Text nodes that are entirely ASCII whitespace, as computed by the
	// parser. When true and len(Funcs) > 0, render/render_tree are not
	// emitted.
	LibraryOnly bool
}
