// Package parser assembles a matcha token stream into an ast.Module,
// enforcing the nesting rules for conditionals, loops, and function
// definitions described in spec.md §4.2.
package parser

import (
	"fmt"

	"github.com/michaeljones/gleam-templates/ast"
	"github.com/michaeljones/gleam-templates/token"
)

// frameKind identifies which construct an open block-stack frame
// represents.
type frameKind int

const (
	frameIf   frameKind = iota // accumulating the "then" branch
	frameElse                  // accumulating the "else" branch
	frameFor
	frameFn
)

func (k frameKind) closer() string {
	switch k {
	case frameIf, frameElse:
		return "endif"
	case frameFor:
		return "endfor"
	case frameFn:
		return "endfn"
	}
	panic("parser: invalid frame kind")
}

// frame is an open, not-yet-closed construct on the parser's block stack.
type frame struct {
	kind  frameKind
	span  token.Span
	nodes []ast.Node

	// If
	cond      string
	thenNodes []ast.Node // saved "then" nodes once Else switches kind to frameElse

	// For
	binding, typ, iterable string
	hasType                bool

	// Fn
	public       bool
	name, params string
}

// Parse consumes tokens, a token stream produced by scanner.Tokenize
// (including its trailing token.EOF), and returns the assembled
// ast.Module or the first violation encountered.
func Parse(tokens []token.Token) (*ast.Module, error) {
	p := &parser{tokens: tokens}
	return p.parse()
}

// parser holds the mutable state of a single parse pass: a pointer into
// the token stream and an explicit stack of open constructs.
type parser struct {
	tokens []token.Token
	pos    int

	stack []*frame

	imports []*ast.Import
	withs   []*ast.With
	funcs   []*ast.FnDef
	body    []ast.Node

	// sawBody becomes true once any node is appended to body (the
	// top-level scope outside any FnDef). With/Import are rejected once
	// it is set: see SPEC_FULL.md §5 decision 2.
	sawBody bool
}

func (p *parser) parse() (*ast.Module, error) {
	for {
		tok := p.tokens[p.pos]
		if tok.Kind == token.EOF {
			break
		}
		p.pos++
		if err := p.step(tok); err != nil {
			return nil, err
		}
	}
	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		return nil, &Error{
			Kind:    UnclosedBlock,
			Span:    top.span,
			Message: fmt.Sprintf("unclosed block: missing %s", top.kind.closer()),
		}
	}
	return &ast.Module{
		Imports:     p.imports,
		Withs:       p.withs,
		Funcs:       p.funcs,
		Body:        p.body,
		LibraryOnly: isLibraryOnly(p.body),
	}, nil
}

func (p *parser) step(tok token.Token) error {
	switch tok.Kind {
	case token.Text:
		p.append(ast.NewText(tok.Span, tok.Text))
	case token.Identifier:
		p.append(ast.NewIdentifier(tok.Span, tok.Text))
	case token.Builder:
		p.append(ast.NewBuilder(tok.Span, tok.Text))
	case token.With:
		return p.handleWith(tok)
	case token.Import:
		return p.handleImport(tok)
	case token.FnStart:
		return p.handleFnStart(tok)
	case token.FnEnd:
		return p.handleFnEnd(tok)
	case token.If:
		p.stack = append(p.stack, &frame{kind: frameIf, span: tok.Span, cond: tok.Condition})
	case token.Else:
		return p.handleElse(tok)
	case token.EndIf:
		return p.handleEndIf(tok)
	case token.For:
		p.stack = append(p.stack, &frame{
			kind: frameFor, span: tok.Span,
			binding: tok.Name, typ: tok.Type, hasType: tok.HasType, iterable: tok.Iterable,
		})
	case token.EndFor:
		return p.handleEndFor(tok)
	}
	return nil
}

// append adds n to whatever scope is currently open: the innermost frame
// on the stack, or the module's top-level body.
func (p *parser) append(n ast.Node) {
	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		top.nodes = append(top.nodes, n)
		return
	}
	p.body = append(p.body, n)
	p.sawBody = true
}

func (p *parser) handleWith(tok token.Token) error {
	if len(p.stack) > 0 {
		return &Error{Kind: TopLevelOnly, Span: tok.Span, Message: "with is only legal at the top level"}
	}
	if p.sawBody {
		return &Error{Kind: TopLevelOnly, Span: tok.Span, Message: "with must appear before any body content"}
	}
	p.withs = append(p.withs, ast.NewWith(tok.Span, tok.Name, tok.Type))
	return nil
}

func (p *parser) handleImport(tok token.Token) error {
	if len(p.stack) > 0 {
		return &Error{Kind: TopLevelOnly, Span: tok.Span, Message: "import is only legal at the top level"}
	}
	if p.sawBody {
		return &Error{Kind: TopLevelOnly, Span: tok.Span, Message: "import must appear before any body content"}
	}
	p.imports = append(p.imports, ast.NewImport(tok.Span, tok.Import))
	return nil
}

func (p *parser) handleFnStart(tok token.Token) error {
	if len(p.stack) > 0 {
		return &Error{Kind: TopLevelOnly, Span: tok.Span, Message: "fn is only legal at the top level; fns do not nest"}
	}
	p.stack = append(p.stack, &frame{kind: frameFn, span: tok.Span, public: tok.Public, name: tok.Name, params: tok.Params})
	return nil
}

func (p *parser) handleFnEnd(tok token.Token) error {
	top, err := p.popExpecting(tok, frameFn)
	if err != nil {
		return err
	}
	p.funcs = append(p.funcs, ast.NewFnDef(top.span, top.public, top.name, top.params, top.nodes))
	return nil
}

func (p *parser) handleElse(tok token.Token) error {
	if len(p.stack) == 0 {
		return &Error{Kind: UnmatchedCloser, Span: tok.Span, Message: "else with no matching if"}
	}
	top := p.stack[len(p.stack)-1]
	if top.kind != frameIf {
		return &Error{
			Kind: MismatchedCloser, Span: tok.Span,
			Message: fmt.Sprintf("expected %s, found else", top.kind.closer()),
		}
	}
	top.thenNodes = top.nodes
	top.nodes = nil
	top.kind = frameElse
	return nil
}

func (p *parser) handleEndIf(tok token.Token) error {
	if len(p.stack) == 0 {
		return &Error{Kind: UnmatchedCloser, Span: tok.Span, Message: "endif with no matching if"}
	}
	top := p.stack[len(p.stack)-1]
	if top.kind != frameIf && top.kind != frameElse {
		return &Error{
			Kind: MismatchedCloser, Span: tok.Span,
			Message: fmt.Sprintf("expected %s, found endif", top.kind.closer()),
		}
	}
	p.stack = p.stack[:len(p.stack)-1]
	thenNodes, elseNodes := top.nodes, []ast.Node(nil)
	if top.kind == frameElse {
		thenNodes, elseNodes = top.thenNodes, top.nodes
	}
	p.append(ast.NewIf(top.span, top.cond, thenNodes, elseNodes))
	return nil
}

func (p *parser) handleEndFor(tok token.Token) error {
	top, err := p.popExpecting(tok, frameFor)
	if err != nil {
		return err
	}
	p.append(ast.NewFor(top.span, top.binding, top.typ, top.hasType, top.iterable, top.nodes))
	return nil
}

// popExpecting pops the top frame, requiring it to have kind want; tok is
// the closer token being processed, used only for error spans/messages.
func (p *parser) popExpecting(tok token.Token, want frameKind) (*frame, error) {
	if len(p.stack) == 0 {
		return nil, &Error{Kind: UnmatchedCloser, Span: tok.Span, Message: fmt.Sprintf("%s with no matching opener", want.closer())}
	}
	top := p.stack[len(p.stack)-1]
	if top.kind != want {
		return nil, &Error{
			Kind: MismatchedCloser, Span: tok.Span,
			Message: fmt.Sprintf("expected %s, found %s", top.kind.closer(), want.closer()),
		}
	}
	p.stack = p.stack[:len(p.stack)-1]
	return top, nil
}

// isLibraryOnly reports whether body is empty or consists exclusively of
// Text nodes that are entirely ASCII whitespace (spec.md §4.2).
func isLibraryOnly(body []ast.Node) bool {
	for _, n := range body {
		text, ok := n.(*ast.Text)
		if !ok || !isASCIIWhitespace(text.Value) {
			return false
		}
	}
	return true
}

func isASCIIWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			return false
		}
	}
	return true
}
