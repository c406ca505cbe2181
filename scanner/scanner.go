// Package scanner tokenizes matcha template source into a stream of
// token.Token values, preserving literal whitespace outside delimited
// blocks. See token.Kind for the token shapes it produces.
package scanner

import (
	"strings"

	"github.com/michaeljones/gleam-templates/token"
)

// Tokenize scans src and returns the ordered sequence of tokens covering
// it, or the first scanning error encountered.
func Tokenize(src []byte) ([]token.Token, error) {
	s := &scanner{text: src, src: src, line: 1, column: 1}
	if err := s.scan(); err != nil {
		return nil, err
	}
	return s.tokens, nil
}

// scanner holds the mutable state of a single tokenization pass.
type scanner struct {
	text   []byte // the full source, for computing byte offsets
	src    []byte // remaining unscanned slice of text
	line   int    // current line, starting from 1
	column int    // current column, starting from 1

	tokens []token.Token
}

func (s *scanner) offset() int { return len(s.text) - len(s.src) }

// pos returns a zero-length span at the scanner's current position.
func (s *scanner) pos() token.Span {
	off := s.offset()
	return token.Span{Start: off, End: off, Line: s.line, Column: s.column}
}

// errorf builds an *Error at the scanner's current position.
func (s *scanner) errorf(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Span: s.pos(), Message: msg}
}

// advance consumes n bytes from src, updating line/column for any
// newlines crossed, and returns the span they covered.
func (s *scanner) advance(n int) token.Span {
	start := s.pos()
	for i := 0; i < n; i++ {
		if s.src[i] == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
	}
	s.src = s.src[n:]
	return token.Span{Start: start.Start, End: start.Start + n, Line: start.Line, Column: start.Column}
}

// emitText appends a Text token covering the next n bytes of src, unless
// n is zero.
func (s *scanner) emitText(n int) {
	if n == 0 {
		return
	}
	value := string(s.src[:n])
	span := s.advance(n)
	s.tokens = append(s.tokens, token.Token{Kind: token.Text, Span: span, Text: value})
}

func (s *scanner) scan() error {
	for len(s.src) > 0 {
		if s.src[0] == '{' && len(s.src) > 1 {
			switch s.src[1] {
			case '{':
				if err := s.scanDelimited("{{", "}}", token.Identifier); err != nil {
					return err
				}
				continue
			case '[':
				if err := s.scanDelimited("{[", "]}", token.Builder); err != nil {
					return err
				}
				continue
			case '%':
				if err := s.scanControl(); err != nil {
					return err
				}
				continue
			case '>':
				if err := s.scanDeclarative(); err != nil {
					return err
				}
				continue
			}
		}
		// Literal text byte: extend the run to the next delimiter start.
		n := s.textRunLength()
		s.emitText(n)
	}
	s.tokens = append(s.tokens, token.Token{Kind: token.EOF, Span: s.pos()})
	return nil
}

// textRunLength returns how many bytes of src, starting at 0, belong to a
// literal Text run, i.e. up to (but not including) the next delimiter
// start, or the whole remainder if none follows.
func (s *scanner) textRunLength() int {
	src := s.src
	for i := 0; i < len(src); i++ {
		if src[i] != '{' || i+1 >= len(src) {
			continue
		}
		switch src[i+1] {
		case '{', '[', '%', '>':
			if i == 0 {
				// Shouldn't happen: the caller already special-cased
				// position 0. Guard anyway to avoid a zero-length Text.
				continue
			}
			return i
		}
	}
	return len(src)
}

// scanDelimited scans an "open ... close" block and emits a single token
// of the given kind whose Text is the whitespace-trimmed content between the
// delimiters.
func (s *scanner) scanDelimited(open, close string, kind token.Kind) error {
	openSpan := s.advance(len(open))
	idx := strings.Index(string(s.src), close)
	if idx < 0 {
		return &Error{Kind: UnterminatedDelimiter, Span: openSpan, Message: "unterminated " + open}
	}
	content := strings.TrimSpace(string(s.src[:idx]))
	s.advance(idx)
	end := s.advance(len(close))
	span := token.Span{Start: openSpan.Start, End: end.End, Line: openSpan.Line, Column: openSpan.Column}
	s.tokens = append(s.tokens, token.Token{Kind: kind, Span: span, Text: content})
	return nil
}

// scanControl scans a {% ... %} block, known to start with "{%".
func (s *scanner) scanControl() error {
	openSpan := s.advance(2)
	idx := strings.Index(string(s.src), "%}")
	if idx < 0 {
		return &Error{Kind: UnterminatedDelimiter, Span: openSpan, Message: "unterminated {%"}
	}
	body := strings.TrimSpace(string(s.src[:idx]))
	s.advance(idx)
	endSpan := s.advance(2)
	span := token.Span{Start: openSpan.Start, End: endSpan.End, Line: openSpan.Line, Column: openSpan.Column}
	return s.emitControlToken(span, body)
}

// emitControlToken classifies the trimmed body of a {% %} block and
// appends the resulting token.
func (s *scanner) emitControlToken(span token.Span, body string) error {
	switch {
	case body == "else":
		s.tokens = append(s.tokens, token.Token{Kind: token.Else, Span: span})
	case body == "endif":
		s.tokens = append(s.tokens, token.Token{Kind: token.EndIf, Span: span})
	case body == "endfor":
		s.tokens = append(s.tokens, token.Token{Kind: token.EndFor, Span: span})
	case strings.HasPrefix(body, "if ") || body == "if":
		cond := strings.TrimSpace(strings.TrimPrefix(body, "if"))
		if cond == "" {
			return &Error{Kind: MalformedDirective, Span: span, Message: "if: missing condition"}
		}
		s.tokens = append(s.tokens, token.Token{Kind: token.If, Span: span, Condition: cond})
	case strings.HasPrefix(body, "for ") || body == "for":
		tok, err := parseFor(span, body)
		if err != nil {
			return err
		}
		s.tokens = append(s.tokens, tok)
	default:
		word := strings.Fields(body)
		if len(word) == 0 {
			return &Error{Kind: UnknownKeyword, Span: span, Message: "empty {% %} block"}
		}
		return &Error{Kind: UnknownKeyword, Span: span, Message: "unknown keyword " + word[0]}
	}
	return nil
}

// parseFor parses "for NAME [as TYPE] in EXPR" out of a {% %} body known
// to start with "for".
func parseFor(span token.Span, body string) (token.Token, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(body, "for"))
	inIdx := findKeyword(rest, "in")
	if inIdx < 0 {
		return token.Token{}, &Error{Kind: MalformedDirective, Span: span, Message: "for: missing 'in'"}
	}
	head := strings.TrimSpace(rest[:inIdx])
	iterable := strings.TrimSpace(rest[inIdx+2:])
	if head == "" {
		return token.Token{}, &Error{Kind: MalformedDirective, Span: span, Message: "for: missing binding"}
	}
	if iterable == "" {
		return token.Token{}, &Error{Kind: MalformedDirective, Span: span, Message: "for: missing iterable"}
	}
	name := head
	typ := ""
	hasType := false
	if asIdx := findKeyword(head, "as"); asIdx >= 0 {
		name = strings.TrimSpace(head[:asIdx])
		typ = strings.TrimSpace(head[asIdx+2:])
		hasType = true
		if name == "" {
			return token.Token{}, &Error{Kind: MalformedDirective, Span: span, Message: "for: missing binding before 'as'"}
		}
		if typ == "" {
			return token.Token{}, &Error{Kind: MalformedDirective, Span: span, Message: "for: missing type after 'as'"}
		}
	}
	return token.Token{
		Kind: token.For, Span: span,
		Name: name, Type: typ, HasType: hasType, Iterable: iterable,
	}, nil
}

// findKeyword finds the first occurrence of keyword in s as a standalone
// word (surrounded by whitespace or string boundaries), or -1.
func findKeyword(s, keyword string) int {
	for i := 0; i+len(keyword) <= len(s); i++ {
		if s[i:i+len(keyword)] != keyword {
			continue
		}
		beforeOK := i == 0 || s[i-1] == ' ' || s[i-1] == '\t'
		after := i + len(keyword)
		afterOK := after == len(s) || s[after] == ' ' || s[after] == '\t'
		if beforeOK && afterOK {
			return i
		}
	}
	return -1
}

// scanDeclarative scans a {> ... through end-of-line block, known to
// start with "{>". The terminating newline is consumed as part of the
// token, not emitted as surrounding Text.
func (s *scanner) scanDeclarative() error {
	openSpan := s.advance(2)
	nl := indexByte(s.src, '\n')
	var body string
	var end token.Span
	if nl < 0 {
		body = strings.TrimSpace(string(s.src))
		end = s.advance(len(s.src))
	} else {
		body = strings.TrimSpace(string(s.src[:nl]))
		s.advance(nl)
		end = s.advance(1) // consume the newline itself
	}
	span := token.Span{Start: openSpan.Start, End: end.End, Line: openSpan.Line, Column: openSpan.Column}
	return s.emitDeclarativeToken(span, body)
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// emitDeclarativeToken classifies the trimmed body of a {> EOL block and
// appends the resulting token.
func (s *scanner) emitDeclarativeToken(span token.Span, body string) error {
	switch {
	case body == "endfn":
		s.tokens = append(s.tokens, token.Token{Kind: token.FnEnd, Span: span})
	case body == "with":
		return &Error{Kind: MalformedDirective, Span: span, Message: "with: missing 'NAME as TYPE'"}
	case strings.HasPrefix(body, "with "):
		return s.emitWith(span, strings.TrimSpace(strings.TrimPrefix(body, "with")))
	case body == "import":
		return &Error{Kind: MalformedDirective, Span: span, Message: "import: missing module reference"}
	case strings.HasPrefix(body, "import "):
		rest := strings.TrimSpace(strings.TrimPrefix(body, "import"))
		if rest == "" {
			return &Error{Kind: MalformedDirective, Span: span, Message: "import: missing module reference"}
		}
		s.tokens = append(s.tokens, token.Token{Kind: token.Import, Span: span, Import: rest})
	case body == "pub fn" || body == "fn":
		return &Error{Kind: MalformedDirective, Span: span, Message: "fn: expected NAME(PARAMS)"}
	case strings.HasPrefix(body, "pub fn "):
		return s.emitFnStart(span, true, strings.TrimSpace(strings.TrimPrefix(body, "pub fn")))
	case strings.HasPrefix(body, "fn "):
		return s.emitFnStart(span, false, strings.TrimSpace(strings.TrimPrefix(body, "fn")))
	default:
		word := strings.Fields(body)
		if len(word) == 0 {
			return &Error{Kind: UnknownKeyword, Span: span, Message: "empty {> block"}
		}
		return &Error{Kind: UnknownKeyword, Span: span, Message: "unknown keyword " + word[0]}
	}
	return nil
}

// emitWith parses "NAME as TYPE" out of a {> with body.
func (s *scanner) emitWith(span token.Span, rest string) error {
	asIdx := findKeyword(rest, "as")
	if asIdx < 0 {
		return &Error{Kind: MalformedDirective, Span: span, Message: "with: missing 'as TYPE'"}
	}
	name := strings.TrimSpace(rest[:asIdx])
	typ := strings.TrimSpace(rest[asIdx+2:])
	if name == "" {
		return &Error{Kind: MalformedDirective, Span: span, Message: "with: missing name"}
	}
	if typ == "" {
		return &Error{Kind: MalformedDirective, Span: span, Message: "with: missing type after 'as'"}
	}
	s.tokens = append(s.tokens, token.Token{Kind: token.With, Span: span, Name: name, Type: typ})
	return nil
}

// emitFnStart parses "NAME(PARAMS)" out of a {> fn / {> pub fn body.
func (s *scanner) emitFnStart(span token.Span, public bool, rest string) error {
	open := strings.IndexByte(rest, '(')
	if open < 0 || !strings.HasSuffix(rest, ")") {
		return &Error{Kind: MalformedDirective, Span: span, Message: "fn: expected NAME(PARAMS)"}
	}
	name := strings.TrimSpace(rest[:open])
	if name == "" {
		return &Error{Kind: MalformedDirective, Span: span, Message: "fn: missing name"}
	}
	params := rest[open+1 : len(rest)-1]
	s.tokens = append(s.tokens, token.Token{Kind: token.FnStart, Span: span, Public: public, Name: name, Params: params})
	return nil
}
