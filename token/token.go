// Package token declares the token kinds and source spans produced by the
// matcha scanner and consumed by the parser.
package token

import "fmt"

// Kind is the type of a scanned token.
type Kind int

const (
	Text       Kind = iota // literal text outside any delimited block
	Identifier             // {{ expr }}
	Builder                // {[ expr ]}
	With                   // {> with NAME as TYPE
	Import                 // {> import ...
	FnStart                // {> fn NAME(...) / {> pub fn NAME(...)
	FnEnd                  // {> endfn
	If                     // {% if EXPR %}
	Else                   // {% else %}
	EndIf                  // {% endif %}
	For                    // {% for X [as T] in EXPR %}
	EndFor                 // {% endfor %}
	EOF                    // end of input
)

var kindNames = map[Kind]string{
	Text:       "text",
	Identifier: "identifier",
	Builder:    "builder",
	With:       "with",
	Import:     "import",
	FnStart:    "fn",
	FnEnd:      "endfn",
	If:         "if",
	Else:       "else",
	EndIf:      "endif",
	For:        "for",
	EndFor:     "endfor",
	EOF:        "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	panic("token: invalid kind")
}

// Span is a byte range in the template source, used for error reporting.
type Span struct {
	Start  int // byte offset of the first byte, inclusive
	End    int // byte offset of the last byte, exclusive
	Line   int // line of Start, starting from 1
	Column int // column of Start, starting from 1
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Token is a single lexical unit of a template, tagged by Kind with a
// kind-specific payload. Only the fields relevant to Kind are populated;
// see the Kind constants above for which ones apply.
type Token struct {
	Kind Kind
	Span Span

	Text string // Text, Identifier, Builder: literal or expression text

	Name      string // With, For: declared name; FnStart: function name
	Type      string // With: declared type; For: optional "as TYPE"
	HasType   bool   // For: whether Type is present
	Iterable  string // For: the EXPR after "in"
	Import    string // Import: the text after "import", kept verbatim
	Public    bool   // FnStart: true for "pub fn"
	Params    string // FnStart: raw parameter list text
	Condition string // If: the EXPR after "if"
}
