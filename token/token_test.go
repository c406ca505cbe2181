package token

import "testing"

func TestSpanString(t *testing.T) {
	s := Span{Line: 3, Column: 7}
	if got := s.String(); got != "3:7" {
		t.Fatalf("got %q, want %q", got, "3:7")
	}
}

func TestKindString(t *testing.T) {
	if Identifier.String() != "identifier" {
		t.Fatalf("got %q, want %q", Identifier.String(), "identifier")
	}
}

func TestKindStringPanicsOnInvalidKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an invalid kind")
		}
	}()
	_ = Kind(999).String()
}
