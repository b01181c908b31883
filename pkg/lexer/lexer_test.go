package lexer

import "testing"

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	l, err := New(src)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var toks []Token
	toks = append(toks, l.CurrentToken())
	if l.CurrentToken().Kind == KindEof {
		return toks
	}
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("NextToken: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == KindEof {
			break
		}
		if len(toks) > 10000 {
			t.Fatal("token stream did not terminate")
		}
	}
	return toks
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []Kind, want []Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestSimpleAssignment(t *testing.T) {
	toks := collectTokens(t, "x = 10\n")
	assertKinds(t, kinds(toks), []Kind{
		KindId, KindChar, KindNumber, KindNewline, KindEof,
	})
	if toks[2].Num != 10 {
		t.Fatalf("expected number 10, got %d", toks[2].Num)
	}
}

func TestIndentDedentBalance(t *testing.T) {
	src := "class A:\n  def f():\n    return 1\nprint 1\n"
	toks := collectTokens(t, src)
	indents, dedents := 0, 0
	for _, tok := range toks {
		switch tok.Kind {
		case KindIndent:
			indents++
		case KindDedent:
			dedents++
		}
	}
	if indents != dedents {
		t.Fatalf("unbalanced indentation: %d indents, %d dedents", indents, dedents)
	}
	if indents != 2 {
		t.Fatalf("expected 2 indent levels, got %d", indents)
	}
}

func TestKeywordsAndOperators(t *testing.T) {
	toks := collectTokens(t, "if a == b and not c:\n  return\nelse:\n  return\n")
	got := kinds(toks)
	want := []Kind{
		KindIf, KindId, KindEq, KindId, KindAnd, KindNot, KindId, KindChar, KindNewline,
		KindIndent, KindReturn, KindNewline,
		KindDedent, KindElse, KindChar, KindNewline,
		KindIndent, KindReturn, KindNewline,
		KindDedent, KindEof,
	}
	assertKinds(t, got, want)
}

func TestStringEscapes(t *testing.T) {
	toks := collectTokens(t, `print "a\nb\tc\"d"` + "\n")
	if toks[1].Kind != KindString {
		t.Fatalf("expected string token, got %v", toks[1].Kind)
	}
	if toks[1].Text != "a\nb\tc\"d" {
		t.Fatalf("unexpected escape decoding: %q", toks[1].Text)
	}
}

func TestUnterminatedString(t *testing.T) {
	l, err := New("x = \"abc\n")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for {
		tok, err := l.NextToken()
		if err != nil {
			return
		}
		if tok.Kind == KindEof {
			t.Fatal("expected lexer error for unterminated string")
		}
	}
}

func TestCommentsIgnored(t *testing.T) {
	toks := collectTokens(t, "x = 1 # a comment\ny = 2\n")
	assertKinds(t, kinds(toks), []Kind{
		KindId, KindChar, KindNumber, KindNewline,
		KindId, KindChar, KindNumber, KindNewline,
		KindEof,
	})
}

func TestEmptyLinesAndBlankProgram(t *testing.T) {
	toks := collectTokens(t, "\n\n\n")
	assertKinds(t, kinds(toks), []Kind{KindEof})
}

func TestDualCharOperators(t *testing.T) {
	toks := collectTokens(t, "a <= b >= c != d\n")
	assertKinds(t, kinds(toks), []Kind{
		KindId, KindLessOrEq, KindId, KindGreaterOrEq, KindId, KindNotEq, KindId, KindNewline, KindEof,
	})
}

func TestTokenEqual(t *testing.T) {
	a := Token{Kind: KindNumber, Num: 5}
	b := Token{Kind: KindNumber, Num: 5}
	c := Token{Kind: KindNumber, Num: 6}
	if !a.Equal(b) {
		t.Fatal("expected equal tokens")
	}
	if a.Equal(c) {
		t.Fatal("expected unequal tokens")
	}
}
