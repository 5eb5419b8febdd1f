// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer_test

import (
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"

	"github.com/probechain/xta/lang/lexer"
	"github.com/probechain/xta/lang/token"
)

// tokenCase is a single expected token in a table-driven test.
type tokenCase struct {
	typ     token.Type
	literal string
}

// runTokenize scans input and checks that it produces exactly the expected
// sequence (plus a final EOF).
func runTokenize(t *testing.T, name, input string, want []tokenCase) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		toks := lexer.New(input).Tokenize()

		if len(toks) == 0 {
			t.Fatal("Tokenize returned empty slice")
		}
		last := toks[len(toks)-1]
		if last.Type != token.EOF {
			t.Errorf("last token is %s, want EOF", last.Type)
		}
		body := toks[:len(toks)-1]

		if len(body) != len(want) {
			t.Errorf("got %d tokens (excl. EOF), want %d", len(body), len(want))
			for i, tok := range body {
				t.Logf("  [%d] %s %q", i, tok.Type, tok.Literal)
			}
			return
		}
		for i, w := range want {
			got := body[i]
			if got.Type != w.typ {
				t.Errorf("token[%d]: type = %s, want %s (literal %q)", i, got.Type, w.typ, got.Literal)
			}
			if got.Literal != w.literal {
				t.Errorf("token[%d]: literal = %q, want %q", i, got.Literal, w.literal)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// Punctuation and operators
// ---------------------------------------------------------------------------

func TestSingleCharTokens(t *testing.T) {
	cases := []struct {
		input string
		typ   token.Type
	}{
		{",", token.COMMA},
		{";", token.SEMICOLON},
		{"(", token.LPAREN},
		{")", token.RPAREN},
		{"{", token.LBRACE},
		{"}", token.RBRACE},
		{"+", token.PLUS},
		{"-", token.MINUS},
		{"*", token.STAR},
		{"/", token.SLASH},
		{"=", token.ASSIGN},
		{"!", token.BANG},
		{">", token.GT},
		{"<", token.LT},
		{"&", token.AMP},
		{"|", token.PIPE},
		{"~", token.TILDE},
		{"^", token.CARET},
	}
	for _, c := range cases {
		runTokenize(t, c.input, c.input, []tokenCase{{c.typ, c.input}})
	}
}

func TestMultiCharOperators(t *testing.T) {
	runTokenize(t, "pairs", "++ -- -> == != && || >= <= << >>", []tokenCase{
		{token.INC, "++"},
		{token.DEC, "--"},
		{token.ARROW, "->"},
		{token.EQ, "=="},
		{token.NEQ, "!="},
		{token.AND, "&&"},
		{token.OR, "||"},
		{token.GTE, ">="},
		{token.LTE, "<="},
		{token.LSHIFT, "<<"},
		{token.RSHIFT, ">>"},
	})
	runTokenize(t, "lte_is_one_token", "<=", []tokenCase{{token.LTE, "<="}})
	// Longest match is taken greedily, two runes at a time.
	runTokenize(t, "triple_plus", "+++", []tokenCase{
		{token.INC, "++"},
		{token.PLUS, "+"},
	})
	runTokenize(t, "shift_then_assign", "<<=", []tokenCase{
		{token.LSHIFT, "<<"},
		{token.ASSIGN, "="},
	})
	runTokenize(t, "eq_eq_eq", "===", []tokenCase{
		{token.EQ, "=="},
		{token.ASSIGN, "="},
	})
	runTokenize(t, "arrow_gt", "->>", []tokenCase{
		{token.ARROW, "->"},
		{token.GT, ">"},
	})
}

func TestOperatorsWithoutSpaces(t *testing.T) {
	runTokenize(t, "expr", "a+b*c-d", []tokenCase{
		{token.IDENT, "a"},
		{token.PLUS, "+"},
		{token.IDENT, "b"},
		{token.STAR, "*"},
		{token.IDENT, "c"},
		{token.MINUS, "-"},
		{token.IDENT, "d"},
	})
	runTokenize(t, "negative_number", "-5", []tokenCase{
		{token.MINUS, "-"},
		{token.INT, "5"},
	})
}

// Every kind with a surface form must scan back to itself.
func TestRenderRescanRoundTrip(t *testing.T) {
	for _, typ := range token.Types() {
		if !typ.HasSurface() {
			continue
		}
		text := typ.String()
		toks := lexer.New(text).Tokenize()
		if len(toks) != 2 {
			t.Errorf("%q: got %d tokens, want 2", text, len(toks))
			continue
		}
		if toks[0].Type != typ {
			t.Errorf("%q: rescanned as %s, want %s", text, toks[0].Type, typ)
		}
		if toks[0].Literal != text {
			t.Errorf("%q: literal = %q", text, toks[0].Literal)
		}
		if toks[1].Type != token.EOF {
			t.Errorf("%q: trailing token %s, want EOF", text, toks[1].Type)
		}
	}
}

// ---------------------------------------------------------------------------
// Literals
// ---------------------------------------------------------------------------

func TestNumberLiterals(t *testing.T) {
	runTokenize(t, "int", "42", []tokenCase{{token.INT, "42"}})
	runTokenize(t, "leading_zeros", "007", []tokenCase{{token.INT, "007"}})
	runTokenize(t, "double", "3.14", []tokenCase{{token.DOUBLE, "3.14"}})
	runTokenize(t, "trailing_dot", "3.", []tokenCase{{token.DOUBLE, "3."}})
	runTokenize(t, "two_dots", "1.2.3", []tokenCase{{token.ILLEGAL, "1.2.3"}})
	runTokenize(t, "adjacent_dots", "1..", []tokenCase{{token.ILLEGAL, "1.."}})
	runTokenize(t, "leading_dot", ".5", []tokenCase{
		{token.ILLEGAL, "."},
		{token.INT, "5"},
	})
	runTokenize(t, "no_range_check", "99999999999999999999", []tokenCase{
		{token.INT, "99999999999999999999"},
	})
	runTokenize(t, "number_then_ident", "1.x", []tokenCase{
		{token.DOUBLE, "1."},
		{token.IDENT, "x"},
	})
}

func TestStringLiterals(t *testing.T) {
	runTokenize(t, "simple", `"hello"`, []tokenCase{{token.STRING, "hello"}})
	runTokenize(t, "empty", `""`, []tokenCase{{token.STRING, ""}})
	runTokenize(t, "escaped_quote", `"a\"b"`, []tokenCase{{token.STRING, `a\"b`}})
	runTokenize(t, "escaped_backslash", `"a\\" x`, []tokenCase{
		{token.STRING, `a\\`},
		{token.IDENT, "x"},
	})
	runTokenize(t, "newline_inside", "\"a\nb\"", []tokenCase{{token.STRING, "a\nb"}})
	runTokenize(t, "unicode", `"héllo 世界"`, []tokenCase{{token.STRING, "héllo 世界"}})
}

func TestUnterminatedString(t *testing.T) {
	runTokenize(t, "plain", `"abc`, []tokenCase{{token.ILLEGAL, `"abc`}})
	runTokenize(t, "trailing_escape", `"abc\`, []tokenCase{{token.ILLEGAL, `"abc\`}})
	runTokenize(t, "escaped_close", `"abc\"`, []tokenCase{{token.ILLEGAL, `"abc\"`}})
	runTokenize(t, "after_tokens", `let s = "abc`, []tokenCase{
		{token.LET, "let"},
		{token.IDENT, "s"},
		{token.ASSIGN, "="},
		{token.ILLEGAL, `"abc`},
	})
}

func TestBooleans(t *testing.T) {
	runTokenize(t, "true_false", "true false", []tokenCase{
		{token.BOOL, "true"},
		{token.BOOL, "false"},
	})
	runTokenize(t, "prefix_is_ident", "trueish False", []tokenCase{
		{token.IDENT, "trueish"},
		{token.IDENT, "False"},
	})
}

// ---------------------------------------------------------------------------
// Identifiers and keywords
// ---------------------------------------------------------------------------

func TestIdentifiers(t *testing.T) {
	runTokenize(t, "simple", "foo bar_baz x1", []tokenCase{
		{token.IDENT, "foo"},
		{token.IDENT, "bar_baz"},
		{token.IDENT, "x1"},
	})
	runTokenize(t, "unicode_letters", "größe 变量", []tokenCase{
		{token.IDENT, "größe"},
		{token.IDENT, "变量"},
	})
	// An identifier must start with a letter.
	runTokenize(t, "leading_underscore", "_x", []tokenCase{
		{token.ILLEGAL, "_"},
		{token.IDENT, "x"},
	})
	runTokenize(t, "leading_digit", "1abc", []tokenCase{
		{token.INT, "1"},
		{token.IDENT, "abc"},
	})
}

func TestKeywords(t *testing.T) {
	src := "let const if elif else for while loop unless break continue fn return none"
	runTokenize(t, "all", src, []tokenCase{
		{token.LET, "let"},
		{token.CONST, "const"},
		{token.IF, "if"},
		{token.ELIF, "elif"},
		{token.ELSE, "else"},
		{token.FOR, "for"},
		{token.WHILE, "while"},
		{token.LOOP, "loop"},
		{token.UNLESS, "unless"},
		{token.BREAK, "break"},
		{token.CONTINUE, "continue"},
		{token.FN, "fn"},
		{token.RETURN, "return"},
		{token.NONE, "none"},
	})
	runTokenize(t, "prefix_is_ident", "letter fnord iffy", []tokenCase{
		{token.IDENT, "letter"},
		{token.IDENT, "fnord"},
		{token.IDENT, "iffy"},
	})
}

// ---------------------------------------------------------------------------
// Comments and whitespace
// ---------------------------------------------------------------------------

func TestLineComment(t *testing.T) {
	runTokenize(t, "between_lines", "x // the x\ny", []tokenCase{
		{token.IDENT, "x"},
		{token.IDENT, "y"},
	})
	runTokenize(t, "at_end", "x //", []tokenCase{{token.IDENT, "x"}})
	runTokenize(t, "only_comment", "// nothing here", nil)
	runTokenize(t, "slash_is_division", "a / b", []tokenCase{
		{token.IDENT, "a"},
		{token.SLASH, "/"},
		{token.IDENT, "b"},
	})
}

func TestEmptyInput(t *testing.T) {
	runTokenize(t, "empty", "", nil)
	runTokenize(t, "whitespace_only", "   \t\r\n  \n", nil)
}

func TestMultipleCallsAfterEOF(t *testing.T) {
	s := lexer.New("x")
	s.NextToken()
	for i := 0; i < 5; i++ {
		if tok := s.NextToken(); tok.Type != token.EOF {
			t.Errorf("call %d: expected EOF, got %s", i, tok.Type)
		}
	}
}

// ---------------------------------------------------------------------------
// Illegal input
// ---------------------------------------------------------------------------

func TestIllegalCharacter(t *testing.T) {
	runTokenize(t, "at_sign", "@x", []tokenCase{
		{token.ILLEGAL, "@"},
		{token.IDENT, "x"},
	})
	runTokenize(t, "multibyte", "a€b", []tokenCase{
		{token.IDENT, "a"},
		{token.ILLEGAL, "€"},
		{token.IDENT, "b"},
	})
	runTokenize(t, "nul_byte", "a\x00b", []tokenCase{
		{token.IDENT, "a"},
		{token.ILLEGAL, "\x00"},
		{token.IDENT, "b"},
	})
	runTokenize(t, "invalid_utf8", "\xffx", []tokenCase{
		{token.ILLEGAL, "\xff"},
		{token.IDENT, "x"},
	})
}

// ---------------------------------------------------------------------------
// Locations
// ---------------------------------------------------------------------------

func TestPositionTracking(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []token.Loc
	}{
		{"first_token", "foo", []token.Loc{{Row: 1, Col: 1}, {Row: 1, Col: 4}}},
		{"leading_space", "  foo", []token.Loc{{Row: 1, Col: 3}, {Row: 1, Col: 6}}},
		{"two_lines", "foo\nbar", []token.Loc{{Row: 1, Col: 1}, {Row: 2, Col: 1}, {Row: 2, Col: 4}}},
		{"columns_count_runes", `"aé" b`, []token.Loc{{Row: 1, Col: 1}, {Row: 1, Col: 6}, {Row: 1, Col: 7}}},
		{"string_spans_lines", "\"a\nb\" c", []token.Loc{{Row: 1, Col: 1}, {Row: 2, Col: 4}, {Row: 2, Col: 5}}},
		{"comment_line", "// c\n  x", []token.Loc{{Row: 2, Col: 3}, {Row: 2, Col: 4}}},
		{"operators", "a <= b", []token.Loc{{Row: 1, Col: 1}, {Row: 1, Col: 3}, {Row: 1, Col: 6}, {Row: 1, Col: 7}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks := lexer.New(c.input).Tokenize()
			if len(toks) != len(c.want) {
				t.Fatalf("got %d tokens, want %d", len(toks), len(c.want))
			}
			for i, tok := range toks {
				if tok.Loc != c.want[i] {
					t.Errorf("token[%d] %s: loc = %s, want %s", i, tok.Type, tok.Loc, c.want[i])
				}
			}
		})
	}
}

func TestStatement(t *testing.T) {
	runTokenize(t, "function", "fn add(a int, b int) -> int { return a + b; }", []tokenCase{
		{token.FN, "fn"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.IDENT, "int"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.IDENT, "int"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.IDENT, "int"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.IDENT, "a"},
		{token.PLUS, "+"},
		{token.IDENT, "b"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
	})
}

// ---------------------------------------------------------------------------
// Random input
// ---------------------------------------------------------------------------

func TestScanRandomInput(t *testing.T) {
	const alphabet = "\"\\.+-=<>!&|/ 1a_\n"

	f := fuzz.NewWithSeed(7).NilChance(0)
	for i := 0; i < 2000; i++ {
		var src string
		f.Fuzz(&src)
		if i%3 == 0 {
			// Bias towards the characters the scanner actually cares about.
			src = strings.Map(func(r rune) rune {
				return rune(alphabet[uint32(r)%uint32(len(alphabet))])
			}, src)
		}
		checkScan(t, src)
	}
}

// checkScan verifies that scanning src terminates, makes progress on every
// token and reports locations inside the input.
func checkScan(t *testing.T, src string) {
	t.Helper()
	s := lexer.New(src)
	rows := uint(strings.Count(src, "\n") + 1)
	limit := len(src) + 1
	for n := 0; ; n++ {
		if n > limit {
			t.Fatalf("scanner did not reach EOF on %q", src)
		}
		tok := s.NextToken()
		if tok.Loc.Row < 1 || tok.Loc.Row > rows || tok.Loc.Col < 1 {
			t.Fatalf("token %s at %s out of range for %q", tok.Type, tok.Loc, src)
		}
		if tok.Type == token.EOF {
			return
		}
		if tok.Type != token.STRING && tok.Literal == "" {
			t.Fatalf("empty lexeme for %s in %q", tok.Type, src)
		}
	}
}
