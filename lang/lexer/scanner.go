// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a pull-based, single-pass scanner for the xta
// language.
//
// Design principles:
//   - One token per NextToken call; the caller drives the iteration
//   - One rune of lookahead, no backtracking
//   - Longest match for multi-character operators
//   - Malformed input becomes an ILLEGAL token, never a panic
//   - Lexemes are slices of the source string, not copies
//   - Supports // line comments
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/probechain/xta/lang/token"
)

// Scanner holds the cursor state for a single tokenization run.
type Scanner struct {
	src string

	pos    int  // byte offset of ch
	offset int  // byte offset of the rune after ch
	row    uint // 1-based row of ch
	col    uint // 1-based column of ch, in runes

	ch rune // current character; 0 when past end
}

// New creates a Scanner over src.
func New(src string) *Scanner {
	s := &Scanner{src: src, row: 1}
	s.advance() // prime s.ch with the first rune
	return s
}

// advance moves to the next rune, updating row/column tracking.
// When the end of input is reached, ch is set to 0.
func (s *Scanner) advance() {
	if s.ch == '\n' {
		s.row++
		s.col = 1
	} else {
		s.col++
	}
	s.pos = s.offset
	if s.offset >= len(s.src) {
		s.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(s.src[s.offset:])
	s.ch = r
	s.offset += w
}

// peek returns the rune after the current one without consuming it.
func (s *Scanner) peek() rune {
	if s.offset >= len(s.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.offset:])
	return r
}

// atEnd reports whether the cursor has moved past the last rune. A NUL
// byte inside the source is not the end.
func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) currentLoc() token.Loc {
	return token.Loc{Row: s.row, Col: s.col}
}

// makeToken builds a token whose lexeme spans src[start:pos].
func (s *Scanner) makeToken(typ token.Type, start int, loc token.Loc) token.Token {
	return token.Token{Type: typ, Loc: loc, Literal: s.src[start:s.pos]}
}

// skipWhitespace consumes whitespace and // line comments.
func (s *Scanner) skipWhitespace() {
	for {
		switch {
		case unicode.IsSpace(s.ch):
			s.advance()
		case s.ch == '/' && s.peek() == '/':
			for !s.atEnd() && s.ch != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

// NextToken scans and returns the next token from the input.
// After EOF is reached, subsequent calls continue returning EOF tokens.
func (s *Scanner) NextToken() token.Token {
	s.skipWhitespace()

	loc := s.currentLoc()
	start := s.pos
	if s.atEnd() {
		return token.Token{Type: token.EOF, Loc: loc}
	}
	ch := s.ch
	s.advance() // consume ch; from here on, s.ch is the character AFTER ch

	switch {
	case unicode.IsLetter(ch):
		return s.scanIdentifier(start, loc)
	case isDigit(ch):
		return s.scanNumber(start, loc)
	case ch == '"':
		return s.scanString(start, loc)
	}

	typ := token.ILLEGAL
	switch ch {
	case ',':
		typ = token.COMMA
	case ';':
		typ = token.SEMICOLON
	case '(':
		typ = token.LPAREN
	case ')':
		typ = token.RPAREN
	case '{':
		typ = token.LBRACE
	case '}':
		typ = token.RBRACE
	case '*':
		typ = token.STAR
	case '/':
		typ = token.SLASH
	case '~':
		typ = token.TILDE
	case '^':
		typ = token.CARET
	case '+':
		typ = s.switch2(token.PLUS, '+', token.INC)
	case '-':
		switch s.ch {
		case '>':
			s.advance()
			typ = token.ARROW
		case '-':
			s.advance()
			typ = token.DEC
		default:
			typ = token.MINUS
		}
	case '=':
		typ = s.switch2(token.ASSIGN, '=', token.EQ)
	case '!':
		typ = s.switch2(token.BANG, '=', token.NEQ)
	case '|':
		typ = s.switch2(token.PIPE, '|', token.OR)
	case '&':
		typ = s.switch2(token.AMP, '&', token.AND)
	case '>':
		switch s.ch {
		case '>':
			s.advance()
			typ = token.RSHIFT
		case '=':
			s.advance()
			typ = token.GTE
		default:
			typ = token.GT
		}
	case '<':
		switch s.ch {
		case '<':
			s.advance()
			typ = token.LSHIFT
		case '=':
			s.advance()
			typ = token.LTE
		default:
			typ = token.LT
		}
	}
	return s.makeToken(typ, start, loc)
}

// switch2 returns long and consumes the current rune if it equals next,
// otherwise it returns short.
func (s *Scanner) switch2(short token.Type, next rune, long token.Type) token.Type {
	if s.ch == next {
		s.advance()
		return long
	}
	return short
}

// Tokenize returns all tokens (including the final EOF) produced by repeated
// calls to NextToken.
func (s *Scanner) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := s.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

// scanIdentifier reads the rest of an identifier, keyword or boolean whose
// first letter has already been consumed.
func (s *Scanner) scanIdentifier(start int, loc token.Loc) token.Token {
	for unicode.IsLetter(s.ch) || unicode.IsDigit(s.ch) || s.ch == '_' {
		s.advance()
	}
	lit := s.src[start:s.pos]
	if lit == "true" || lit == "false" {
		return token.Token{Type: token.BOOL, Loc: loc, Literal: lit}
	}
	return token.Token{Type: token.LookupIdent(lit), Loc: loc, Literal: lit}
}

// scanNumber reads the rest of a numeric literal. Digits and dots are
// consumed as one run; more than one dot makes the whole run ILLEGAL.
func (s *Scanner) scanNumber(start int, loc token.Loc) token.Token {
	dots := 0
	for isDigit(s.ch) || s.ch == '.' {
		if s.ch == '.' {
			dots++
		}
		s.advance()
	}
	switch {
	case dots > 1:
		return s.makeToken(token.ILLEGAL, start, loc)
	case dots == 1:
		return s.makeToken(token.DOUBLE, start, loc)
	default:
		return s.makeToken(token.INT, start, loc)
	}
}

// scanString reads a string literal after the opening '"' has been consumed.
// The literal of a STRING token is the raw text between the quotes; escape
// sequences are kept verbatim. An unterminated string yields an ILLEGAL
// token holding everything from the opening quote to the end of input.
func (s *Scanner) scanString(start int, loc token.Loc) token.Token {
	for {
		if s.atEnd() {
			return s.makeToken(token.ILLEGAL, start, loc)
		}
		switch s.ch {
		case '"':
			lit := s.src[start+1 : s.pos]
			s.advance() // consume closing '"'
			return token.Token{Type: token.STRING, Loc: loc, Literal: lit}
		case '\\':
			s.advance()
			if !s.atEnd() {
				s.advance() // the escaped rune
			}
		default:
			s.advance()
		}
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
