// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for the xta language.
//
// Every token carries the location of its first character and the exact
// lexeme it was scanned from. Kinds with a fixed spelling (operators,
// punctuation, keywords) render back to that spelling, so a rendered token
// rescans to the same kind.
package token

import "fmt"

// Loc identifies the position of the first character of a token.
// Rows and columns are 1-based; columns count runes, not bytes.
type Loc struct {
	Row uint
	Col uint
}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.Row, l.Col)
}

// Before reports whether l comes strictly before o in the source.
func (l Loc) Before(o Loc) bool {
	if l.Row != o.Row {
		return l.Row < o.Row
	}
	return l.Col < o.Col
}

// Token represents a lexical token.
type Token struct {
	Type    Type
	Loc     Loc
	Literal string
}

// String renders the token the way diagnostics quote it: identifiers,
// literals and illegal tokens show their lexeme, everything else shows the
// canonical spelling of its kind.
func (t Token) String() string {
	switch t.Type {
	case IDENT, INT, DOUBLE, STRING, BOOL, ILLEGAL:
		return t.Literal
	}
	return t.Type.String()
}

// Type is the set of lexical token types.
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF

	// Literals
	literalStart
	IDENT  // main, x, total_count
	INT    // 42
	DOUBLE // 3.14
	STRING // "hello"
	BOOL   // true, false
	literalEnd

	// Operators
	operatorStart
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	INC    // ++
	DEC    // --
	ASSIGN // =
	AND    // &&
	OR     // ||
	BANG   // !
	EQ     // ==
	NEQ    // !=
	GT     // >
	GTE    // >=
	LT     // <
	LTE    // <=
	AMP    // &
	PIPE   // |
	TILDE  // ~
	CARET  // ^
	LSHIFT // <<
	RSHIFT // >>
	ARROW  // ->
	operatorEnd

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;
	COMMA     // ,

	// Keywords
	keywordStart
	LET      // let
	CONST    // const
	IF       // if
	ELIF     // elif
	ELSE     // else
	FOR      // for
	WHILE    // while
	LOOP     // loop
	UNLESS   // unless
	BREAK    // break
	CONTINUE // continue
	FN       // fn
	RETURN   // return
	NONE     // none
	keywordEnd
)

var tokenNames = [...]string{
	ILLEGAL: "illegal",
	EOF:     "EOF",

	IDENT:  "identifier",
	INT:    "integer",
	DOUBLE: "double",
	STRING: "string",
	BOOL:   "boolean",

	PLUS:   "+",
	MINUS:  "-",
	STAR:   "*",
	SLASH:  "/",
	INC:    "++",
	DEC:    "--",
	ASSIGN: "=",
	AND:    "&&",
	OR:     "||",
	BANG:   "!",
	EQ:     "==",
	NEQ:    "!=",
	GT:     ">",
	GTE:    ">=",
	LT:     "<",
	LTE:    "<=",
	AMP:    "&",
	PIPE:   "|",
	TILDE:  "~",
	CARET:  "^",
	LSHIFT: "<<",
	RSHIFT: ">>",
	ARROW:  "->",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	SEMICOLON: ";",
	COMMA:     ",",

	LET:      "let",
	CONST:    "const",
	IF:       "if",
	ELIF:     "elif",
	ELSE:     "else",
	FOR:      "for",
	WHILE:    "while",
	LOOP:     "loop",
	UNLESS:   "unless",
	BREAK:    "break",
	CONTINUE: "continue",
	FN:       "fn",
	RETURN:   "return",
	NONE:     "none",
}

// String returns the canonical spelling of a token type, or a descriptive
// word for kinds that have no fixed spelling.
func (t Type) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// HasSurface reports whether String returns source text that scans back to t.
func (t Type) HasSurface() bool {
	return t.IsOperator() || t.IsKeyword() || (t >= LPAREN && t <= COMMA)
}

// IsKeyword returns true if the token is a keyword.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsOperator returns true if the token is an operator.
func (t Type) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsLiteral returns true if the token is an identifier or a literal value.
func (t Type) IsLiteral() bool {
	return t > literalStart && t < literalEnd
}

// Types returns every concrete token type, in declaration order.
func Types() []Type {
	var types []Type
	for i := ILLEGAL; i < keywordEnd; i++ {
		if tokenNames[i] != "" {
			types = append(types, i)
		}
	}
	return types
}

// keywords maps keyword strings to token types.
var keywords map[string]Type

func init() {
	keywords = make(map[string]Type)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		keywords[tokenNames[i]] = i
	}
}

// LookupIdent checks if an identifier is a keyword.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
