// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent parser for the xta language.
//
// Design overview:
//
//   - Statements are parsed with straightforward recursive descent.
//   - Expressions are parsed by precedence climbing over ast.BinaryOp
//     binding strengths; equal precedence groups left, assignment right.
//   - The parser pulls one token at a time from a lexer.Scanner and keeps a
//     single token of lookahead.
//   - Errors are collected rather than aborting. When a statement cannot be
//     parsed the parser skips exactly one token and tries again, so every
//     input is consumed in linear time.
package parser

import (
	"strconv"

	"github.com/probechain/xta/lang/ast"
	"github.com/probechain/xta/lang/lexer"
	"github.com/probechain/xta/lang/token"
)

// precLowest is the floor for a full expression, below assignment.
const precLowest = ast.PrecAssign - 1

// binaryOps maps an infix token to its operator. Assignment is handled
// separately because its left side is restricted.
var binaryOps = map[token.Type]ast.BinaryOp{
	token.PLUS:   ast.Add,
	token.MINUS:  ast.Sub,
	token.STAR:   ast.Mul,
	token.SLASH:  ast.Div,
	token.AND:    ast.And,
	token.OR:     ast.Or,
	token.EQ:     ast.Eq,
	token.NEQ:    ast.Neq,
	token.LT:     ast.Less,
	token.GT:     ast.Greater,
	token.LTE:    ast.LessEq,
	token.GTE:    ast.GreaterEq,
	token.AMP:    ast.BitAnd,
	token.PIPE:   ast.BitOr,
	token.CARET:  ast.BitXor,
	token.LSHIFT: ast.LShift,
	token.RSHIFT: ast.RShift,
}

var unaryOps = map[token.Type]ast.UnaryOp{
	token.MINUS: ast.Neg,
	token.BANG:  ast.Not,
	token.TILDE: ast.BitNot,
	token.INC:   ast.Inc,
	token.DEC:   ast.Dec,
}

// ---------------------------------------------------------------------------
// Parser
// ---------------------------------------------------------------------------

// Parser holds the mutable state for a single parse run.
type Parser struct {
	scanner *lexer.Scanner
	tok     token.Token // lookahead
	errors  ErrorList
}

// New creates a parser reading tokens from s.
func New(s *lexer.Scanner) *Parser {
	p := &Parser{scanner: s}
	p.tok = s.NextToken()
	return p
}

// Parse is the public entry point. It scans and parses src and returns the
// syntax tree together with every diagnostic collected on the way.
func Parse(src string) (*ast.File, ErrorList) {
	p := New(lexer.New(src))
	file := p.ParseFile()
	return file, p.Errors()
}

// Errors returns the diagnostics recorded so far.
func (p *Parser) Errors() ErrorList {
	return p.errors
}

// AtEOF reports whether all input has been consumed.
func (p *Parser) AtEOF() bool {
	return p.is(token.EOF)
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

func (p *Parser) peek() token.Token { return p.tok }

func (p *Parser) is(typ token.Type) bool { return p.tok.Type == typ }

// consume returns the lookahead and pulls the next token from the scanner.
func (p *Parser) consume() token.Token {
	tok := p.tok
	p.tok = p.scanner.NextToken()
	return tok
}

// expect consumes the lookahead if it matches typ, otherwise records an
// error and does NOT consume the token.
func (p *Parser) expect(typ token.Type) bool {
	if p.tok.Type == typ {
		p.consume()
		return true
	}
	p.errorExpected(typ)
	return false
}

func (p *Parser) errorExpected(typ token.Type) {
	p.errors.add(&ExpectedError{Loc: p.tok.Loc, Expected: typ, Found: p.tok})
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// ParseFile parses statements until the end of input.
func (p *Parser) ParseFile() *ast.File {
	file := &ast.File{}
	for !p.is(token.EOF) {
		if stmt := p.ParseStatement(); stmt != nil {
			file.Stmts = append(file.Stmts, stmt)
		} else {
			p.consume()
		}
	}
	return file
}

// ParseStatement parses one statement starting at the lookahead. It returns
// nil if the statement is malformed; the error has been recorded and the
// caller decides how to resynchronise.
func (p *Parser) ParseStatement() ast.Stmt {
	switch p.tok.Type {
	case token.LET, token.CONST:
		return p.terminated(p.parseVarDecl())
	case token.FN:
		return p.parseFunction()
	case token.IF:
		return p.parseIf()
	case token.RETURN:
		return p.terminated(p.parseReturn())
	case token.WHILE:
		return p.parseWhile()
	case token.LOOP:
		return p.parseLoop()
	case token.UNLESS:
		return p.parseUnless()
	case token.FOR:
		return p.parseFor()
	case token.BREAK:
		return p.terminated(&ast.Break{Loc: p.consume().Loc})
	case token.CONTINUE:
		return p.terminated(&ast.Continue{Loc: p.consume().Loc})
	}
	return p.terminated(p.parseExprStmt())
}

// terminated requires the ';' that closes a simple statement. The statement
// is dropped if it is missing.
func (p *Parser) terminated(stmt ast.Stmt) ast.Stmt {
	if stmt == nil || !p.expect(token.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseExprStmt() ast.Stmt {
	x := p.parseExpression(precLowest)
	if x == nil {
		return nil
	}
	return &ast.ExprStmt{X: x}
}

// parseVarDecl parses `let name [= value]` and `const name = value`,
// without the trailing ';'.
func (p *Parser) parseVarDecl() ast.Stmt {
	kw := p.consume()
	name := p.peek()
	if !p.expect(token.IDENT) {
		return nil
	}
	decl := &ast.VarDecl{Loc: kw.Loc, Name: name.Literal, IsConst: kw.Type == token.CONST}
	if !decl.IsConst && !p.is(token.ASSIGN) {
		return decl
	}
	if !p.expect(token.ASSIGN) {
		return nil
	}
	if decl.Value = p.parseExpression(precLowest); decl.Value == nil {
		return nil
	}
	return decl
}

// parseFunction parses `fn name(params) [-> type] { body }`.
func (p *Parser) parseFunction() ast.Stmt {
	kw := p.consume()
	name := p.peek()
	if !p.expect(token.IDENT) {
		return nil
	}
	fn := &ast.FunctionDecl{Loc: kw.Loc, Name: name.Literal}

	// A malformed parameter list has been reported; carry on with none so
	// the body is still checked.
	fn.Params, _ = p.parseParams()

	if p.is(token.ARROW) {
		p.consume()
		ret := p.peek()
		if !p.expect(token.IDENT) {
			return nil
		}
		fn.ReturnType = ret.Literal
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil
	}
	fn.Body = body
	return fn
}

// parseParams parses `( name type, name type, ... )`. A missing comma
// between two parameters is reported and parsing continues.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	if !p.expect(token.LPAREN) {
		return nil, false
	}
	var params []ast.Param
	if !p.is(token.RPAREN) {
		for {
			name := p.peek()
			if !p.expect(token.IDENT) {
				p.skipParams()
				return nil, false
			}
			typ := p.peek()
			if !p.expect(token.IDENT) {
				p.skipParams()
				return nil, false
			}
			params = append(params, ast.Param{Loc: name.Loc, Name: name.Literal, Type: typ.Literal})

			if p.is(token.RPAREN) {
				break
			}
			if p.is(token.COMMA) {
				p.consume()
				continue
			}
			p.errorExpected(token.COMMA)
		}
	}
	if !p.expect(token.RPAREN) {
		return nil, false
	}
	return params, true
}

// skipParams abandons a malformed parameter list. It moves past the closing
// ')' unless a '{' or the end of input comes first.
func (p *Parser) skipParams() {
	for !p.is(token.RPAREN) && !p.is(token.LBRACE) && !p.is(token.EOF) {
		p.consume()
	}
	if p.is(token.RPAREN) {
		p.consume()
	}
}

// parseBlock parses `{ stmts }`. Malformed statements inside are skipped one
// token at a time, as at the top level.
func (p *Parser) parseBlock() (ast.Block, bool) {
	if !p.expect(token.LBRACE) {
		return nil, false
	}
	block := ast.Block{}
	for !p.is(token.RBRACE) && !p.is(token.EOF) {
		if stmt := p.ParseStatement(); stmt != nil {
			block = append(block, stmt)
		} else {
			p.consume()
		}
	}
	if !p.expect(token.RBRACE) {
		return nil, false
	}
	return block, true
}

// condBlock parses the `cond { body }` part shared by if, elif, while and
// unless.
func (p *Parser) condBlock() (ast.Expr, ast.Block, bool) {
	cond := p.parseExpression(precLowest)
	if cond == nil {
		return nil, nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, nil, false
	}
	return cond, body, true
}

// parseElse parses an optional `else { body }`.
func (p *Parser) parseElse() (ast.Block, bool) {
	if !p.is(token.ELSE) {
		return nil, true
	}
	p.consume()
	return p.parseBlock()
}

// parseIf parses `if cond { } (elif cond { })* (else { })?`.
func (p *Parser) parseIf() ast.Stmt {
	kw := p.consume()
	cond, then, ok := p.condBlock()
	if !ok {
		return nil
	}
	stmt := &ast.If{Loc: kw.Loc, Cond: cond, Then: then}

	for p.is(token.ELIF) {
		elif := p.consume()
		cond, body, ok := p.condBlock()
		if !ok {
			return nil
		}
		stmt.Elifs = append(stmt.Elifs, ast.Elif{Loc: elif.Loc, Cond: cond, Body: body})
	}

	if stmt.Else, ok = p.parseElse(); !ok {
		return nil
	}
	return stmt
}

// parseReturn parses `return [value]`, without the trailing ';'.
func (p *Parser) parseReturn() ast.Stmt {
	kw := p.consume()
	if p.is(token.SEMICOLON) {
		return &ast.Return{Loc: kw.Loc}
	}
	value := p.parseExpression(precLowest)
	if value == nil {
		return nil
	}
	return &ast.Return{Loc: kw.Loc, Value: value}
}

func (p *Parser) parseWhile() ast.Stmt {
	kw := p.consume()
	cond, body, ok := p.condBlock()
	if !ok {
		return nil
	}
	return &ast.While{Loc: kw.Loc, Cond: cond, Body: body}
}

func (p *Parser) parseLoop() ast.Stmt {
	kw := p.consume()
	body, ok := p.parseBlock()
	if !ok {
		return nil
	}
	return &ast.Loop{Loc: kw.Loc, Body: body}
}

func (p *Parser) parseUnless() ast.Stmt {
	kw := p.consume()
	cond, body, ok := p.condBlock()
	if !ok {
		return nil
	}
	stmt := &ast.Unless{Loc: kw.Loc, Cond: cond, Body: body}
	if stmt.Else, ok = p.parseElse(); !ok {
		return nil
	}
	return stmt
}

// parseFor parses `for [init]; [cond]; [post] { body }`. The init clause is
// a declaration or an expression.
func (p *Parser) parseFor() ast.Stmt {
	kw := p.consume()
	stmt := &ast.For{Loc: kw.Loc}

	if !p.is(token.SEMICOLON) {
		if p.is(token.LET) || p.is(token.CONST) {
			stmt.Init = p.parseVarDecl()
		} else {
			stmt.Init = p.parseExprStmt()
		}
		if stmt.Init == nil {
			return nil
		}
	}
	if !p.expect(token.SEMICOLON) {
		return nil
	}

	if !p.is(token.SEMICOLON) {
		if stmt.Cond = p.parseExpression(precLowest); stmt.Cond == nil {
			return nil
		}
	}
	if !p.expect(token.SEMICOLON) {
		return nil
	}

	if !p.is(token.LBRACE) {
		if stmt.Post = p.parseExpression(precLowest); stmt.Post == nil {
			return nil
		}
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil
	}
	stmt.Body = body
	return stmt
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// ParseExpression parses a full expression, assignment included.
func (p *Parser) ParseExpression() ast.Expr {
	return p.parseExpression(precLowest)
}

// parseExpression parses an expression whose binary operators all bind
// tighter than minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		if p.is(token.ASSIGN) {
			if minPrec >= ast.PrecAssign {
				return left
			}
			return p.parseAssign(left)
		}
		op, ok := binaryOps[p.tok.Type]
		if !ok || op.Precedence() <= minPrec {
			return left
		}
		p.consume()
		right := p.parseExpression(op.Precedence())
		if right == nil {
			return nil
		}
		left = &ast.Binary{Loc: left.Pos(), Left: left, Right: right, Op: op}
	}
}

// parseAssign parses `= value` after left. The right side is parsed below
// assignment precedence, so `a = b = c` is `a = (b = c)`.
func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	p.consume() // '='
	if _, ok := left.(*ast.Identifier); !ok {
		p.errors.add(&ExpectedIdentError{Loc: left.Pos(), Found: p.peek()})
		// Parse and discard the value so the statement ends cleanly.
		p.parseExpression(precLowest)
		return nil
	}
	right := p.parseExpression(precLowest)
	if right == nil {
		return nil
	}
	return &ast.Binary{Loc: left.Pos(), Left: left, Right: right, Op: ast.Assign}
}

// parseUnary parses prefix operators, which bind tighter than any binary
// operator.
func (p *Parser) parseUnary() ast.Expr {
	op, ok := unaryOps[p.tok.Type]
	if !ok {
		return p.parsePrimary()
	}
	tok := p.consume()
	operand := p.parseExpression(ast.PrecPrefix)
	if operand == nil {
		return nil
	}
	return &ast.Unary{Loc: tok.Loc, Operand: operand, Op: op}
}

// parsePrimary parses literals, identifiers, calls and parenthesised
// expressions. Illegal tokens are consumed like malformed numbers; any other
// token that cannot start an expression is reported and left in place.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case token.INT:
		p.consume()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errors.add(&InvalidNumberError{Tok: tok, Err: err})
			return nil
		}
		return &ast.Literal{Loc: tok.Loc, Value: ast.IntValue(v)}

	case token.DOUBLE:
		p.consume()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errors.add(&InvalidNumberError{Tok: tok, Err: err})
			return nil
		}
		return &ast.Literal{Loc: tok.Loc, Value: ast.DoubleValue(v)}

	case token.STRING:
		p.consume()
		return &ast.Literal{Loc: tok.Loc, Value: ast.StringValue(tok.Literal)}

	case token.BOOL:
		p.consume()
		return &ast.Literal{Loc: tok.Loc, Value: ast.BoolValue(tok.Literal == "true")}

	case token.NONE:
		p.consume()
		return &ast.Literal{Loc: tok.Loc, Value: ast.NoneValue{}}

	case token.IDENT:
		p.consume()
		if p.is(token.LPAREN) {
			return p.parseCall(tok)
		}
		return &ast.Identifier{Loc: tok.Loc, Name: tok.Literal}

	case token.LPAREN:
		p.consume()
		x := p.parseExpression(precLowest)
		if x == nil || !p.expect(token.RPAREN) {
			return nil
		}
		return x

	case token.ILLEGAL:
		p.consume()
		p.errors.add(&IllegalTokenError{Tok: tok})
		return nil
	}
	p.errors.add(&ExpectedExprError{Found: tok})
	return nil
}

// parseCall parses the argument list of a call to name. A trailing comma is
// accepted; a missing comma between arguments is reported and parsing
// continues.
func (p *Parser) parseCall(name token.Token) ast.Expr {
	p.consume() // '('
	var args []ast.Expr
	for !p.is(token.RPAREN) && !p.is(token.EOF) {
		arg := p.parseExpression(precLowest)
		if arg == nil {
			return nil
		}
		args = append(args, arg)

		if p.is(token.RPAREN) {
			break
		}
		if p.is(token.COMMA) {
			p.consume()
			continue
		}
		p.errorExpected(token.COMMA)
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.Call{Loc: name.Loc, Name: name.Literal, Args: args}
}
