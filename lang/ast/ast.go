// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the syntax tree for the xta language.
//
// Design overview:
//
//   - All nodes implement Node via Pos and String.
//   - Statements and expressions each have a marker interface that embeds
//     Node, so the set of variants is closed to this package.
//   - Every node carries the location of its leading token; a Binary
//     expression takes the location of its left operand.
//   - String renders a fully parenthesised form used by tests and xtac.
//   - Trees are built once by the parser and never mutated afterwards.
package ast

import (
	"strconv"
	"strings"

	"github.com/probechain/xta/lang/token"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every AST node implements.
type Node interface {
	// Pos returns the location of the token that starts the node.
	Pos() token.Loc

	// String returns a parenthesised representation of the node.
	String() string
}

// Stmt is a marker interface for all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a marker interface for all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// ---------------------------------------------------------------------------
// File
// ---------------------------------------------------------------------------

// File is the root of every parse tree: the top-level statements of one
// source text, in order.
type File struct {
	Stmts []Stmt
}

func (f *File) Pos() token.Loc {
	if len(f.Stmts) > 0 {
		return f.Stmts[0].Pos()
	}
	return token.Loc{Row: 1, Col: 1}
}

func (f *File) String() string {
	var out strings.Builder
	for _, s := range f.Stmts {
		out.WriteString(s.String())
		out.WriteByte('\n')
	}
	return out.String()
}

// Block is a brace-delimited statement sequence. An empty block is a
// non-nil, zero-length Block; a nil Block means the block is absent.
type Block []Stmt

func (b Block) String() string {
	if len(b) == 0 {
		return "{}"
	}
	parts := make([]string, len(b))
	for i, s := range b {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// VarDecl is `let name = value;` or `const name = value;`. Value is nil for
// `let name;`.
type VarDecl struct {
	Loc     token.Loc
	Name    string
	Value   Expr
	IsConst bool
}

func (s *VarDecl) stmtNode()      {}
func (s *VarDecl) Pos() token.Loc { return s.Loc }
func (s *VarDecl) String() string {
	kw := "let"
	if s.IsConst {
		kw = "const"
	}
	if s.Value == nil {
		return kw + " " + s.Name + ";"
	}
	return kw + " " + s.Name + " = " + s.Value.String() + ";"
}

// Param is a single `name type` pair of a function signature.
type Param struct {
	Loc  token.Loc
	Name string
	Type string
}

func (p Param) String() string { return p.Name + " " + p.Type }

// FunctionDecl is `fn name(params) -> ret { body }`. ReturnType is empty when
// the arrow clause is absent.
type FunctionDecl struct {
	Loc        token.Loc
	Name       string
	Params     []Param
	ReturnType string
	Body       Block
}

func (s *FunctionDecl) stmtNode()      {}
func (s *FunctionDecl) Pos() token.Loc { return s.Loc }
func (s *FunctionDecl) String() string {
	var out strings.Builder
	out.WriteString("fn ")
	out.WriteString(s.Name)
	out.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteByte(')')
	if s.ReturnType != "" {
		out.WriteString(" -> ")
		out.WriteString(s.ReturnType)
	}
	out.WriteByte(' ')
	out.WriteString(s.Body.String())
	return out.String()
}

// Elif is one `elif cond { body }` arm of an If.
type Elif struct {
	Loc  token.Loc
	Cond Expr
	Body Block
}

// If is an if/elif/else chain. Else is nil when there is no else arm.
type If struct {
	Loc   token.Loc
	Cond  Expr
	Then  Block
	Elifs []Elif
	Else  Block
}

func (s *If) stmtNode()      {}
func (s *If) Pos() token.Loc { return s.Loc }
func (s *If) String() string {
	var out strings.Builder
	out.WriteString("if " + s.Cond.String() + " " + s.Then.String())
	for _, e := range s.Elifs {
		out.WriteString(" elif " + e.Cond.String() + " " + e.Body.String())
	}
	if s.Else != nil {
		out.WriteString(" else " + s.Else.String())
	}
	return out.String()
}

// Return is `return;` or `return value;`.
type Return struct {
	Loc   token.Loc
	Value Expr
}

func (s *Return) stmtNode()      {}
func (s *Return) Pos() token.Loc { return s.Loc }
func (s *Return) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) stmtNode()      {}
func (s *ExprStmt) Pos() token.Loc { return s.X.Pos() }
func (s *ExprStmt) String() string { return s.X.String() + ";" }

// While is `while cond { body }`.
type While struct {
	Loc  token.Loc
	Cond Expr
	Body Block
}

func (s *While) stmtNode()      {}
func (s *While) Pos() token.Loc { return s.Loc }
func (s *While) String() string { return "while " + s.Cond.String() + " " + s.Body.String() }

// Loop is an unconditional `loop { body }`.
type Loop struct {
	Loc  token.Loc
	Body Block
}

func (s *Loop) stmtNode()      {}
func (s *Loop) Pos() token.Loc { return s.Loc }
func (s *Loop) String() string { return "loop " + s.Body.String() }

// Unless is `unless cond { body } else { ... }`; the body runs when cond is
// false.
type Unless struct {
	Loc  token.Loc
	Cond Expr
	Body Block
	Else Block
}

func (s *Unless) stmtNode()      {}
func (s *Unless) Pos() token.Loc { return s.Loc }
func (s *Unless) String() string {
	str := "unless " + s.Cond.String() + " " + s.Body.String()
	if s.Else != nil {
		str += " else " + s.Else.String()
	}
	return str
}

// For is `for init; cond; post { body }`. Every clause may be nil.
type For struct {
	Loc  token.Loc
	Init Stmt
	Cond Expr
	Post Expr
	Body Block
}

func (s *For) stmtNode()      {}
func (s *For) Pos() token.Loc { return s.Loc }
func (s *For) String() string {
	var out strings.Builder
	out.WriteString("for ")
	if s.Init != nil {
		out.WriteString(s.Init.String()) // carries its own ';'
	} else {
		out.WriteByte(';')
	}
	if s.Cond != nil {
		out.WriteString(" " + s.Cond.String())
	}
	out.WriteByte(';')
	if s.Post != nil {
		out.WriteString(" " + s.Post.String())
	}
	out.WriteString(" " + s.Body.String())
	return out.String()
}

// Break is `break;`.
type Break struct {
	Loc token.Loc
}

func (s *Break) stmtNode()      {}
func (s *Break) Pos() token.Loc { return s.Loc }
func (s *Break) String() string { return "break;" }

// Continue is `continue;`.
type Continue struct {
	Loc token.Loc
}

func (s *Continue) stmtNode()      {}
func (s *Continue) Pos() token.Loc { return s.Loc }
func (s *Continue) String() string { return "continue;" }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Binary is `left op right`, including assignment. Loc is the left
// operand's location.
type Binary struct {
	Loc   token.Loc
	Left  Expr
	Right Expr
	Op    BinaryOp
}

func (e *Binary) exprNode()      {}
func (e *Binary) Pos() token.Loc { return e.Loc }
func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// Unary is a prefix operator applied to Operand.
type Unary struct {
	Loc     token.Loc
	Operand Expr
	Op      UnaryOp
}

func (e *Unary) exprNode()      {}
func (e *Unary) Pos() token.Loc { return e.Loc }
func (e *Unary) String() string { return "(" + e.Op.String() + e.Operand.String() + ")" }

// Literal is a constant written in the source.
type Literal struct {
	Loc   token.Loc
	Value Value
}

func (e *Literal) exprNode()      {}
func (e *Literal) Pos() token.Loc { return e.Loc }
func (e *Literal) String() string { return e.Value.String() }

// Identifier is a bare name.
type Identifier struct {
	Loc  token.Loc
	Name string
}

func (e *Identifier) exprNode()      {}
func (e *Identifier) Pos() token.Loc { return e.Loc }
func (e *Identifier) String() string { return e.Name }

// Call is `name(args...)`.
type Call struct {
	Loc  token.Loc
	Name string
	Args []Expr
}

func (e *Call) exprNode()      {}
func (e *Call) Pos() token.Loc { return e.Loc }
func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")"
}

// ---------------------------------------------------------------------------
// Literal values
// ---------------------------------------------------------------------------

// Value is the payload of a Literal: one of IntValue, DoubleValue,
// StringValue, BoolValue or NoneValue.
type Value interface {
	String() string
	value()
}

type (
	IntValue    int64
	DoubleValue float64
	// StringValue holds the raw text between the quotes, escapes included.
	StringValue string
	BoolValue   bool
	NoneValue   struct{}
)

func (IntValue) value()    {}
func (DoubleValue) value() {}
func (StringValue) value() {}
func (BoolValue) value()   {}
func (NoneValue) value()   {}

func (v IntValue) String() string { return strconv.FormatInt(int64(v), 10) }

func (v DoubleValue) String() string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func (v StringValue) String() string { return `"` + string(v) + `"` }
func (v BoolValue) String() string   { return strconv.FormatBool(bool(v)) }
func (NoneValue) String() string     { return "none" }
