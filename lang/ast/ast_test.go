// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/probechain/xta/lang/token"
)

func loc(row, col uint) token.Loc { return token.Loc{Row: row, Col: col} }

func ident(name string) *Identifier { return &Identifier{Name: name} }

func intLit(v int64) *Literal { return &Literal{Value: IntValue(v)} }

func TestStmtString(t *testing.T) {
	add := &Binary{Left: ident("a"), Right: ident("b"), Op: Add}
	cases := []struct {
		node Node
		want string
	}{
		{&VarDecl{Name: "x", Value: &Binary{Left: intLit(1), Right: &Binary{Left: intLit(2), Right: intLit(3), Op: Mul}, Op: Add}}, "let x = (1 + (2 * 3));"},
		{&VarDecl{Name: "x"}, "let x;"},
		{&VarDecl{Name: "k", Value: intLit(1), IsConst: true}, "const k = 1;"},
		{&FunctionDecl{
			Name:       "add",
			Params:     []Param{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}},
			ReturnType: "int",
			Body:       Block{&Return{Value: add}},
		}, "fn add(a int, b int) -> int { return (a + b); }"},
		{&FunctionDecl{Name: "main", Body: Block{}}, "fn main() {}"},
		{&If{
			Cond:  ident("a"),
			Then:  Block{&Break{}},
			Elifs: []Elif{{Cond: ident("b"), Body: Block{&Continue{}}}},
			Else:  Block{},
		}, "if a { break; } elif b { continue; } else {}"},
		{&If{Cond: ident("a"), Then: Block{}}, "if a {}"},
		{&Return{}, "return;"},
		{&ExprStmt{X: &Call{Name: "f", Args: []Expr{intLit(1), ident("y")}}}, "f(1, y);"},
		{&While{Cond: ident("go"), Body: Block{}}, "while go {}"},
		{&Loop{Body: Block{&Break{}}}, "loop { break; }"},
		{&Unless{Cond: ident("ok"), Body: Block{}, Else: Block{}}, "unless ok {} else {}"},
		{&For{
			Init: &VarDecl{Name: "i", Value: intLit(0)},
			Cond: &Binary{Left: ident("i"), Right: intLit(10), Op: Less},
			Post: &Unary{Operand: ident("i"), Op: Inc},
			Body: Block{},
		}, "for let i = 0; (i < 10); (++i) {}"},
		{&For{Body: Block{}}, "for ;; {}"},
	}
	for _, c := range cases {
		if got := c.node.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		expr Expr
		want string
	}{
		{&Binary{Left: ident("a"), Right: &Binary{Left: ident("b"), Right: ident("c"), Op: Assign}, Op: Assign}, "(a = (b = c))"},
		{&Unary{Operand: ident("x"), Op: Neg}, "(-x)"},
		{&Unary{Operand: ident("x"), Op: BitNot}, "(~x)"},
		{&Literal{Value: DoubleValue(2.5)}, "2.5"},
		{&Literal{Value: DoubleValue(3)}, "3.0"},
		{&Literal{Value: StringValue(`say \"hi\"`)}, `"say \"hi\""`},
		{&Literal{Value: BoolValue(true)}, "true"},
		{&Literal{Value: NoneValue{}}, "none"},
		{&Call{Name: "now"}, "now()"},
	}
	for _, c := range cases {
		if got := c.expr.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestBinaryOps(t *testing.T) {
	// Lowest to highest, per the precedence ladder.
	ladder := [][]BinaryOp{
		{Assign},
		{Or},
		{And},
		{Less, Greater, LessEq, GreaterEq},
		{Eq, Neq},
		{BitOr},
		{BitXor},
		{BitAnd},
		{LShift, RShift},
		{Add, Sub},
		{Mul, Div},
	}
	for prec, ops := range ladder {
		for _, op := range ops {
			if got := op.Precedence(); got != prec {
				t.Errorf("%s precedence = %d, want %d", op, got, prec)
			}
		}
	}
	if PrecPrefix <= Mul.Precedence() {
		t.Error("prefix operators must bind tighter than any binary operator")
	}

	for op := Add; op <= Assign; op++ {
		kinds := 0
		for _, is := range []bool{op.IsLogical(), op.IsBitwise(), op.IsComparison()} {
			if is {
				kinds++
			}
		}
		if kinds > 1 {
			t.Errorf("%s classified %d ways", op, kinds)
		}
	}
	if !And.IsLogical() || !Or.IsLogical() {
		t.Error("&& and || are logical")
	}
	if !LShift.IsBitwise() || Add.IsBitwise() {
		t.Error("bitwise classification")
	}
	if !GreaterEq.IsComparison() || Assign.IsComparison() {
		t.Error("comparison classification")
	}
	if got := BinaryOp(99).String(); got != "BinaryOp(99)" {
		t.Errorf("unknown op rendered as %q", got)
	}
	if got := Dec.String(); got != "--" {
		t.Errorf("Dec rendered as %q", got)
	}
}

func TestPositions(t *testing.T) {
	left := &Identifier{Loc: loc(3, 5), Name: "a"}
	bin := &Binary{Loc: left.Loc, Left: left, Right: &Identifier{Loc: loc(3, 9), Name: "b"}, Op: Add}
	stmt := &ExprStmt{X: bin}
	if stmt.Pos() != loc(3, 5) {
		t.Errorf("ExprStmt.Pos() = %s, want 3:5", stmt.Pos())
	}
	file := &File{Stmts: []Stmt{stmt}}
	if file.Pos() != loc(3, 5) {
		t.Errorf("File.Pos() = %s, want 3:5", file.Pos())
	}
	if (&File{}).Pos() != loc(1, 1) {
		t.Error("empty file should start at 1:1")
	}
}

func TestInspect(t *testing.T) {
	// fn f(x int) { if x { g(x + 1); } else { return; } }
	file := &File{Stmts: []Stmt{
		&FunctionDecl{
			Name:   "f",
			Params: []Param{{Name: "x", Type: "int"}},
			Body: Block{
				&If{
					Cond: ident("x"),
					Then: Block{&ExprStmt{X: &Call{Name: "g", Args: []Expr{
						&Binary{Left: ident("x"), Right: intLit(1), Op: Add},
					}}}},
					Else: Block{&Return{}},
				},
			},
		},
		&For{Init: &VarDecl{Name: "i"}, Body: Block{&Break{}}},
	}}

	var got []string
	Inspect(file, func(n Node) bool {
		if n == nil {
			return true
		}
		switch n := n.(type) {
		case *File:
			got = append(got, "file")
		case *FunctionDecl:
			got = append(got, "fn "+n.Name)
		case *If:
			got = append(got, "if")
		case *ExprStmt:
			got = append(got, "expr")
		case *Call:
			got = append(got, "call "+n.Name)
		case *Binary:
			got = append(got, "binary "+n.Op.String())
		case *Identifier:
			got = append(got, "ident "+n.Name)
		case *Literal:
			got = append(got, "lit "+n.String())
		case *Return:
			got = append(got, "return")
		case *For:
			got = append(got, "for")
		case *VarDecl:
			got = append(got, "var "+n.Name)
		case *Break:
			got = append(got, "break")
		}
		return true
	})
	want := []string{
		"file",
		"fn f",
		"if", "ident x",
		"expr", "call g", "binary +", "ident x", "lit 1",
		"return",
		"for", "var i", "break",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}

	// Returning false prunes the subtree.
	var calls int
	Inspect(file, func(n Node) bool {
		if _, ok := n.(*Call); ok {
			calls++
		}
		_, isFn := n.(*FunctionDecl)
		return !isFn
	})
	if calls != 0 {
		t.Errorf("visited %d calls inside a pruned function", calls)
	}
}
