// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import "fmt"

// Visitor's Visit method is invoked for each node encountered by Walk. If the
// returned visitor w is not nil, Walk visits each of the children of node
// with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a tree in depth-first order, children in source order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		walkStmts(v, n.Stmts)

	case *VarDecl:
		if n.Value != nil {
			Walk(v, n.Value)
		}

	case *FunctionDecl:
		walkStmts(v, n.Body)

	case *If:
		Walk(v, n.Cond)
		walkStmts(v, n.Then)
		for _, e := range n.Elifs {
			Walk(v, e.Cond)
			walkStmts(v, e.Body)
		}
		walkStmts(v, n.Else)

	case *Return:
		if n.Value != nil {
			Walk(v, n.Value)
		}

	case *ExprStmt:
		Walk(v, n.X)

	case *While:
		Walk(v, n.Cond)
		walkStmts(v, n.Body)

	case *Loop:
		walkStmts(v, n.Body)

	case *Unless:
		Walk(v, n.Cond)
		walkStmts(v, n.Body)
		walkStmts(v, n.Else)

	case *For:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.Post != nil {
			Walk(v, n.Post)
		}
		walkStmts(v, n.Body)

	case *Break, *Continue, *Literal, *Identifier:
		// leaves

	case *Binary:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *Unary:
		Walk(v, n.Operand)

	case *Call:
		for _, a := range n.Args {
			Walk(v, a)
		}

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

func walkStmts(v Visitor, list []Stmt) {
	for _, s := range list {
		Walk(v, s)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses a tree in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a
// call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
