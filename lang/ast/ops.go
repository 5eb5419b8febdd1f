// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import "fmt"

// Binding strength of binary operators, lowest first. Prefix operators bind
// tighter than any binary operator.
const (
	PrecAssign = iota  // =
	PrecOr             // ||
	PrecAnd            // &&
	PrecCompare        // < > <= >=
	PrecEquality       // == !=
	PrecBitOr          // |
	PrecBitXor         // ^
	PrecBitAnd         // &
	PrecShift          // << >>
	PrecAdditive       // + -
	PrecMultiplicative // * /
	PrecPrefix         // -x !x ~x ++x --x
)

// BinaryOp is the operator of a Binary expression. The tree never refers to
// token.Type.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	And
	Or
	Eq
	Neq
	Less
	Greater
	LessEq
	GreaterEq
	BitAnd
	BitOr
	BitXor
	LShift
	RShift
	Assign
)

var binaryOps = [...]struct {
	text string
	prec int
}{
	Add:       {"+", PrecAdditive},
	Sub:       {"-", PrecAdditive},
	Mul:       {"*", PrecMultiplicative},
	Div:       {"/", PrecMultiplicative},
	And:       {"&&", PrecAnd},
	Or:        {"||", PrecOr},
	Eq:        {"==", PrecEquality},
	Neq:       {"!=", PrecEquality},
	Less:      {"<", PrecCompare},
	Greater:   {">", PrecCompare},
	LessEq:    {"<=", PrecCompare},
	GreaterEq: {">=", PrecCompare},
	BitAnd:    {"&", PrecBitAnd},
	BitOr:     {"|", PrecBitOr},
	BitXor:    {"^", PrecBitXor},
	LShift:    {"<<", PrecShift},
	RShift:    {">>", PrecShift},
	Assign:    {"=", PrecAssign},
}

func (op BinaryOp) valid() bool {
	return op >= 0 && int(op) < len(binaryOps)
}

func (op BinaryOp) String() string {
	if !op.valid() {
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
	return binaryOps[op].text
}

// Precedence returns the binding strength of op. Higher binds tighter.
func (op BinaryOp) Precedence() int {
	if !op.valid() {
		return -1
	}
	return binaryOps[op].prec
}

// IsLogical reports whether op is && or ||.
func (op BinaryOp) IsLogical() bool {
	return op == And || op == Or
}

// IsBitwise reports whether op works on the bits of its operands.
func (op BinaryOp) IsBitwise() bool {
	switch op {
	case BitAnd, BitOr, BitXor, LShift, RShift:
		return true
	}
	return false
}

// IsComparison reports whether op yields a boolean from two values.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case Eq, Neq, Less, Greater, LessEq, GreaterEq:
		return true
	}
	return false
}

// UnaryOp is the operator of a Unary expression.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
	Inc
	Dec
	BitNot
)

var unaryOps = [...]string{
	Neg:    "-",
	Not:    "!",
	Inc:    "++",
	Dec:    "--",
	BitNot: "~",
}

func (op UnaryOp) String() string {
	if op < 0 || int(op) >= len(unaryOps) {
		return fmt.Sprintf("UnaryOp(%d)", int(op))
	}
	return unaryOps[op]
}
