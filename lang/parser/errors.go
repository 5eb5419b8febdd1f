// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"fmt"
	"sort"

	"github.com/probechain/xta/lang/token"
)

// Diagnostic is a syntax error found while parsing. The set of
// implementations is closed to this package.
type Diagnostic interface {
	error
	Pos() token.Loc
	diagnostic()
}

// ExpectedError reports that a specific token kind was required.
type ExpectedError struct {
	Loc      token.Loc
	Expected token.Type
	Found    token.Token
}

func (e *ExpectedError) Pos() token.Loc { return e.Loc }
func (e *ExpectedError) diagnostic()    {}
func (e *ExpectedError) Error() string {
	return fmt.Sprintf("~ (%s) : Expected '%s', found '%s'", e.Loc, e.Expected, e.Found)
}

// ExpectedIdentError reports an assignment whose left side is not a plain
// identifier. Loc is the location of the left side; Found is the token that
// followed the '='.
type ExpectedIdentError struct {
	Loc   token.Loc
	Found token.Token
}

func (e *ExpectedIdentError) Pos() token.Loc { return e.Loc }
func (e *ExpectedIdentError) diagnostic()    {}
func (e *ExpectedIdentError) Error() string {
	return fmt.Sprintf("~ (%s) : Expected an identifier, found '%s'", e.Loc, e.Found)
}

// ExpectedExprError reports a token that cannot start an expression.
type ExpectedExprError struct {
	Found token.Token
}

func (e *ExpectedExprError) Pos() token.Loc { return e.Found.Loc }
func (e *ExpectedExprError) diagnostic()    {}
func (e *ExpectedExprError) Error() string {
	return fmt.Sprintf("~ (%s) : Expected an expression, found '%s'", e.Found.Loc, e.Found)
}

// IllegalTokenError reports an ILLEGAL token produced by the scanner.
type IllegalTokenError struct {
	Tok token.Token
}

func (e *IllegalTokenError) Pos() token.Loc { return e.Tok.Loc }
func (e *IllegalTokenError) diagnostic()    {}
func (e *IllegalTokenError) Error() string {
	return fmt.Sprintf("~ (%s) : Illegal token '%s'", e.Tok.Loc, e.Tok.Literal)
}

// InvalidNumberError reports a numeric literal that does not fit its type.
type InvalidNumberError struct {
	Tok token.Token
	Err error // from strconv
}

func (e *InvalidNumberError) Pos() token.Loc { return e.Tok.Loc }
func (e *InvalidNumberError) diagnostic()    {}
func (e *InvalidNumberError) Unwrap() error  { return e.Err }
func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("~ (%s) : Invalid number format '%s'", e.Tok.Loc, e.Tok.Literal)
}

// ErrorList is the list of diagnostics of one parse, in the order they were
// detected. The zero value is an empty list ready to use.
type ErrorList []Diagnostic

func (l *ErrorList) add(d Diagnostic) {
	*l = append(*l, d)
}

// Len, Less and Swap implement sort.Interface, ordering by location.
func (l ErrorList) Len() int           { return len(l) }
func (l ErrorList) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool { return l[i].Pos().Before(l[j].Pos()) }

// Sort orders the list by location. Diagnostics at the same location keep
// their detection order.
func (l ErrorList) Sort() {
	sort.Stable(l)
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns an error equivalent to this list, or nil if it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
