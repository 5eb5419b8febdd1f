// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/probechain/xta/lang/ast"
	"github.com/probechain/xta/lang/parser"
	"github.com/probechain/xta/lang/token"
)

// spewConfig renders syntax trees for --emit spew.
var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// printer writes command output: statements and tables to out, diagnostics
// to errOut.
type printer struct {
	out    io.Writer
	errOut io.Writer
	cfg    outputConfig

	errorc *color.Color
	warnc  *color.Color
	okc    *color.Color
	dimc   *color.Color
}

func newPrinter(out, errOut io.Writer, cfg outputConfig) *printer {
	p := &printer{
		out:    out,
		errOut: errOut,
		cfg:    cfg,
		errorc: color.New(color.FgRed),
		warnc:  color.New(color.FgYellow),
		okc:    color.New(color.FgGreen),
		dimc:   color.New(color.Faint),
	}
	if !cfg.Color {
		for _, c := range []*color.Color{p.errorc, p.warnc, p.okc, p.dimc} {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) elapsed(phase string, d time.Duration) {
	fmt.Fprintln(p.out, p.dimc.Sprintf("%s: %v", phase, d))
}

// statements prints the top-level statements of file in the configured
// emit mode.
func (p *printer) statements(file *ast.File) {
	switch p.cfg.Emit {
	case emitNone:
	case emitSpew:
		for _, stmt := range file.Stmts {
			spewConfig.Fdump(p.out, stmt)
		}
	default:
		for _, stmt := range file.Stmts {
			fmt.Fprintln(p.out, stmt)
		}
	}
}

// expression prints a single expression in the configured emit mode.
func (p *printer) expression(x ast.Expr) {
	switch p.cfg.Emit {
	case emitNone:
	case emitSpew:
		spewConfig.Fdump(p.out, x)
	default:
		fmt.Fprintln(p.out, x)
	}
}

// diagnostics prints errs, one per line, prefixed with name if it is set.
func (p *printer) diagnostics(name string, errs parser.ErrorList) {
	if p.cfg.SortDiagnostics {
		sorted := make(parser.ErrorList, len(errs))
		copy(sorted, errs)
		sorted.Sort()
		errs = sorted
	}
	for _, err := range errs {
		if name != "" {
			fmt.Fprintln(p.errOut, p.errorc.Sprintf("%s: %v", name, err))
		} else {
			fmt.Fprintln(p.errOut, p.errorc.Sprint(err))
		}
	}
}

func (p *printer) summary(files, diags int) {
	plural := "s"
	if files == 1 {
		plural = ""
	}
	if diags == 0 {
		fmt.Fprintln(p.errOut, p.okc.Sprintf("%d file%s checked, no diagnostics", files, plural))
		return
	}
	fmt.Fprintln(p.errOut, p.warnc.Sprintf("%d file%s checked, %d diagnostics", files, plural, diags))
}

// tokens prints a token stream as a table.
func (p *printer) tokens(toks []token.Token) {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Loc", "Kind", "Literal"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, tok := range toks {
		kind := tok.Type.String()
		if tok.Type == token.ILLEGAL {
			kind = p.errorc.Sprint(kind)
		}
		table.Append([]string{tok.Loc.String(), kind, fmt.Sprintf("%q", tok.Literal)})
	}
	table.Render()
}
