// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/xta/lang/ast"
	"github.com/probechain/xta/lang/lexer"
	"github.com/probechain/xta/lang/parser"
	"github.com/probechain/xta/lang/token"
)

const (
	historyFile = ".xtac_history"
	promptMain  = "xta> "
	promptCont  = "...  "
)

// repl is the repl command.
func repl(ctx *cli.Context) error {
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("xtac %s, type :quit or Ctrl-D to leave\n", version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := &history{path: historyPath()}
	hist.load(ln)
	defer hist.save(ln)

	// Prompt cannot be interrupted, so history is flushed before exiting.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		hist.save(ln)
		ln.Close()
		os.Exit(130)
	}()

	for {
		src, ok := readInput(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if x, ok := expression(src); ok {
			env.printer.expression(x)
			continue
		}
		res := env.frontend.Parse("<repl>", src)
		env.printer.statements(res.File)
		env.printer.diagnostics("", res.Errors)
	}
}

// historyPath is the REPL history file in the home directory, or in the
// working directory when there is no home.
func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("Keeping REPL history in the working directory", "err", err)
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

// historyStore is the history side of a liner.State.
type historyStore interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// history persists line history to a file. save writes the file at most
// once.
type history struct {
	path string
	once sync.Once
}

func (h *history) load(s historyStore) {
	f, err := os.Open(h.path)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := s.ReadHistory(f); err != nil {
		log.Warn("Failed to read REPL history", "path", h.path, "err", err)
	}
}

func (h *history) save(s historyStore) {
	h.once.Do(func() {
		f, err := os.Create(h.path)
		if err != nil {
			log.Warn("Failed to save REPL history", "path", h.path, "err", err)
			return
		}
		defer f.Close()
		if _, err := s.WriteHistory(f); err != nil {
			log.Warn("Failed to save REPL history", "path", h.path, "err", err)
		}
	})
}

// expression parses src as one bare expression, which the REPL echoes in
// grouped form. It fails unless src is exactly one well-formed expression.
func expression(src string) (ast.Expr, bool) {
	p := parser.New(lexer.New(src))
	x := p.ParseExpression()
	if x == nil || len(p.Errors()) > 0 || !p.AtEOF() {
		return nil, false
	}
	return x, true
}

// readInput reads lines until they form a complete input. It returns false
// once the user closes the input stream.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			// Ctrl-C drops the pending input.
			return "", true
		case errors.Is(err, io.EOF):
			return "", false
		case err != nil:
			log.Error("Failed to read input", "err", err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src stops in the middle of a construct, so
// that more input could still make it parse.
func incomplete(src string) bool {
	if _, ok := expression(src); ok {
		return false
	}
	_, errs := parser.Parse(src)
	for _, err := range errs {
		switch err := err.(type) {
		case *parser.ExpectedError:
			if err.Found.Type == token.EOF {
				return true
			}
		case *parser.ExpectedExprError:
			if err.Found.Type == token.EOF {
				return true
			}
		case *parser.IllegalTokenError:
			// Only an unterminated string yields an illegal token
			// starting with a quote.
			if strings.HasPrefix(err.Tok.Literal, `"`) {
				return true
			}
		}
	}
	return false
}
