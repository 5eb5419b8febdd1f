// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package frontend drives the scanner and parser over whole source texts.
// It caches parse results by content hash and parses batches of files in
// parallel. A Frontend is safe for concurrent use.
package frontend

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"

	"github.com/probechain/xta/lang/ast"
	"github.com/probechain/xta/lang/lexer"
	"github.com/probechain/xta/lang/parser"
	"github.com/probechain/xta/lang/token"
)

// ErrNoSources is returned by ParseAll when it is given nothing to parse.
var ErrNoSources = errors.New("no source files given")

// Config are the configuration parameters of the front end.
type Config struct {
	CacheSize int // Number of parse results to keep; 0 disables the cache
	Workers   int // Files parsed concurrently by ParseAll; 0 means one per CPU
}

// DefaultConfig contains default settings for use on the current machine.
var DefaultConfig = Config{
	CacheSize: 64,
	Workers:   runtime.NumCPU(),
}

// Input is one named source text handed to ParseAll.
type Input struct {
	Name string
	Text string
}

// Stats summarises a syntax tree.
type Stats struct {
	Statements int // every statement node, nested ones included
	Functions  int
	Calls      int
}

// Result is the outcome of parsing one source text. Results served from the
// cache share File and Errors with the first parse; neither may be
// modified.
type Result struct {
	Name    string
	Hash    common.Hash // Keccak-256 of the source text
	File    *ast.File
	Errors  parser.ErrorList
	Stats   Stats
	Elapsed time.Duration
	Cached  bool
}

// cached is the part of a Result that depends only on the source text.
type cached struct {
	file   *ast.File
	errors parser.ErrorList
	stats  Stats
}

// Frontend parses source texts.
type Frontend struct {
	cache   *lru.ARCCache // nil when caching is disabled
	workers int
	log     log.Logger
}

// New creates a front end with the given configuration. A nil logger logs to
// the root logger.
func New(cfg Config, logger log.Logger) (*Frontend, error) {
	if logger == nil {
		logger = log.New("module", "frontend")
	}
	f := &Frontend{workers: cfg.Workers, log: logger}
	if f.workers <= 0 {
		f.workers = runtime.NumCPU()
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.NewARC(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		f.cache = cache
	}
	return f, nil
}

// Hash returns the cache key of a source text.
func Hash(text string) common.Hash {
	var h common.Hash
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(text))
	hasher.Sum(h[:0])
	return h
}

// Parse scans and parses text. Diagnostics are part of the result, never an
// error.
func (f *Frontend) Parse(name, text string) *Result {
	start := time.Now()
	hash := Hash(text)

	if f.cache != nil {
		if v, ok := f.cache.Get(hash); ok {
			c := v.(*cached)
			res := &Result{Name: name, Hash: hash, File: c.file, Errors: c.errors, Stats: c.stats, Cached: true}
			res.Elapsed = time.Since(start)
			f.log.Trace("Parse cache hit", "name", name, "hash", hash.TerminalString())
			return res
		}
	}
	file, errs := parser.Parse(text)
	c := &cached{file: file, errors: errs, stats: Collect(file)}
	if f.cache != nil {
		f.cache.Add(hash, c)
	}
	res := &Result{Name: name, Hash: hash, File: c.file, Errors: c.errors, Stats: c.stats}
	res.Elapsed = time.Since(start)

	f.log.Debug("Parsed source", "name", name, "stmts", len(file.Stmts), "diagnostics", len(errs),
		"elapsed", common.PrettyDuration(res.Elapsed))
	return res
}

// ParseAll parses every input, at most Workers at a time. Results are
// returned in input order. Parsing stops early if ctx is cancelled.
func (f *Frontend) ParseAll(ctx context.Context, inputs []Input) ([]*Result, error) {
	if len(inputs) == 0 {
		return nil, ErrNoSources
	}
	start := time.Now()
	results := make([]*Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = f.Parse(inputs[i].Name, inputs[i].Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	f.log.Debug("Parsed sources", "files", len(inputs), "workers", f.workers,
		"elapsed", common.PrettyDuration(time.Since(start)))
	return results, nil
}

// Tokens returns the full token stream of text, EOF included.
func (f *Frontend) Tokens(text string) []token.Token {
	return lexer.New(text).Tokenize()
}

// Collect counts the statements, function declarations and calls in a tree.
func Collect(node ast.Node) Stats {
	var s Stats
	ast.Inspect(node, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.FunctionDecl:
			s.Functions++
			s.Statements++
		case *ast.Call:
			s.Calls++
		case ast.Stmt:
			s.Statements++
		}
		return true
	})
	return s
}
