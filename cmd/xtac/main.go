// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command xtac is the xta language front end.
//
// Usage:
//
//	xtac [global flags] run [--emit ast|spew|none] <source.xta>
//	xtac [global flags] tokens <source.xta>
//	xtac [global flags] check [--watch] <source.xta>...
//	xtac [global flags] repl
//	xtac [global flags] dumpconfig [file]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/xta/internal/source"
	"github.com/probechain/xta/lang/frontend"
)

const version = "0.1.0"

var (
	app = cli.NewApp()

	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored output",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "Number of parse results to keep in memory (0 = disabled)",
		Value: frontend.DefaultConfig.CacheSize,
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "Number of files parsed concurrently (0 = one per CPU)",
		Value: frontend.DefaultConfig.Workers,
	}
	emitFlag = cli.StringFlag{
		Name:  "emit",
		Usage: "How to print parsed statements: ast, spew or none",
		Value: emitAST,
	}
	sortFlag = cli.BoolFlag{
		Name:  "sort",
		Usage: "Report diagnostics ordered by location",
	}
	watchFlag = cli.BoolFlag{
		Name:  "watch",
		Usage: "Re-check files whenever they change",
	}

	errMissingSource = errors.New("missing source file argument")
)

var (
	runCommand = cli.Command{
		Action:    runSource,
		Name:      "run",
		Usage:     "Parse a source file and print its statements",
		ArgsUsage: "<source.xta>",
		Flags:     []cli.Flag{emitFlag, sortFlag},
		Category:  "FRONT END COMMANDS",
	}
	tokensCommand = cli.Command{
		Action:    printTokens,
		Name:      "tokens",
		Usage:     "Print the token stream of a source file",
		ArgsUsage: "<source.xta>",
		Category:  "FRONT END COMMANDS",
	}
	checkCommand = cli.Command{
		Action:    checkSources,
		Name:      "check",
		Usage:     "Report diagnostics for one or more source files",
		ArgsUsage: "<source.xta>...",
		Flags:     []cli.Flag{sortFlag, watchFlag},
		Category:  "FRONT END COMMANDS",
		Description: `The check command parses all files in parallel and prints their diagnostics.
With --watch it keeps running and re-checks a file whenever it is written.`,
	}
	replCommand = cli.Command{
		Action:   repl,
		Name:     "repl",
		Usage:    "Start an interactive parsing session",
		Flags:    []cli.Flag{emitFlag},
		Category: "FRONT END COMMANDS",
	}
)

func init() {
	app.Name = "xtac"
	app.Usage = "the xta language front end"
	app.Version = version
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		noColorFlag,
		cacheFlag,
		workersFlag,
	}
	app.Commands = []cli.Command{
		runCommand,
		tokensCommand,
		checkCommand,
		replCommand,
		dumpConfigCommand,
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// environment is what every front end command works with.
type environment struct {
	cfg      xtacConfig
	frontend *frontend.Frontend
	printer  *printer
}

// setup loads the configuration, installs the log handler and creates the
// front end.
func setup(ctx *cli.Context) (*environment, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.Log.Verbosity, cfg.Output.Color)

	fe, err := frontend.New(cfg.Frontend, log.New("module", "frontend"))
	if err != nil {
		return nil, err
	}
	return &environment{
		cfg:      cfg,
		frontend: fe,
		printer:  newPrinter(os.Stdout, os.Stderr, cfg.Output),
	}, nil
}

func setupLogging(verbosity int, color bool) {
	var output io.Writer = os.Stderr
	usecolor := color && (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(verbosity), log.StreamHandler(output, log.TerminalFormat(usecolor))))
}

// failed is the exit error of a command whose input had diagnostics. The
// diagnostics have already been printed.
func failed() error {
	return cli.NewExitError("", 1)
}

// runSource is the run command.
func runSource(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errMissingSource
	}
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	path := ctx.Args().First()
	src, err := source.Load(path)
	if err != nil {
		return err
	}
	res := env.frontend.Parse(path, src.Text)
	log.Info("Parsed source", "path", path, "stmts", res.Stats.Statements,
		"functions", res.Stats.Functions, "calls", res.Stats.Calls)

	env.printer.elapsed("parsing", res.Elapsed)
	env.printer.statements(res.File)
	env.printer.diagnostics("", res.Errors)
	if len(res.Errors) > 0 {
		return failed()
	}
	return nil
}

// printTokens is the tokens command.
func printTokens(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errMissingSource
	}
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	src, err := source.Load(ctx.Args().First())
	if err != nil {
		return err
	}
	env.printer.tokens(env.frontend.Tokens(src.Text))
	return nil
}

// checkSources is the check command.
func checkSources(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errMissingSource
	}
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	paths := []string(ctx.Args())

	diags, err := env.check(context.Background(), paths)
	if err != nil {
		return err
	}
	if ctx.Bool(watchFlag.Name) {
		return env.watch(paths)
	}
	if diags > 0 {
		return failed()
	}
	return nil
}

// check parses the files at paths and prints their diagnostics followed by a
// summary. It returns the number of diagnostics.
func (env *environment) check(ctx context.Context, paths []string) (int, error) {
	inputs := make([]frontend.Input, 0, len(paths))
	for _, path := range paths {
		src, err := source.Load(path)
		if err != nil {
			return 0, err
		}
		inputs = append(inputs, frontend.Input{Name: path, Text: src.Text})
	}
	results, err := env.frontend.ParseAll(ctx, inputs)
	if err != nil {
		return 0, err
	}
	diags := 0
	for _, res := range results {
		env.printer.diagnostics(res.Name, res.Errors)
		diags += len(res.Errors)
	}
	env.printer.summary(len(results), diags)
	return diags, nil
}
