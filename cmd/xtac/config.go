// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/xta/lang/frontend"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[file]",
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows the effective configuration as TOML, written to file if given.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// Statement output modes of run and repl.
const (
	emitAST  = "ast"  // parenthesised source form
	emitSpew = "spew" // Go struct dump
	emitNone = "none" // diagnostics only
)

var (
	emitModeNames = []string{emitAST, emitSpew, emitNone}
	emitModes     = mapset.NewSet()
)

func init() {
	for _, m := range emitModeNames {
		emitModes.Add(m)
	}
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type outputConfig struct {
	Emit            string // one of ast, spew, none
	Color           bool
	SortDiagnostics bool // order by location instead of detection
}

type logConfig struct {
	Verbosity int
}

type xtacConfig struct {
	Frontend frontend.Config
	Output   outputConfig
	Log      logConfig
}

func defaultConfig() xtacConfig {
	return xtacConfig{
		Frontend: frontend.DefaultConfig,
		Output: outputConfig{
			Emit:  emitAST,
			Color: true,
		},
		Log: logConfig{Verbosity: 3},
	}
}

func loadConfig(file string, cfg *xtacConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

func validateConfig(cfg *xtacConfig) error {
	if !emitModes.Contains(cfg.Output.Emit) {
		return fmt.Errorf("unknown emit mode %q, want one of %s", cfg.Output.Emit, strings.Join(emitModeNames, ", "))
	}
	if cfg.Log.Verbosity < 0 || cfg.Log.Verbosity > 5 {
		return fmt.Errorf("verbosity %d out of range 0-5", cfg.Log.Verbosity)
	}
	if cfg.Frontend.CacheSize < 0 {
		return fmt.Errorf("negative cache size %d", cfg.Frontend.CacheSize)
	}
	return nil
}

// makeConfig loads the configuration: defaults, then the config file, then
// command line flags.
func makeConfig(ctx *cli.Context) (xtacConfig, error) {
	cfg := defaultConfig()

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Output.Color = false
	}
	if ctx.GlobalIsSet(cacheFlag.Name) {
		cfg.Frontend.CacheSize = ctx.GlobalInt(cacheFlag.Name)
	}
	if ctx.GlobalIsSet(workersFlag.Name) {
		cfg.Frontend.Workers = ctx.GlobalInt(workersFlag.Name)
	}
	if ctx.IsSet(emitFlag.Name) {
		cfg.Output.Emit = ctx.String(emitFlag.Name)
	}
	if ctx.IsSet(sortFlag.Name) {
		cfg.Output.SortDiagnostics = ctx.Bool(sortFlag.Name)
	}
	return cfg, validateConfig(&cfg)
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	var dump io.Writer = os.Stdout
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	return writeConfig(dump, &cfg)
}

func writeConfig(w io.Writer, cfg *xtacConfig) error {
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
