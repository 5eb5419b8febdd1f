// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	mapset "github.com/deckarep/golang-set"
	"github.com/ethereum/go-ethereum/log"
	"github.com/rjeczalik/notify"
)

// watch re-checks a file each time it is written, until interrupted. The
// parent directories are watched, so saves that replace the file are seen.
func (env *environment) watch(paths []string) error {
	files, dirs, err := watchTargets(paths)
	if err != nil {
		return err
	}

	events := make(chan notify.EventInfo, 16)
	defer notify.Stop(events)
	for _, dir := range dirs.ToSlice() {
		if err := notify.Watch(dir.(string), events, notify.Write, notify.Create, notify.Rename); err != nil {
			return err
		}
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	log.Info("Watching sources", "files", len(files), "dirs", dirs.Cardinality())
	env.watchLoop(files, events, sigc)
	log.Info("Stopped watching sources")
	return nil
}

// watchTargets maps the resolved location of every path to the path as
// given, and collects the directories to watch. Event paths carry no
// symlinks, so neither do the keys.
func watchTargets(paths []string) (map[string]string, mapset.Set, error) {
	files := make(map[string]string)
	dirs := mapset.NewSet()
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, err
		}
		dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
		if err != nil {
			return nil, nil, err
		}
		files[filepath.Join(dir, filepath.Base(abs))] = path
		dirs.Add(dir)
	}
	return files, dirs, nil
}

// watchLoop re-checks the file behind each event until stop fires.
func (env *environment) watchLoop(files map[string]string, events <-chan notify.EventInfo, stop <-chan os.Signal) {
	for {
		select {
		case ev := <-events:
			path, ok := files[ev.Path()]
			if !ok {
				log.Trace("Ignoring event", "path", ev.Path(), "event", ev.Event())
				continue
			}
			log.Debug("Source changed", "path", path, "event", ev.Event())
			if _, err := env.check(context.Background(), []string{path}); err != nil {
				log.Warn("Failed to check source", "path", path, "err", err)
			}
		case <-stop:
			return
		}
	}
}
