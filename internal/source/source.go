// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package source loads xta source files from disk.
package source

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"
)

var (
	// ErrIsDirectory is returned when the path names a directory.
	ErrIsDirectory = errors.New("is a directory")

	// ErrNotUTF8 is returned when the file content is not valid UTF-8.
	ErrNotUTF8 = errors.New("invalid UTF-8 source")
)

// File is a source file loaded into memory.
type File struct {
	Path string
	Text string
}

// Load reads the file at path. The file is mapped read-only and copied into
// a string, so the mapping never outlives the call.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	// Zero-length files cannot be mapped.
	if info.Size() == 0 {
		return &File{Path: path}, nil
	}
	mem, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", path, err)
	}
	text := string(mem)
	if err := mem.Unmap(); err != nil {
		return nil, fmt.Errorf("failed to unmap %s: %w", path, err)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}
	return &File{Path: path, Text: text}, nil
}
