// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import "time"

// Generation is one rendered module, cached under a key derived from the
// grammar output and the configuration that produced it.
type Generation struct {
	ID          int64
	Key         string // sha256 of input and configuration, hex encoded
	InputName   string // base name of the grammar output file
	InputSHA256 string
	ErrorName   string
	Trace       bool
	Output      string
	CreatedAt   time.Time
}

// Bytes returns the size of the rendered module.
func (g *Generation) Bytes() int {
	return len(g.Output)
}
