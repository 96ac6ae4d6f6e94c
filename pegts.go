// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package pegts turns the JavaScript a peggy-style parser generator emits
// into a self-contained TypeScript module.
//
// The compiler hands over its output as a tree of text fragments. Generate
// suppresses type checking on every line of that code, wraps it in a typed
// holder, and appends the declarations that give the parser, its error
// type, and the optional tracer a static shape.
package pegts

import (
	"github.com/maloquacious/semver"
)

var (
	version = semver.Version{
		Major: 0,
		Minor: 3,
		Patch: 0,
		Build: semver.Commit(),
	}
)

func Version() semver.Version {
	return version
}
