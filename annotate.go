// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

import (
	"strings"
	"unicode"
)

// SuppressionMarker tells the type checker to ignore the line after it.
//
// There is no directive that ignores a whole block, and "@ts-nocheck"
// would also switch off checking of the declarations we append, so the
// marker goes in front of every line of generated code.
const SuppressionMarker = "// @ts-ignore\n"

// Annotate returns a copy of code with SuppressionMarker inserted in front
// of every text fragment that holds code. Nested nodes are annotated
// recursively and keep their position among their siblings. code is not
// modified.
func Annotate(code *Node) *Node {
	if code == nil {
		return nil
	}
	out := code.shell()
	for _, ch := range code.children {
		switch c := ch.(type) {
		case Text:
			if NeedsSuppression(string(c)) {
				out.Add(Text(SuppressionMarker))
			}
			out.Add(c)
		case *Node:
			out.Add(Annotate(c))
		}
	}
	return out
}

// NeedsSuppression reports whether line holds code the type checker
// would look at. Blank lines, line comments, and lines without an ASCII
// letter (a lone "});" for example) don't. Surrounding white space is
// trimmed the way JavaScript trims strings.
func NeedsSuppression(line string) bool {
	line = strings.TrimFunc(line, isTrimSpace)
	if line == "" || strings.HasPrefix(line, "//") {
		return false
	}
	return strings.IndexFunc(line, isASCIILetter) != -1
}

// isTrimSpace matches the white space and line terminators trimmed by
// String.prototype.trim. Unlike unicode.IsSpace it keeps U+0085.
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\v', '\f', '\ufeff', '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
