// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Span represents a range in the source: input[Start:End].
type Span struct {
	// Byte offsets into the original input slice. End is exclusive.
	Start int
	End   int

	// 1-based line and byte column of the start of the span.
	Line   int
	Column int
}

// Text is a helper to return the original text of the span.
func (s Span) Text(input []byte) []byte {
	return input[s.Start:s.End]
}

// Diagnostic is a message about a span of a generated module.
type Diagnostic struct {
	Severity slog.Level // Error, Warning, Info
	Message  string     // "unexpected \"}\""
	Span     Span       // where in the file it occurred
	Notes    []string   // optional additional help messages
}

// PrintDiagnostic writes diag in the usual compiler layout:
//
//	file:line:column: error: message
//	    the offending line
//	         ^
//	    note: ...
//
// Only the first line of a multi-line span is shown.
func PrintDiagnostic(w io.Writer, diag Diagnostic, filename string, src []byte) {
	span := diag.Span
	_, _ = fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
		filename, span.Line, span.Column,
		strings.ToLower(diag.Severity.String()), diag.Message)

	line := findLine(src, span.Start)
	_, _ = fmt.Fprintf(w, "    %s\n", line)

	// caret underline
	_, _ = fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", caretOffset(span.Column, line)))

	for _, note := range diag.Notes {
		_, _ = fmt.Fprintf(w, "    note: %s\n", note)
	}
}

// findLine returns the line containing the start byte.
// It searches backwards from start to find the start of the line,
// then forward until it hits end of input or a new-line.
// The returned line does not include the new-line. If there is
// no line, returns an empty slice.
func findLine(src []byte, start int) []byte {
	if start < 0 || start > len(src) {
		return []byte{}
	}

	lineStart := 0
	for i := start - 1; i >= 0; i-- {
		if src[i] == '\n' {
			lineStart = i + 1
			break
		}
	}

	lineEnd := len(src)
	for i := lineStart; i < len(src); i++ {
		if src[i] == '\n' {
			lineEnd = i
			break
		}
	}

	return src[lineStart:lineEnd]
}

// caretOffset converts a 1-based byte column into the number of runes in
// front of it, which is where the caret goes.
func caretOffset(column int, line []byte) int {
	n := column - 1
	if n <= 0 {
		return 0
	} else if n > len(line) {
		n = len(line)
	}
	return utf8.RuneCount(line[:n])
}
