// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxOutlineText is the most text quoted for a fragment in an outline.
const maxOutlineText = 40

// WriteOutline writes one line per chunk under n, indented two spaces per
// level. Nodes show their name, position, and child count; fragments
// show their quoted text, shortened.
func WriteOutline(w io.Writer, n *Node) error {
	var err error
	n.Walk(func(ch Chunk, depth int) bool {
		indent := strings.Repeat("  ", depth-1)
		switch c := ch.(type) {
		case Text:
			_, err = fmt.Fprintf(w, "%stext %s\n", indent, quoteShort(string(c)))
		case *Node:
			_, err = fmt.Fprintf(w, "%snode%s (%d)\n", indent, c.label(), c.Len())
		}
		return err == nil
	})
	return err
}

// label returns " name source:line:column", leaving out what is unset.
func (n *Node) label() string {
	var sb strings.Builder
	if n.Name != "" {
		sb.WriteString(" " + n.Name)
	}
	if n.Line != 0 {
		fmt.Fprintf(&sb, " %s:%d:%d", n.Source, n.Line, n.Column)
	}
	return sb.String()
}

func quoteShort(text string) string {
	runes := []rune(text)
	if len(runes) <= maxOutlineText {
		return strconv.Quote(text)
	}
	return strconv.Quote(string(runes[:maxOutlineText])) + "..."
}
