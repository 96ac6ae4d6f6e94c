// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

const (
	// DisableDirective switches off the linter for the whole module.
	DisableDirective = "/* eslint-disable */\n\n"

	// HolderPrefix binds the compiler's output to a local name so the
	// declarations appended after it can re-export its members with types.
	HolderPrefix = "const peggyParser: {parse: any, SyntaxError: any, DefaultTracer?: any} = "
)

// Wrap builds a new root around code. code must be detached.
//
// The root's children are, in order: DisableDirective, the header
// followed by a blank line (omitted when header is empty), and the
// holder. The holder's children are HolderPrefix and code.
func Wrap(code *Node, header string) *Node {
	root := NewNode()

	holder := NewNode()
	root.Add(holder)
	holder.Add(code)

	// each prepend lands in front of the previous one
	if header != "" {
		root.Prepend(Text(header + "\n\n"))
	}
	root.Prepend(Text(DisableDirective))

	holder.Prepend(Text(HolderPrefix))

	return root
}
