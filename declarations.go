// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

import (
	"fmt"
	"slices"
	"strings"
)

// Declaration is one named piece of TypeScript appended to the module.
type Declaration struct {
	Name string
	Text string
}

// library is the fixed set of types every generated module carries.
// Order matters: it is the order they are emitted in.
var library = []Declaration{
	{Name: "FilePosition", Text: `export interface FilePosition {
  offset: number;
  line: number;
  column: number;
}`},
	{Name: "FileRange", Text: `export interface FileRange {
  start: FilePosition;
  end: FilePosition;
  source: string;
}`},
	{Name: "LiteralExpectation", Text: `export interface LiteralExpectation {
  type: "literal";
  text: string;
  ignoreCase: boolean;
}`},
	{Name: "ClassParts", Text: `export interface ClassParts extends Array<string | ClassParts> {}`},
	{Name: "ClassExpectation", Text: `export interface ClassExpectation {
  type: "class";
  parts: ClassParts;
  inverted: boolean;
  ignoreCase: boolean;
}`},
	{Name: "AnyExpectation", Text: `export interface AnyExpectation {
  type: "any";
}`},
	{Name: "EndExpectation", Text: `export interface EndExpectation {
  type: "end";
}`},
	{Name: "OtherExpectation", Text: `export interface OtherExpectation {
  type: "other";
  description: string;
}`},
	{Name: "Expectation", Text: `export type Expectation = LiteralExpectation | ClassExpectation | AnyExpectation | EndExpectation | OtherExpectation;`},
	{Name: "_PeggySyntaxError", Text: `declare class _PeggySyntaxError extends Error {
  public static buildMessage(expected: Expectation[], found: string | null): string;
  public message: string;
  public expected: Expectation[];
  public found: string | null;
  public location: FileRange;
  public name: string;
  constructor(message: string, expected: Expectation[], found: string | null, location: FileRange);
  format(sources: {
    grammarSource?: string;
    text: string;
  }[]): string;
}`},
	{Name: "TraceEvent", Text: `export interface TraceEvent {
  type: string;
  rule: string;
  result?: unknown;
  location: FileRange;
}`},
	{Name: "ParseTracer", Text: `export interface ParseTracer {
  trace(event: TraceEvent): void;
}`},
	{Name: "_DefaultTracer", Text: `declare class _DefaultTracer implements ParseTracer {
  private indentLevel: number;
  public trace(event: TraceEvent): void;
}`},
}

// Library returns a copy of the fixed declarations in emission order.
func Library() []Declaration {
	decls := make([]Declaration, len(library))
	copy(decls, library)
	return decls
}

// LibraryDeclaration returns the fixed declaration with the given name.
func LibraryDeclaration(name string) (Declaration, bool) {
	for _, decl := range library {
		if decl.Name == name {
			return decl, true
		}
	}
	return Declaration{}, false
}

// RenderLibrary joins decls into the single block appended after the
// holder, separated by blank lines.
func RenderLibrary(decls []Declaration) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for i, decl := range decls {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(decl.Text)
	}
	sb.WriteString("\n\n")
	return sb.String()
}

// moduleBindings are the names the module declares besides the library.
var moduleBindings = []string{"peggyParser", "parse", "ParseOptions", "ParseFunction"}

// ValidateErrorName reports whether name can be used as the exported
// error type: it must be a valid identifier and must not clash with a
// name the module already declares. The tracer export only exists when
// trace is set.
func ValidateErrorName(name string, trace bool) error {
	if err := ValidateIdentifier(name); err != nil {
		return err
	}
	_, inLibrary := LibraryDeclaration(name)
	clash := inLibrary || slices.Contains(moduleBindings, name) || (trace && name == "DefaultTracer")
	if clash {
		return &InvalidIdentifierError{Name: name, Reason: "it is already declared by the module"}
	}
	return nil
}

// Exports returns the declarations that depend on the configuration: the
// rename of the error constructor, the parse function, the error type
// export, and, when trace is set, the tracer export.
func Exports(errorName string, trace bool) ([]Declaration, error) {
	if err := ValidateErrorName(errorName, trace); err != nil {
		return nil, err
	}
	decls := []Declaration{
		// a validated name needs no escaping, so quoting is just the quotes
		{Name: "rename", Text: fmt.Sprintf("peggyParser.SyntaxError.prototype.name = \"%s\";\n", errorName)},
		{Name: "parse", Text: `
export interface ParseOptions {
  filename?: string;
  grammarSource?: unknown;
  startRule?: string;
  tracer?: ParseTracer;
  [key: string]: unknown;
}
export type ParseFunction = (input: string, options?: ParseOptions) => any;
export const parse: ParseFunction = peggyParser.parse;
`},
		{Name: errorName, Text: fmt.Sprintf("\nexport const %s = peggyParser.SyntaxError as typeof _PeggySyntaxError;\n", errorName)},
	}
	if trace {
		decls = append(decls, Declaration{
			Name: "DefaultTracer",
			Text: "\nexport const DefaultTracer = peggyParser.DefaultTracer as typeof _DefaultTracer;\n",
		})
	}
	return decls, nil
}

// Assemble appends the declaration library and the exports to root.
func Assemble(root *Node, errorName string, trace bool) error {
	exports, err := Exports(errorName, trace)
	if err != nil {
		return err
	}
	root.Add(Text(RenderLibrary(library)))
	for _, decl := range exports {
		root.Add(Text(decl.Text))
	}
	return nil
}
