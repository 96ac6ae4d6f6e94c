// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

import (
	"strconv"
	"unicode"

	"github.com/go-json-experiment/json"
)

// reservedWords can't be used as a binding name in strict-mode modules.
var reservedWords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"implements": true, "import": true, "in": true, "instanceof": true, "interface": true,
	"let": true, "new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true, "super": true,
	"switch": true, "this": true, "throw": true, "true": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true, "with": true,
	"yield": true,
}

// restrictedNames are identifiers that parse but can't be declared as a
// module-level const.
var restrictedNames = map[string]string{
	"arguments": "it can't be bound in strict mode code",
	"eval":      "it can't be bound in strict mode code",
	"Infinity":  "it shadows a built-in global",
	"NaN":       "it shadows a built-in global",
	"undefined": "it shadows a built-in global",
}

// ValidateIdentifier reports whether name can be spliced verbatim into the
// emitted module, both inside a string literal and as an exported binding.
//
// The first check quotes name as a JSON string and requires the text
// between the quotes to equal name, which rejects anything that needs
// escaping. That check alone lets through names like "a b" or "1x", so
// it is followed by a check against the identifier grammar.
func ValidateIdentifier(name string) error {
	if name == "" {
		return &InvalidIdentifierError{Name: name, Reason: "it is empty"}
	}
	quoted, err := json.Marshal(name)
	if err != nil {
		return &InvalidIdentifierError{Name: name, Reason: "it can't be encoded as a string literal", Err: err}
	}
	if len(quoted) < 2 || string(quoted[1:len(quoted)-1]) != name {
		return &InvalidIdentifierError{Name: name, Reason: "it must be escaped inside a string literal"}
	}

	for i, r := range name {
		if i == 0 {
			if !isIdentifierStart(r) {
				return &InvalidIdentifierError{Name: name, Reason: "it must start with a letter, '$', or '_'"}
			}
			continue
		}
		if !isIdentifierPart(r) {
			return &InvalidIdentifierError{Name: name, Reason: "it contains " + strconv.QuoteRune(r)}
		}
	}
	if reservedWords[name] {
		return &InvalidIdentifierError{Name: name, Reason: "it is a reserved word"}
	}
	if reason, ok := restrictedNames[name]; ok {
		return &InvalidIdentifierError{Name: name, Reason: reason}
	}
	return nil
}

func isIdentifierStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentifierPart(r rune) bool {
	switch {
	case isIdentifierStart(r):
		return true
	case r == '\u200c' || r == '\u200d': // ZWNJ, ZWJ
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}
