// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts_test

import (
	"errors"
	"testing"

	"github.com/mdhender/pegts"
)

func TestValidateIdentifier(t *testing.T) {
	valid := []string{
		"Foo",
		"PeggySyntaxError",
		"CalcSyntaxError",
		"_private",
		"$error",
		"a1",
		"Ñandú",
		"erreur_de_syntaxe",
		"Δ",
	}
	for _, name := range valid {
		if err := pegts.ValidateIdentifier(name); err != nil {
			t.Errorf("ValidateIdentifier(%q): %v", name, err)
		}
	}

	invalid := []struct {
		name   string
		reason string
	}{
		{"", "it is empty"},
		{"Bad\"Name", "it must be escaped inside a string literal"},
		{"back\\slash", "it must be escaped inside a string literal"},
		{"new\nline", "it must be escaped inside a string literal"},
		{"\xff", "it can't be encoded as a string literal"},
		{"my-error", "it contains '-'"},
		{"a b", "it contains ' '"},
		{"1x", "it must start with a letter, '$', or '_'"},
		{"class", "it is a reserved word"},
		{"export", "it is a reserved word"},
		{"eval", "it can't be bound in strict mode code"},
		{"arguments", "it can't be bound in strict mode code"},
		{"undefined", "it shadows a built-in global"},
		{"NaN", "it shadows a built-in global"},
	}
	for _, tc := range invalid {
		err := pegts.ValidateIdentifier(tc.name)
		if err == nil {
			t.Errorf("ValidateIdentifier(%q): expected error", tc.name)
			continue
		}
		var invalidErr *pegts.InvalidIdentifierError
		if !errors.As(err, &invalidErr) {
			t.Errorf("ValidateIdentifier(%q): error is %T, want *pegts.InvalidIdentifierError", tc.name, err)
			continue
		}
		if invalidErr.Name != tc.name {
			t.Errorf("ValidateIdentifier(%q): Name = %q", tc.name, invalidErr.Name)
		}
		if invalidErr.Reason != tc.reason {
			t.Errorf("ValidateIdentifier(%q): Reason = %q, want %q", tc.name, invalidErr.Reason, tc.reason)
		}
		if got := pegts.ErrorCode(err); got != pegts.ErrCodeInvalidIdentifier {
			t.Errorf("ValidateIdentifier(%q): ErrorCode = %q", tc.name, got)
		}
	}
}

func TestInvalidIdentifierError_Message(t *testing.T) {
	err := pegts.ValidateIdentifier("my-error")
	want := `the error name "my-error" is not a valid JavaScript identifier: it contains '-'`
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}
}
