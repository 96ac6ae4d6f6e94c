// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/mdhender/pegts"
	"github.com/spf13/afero"
)

func TestNewConfig(t *testing.T) {
	cfg, err := pegts.NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.ErrorTypeName() != pegts.DefaultErrorName || cfg.Header != "" || cfg.Trace {
		t.Errorf("zero config = %+v", cfg)
	}

	cfg, err = pegts.NewConfig(
		pegts.WithHeader("import x from 'x';"),
		pegts.WithErrorName("CalcError"),
		pegts.WithTrace(true),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Header != "import x from 'x';" || cfg.ErrorTypeName() != "CalcError" || !cfg.Trace {
		t.Errorf("config = %+v", cfg)
	}

	// options apply in order
	cfg, err = pegts.NewConfig(pegts.WithErrorName("A"), pegts.WithErrorName(""))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.ErrorTypeName() != pegts.DefaultErrorName {
		t.Errorf("ErrorTypeName() = %q, want the default", cfg.ErrorTypeName())
	}

	for _, name := range []string{"1x", "parse", "eval"} {
		if _, err := pegts.NewConfig(pegts.WithErrorName(name)); pegts.ErrorCode(err) != pegts.ErrCodeInvalidIdentifier {
			t.Errorf("WithErrorName(%q) error = %v", name, err)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"full.json":    `{"tspegjs": {"customHeader": "// hi", "errorName": "Foo"}, "trace": true, "other": 1}`,
		"empty.json":   `{}`,
		"partial.json": `{"tspegjs": {"errorName": "Bar"}}`,
		"bad.json":     `{"tspegjs": `,
		"wrong.json":   `{"trace": "yes"}`,
		"name.json":    `{"tspegjs": {"errorName": "my-error"}}`,
	}
	for name, data := range files {
		if err := afero.WriteFile(fsys, name, []byte(data), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	tests := []struct {
		path string
		want pegts.Config
		code string
	}{
		{path: "full.json", want: pegts.Config{Header: "// hi", ErrorName: "Foo", Trace: true}},
		{path: "empty.json", want: pegts.Config{}},
		{path: "partial.json", want: pegts.Config{ErrorName: "Bar"}},
		{path: "bad.json", code: pegts.ErrCodeDecode},
		{path: "wrong.json", code: pegts.ErrCodeDecode},
		{path: "name.json", code: pegts.ErrCodeInvalidIdentifier},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			got, err := pegts.LoadConfig(fsys, tc.path)
			if tc.code != "" {
				if got := pegts.ErrorCode(err); got != tc.code {
					t.Fatalf("error %v has code %q, want %q", err, got, tc.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if got != tc.want {
				t.Errorf("LoadConfig = %+v, want %+v", got, tc.want)
			}
		})
	}

	t.Run("decode error names the file", func(t *testing.T) {
		_, err := pegts.LoadConfig(fsys, "bad.json")
		var decodeErr *pegts.DecodeError
		if !errors.As(err, &decodeErr) || decodeErr.Path != "bad.json" {
			t.Errorf("error = %v, want a DecodeError for bad.json", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := pegts.LoadConfig(fsys, "missing.json")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want fs.ErrNotExist", err)
		}
	})
}
