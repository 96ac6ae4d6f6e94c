// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package build reads grammar output files, runs the generate pass, and
// writes the typed modules, reusing earlier results from a cache.
package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/mdhender/pegts"
	"github.com/mdhender/pegts/model"
	"github.com/spf13/afero"
)

// Cache defines the store operations needed by Service.
type Cache interface {
	GetGenerationByKey(ctx context.Context, key string) (*model.Generation, error)
	InsertGeneration(ctx context.Context, g *model.Generation) (int64, error)
}

// Service turns grammar output files into TypeScript modules.
type Service struct {
	cache  Cache
	fs     afero.Fs
	logger *slog.Logger
}

// NewService creates a new Service. cache may be nil to always generate.
func NewService(cache Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cache:  cache,
		fs:     afero.NewOsFs(),
		logger: logger,
	}
}

// SetFS sets the filesystem for testing.
func (s *Service) SetFS(fs afero.Fs) {
	s.fs = fs
}

// Request contains the parameters for generating one module.
type Request struct {
	InputPath  string // grammar output file, JSON
	OutputPath string // where to write the module; empty to skip writing
	Config     pegts.Config
}

// Result contains the result of a generate operation.
type Result struct {
	Key        string
	Output     []byte
	OutputPath string // empty if nothing was written
	Cached     bool   // true if the module came from the cache
}

// Generate reads the grammar output named by req, builds the module, and
// writes it to req.OutputPath.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()

	data, err := afero.ReadFile(s.fs, req.InputPath)
	if err != nil {
		return nil, &ErrFile{Op: "read", Path: req.InputPath, Err: err}
	}
	inputHash := sha256.Sum256(data)
	key := CacheKey(data, req.Config)

	result := &Result{Key: key}
	if s.cache != nil {
		cached, err := s.cache.GetGenerationByKey(ctx, key)
		if err != nil {
			return nil, &ErrDatabase{Op: "get generation", Err: err}
		}
		if cached != nil {
			s.logger.Debug("build: cache hit", slog.String("input", req.InputPath), slog.String("key", key))
			result.Output, result.Cached = []byte(cached.Output), true
		}
	}

	if !result.Cached {
		grammar, err := pegts.DecodeGrammar(data)
		if err != nil {
			var decodeErr *pegts.DecodeError
			if errors.As(err, &decodeErr) {
				decodeErr.Path = req.InputPath
			}
			return nil, err
		}
		if err := grammar.Generate(req.Config); err != nil {
			return nil, fmt.Errorf("%s: %w", req.InputPath, err)
		}
		result.Output = []byte(grammar.Code.String())

		if s.cache != nil {
			g := &model.Generation{
				Key:         key,
				InputName:   filepath.Base(req.InputPath),
				InputSHA256: hex.EncodeToString(inputHash[:]),
				ErrorName:   req.Config.ErrorTypeName(),
				Trace:       req.Config.Trace,
				Output:      string(result.Output),
				CreatedAt:   time.Now().UTC(),
			}
			if _, err := s.cache.InsertGeneration(ctx, g); err != nil {
				return nil, &ErrDatabase{Op: "insert generation", Err: err}
			}
		}
	}

	if req.OutputPath != "" {
		if err := s.fs.MkdirAll(filepath.Dir(req.OutputPath), 0755); err != nil {
			return nil, &ErrFile{Op: "mkdir", Path: filepath.Dir(req.OutputPath), Err: err}
		}
		if err := afero.WriteFile(s.fs, req.OutputPath, result.Output, 0644); err != nil {
			return nil, &ErrFile{Op: "write", Path: req.OutputPath, Err: err}
		}
		result.OutputPath = req.OutputPath
	}

	s.logger.Info("build: generated",
		slog.String("input", req.InputPath),
		slog.Int("bytes", len(result.Output)),
		slog.Bool("cached", result.Cached),
		slog.Duration("elapsed", time.Since(started)))

	return result, nil
}

// CacheKey returns the cache key for a grammar output and configuration.
// Fields are separated by NUL so adjacent values can't run together.
func CacheKey(input []byte, cfg pegts.Config) string {
	h := sha256.New()
	h.Write(input)
	fmt.Fprintf(h, "\x00%s\x00%s\x00%t", cfg.Header, cfg.ErrorTypeName(), cfg.Trace)
	return hex.EncodeToString(h.Sum(nil))
}

// OutputPath derives a module path from a grammar output path:
// "calc.json" becomes "calc.ts".
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return inputPath[:len(inputPath)-len(ext)] + ".ts"
}
