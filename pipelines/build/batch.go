// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package build

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// GenerateAll runs Generate for every request using at most workers
// goroutines. Results are returned in request order. The first failure
// cancels the requests that have not started and is returned; results
// for requests that did not complete are nil.
func (s *Service) GenerateAll(ctx context.Context, reqs []Request, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]*Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, req := range reqs {
		g.Go(func() error {
			result, err := s.Generate(gctx, req)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	s.logger.Debug("build: batch done", slog.Int("modules", len(reqs)), slog.Int("workers", workers))
	return results, nil
}
