package composition

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/noders-team/xptools/pkg/logging"
	"github.com/noders-team/xptools/pkg/yamlutil"
)

// ProgressFunc is called once per processed file. Calls are serialised.
type ProgressFunc func(done, total int, path string)

type Scanner struct {
	// Workers bounds the number of files parsed concurrently. Zero means runtime.NumCPU().
	Workers int
}

func NewScanner(workers int) *Scanner {
	return &Scanner{Workers: workers}
}

// Scan extracts every Composition below root. Files are processed
// concurrently but the result lists rows in file order, so repeated runs over
// the same tree produce identical output. A file that fails to parse is
// logged and recorded in Result.Failed; it never aborts the scan.
func (s *Scanner) Scan(ctx context.Context, root string, progress ProgressFunc) (*Result, error) {
	logger := logging.WithComponent("scanner")

	files, err := yamlutil.FindFiles(root)
	if err != nil {
		return nil, err
	}
	logger.Debug().Msgf("found %d YAML files to process", len(files))

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]FileResult, len(files))
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ExtractFile(path)

			mu.Lock()
			done++
			if progress != nil {
				progress(done, len(files), path)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan of '%s' interrupted: %w", root, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan of '%s' interrupted: %w", root, err)
	}

	res := &Result{Files: len(files)}
	seen := make(map[string]struct{})
	for _, fr := range results {
		if fr.Err != nil {
			logger.Error().Err(fr.Err).Msgf("error processing %s", fr.Path)
			res.Failed = append(res.Failed, FileError{Path: fr.Path, Err: fr.Err.Error()})
		}
		res.Rows = append(res.Rows, fr.Rows...)
		for _, fn := range fr.Functions {
			if _, ok := seen[fn]; !ok {
				seen[fn] = struct{}{}
				res.Functions = append(res.Functions, fn)
			}
		}
	}
	sort.Strings(res.Functions)

	logger.Debug().Msgf("extracted %d rows from %d files (%d failed)", len(res.Rows), len(files), len(res.Failed))
	return res, nil
}
