package hyprkeys

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// indexFilesParallel indexes files using a three-phase pipeline:
//
//	Phase A (serial):   Read, hash check, prepare batches.
//	Phase B (parallel): Parse and build batches on a worker pool.
//	Phase C (serial):   Commit batches to SQLite, one transaction per file.
func (e *Engine) indexFilesParallel(ctx context.Context, paths []string) (int, error) {
	var errs []error

	// ---- Phase A: Serial file preparation ----
	var items []workItem
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		item, skip, err := e.prepareFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("prepare %s: %w", path, err))
			continue
		}
		if skip {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return 0, joinIndexErrors(errs)
	}

	// ---- Phase B: Parallel parsing ----
	numWorkers := max(min(runtime.NumCPU(), len(items)), 1)

	workCh := make(chan workItem, len(items))
	for _, item := range items {
		workCh <- item
	}
	close(workCh)

	type result struct {
		item workItem
		err  error
	}
	resultCh := make(chan result, len(items))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each item owns its Batch, so workers never share writes.
			for item := range workCh {
				if err := ctx.Err(); err != nil {
					resultCh <- result{item: item, err: err}
					continue
				}
				resultCh <- result{item: item, err: e.extractFile(ctx, item)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// ---- Phase C: Serial commit ----
	var n int
	for res := range resultCh {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", res.item.path, res.err))
			continue
		}
		fileID, err := e.store.CommitBatch(res.item.batch)
		if err != nil {
			errs = append(errs, fmt.Errorf("commit %s: %w", res.item.path, err))
			continue
		}
		n++
		e.logger.Debug("indexed",
			zap.String("path", res.item.path),
			zap.Int64("file_id", fileID),
			zap.Int("sections", len(res.item.batch.Sections)),
			zap.Int("keybinds", len(res.item.batch.Keybinds)),
		)
	}

	return n, joinIndexErrors(errs)
}

func joinIndexErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("hyprkeys: parallel indexing had %d error(s): %w", len(errs), errors.Join(errs...))
}
