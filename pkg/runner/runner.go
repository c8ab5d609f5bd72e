package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/mdxor/internal/logging"
	"github.com/yaklabco/mdxor/pkg/compare"
	"github.com/yaklabco/mdxor/pkg/fsutil"
	"github.com/yaklabco/mdxor/pkg/parser"
)

// Runner parses many documents concurrently.
type Runner struct {
	// Parser parses each document. It is shared by all workers.
	Parser *parser.Parser

	// Comparer, when set, diffs each parsed document against the reference parser.
	Comparer *compare.Comparer

	// MaxFileSize caps the size of a single document. 0 means fsutil.DefaultMaxSize.
	MaxFileSize int64
}

// New creates a Runner with the given parser.
func New(p *parser.Parser) *Runner {
	return &Runner{Parser: p}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// Per-file failures are recorded in the outcome and never abort the run.
// The returned error is non-nil only for discovery failures or cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Go(func() {
			r.worker(ctx, workCh, outCh)
		})
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect by path and replay in discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldFilesDiverged, result.Stats.FilesDiverged,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ProcessFile(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile reads, parses and optionally compares a single document.
func (r *Runner) ProcessFile(ctx context.Context, path string) FileOutcome {
	start := time.Now()

	content, err := fsutil.ReadSource(ctx, path, r.MaxFileSize)
	if err != nil {
		return FileOutcome{Path: path, Error: err, Duration: time.Since(start)}
	}

	return r.process(ctx, path, content, start)
}

// ProcessContent parses and optionally compares content already in memory.
func (r *Runner) ProcessContent(ctx context.Context, path string, content []byte) FileOutcome {
	return r.process(ctx, path, content, time.Now())
}

func (r *Runner) process(ctx context.Context, path string, content []byte, start time.Time) FileOutcome {
	ctx, logger := logging.With(ctx, logging.FieldPath, path)
	outcome := FileOutcome{Path: path}

	tree, err := r.Parser.Parse(ctx, path, content)
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		outcome.Duration = time.Since(start)
		logger.Debug("parse failed", logging.FieldError, err)
		return outcome
	}
	outcome.Tree = tree

	if r.Comparer != nil {
		diff, err := r.Comparer.Against(ctx, tree)
		if err != nil {
			outcome.Error = err
			outcome.Tree = nil
			outcome.Duration = time.Since(start)
			return outcome
		}
		outcome.Diff = diff
	}

	outcome.Duration = time.Since(start)
	logger.Debug("parsed",
		logging.FieldBytes, len(content),
		logging.FieldHunks, len(diffHunks(outcome.Diff)),
		logging.FieldDuration, outcome.Duration,
	)
	return outcome
}

func diffHunks(d *compare.Diff) []compare.Hunk {
	if d == nil {
		return nil
	}
	return d.Hunks
}
