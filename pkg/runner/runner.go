package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gxhighlight/pkg/fsutil"
	"github.com/yaklabco/gxhighlight/pkg/registry"
)

// Runner highlights files through a language registry.
type Runner struct {
	// Registry resolves and scans languages.
	Registry *registry.Registry
}

// New creates a Runner over reg.
func New(reg *registry.Registry) *Runner {
	return &Runner{Registry: reg}
}

// Run discovers files under opts.Paths and highlights them concurrently.
// Outcomes are returned in path order regardless of completion order.
// A cancelled context returns the outcomes collected so far and an error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Extensions) == 0 {
		opts.Extensions = r.extensions()
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

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
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
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

	// Workers finish out of order; collect by path and emit in discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.processFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processFile reads, resolves and scans one file.
func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	content, err := fsutil.ReadInput(ctx, path, opts.MaxFileSize)
	switch {
	case errors.Is(err, fsutil.ErrTooLarge):
		r.debug(opts, "skipping oversized file", "path", path, "limit", opts.MaxFileSize)
		return FileOutcome{Path: path, Skipped: true}
	case err != nil:
		return FileOutcome{Path: path, Error: err}
	}

	return r.HighlightContent(path, content, opts)
}

// HighlightContent scans content that was not read by Run, such as
// standard input. name is used for detection and reporting. Binary content
// is skipped.
func (r *Runner) HighlightContent(name string, content []byte, opts Options) FileOutcome {
	outcome := FileOutcome{Path: name}

	if enry.IsBinary(content) {
		outcome.Skipped = true
		r.debug(opts, "skipping binary file", "path", name)
		return outcome
	}

	var (
		handle registry.Handle
		found  bool
	)
	if opts.Language != "" {
		handle, found = r.Registry.Resolve(opts.Language)
	} else {
		handle, found = r.Registry.ResolveFile(name, content)
	}

	outcome.Language = handle.ID()
	outcome.Tokens = r.Registry.Scan(handle, string(content))

	r.debug(opts, "highlighted file",
		"path", name, "language", outcome.Language, "resolved", found, "tokens", len(outcome.Tokens))

	return outcome
}

// extensions lists every extension the registry can resolve.
func (r *Runner) extensions() []string {
	var exts []string
	for _, info := range r.Registry.Languages() {
		exts = append(exts, info.Extensions...)
	}
	return exts
}

func (r *Runner) debug(opts Options, msg string, keyvals ...any) {
	if opts.Logger != nil {
		opts.Logger.Debug(msg, keyvals...)
	}
}
