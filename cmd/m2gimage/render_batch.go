package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	m2gimage "github.com/N283T/mols2grid-to-image"
	"github.com/N283T/mols2grid-to-image/internal/paginate"
)

// Directory permissions: rwxr-x--- (owner full, group read/execute)
// File permissions: rw-r--r-- (owner write, all read)
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// Sentinel errors for batch rendering.
var (
	ErrServiceInit     = errors.New("failed to initialize render service")
	ErrWriteImage      = errors.New("failed to write image file")
	ErrWriteHTML       = errors.New("failed to write HTML file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// Renderer turns grid input into captured output.
// *m2gimage.Service is the production implementation; tests use fakes.
type Renderer interface {
	Render(ctx context.Context, input m2gimage.Input) (*m2gimage.Result, error)
}

// Compile-time check that the service satisfies Renderer.
var _ Renderer = (*m2gimage.Service)(nil)

// Pool hands out renderers to batch workers.
type Pool interface {
	Acquire() (Renderer, error)
	Release(Renderer)
	Size() int
}

// poolAdapter adapts *m2gimage.ServicePool to the Pool interface.
type poolAdapter struct {
	pool *m2gimage.ServicePool
}

func (a *poolAdapter) Acquire() (Renderer, error) {
	return a.pool.Acquire()
}

// Release returns a renderer to the pool. The adapter only hands out
// *m2gimage.Service values; any other type is a caller bug.
func (a *poolAdapter) Release(r Renderer) {
	svc, ok := r.(*m2gimage.Service)
	if !ok {
		panic(fmt.Sprintf("pool adapter: unexpected type %T", r))
	}
	a.pool.Release(svc)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// PageResult records the outcome of rendering one page.
type PageResult struct {
	Index    int
	Output   string
	Rows     int
	Err      error
	Duration time.Duration
}

// renderBatch renders pages concurrently through the pool. Results are
// indexed by page so report order stays deterministic regardless of
// worker scheduling.
func renderBatch(ctx context.Context, pool Pool, pages []paginate.PagePlan, params *renderParams) []PageResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(pages) {
		concurrency = len(pages)
	}

	results := make([]PageResult, len(pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(pages))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc, err := pool.Acquire()
			if err != nil {
				// Startup failed; drain remaining jobs as failures so no
				// page silently disappears from the results.
				for idx := range jobs {
					results[idx] = PageResult{
						Index:  pages[idx].Index,
						Output: pages[idx].Output,
						Rows:   pages[idx].Rows(),
						Err:    fmt.Errorf("%w: %v", ErrServiceInit, err),
					}
				}
				return
			}
			defer pool.Release(svc)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = PageResult{
						Index:  pages[idx].Index,
						Output: pages[idx].Output,
						Rows:   pages[idx].Rows(),
						Err:    ctx.Err(),
					}
					continue
				}
				results[idx] = renderPage(ctx, svc, pages[idx], params)
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderPage renders a single page and writes its output files.
func renderPage(ctx context.Context, service Renderer, page paginate.PagePlan, params *renderParams) PageResult {
	start := time.Now()
	result := PageResult{
		Index:  page.Index,
		Output: page.Output,
		Rows:   page.Rows(),
	}

	input := m2gimage.Input{
		Items:       params.items[page.Start:page.End],
		Grid:        params.grid,
		CSS:         params.css,
		Transparent: params.transparent,
		HTMLOnly:    params.htmlOnly,
	}

	res, err := service.Render(ctx, input)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if page.OutputHTML != "" {
		if err := writeOutput(page.OutputHTML, res.HTML, ErrWriteHTML); err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
		if params.htmlOnly {
			// The HTML file is the page's deliverable; no image follows.
			result.Output = page.OutputHTML
			result.Duration = time.Since(start)
			return result
		}
	}

	if err := writeOutput(page.Output, res.PNG, ErrWriteImage); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// writeOutput writes data to path, creating parent directories as needed.
func writeOutput(path string, data []byte, writeErr error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w %s: %v", ErrCreateOutputDir, dir, err)
	}
	// #nosec G306 -- rendered outputs are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", writeErr, err)
	}
	return nil
}

// printPageResults reports page outcomes and returns the failure count.
// Failures always go to stderr; quiet suppresses success lines; verbose
// adds row counts and timing per page.
func printPageResults(results []PageResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED page %d (%s): %v\n", r.Index, r.Output, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "page %d: %s (%d rows, %v)\n",
				r.Index, r.Output, r.Rows, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Output)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
