package main

// Shared fakes for command tests. The production Renderer drives a real
// browser; tests substitute these to keep the suite hermetic.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	m2gimage "github.com/N283T/mols2grid-to-image"
)

// fakeRenderer returns canned results without touching a browser.
// A nil render func yields a fixed HTML+PNG pair.
type fakeRenderer struct {
	render func(ctx context.Context, input m2gimage.Input) (*m2gimage.Result, error)

	mu    sync.Mutex
	calls []m2gimage.Input
}

func (f *fakeRenderer) Render(ctx context.Context, input m2gimage.Input) (*m2gimage.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, input)
	f.mu.Unlock()

	if f.render != nil {
		return f.render(ctx, input)
	}
	return &m2gimage.Result{
		HTML: []byte(`<html><body><div id="mols2grid"></div></body></html>`),
		PNG:  []byte("\x89PNG fake image data"),
	}, nil
}

func (f *fakeRenderer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakePool hands out a single shared fake renderer.
type fakePool struct {
	renderer   *fakeRenderer
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
}

func newFakePool(r *fakeRenderer) *fakePool {
	return &fakePool{renderer: r, size: 1}
}

func (p *fakePool) Acquire() (Renderer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.renderer, nil
}

func (p *fakePool) Release(Renderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *fakePool) Size() int { return p.size }

// writeTempFile writes content under t.TempDir() and returns the path.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// testEnv returns an Environment that captures output in buffers.
func testEnv(t *testing.T) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	loader, err := m2gimage.NewAssetLoader("")
	if err != nil {
		t.Fatalf("creating asset loader: %v", err)
	}
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:         time.Now,
		Stdout:      &stdout,
		Stderr:      &stderr,
		AssetLoader: loader,
	}, &stdout, &stderr
}
