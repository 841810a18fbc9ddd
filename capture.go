package m2gimage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/N283T/mols2grid-to-image/internal/fileutil"
	"github.com/N283T/mols2grid-to-image/internal/process"
)

// imageCapturer abstracts HTML to image capture to allow different backends.
type imageCapturer interface {
	CaptureImage(ctx context.Context, htmlContent string, opts *captureOptions) ([]byte, error)
	Close() error
}

// elementCapturer abstracts capturing from an HTML file to enable testing without a browser.
type elementCapturer interface {
	CaptureFromFile(ctx context.Context, filePath string, opts *captureOptions) ([]byte, error)
}

// Compile-time interface checks
var (
	_ imageCapturer   = (*rodCapturer)(nil)
	_ elementCapturer = (*rodRenderer)(nil)
)

// captureOptions holds options for image capture.
type captureOptions struct {
	Selector    string // grid element to screenshot (default "#mols2grid")
	Transparent bool   // leave the page background unpainted
}

// defaultSelector is the grid container element captured from the page.
const defaultSelector = "#mols2grid"

// rodRenderer implements elementCapturer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	// Configure launcher
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.releaseLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// releaseLauncher kills the browser process tree and removes launcher temp files.
// Sweeps helper processes (GPU, zygote) that closing the browser can leave behind.
func (r *rodRenderer) releaseLauncher() {
	if r.launcher == nil {
		return
	}
	r.launcher.Kill()
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Cleanup()
	r.launcher = nil
}

// Close releases browser resources and reaps the browser process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.releaseLauncher()
	return err
}

// CaptureFromFile opens a local HTML file in headless Chrome, waits for the
// drawing script to settle, and screenshots the grid element as PNG.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) CaptureFromFile(ctx context.Context, filePath string, opts *captureOptions) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	selector := resolveSelector(opts)

	// The grid container exists as soon as the document is parsed, so a
	// missing selector fails immediately instead of burning the timeout.
	found, _, err := page.Has(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageCapture, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrElementNotFound, selector)
	}

	// The drawing script flips data-ready once every structure settled.
	el, err := page.Timeout(timeout).Element(selector + `[data-ready="1"]`)
	if err != nil {
		return nil, fmt.Errorf("%w: drawing did not settle: %v", ErrImageCapture, err)
	}

	// Check context after settling
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.fitViewport(page); err != nil {
		return nil, err
	}

	if opts != nil && opts.Transparent {
		override := proto.EmulationSetDefaultBackgroundColorOverride{
			Color: &proto.DOMRGBA{R: 0, G: 0, B: 0, A: floatPtr(0)},
		}
		if err := override.Call(page); err != nil {
			return nil, fmt.Errorf("%w: background override: %v", ErrImageCapture, err)
		}
	}

	data, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageCapture, err)
	}

	return data, nil
}

// resolveSelector returns the element selector to capture, falling back to
// the grid container default.
func resolveSelector(opts *captureOptions) string {
	if opts != nil && opts.Selector != "" {
		return opts.Selector
	}
	return defaultSelector
}

// fitViewport grows the viewport to the full document size so grids taller
// than the default window are not clipped in the element screenshot.
func (r *rodRenderer) fitViewport(page *rod.Page) error {
	width, err := evalInt(page, "() => document.documentElement.scrollWidth")
	if err != nil {
		return fmt.Errorf("%w: measuring page width: %v", ErrImageCapture, err)
	}
	height, err := evalInt(page, "() => document.documentElement.scrollHeight")
	if err != nil {
		return fmt.Errorf("%w: measuring page height: %v", ErrImageCapture, err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	})
	if err != nil {
		return fmt.Errorf("%w: resizing viewport: %v", ErrImageCapture, err)
	}
	return nil
}

// evalInt runs a JS expression on the page and returns its integer result.
func evalInt(page *rod.Page, js string) (int, error) {
	obj, err := page.Eval(js)
	if err != nil {
		return 0, err
	}
	return obj.Value.Int(), nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodCapturer captures grid images using headless Chrome via go-rod.
type rodCapturer struct {
	renderer *rodRenderer
}

// newRodCapturer creates a rodCapturer with production renderer.
func newRodCapturer(timeout time.Duration) *rodCapturer {
	return &rodCapturer{
		renderer: newRodRenderer(timeout),
	}
}

// CaptureImage renders HTML content in headless Chrome and screenshots the
// grid element as PNG.
func (c *rodCapturer) CaptureImage(ctx context.Context, htmlContent string, opts *captureOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.CaptureFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodCapturer) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
