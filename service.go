package m2gimage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/N283T/mols2grid-to-image/internal/fileutil"
	"github.com/N283T/mols2grid-to-image/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.HTMLGridRenderer = (*pipeline.GridRenderer)(nil)
	_ pipeline.CSSInjector      = (*pipeline.CSSInjection)(nil)
	_ imageCapturer             = (*rodCapturer)(nil)
	_ elementCapturer           = (*rodRenderer)(nil)
)

// Service orchestrates the SMILES-to-grid-image rendering pipeline.
// Create with New(), use Render() for rendering, and Close() when done.
type Service struct {
	cfg          serviceConfig
	assetLoader  AssetLoader
	gridRenderer pipeline.HTMLGridRenderer
	cssInjector  pipeline.CSSInjector
	capturer     imageCapturer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle, WithAssetPath).
// Returns error if asset loading or template parsing fails.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg:         serviceConfig{timeout: defaultTimeout},
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Handle WithAssetPath unless WithAssetLoader supplied a loader directly
	if s.assetLoader == nil {
		loader, err := NewAssetLoader(s.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		s.assetLoader = loader
	}

	// Resolve style input (name, path, or CSS content) to CSS content
	if err := s.resolveStyle(); err != nil {
		return nil, err
	}

	// Create grid renderer from the page template (if not injected by tests)
	if s.gridRenderer == nil {
		tmplContent, err := s.assetLoader.LoadTemplate(GridTemplate)
		if err != nil {
			return nil, fmt.Errorf("loading grid template: %w", err)
		}
		renderer, err := pipeline.NewGridRenderer(tmplContent)
		if err != nil {
			return nil, fmt.Errorf("initializing grid renderer: %w", err)
		}
		s.gridRenderer = renderer
	}

	// Create image capturer if not injected (e.g., by tests)
	if s.capturer == nil {
		s.capturer = newRodCapturer(s.cfg.timeout)
	}

	return s, nil
}

// Render runs the full pipeline and returns the result containing HTML and PNG.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, browser capture is skipped (for debugging).
// Recovers from internal panics to prevent crashes from propagating to callers.
func (s *Service) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	// Generate grid HTML
	htmlContent, err := s.gridRenderer.RenderGrid(ctx, toCells(input.Items), toGridParams(input.Grid))
	if err != nil {
		return nil, fmt.Errorf("generating grid HTML: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Build combined CSS (background + grid layout + base style + user CSS)
	// Order matters: generated rules first, user CSS last (can override)
	cssContent := buildBackgroundCSS(input.Transparent)
	cssContent += buildGridCSS(input.Grid)
	cssContent += s.cfg.resolvedStyle
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}

	// Inject CSS
	htmlContent = s.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Prepare result with HTML
	res := &Result{
		HTML: []byte(htmlContent),
	}

	// Skip browser capture if HTMLOnly mode
	if input.HTMLOnly {
		return res, nil
	}

	// Capture the grid element as PNG
	pngBytes, err := s.capturer.CaptureImage(ctx, htmlContent, &captureOptions{
		Transparent: input.Transparent,
	})
	if err != nil {
		return nil, fmt.Errorf("capturing image: %w", err)
	}

	res.PNG = pngBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.capturer != nil {
		return s.capturer.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during New() after options are applied and the asset loader is configured.
// The grid page depends on the base stylesheet, so an empty input loads the default.
func (s *Service) resolveStyle() error {
	input := s.cfg.styleInput
	if input == "" {
		css, err := s.assetLoader.LoadStyle(DefaultStyle)
		if err != nil {
			return fmt.Errorf("loading default style: %w", err)
		}
		s.cfg.resolvedStyle = css
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		s.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		s.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use asset loader
	css, err := s.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	s.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
// Both paths converge here, ensuring all inputs are validated before processing.
func (s *Service) validateInput(input Input) error {
	if len(input.Items) == 0 {
		return ErrNoItems
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.Smiles) == "" {
			return fmt.Errorf("%w: item %d", ErrEmptySmiles, i)
		}
	}
	return input.Grid.Validate()
}

// toCells converts public Items to internal pipeline.Cell values.
// Cell indices follow item order.
func toCells(items []Item) []pipeline.Cell {
	cells := make([]pipeline.Cell, len(items))
	for i, item := range items {
		fields := make([]pipeline.Field, len(item.Fields))
		for j, f := range item.Fields {
			fields[j] = pipeline.Field(f)
		}
		cells[i] = pipeline.Cell{
			Index:  i,
			Smiles: item.Smiles,
			Fields: fields,
		}
	}
	return cells
}

// toGridParams converts public GridOptions to internal pipeline.GridParams.
func toGridParams(g *GridOptions) pipeline.GridParams {
	opts := g.resolve()
	return pipeline.GridParams{
		ScriptURL:  opts.ScriptURL,
		CellWidth:  opts.CellWidth,
		CellHeight: opts.CellHeight,
		RemoveHs:   opts.RemoveHs,
		UseCoords:  opts.UseCoords,
		CoordGen:   opts.CoordGen,
	}
}
