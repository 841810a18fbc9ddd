package m2gimage

import (
	"fmt"
	"strings"
	"time"

	"github.com/N283T/mols2grid-to-image/internal/pipeline"
)

// Text alignment constants.
const (
	TextAlignLeft    = "left"
	TextAlignCenter  = "center"
	TextAlignRight   = "right"
	TextAlignJustify = "justify"
)

// Grid layout defaults.
const (
	DefaultColumns    = 5
	DefaultCellWidth  = 150
	DefaultCellHeight = 150
	DefaultFontSize   = 12
	DefaultBorder     = "none"
	DefaultGap        = 10
	DefaultTextAlign  = TextAlignCenter
)

// DefaultScriptURL is the molecule drawing script loaded by the grid page
// when GridParams leaves ScriptURL empty.
const DefaultScriptURL = pipeline.DefaultScriptURL

// Item is one molecule cell: a SMILES string plus the labeled values shown
// in its caption.
type Item struct {
	Smiles string  // SMILES notation (required)
	Fields []Field // caption fields in display order (optional)
}

// Field is a single labeled caption value.
type Field struct {
	Name  string
	Value string
}

// GridOptions configures grid layout and molecule drawing.
// Zero values mean "use the default"; only negative values are rejected.
type GridOptions struct {
	Columns    int    // cells per row (default 5)
	CellWidth  int    // cell width in pixels (default 150)
	CellHeight int    // cell height in pixels (default 150)
	FontSize   int    // caption font size in points (default 12)
	Border     string // CSS border for cells (default "none")
	Gap        *int   // gap between cells in pixels (nil = 10)
	FontFamily string // caption font family (optional)
	TextAlign  string // "left", "center", "right", "justify" (default "center")
	ScriptURL  string // drawing script URL (default DefaultScriptURL)

	// Drawer flags. Nil leaves the drawing script's own default in place.
	RemoveHs  *bool // strip explicit hydrogens before drawing
	UseCoords *bool // honor coordinates embedded in the input
	CoordGen  *bool // use the CoordGen layout algorithm
}

// DefaultGridOptions returns grid options with default values.
func DefaultGridOptions() *GridOptions {
	gap := DefaultGap
	return &GridOptions{
		Columns:    DefaultColumns,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		FontSize:   DefaultFontSize,
		Border:     DefaultBorder,
		Gap:        &gap,
		TextAlign:  DefaultTextAlign,
		ScriptURL:  DefaultScriptURL,
	}
}

// Validate checks that grid options are valid.
// Returns nil if g is nil (nil means use defaults).
func (g *GridOptions) Validate() error {
	if g == nil {
		return nil
	}

	if g.Columns < 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidColumns, g.Columns)
	}

	if g.CellWidth < 0 {
		return fmt.Errorf("%w: width %d (must be positive)", ErrInvalidCellSize, g.CellWidth)
	}
	if g.CellHeight < 0 {
		return fmt.Errorf("%w: height %d (must be positive)", ErrInvalidCellSize, g.CellHeight)
	}

	if g.FontSize < 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidFontSize, g.FontSize)
	}

	if g.Gap != nil && *g.Gap < 0 {
		return fmt.Errorf("%w: %d (must not be negative)", ErrInvalidGap, *g.Gap)
	}

	if !isValidTextAlign(g.TextAlign) {
		return fmt.Errorf("%w: %q (must be left, center, right, or justify)", ErrInvalidTextAlign, g.TextAlign)
	}

	return nil
}

// isValidTextAlign checks if align is a known alignment (case-insensitive).
// Empty is valid and means use the default.
func isValidTextAlign(align string) bool {
	switch strings.ToLower(align) {
	case "", TextAlignLeft, TextAlignCenter, TextAlignRight, TextAlignJustify:
		return true
	}
	return false
}

// resolve returns a copy with zero-value fields replaced by defaults.
// A nil receiver yields pure defaults.
func (g *GridOptions) resolve() GridOptions {
	out := GridOptions{}
	if g != nil {
		out = *g
	}
	if out.Columns == 0 {
		out.Columns = DefaultColumns
	}
	if out.CellWidth == 0 {
		out.CellWidth = DefaultCellWidth
	}
	if out.CellHeight == 0 {
		out.CellHeight = DefaultCellHeight
	}
	if out.FontSize == 0 {
		out.FontSize = DefaultFontSize
	}
	if out.Border == "" {
		out.Border = DefaultBorder
	}
	if out.Gap == nil {
		gap := DefaultGap
		out.Gap = &gap
	}
	if out.TextAlign == "" {
		out.TextAlign = DefaultTextAlign
	}
	if out.ScriptURL == "" {
		out.ScriptURL = DefaultScriptURL
	}
	return out
}

// Input contains rendering parameters.
type Input struct {
	Items       []Item       // molecules to render (required)
	Grid        *GridOptions // grid layout (optional, nil = defaults)
	CSS         string       // extra CSS appended after the base style (optional)
	Transparent bool         // transparent page background instead of white
	HTMLOnly    bool         // stop after HTML generation, skip browser capture
}

// Result carries the rendering outputs.
type Result struct {
	HTML []byte // grid page HTML
	PNG  []byte // captured image, empty when HTMLOnly is set
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout       time.Duration
	styleInput    string // raw WithStyle value: name, path, or CSS content
	resolvedStyle string // base CSS resolved during New
	assetPath     string // custom asset directory from WithAssetPath
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the page load and capture timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("m2gimage: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithStyle sets the base stylesheet. Accepts a built-in style name
// ("default", "dark"), a path to a CSS file, or raw CSS content.
// Resolution happens during New; an unknown name or unreadable path
// fails construction.
func WithStyle(style string) Option {
	return func(s *Service) {
		s.cfg.styleInput = style
	}
}

// WithAssetPath points the service at a custom asset directory laid out as
// styles/{name}.css and templates/{name}.html. Assets missing from the
// directory fall back to the embedded defaults.
// Construction fails with ErrInvalidAssetPath if the directory is not usable.
func WithAssetPath(path string) Option {
	return func(s *Service) {
		s.cfg.assetPath = path
	}
}

// WithAssetLoader replaces the asset loader wholesale. Use for custom
// backends (S3, database). Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(s *Service) {
		s.assetLoader = loader
	}
}
