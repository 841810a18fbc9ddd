// Package config resolves grid image configuration from CLI flags, an
// optional config file, and built-in defaults.
//
// Resolution is three-tiered and decided per field: a value the user
// explicitly passed on the command line wins, then a value present in the
// config file, then the built-in default. The CLI layer reports only
// explicitly set flags, so a flag typed with its default value still
// overrides the file.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config value")
)

// Built-in defaults, applied when neither CLI nor config file set a field.
const (
	DefaultOutput       = "result.png"
	DefaultSmilesColumn = "smiles"
	DefaultColumns      = 5
	DefaultCellWidth    = 150
	DefaultCellHeight   = 150
	DefaultFontSize     = 12
)

// SubsetColumn is promoted to the display subset when the dataset carries a
// column of this name and no subset was configured.
const SubsetColumn = "ccd"

// Config is the fully resolved configuration. Every field carries at least
// its built-in default once Resolve returns; optional fields use an empty
// string, zero ItemsPerPage, or a nil pointer to mean "unset". Values are
// fixed at construction: derivations return an updated copy and the struct
// is safe to read from concurrent page renders.
type Config struct {
	// I/O
	Input      string // dataset path, CLI positional or file input_csv
	Output     string // base image path, page suffixes derive from it
	OutputHTML string // intermediate HTML path, empty = temp file only
	OutputDir  string // relocation dir for outputs, empty = unset

	// Grid layout
	SmilesColumn string
	Columns      int
	CellWidth    int
	CellHeight   int
	FontSize     int
	Subset       []string // nil = unset, empty = no caption fields

	// Molecule display
	SortBy    string
	RemoveHs  *bool
	UseCoords *bool
	CoordGen  *bool

	// Cell styling
	Border     string
	Gap        *int
	FontFamily string
	TextAlign  string // one of left, center, right, justify when set
	CSS        string // extra stylesheet: name, path, or raw content

	// Pagination and output
	ItemsPerPage int // 0 = single page over all rows
	Transparent  bool
}

// Defaults returns a Config carrying only built-in defaults.
func Defaults() Config {
	return Config{
		Output:       DefaultOutput,
		SmilesColumn: DefaultSmilesColumn,
		Columns:      DefaultColumns,
		CellWidth:    DefaultCellWidth,
		CellHeight:   DefaultCellHeight,
		FontSize:     DefaultFontSize,
	}
}

// Validate checks ranges and enums on the resolved values. Errors wrap
// ErrInvalidConfig and name the offending field by its config key.
func (c Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("%w: output_image must not be empty", ErrInvalidConfig)
	}
	if c.SmilesColumn == "" {
		return fmt.Errorf("%w: smiles_col must not be empty", ErrInvalidConfig)
	}
	if c.Columns < 1 {
		return fmt.Errorf("%w: n_cols must be a positive integer, got %d", ErrInvalidConfig, c.Columns)
	}
	if c.CellWidth < 1 {
		return fmt.Errorf("%w: cell_width must be a positive integer, got %d", ErrInvalidConfig, c.CellWidth)
	}
	if c.CellHeight < 1 {
		return fmt.Errorf("%w: cell_height must be a positive integer, got %d", ErrInvalidConfig, c.CellHeight)
	}
	if c.FontSize < 1 {
		return fmt.Errorf("%w: fontsize must be a positive integer, got %d", ErrInvalidConfig, c.FontSize)
	}
	if c.ItemsPerPage < 0 {
		return fmt.Errorf("%w: n_items_per_page must be at least 1, got %d", ErrInvalidConfig, c.ItemsPerPage)
	}
	if c.Gap != nil && *c.Gap < 0 {
		return fmt.Errorf("%w: gap must not be negative, got %d", ErrInvalidConfig, *c.Gap)
	}
	if c.TextAlign != "" {
		switch strings.ToLower(c.TextAlign) {
		case "left", "center", "right", "justify":
			// valid
		default:
			return fmt.Errorf("%w: text_align must be one of left, center, right, justify; got %q", ErrInvalidConfig, c.TextAlign)
		}
	}
	return nil
}

// DeriveSubset fills the display subset from the dataset columns. A subset
// configured via CLI or file is kept as is. Otherwise a dataset carrying
// the ccd column promotes it to a single-entry subset; without it the
// subset stays unset and the renderer shows every column. The receiver is
// never mutated.
func (c Config) DeriveSubset(columns []string) Config {
	if c.Subset != nil {
		return c
	}
	for _, col := range columns {
		if col == SubsetColumn {
			c.Subset = []string{SubsetColumn}
			return c
		}
	}
	return c
}
