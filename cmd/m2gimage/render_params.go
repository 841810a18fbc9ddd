package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	m2gimage "github.com/N283T/mols2grid-to-image"
	"github.com/N283T/mols2grid-to-image/internal/config"
	"github.com/N283T/mols2grid-to-image/internal/dataset"
	"github.com/N283T/mols2grid-to-image/internal/fileutil"
)

// Sentinel errors for render parameter resolution.
var (
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// renderParams groups values shared across page renders.
type renderParams struct {
	items       []m2gimage.Item
	grid        *m2gimage.GridOptions
	css         string
	transparent bool
	htmlOnly    bool
}

// buildGridOptions maps resolved config onto renderer grid options.
// Transparent is not a grid option; the page stylesheet handles it.
func buildGridOptions(cfg config.Config, scriptURL string) *m2gimage.GridOptions {
	return &m2gimage.GridOptions{
		Columns:    cfg.Columns,
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
		FontSize:   cfg.FontSize,
		Border:     cfg.Border,
		Gap:        cfg.Gap,
		FontFamily: cfg.FontFamily,
		TextAlign:  cfg.TextAlign,
		ScriptURL:  scriptURL,
		RemoveHs:   cfg.RemoveHs,
		UseCoords:  cfg.UseCoords,
		CoordGen:   cfg.CoordGen,
	}
}

// buildItems converts table rows into renderer items. The SMILES column
// fills Item.Smiles; caption fields follow subset order when subset is
// non-nil, otherwise every other column in header order.
func buildItems(table *dataset.Table, smilesCol string, subset []string) ([]m2gimage.Item, error) {
	smilesIdx, ok := table.Column(smilesCol)
	if !ok {
		return nil, fmt.Errorf("%w: %q (have: %s)",
			dataset.ErrColumnMissing, smilesCol, strings.Join(table.Columns(), ", "))
	}

	fieldCols := subset
	if fieldCols == nil {
		fieldCols = make([]string, 0, len(table.Header))
		for _, h := range table.Header {
			if h != smilesCol {
				fieldCols = append(fieldCols, h)
			}
		}
	}

	indices := make([]int, len(fieldCols))
	for i, name := range fieldCols {
		idx, ok := table.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q (have: %s)",
				dataset.ErrColumnMissing, name, strings.Join(table.Columns(), ", "))
		}
		indices[i] = idx
	}

	items := make([]m2gimage.Item, len(table.Rows))
	for r, row := range table.Rows {
		fields := make([]m2gimage.Field, len(fieldCols))
		for i, idx := range indices {
			fields[i] = m2gimage.Field{Name: fieldCols[i], Value: row[idx]}
		}
		items[r] = m2gimage.Item{Smiles: row[smilesIdx], Fields: fields}
	}
	return items, nil
}

// resolveUserCSS resolves the --css value into stylesheet content.
// A path (contains a separator) is read from disk, anything with a
// declaration block is taken as raw CSS, and everything else is looked up
// as a style name. Empty stays empty: the service always applies the base
// style regardless.
func resolveUserCSS(css string, loader m2gimage.AssetLoader) (string, error) {
	switch {
	case css == "":
		return "", nil
	case fileutil.IsFilePath(css):
		content, err := os.ReadFile(css) // #nosec G304 -- CSS path is user-provided
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		return string(content), nil
	case fileutil.IsCSS(css):
		return css, nil
	default:
		content, err := loader.LoadStyle(css)
		if err != nil {
			return "", fmt.Errorf("loading style %q: %w", css, err)
		}
		return content, nil
	}
}

// htmlOutputPath returns the HTML path matching an image output path.
func htmlOutputPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".html"
}

// validateWorkers checks the worker count flag.
// Zero means auto-sizing; the upper bound caps browser memory usage.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > m2gimage.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, m2gimage.MaxPoolSize)
	}
	return nil
}

// resolveTimeoutWithEnv resolves the render timeout from the flag value,
// falling back to the environment. Zero means the service default applies.
func resolveTimeoutWithEnv(flagValue string, envTimeout time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envTimeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: must be positive, got %v", ErrInvalidTimeout, d)
	}
	return d, nil
}
