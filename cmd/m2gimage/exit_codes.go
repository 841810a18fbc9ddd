package main

import (
	"errors"
	"os"

	m2gimage "github.com/N283T/mols2grid-to-image"
	"github.com/N283T/mols2grid-to-image/internal/config"
	"github.com/N283T/mols2grid-to-image/internal/dataset"
	"github.com/N283T/mols2grid-to-image/internal/paginate"
)

// Exit codes for the m2gimage CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, unreadable dataset
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, m2gimage.ErrBrowserConnect) ||
		errors.Is(err, m2gimage.ErrPageCreate) ||
		errors.Is(err, m2gimage.ErrPageLoad) ||
		errors.Is(err, m2gimage.ErrElementNotFound) ||
		errors.Is(err, m2gimage.ErrImageCapture) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, dataset.ErrDatasetOpen) ||
		errors.Is(err, dataset.ErrDatasetRead) ||
		errors.Is(err, dataset.ErrEmptyDataset) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteImage) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, dataset.ErrColumnMissing) ||
		errors.Is(err, paginate.ErrInvalidPlan) ||
		errors.Is(err, m2gimage.ErrNoItems) ||
		errors.Is(err, m2gimage.ErrEmptySmiles) ||
		errors.Is(err, m2gimage.ErrInvalidColumns) ||
		errors.Is(err, m2gimage.ErrInvalidCellSize) ||
		errors.Is(err, m2gimage.ErrInvalidFontSize) ||
		errors.Is(err, m2gimage.ErrInvalidGap) ||
		errors.Is(err, m2gimage.ErrInvalidTextAlign) ||
		errors.Is(err, m2gimage.ErrStyleNotFound) ||
		errors.Is(err, m2gimage.ErrTemplateNotFound) ||
		errors.Is(err, m2gimage.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
