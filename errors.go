package m2gimage

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoItems         = errors.New("item list cannot be empty")
	ErrEmptySmiles     = errors.New("SMILES string cannot be empty")
	ErrGridGeneration  = errors.New("grid HTML generation failed")
	ErrImageCapture    = errors.New("image capture failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrElementNotFound = errors.New("grid element not found in page")

	// Grid options validation errors.
	ErrInvalidColumns   = errors.New("invalid column count")
	ErrInvalidCellSize  = errors.New("invalid cell size")
	ErrInvalidFontSize  = errors.New("invalid font size")
	ErrInvalidGap       = errors.New("invalid gap value")
	ErrInvalidTextAlign = errors.New("invalid text alignment")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
