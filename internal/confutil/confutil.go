// Package confutil decodes configuration documents.
//
// Config files are JSON by convention, but YAML is accepted transparently:
// every JSON document is a valid YAML document, so one decoder covers both.
// The external parser stays isolated behind this package so callers never
// import it directly.
package confutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize limits config input to prevent memory exhaustion (default 1MB).
var MaxDocumentSize = 1 << 20

var (
	ErrEmptyDocument    = errors.New("confutil: empty document")
	ErrNilDestination   = errors.New("confutil: nil destination pointer")
	ErrDocumentTooLarge = errors.New("confutil: document exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if len(data) > MaxDocumentSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLarge, len(data), MaxDocumentSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Decode unmarshals a JSON or YAML document into v.
// Keys without a matching destination field are ignored; callers that need
// to report them diff the document against DecodeMap.
func Decode(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("confutil: %w", err)
	}
	return nil
}

// DecodeMap unmarshals a document into a generic map, preserving every
// top-level key. Non-mapping documents fail.
func DecodeMap(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := Decode(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Marshal renders v as YAML for display surfaces.
func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("confutil: %w", err)
	}
	return result, nil
}
