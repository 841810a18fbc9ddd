package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a style or template name can be mapped to a
// file inside the asset tree. Names are bare identifiers: anything carrying
// a path separator, a dot, or a traversal sequence is rejected so a lookup
// like "dark" can never be steered outside styles/ or templates/.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
