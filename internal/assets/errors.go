package assets

import "errors"

// Sentinel errors for style and template lookup.
var (
	// ErrStyleNotFound reports a stylesheet name with no matching asset.
	ErrStyleNotFound = errors.New("style not found")

	// ErrTemplateNotFound reports a page template name with no matching asset.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName reports a name that cannot map to an asset file,
	// such as one carrying path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath reports a custom asset path that is not a readable
	// directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead reports an I/O failure while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal reports a lookup that would leave the asset tree.
	ErrPathTraversal = errors.New("path traversal detected")
)
