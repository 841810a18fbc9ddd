package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/N283T/mols2grid-to-image/internal/confutil"
)

// FileConfig holds raw values decoded from a JSON or YAML config document.
// Pointer fields distinguish absent keys from zero values. Unknown lists
// the ignored document keys in sorted order; the CLI reports them as
// warnings, and resolution proceeds without them.
type FileConfig struct {
	InputCSV     *string  `yaml:"input_csv"`
	Output       *string  `yaml:"output_image"`
	OutputHTML   *string  `yaml:"output_html"`
	OutputDir    *string  `yaml:"output_dir"`
	SmilesColumn *string  `yaml:"smiles_col"`
	Columns      *int     `yaml:"n_cols"`
	CellWidth    *int     `yaml:"cell_width"`
	CellHeight   *int     `yaml:"cell_height"`
	FontSize     *int     `yaml:"fontsize"`
	Subset       []string `yaml:"subset"`
	SortBy       *string  `yaml:"sort_by"`
	RemoveHs     *bool    `yaml:"remove_hs"`
	UseCoords    *bool    `yaml:"use_coords"`
	CoordGen     *bool    `yaml:"coord_gen"`
	Border       *string  `yaml:"border"`
	Gap          *int     `yaml:"gap"`
	FontFamily   *string  `yaml:"fontfamily"`
	TextAlign    *string  `yaml:"text_align"`
	ItemsPerPage *int     `yaml:"n_items_per_page"`
	Transparent  *bool    `yaml:"transparent"`
	CSS          *string  `yaml:"css"`

	Unknown []string `yaml:"-"`
}

// recognizedKeys are the document keys resolution understands. input_csv
// names the dataset when the positional argument is omitted.
var recognizedKeys = map[string]struct{}{
	"input_csv":        {},
	"output_image":     {},
	"output_html":      {},
	"output_dir":       {},
	"smiles_col":       {},
	"n_cols":           {},
	"cell_width":       {},
	"cell_height":      {},
	"fontsize":         {},
	"subset":           {},
	"sort_by":          {},
	"remove_hs":        {},
	"use_coords":       {},
	"coord_gen":        {},
	"border":           {},
	"gap":              {},
	"fontfamily":       {},
	"text_align":       {},
	"n_items_per_page": {},
	"transparent":      {},
	"css":              {},
}

// Extensions tried when resolving a bare config name, in order.
var configExtensions = []string{".json", ".yaml", ".yml"}

// Load reads a config document from a file path or config name.
// A string containing a path separator is used as a path directly; a bare
// name is searched in the working directory and the user config directory,
// trying the name as given and with each known extension. Missing files
// yield ErrConfigNotFound, malformed documents ErrConfigParse. Unknown
// document keys never fail the load; they are collected on the result.
func Load(nameOrPath string) (*FileConfig, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	doc, err := confutil.DecodeMap(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	var fc FileConfig
	if err := confutil.Decode(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	fc.Unknown = unknownKeys(doc)

	return &fc, nil
}

// unknownKeys returns the document keys outside the recognized set, sorted.
func unknownKeys(doc map[string]any) []string {
	var unknown []string
	for key := range doc {
		if _, ok := recognizedKeys[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name.
// Tries the name as given, then with each known extension, first in the
// current directory and then in ~/.config/mols2grid-to-image/.
func resolveConfigPath(name string) (string, error) {
	candidates := append([]string{name}, extended(name)...)
	triedPaths := make([]string, 0, len(candidates)*2)

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate, nil
		}
		triedPaths = append(triedPaths, candidate)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, candidate := range candidates {
			userPath := filepath.Join(userConfigDir, "mols2grid-to-image", candidate)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// extended returns the name with each config extension appended, skipping
// extensions the name already carries.
func extended(name string) []string {
	out := make([]string, 0, len(configExtensions))
	for _, ext := range configExtensions {
		if strings.HasSuffix(name, ext) {
			continue
		}
		out = append(out, name+ext)
	}
	return out
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
