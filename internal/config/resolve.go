package config

import "strings"

// Overrides carries the values the user explicitly set on the command line.
// Nil fields were not touched. The CLI builds this from flag Changed state,
// never from parser defaults, so a flag typed with its default value still
// counts as set.
type Overrides struct {
	Input        *string
	Output       *string
	OutputHTML   *string
	OutputDir    *string
	SmilesColumn *string
	Columns      *int
	CellWidth    *int
	CellHeight   *int
	FontSize     *int
	Subset       []string // nil = untouched
	SortBy       *string
	RemoveHs     *bool
	UseCoords    *bool
	CoordGen     *bool
	Border       *string
	Gap          *int
	FontFamily   *string
	TextAlign    *string
	ItemsPerPage *int
	Transparent  *bool
	CSS          *string
}

// Resolve merges CLI overrides, the file config, and built-in defaults into
// a validated Config. Each field resolves independently: CLI over file over
// default. file may be nil when no config document was given. Inputs are
// never mutated and identical inputs produce field-wise equal results.
func Resolve(ovr Overrides, file *FileConfig) (Config, error) {
	cfg := Defaults()

	if file != nil {
		applyFile(&cfg, file)
	}
	applyOverrides(&cfg, ovr)

	cfg.TextAlign = strings.ToLower(cfg.TextAlign)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyFile copies every present file value onto cfg. Pointer targets and
// slices are copied so the resolved Config shares no storage with its
// sources.
func applyFile(cfg *Config, f *FileConfig) {
	setString(&cfg.Input, f.InputCSV)
	setString(&cfg.Output, f.Output)
	setString(&cfg.OutputHTML, f.OutputHTML)
	setString(&cfg.OutputDir, f.OutputDir)
	setString(&cfg.SmilesColumn, f.SmilesColumn)
	setInt(&cfg.Columns, f.Columns)
	setInt(&cfg.CellWidth, f.CellWidth)
	setInt(&cfg.CellHeight, f.CellHeight)
	setInt(&cfg.FontSize, f.FontSize)
	if f.Subset != nil {
		cfg.Subset = append([]string(nil), f.Subset...)
	}
	setString(&cfg.SortBy, f.SortBy)
	setBoolPtr(&cfg.RemoveHs, f.RemoveHs)
	setBoolPtr(&cfg.UseCoords, f.UseCoords)
	setBoolPtr(&cfg.CoordGen, f.CoordGen)
	setString(&cfg.Border, f.Border)
	setIntPtr(&cfg.Gap, f.Gap)
	setString(&cfg.FontFamily, f.FontFamily)
	setString(&cfg.TextAlign, f.TextAlign)
	setInt(&cfg.ItemsPerPage, f.ItemsPerPage)
	setBool(&cfg.Transparent, f.Transparent)
	setString(&cfg.CSS, f.CSS)
}

// applyOverrides copies every explicitly set CLI value onto cfg, shadowing
// file values and defaults alike.
func applyOverrides(cfg *Config, o Overrides) {
	setString(&cfg.Input, o.Input)
	setString(&cfg.Output, o.Output)
	setString(&cfg.OutputHTML, o.OutputHTML)
	setString(&cfg.OutputDir, o.OutputDir)
	setString(&cfg.SmilesColumn, o.SmilesColumn)
	setInt(&cfg.Columns, o.Columns)
	setInt(&cfg.CellWidth, o.CellWidth)
	setInt(&cfg.CellHeight, o.CellHeight)
	setInt(&cfg.FontSize, o.FontSize)
	if o.Subset != nil {
		cfg.Subset = append([]string(nil), o.Subset...)
	}
	setString(&cfg.SortBy, o.SortBy)
	setBoolPtr(&cfg.RemoveHs, o.RemoveHs)
	setBoolPtr(&cfg.UseCoords, o.UseCoords)
	setBoolPtr(&cfg.CoordGen, o.CoordGen)
	setString(&cfg.Border, o.Border)
	setIntPtr(&cfg.Gap, o.Gap)
	setString(&cfg.FontFamily, o.FontFamily)
	setString(&cfg.TextAlign, o.TextAlign)
	setInt(&cfg.ItemsPerPage, o.ItemsPerPage)
	setBool(&cfg.Transparent, o.Transparent)
	setString(&cfg.CSS, o.CSS)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setIntPtr(dst **int, src *int) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func setBoolPtr(dst **bool, src *bool) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
