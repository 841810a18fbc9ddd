package config

import (
	"errors"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestResolve_Precedence(t *testing.T) {
	t.Run("no sources yields defaults", func(t *testing.T) {
		cfg, err := Resolve(Overrides{}, nil)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !reflect.DeepEqual(cfg, Defaults()) {
			t.Errorf("cfg = %+v, want defaults", cfg)
		}
	})

	t.Run("file value beats default", func(t *testing.T) {
		file := &FileConfig{Columns: intPtr(3)}
		cfg, err := Resolve(Overrides{}, file)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cfg.Columns != 3 {
			t.Errorf("Columns = %d, want 3", cfg.Columns)
		}
	})

	t.Run("CLI value beats file value", func(t *testing.T) {
		file := &FileConfig{Columns: intPtr(3)}
		cfg, err := Resolve(Overrides{Columns: intPtr(7)}, file)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cfg.Columns != 7 {
			t.Errorf("Columns = %d, want 7", cfg.Columns)
		}
	})

	t.Run("CLI value equal to the default still beats file", func(t *testing.T) {
		file := &FileConfig{Columns: intPtr(3)}
		cfg, err := Resolve(Overrides{Columns: intPtr(DefaultColumns)}, file)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cfg.Columns != DefaultColumns {
			t.Errorf("Columns = %d, want %d (explicit CLI value)", cfg.Columns, DefaultColumns)
		}
	})

	t.Run("fields resolve independently", func(t *testing.T) {
		file := &FileConfig{
			Columns:      intPtr(3),
			Output:       strPtr("from-file.png"),
			SmilesColumn: strPtr("structure"),
		}
		cfg, err := Resolve(Overrides{Output: strPtr("from-cli.png")}, file)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cfg.Output != "from-cli.png" {
			t.Errorf("Output = %q, want %q", cfg.Output, "from-cli.png")
		}
		if cfg.Columns != 3 {
			t.Errorf("Columns = %d, want 3 (inherited from file)", cfg.Columns)
		}
		if cfg.SmilesColumn != "structure" {
			t.Errorf("SmilesColumn = %q, want %q", cfg.SmilesColumn, "structure")
		}
		if cfg.CellWidth != DefaultCellWidth {
			t.Errorf("CellWidth = %d, want default %d", cfg.CellWidth, DefaultCellWidth)
		}
	})

	t.Run("every optional field flows through", func(t *testing.T) {
		file := &FileConfig{
			InputCSV:     strPtr("data.csv"),
			OutputHTML:   strPtr("grid.html"),
			OutputDir:    strPtr("out"),
			CellWidth:    intPtr(200),
			CellHeight:   intPtr(120),
			FontSize:     intPtr(14),
			Subset:       []string{"ccd", "name"},
			SortBy:       strPtr("weight"),
			RemoveHs:     boolPtr(true),
			UseCoords:    boolPtr(false),
			CoordGen:     boolPtr(true),
			Border:       strPtr("1px solid #ddd"),
			Gap:          intPtr(4),
			FontFamily:   strPtr("Inter"),
			TextAlign:    strPtr("LEFT"),
			ItemsPerPage: intPtr(12),
			Transparent:  boolPtr(true),
			CSS:          strPtr("dark"),
		}
		cfg, err := Resolve(Overrides{}, file)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cfg.Input != "data.csv" {
			t.Errorf("Input = %q, want %q", cfg.Input, "data.csv")
		}
		if cfg.OutputHTML != "grid.html" || cfg.OutputDir != "out" {
			t.Errorf("OutputHTML/OutputDir = %q/%q", cfg.OutputHTML, cfg.OutputDir)
		}
		if cfg.CellWidth != 200 || cfg.CellHeight != 120 || cfg.FontSize != 14 {
			t.Errorf("layout = %d/%d/%d, want 200/120/14", cfg.CellWidth, cfg.CellHeight, cfg.FontSize)
		}
		if len(cfg.Subset) != 2 {
			t.Errorf("Subset = %v, want [ccd name]", cfg.Subset)
		}
		if cfg.SortBy != "weight" {
			t.Errorf("SortBy = %q, want %q", cfg.SortBy, "weight")
		}
		if cfg.RemoveHs == nil || !*cfg.RemoveHs {
			t.Error("RemoveHs should be set true")
		}
		if cfg.UseCoords == nil || *cfg.UseCoords {
			t.Error("UseCoords should be set false")
		}
		if cfg.CoordGen == nil || !*cfg.CoordGen {
			t.Error("CoordGen should be set true")
		}
		if cfg.Border != "1px solid #ddd" {
			t.Errorf("Border = %q", cfg.Border)
		}
		if cfg.Gap == nil || *cfg.Gap != 4 {
			t.Error("Gap should be set to 4")
		}
		if cfg.FontFamily != "Inter" {
			t.Errorf("FontFamily = %q, want %q", cfg.FontFamily, "Inter")
		}
		if cfg.TextAlign != "left" {
			t.Errorf("TextAlign = %q, want %q (normalized)", cfg.TextAlign, "left")
		}
		if cfg.ItemsPerPage != 12 {
			t.Errorf("ItemsPerPage = %d, want 12", cfg.ItemsPerPage)
		}
		if !cfg.Transparent {
			t.Error("Transparent = false, want true")
		}
		if cfg.CSS != "dark" {
			t.Errorf("CSS = %q, want %q", cfg.CSS, "dark")
		}
	})

	t.Run("CLI subset beats file subset", func(t *testing.T) {
		file := &FileConfig{Subset: []string{"ccd"}}
		cfg, err := Resolve(Overrides{Subset: []string{"name", "id"}}, file)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if len(cfg.Subset) != 2 || cfg.Subset[0] != "name" {
			t.Errorf("Subset = %v, want [name id]", cfg.Subset)
		}
	})

	t.Run("explicit false beats file true", func(t *testing.T) {
		file := &FileConfig{Transparent: boolPtr(true)}
		cfg, err := Resolve(Overrides{Transparent: boolPtr(false)}, file)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cfg.Transparent {
			t.Error("Transparent = true, want false (explicit CLI)")
		}
	})
}

func TestResolve_Idempotence(t *testing.T) {
	file := &FileConfig{
		Columns:     intPtr(4),
		Subset:      []string{"ccd"},
		Gap:         intPtr(8),
		Transparent: boolPtr(true),
	}
	ovr := Overrides{Output: strPtr("twice.png"), RemoveHs: boolPtr(true)}

	first, err := Resolve(ovr, file)
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	second, err := Resolve(ovr, file)
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolutions differ:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestResolve_Validation(t *testing.T) {
	t.Run("invalid file value fails naming the field", func(t *testing.T) {
		file := &FileConfig{Columns: intPtr(0)}
		_, err := Resolve(Overrides{}, file)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("invalid CLI value fails even with valid file", func(t *testing.T) {
		file := &FileConfig{Columns: intPtr(3)}
		_, err := Resolve(Overrides{Columns: intPtr(-1)}, file)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("invalid text align from file fails", func(t *testing.T) {
		file := &FileConfig{TextAlign: strPtr("everywhere")}
		_, err := Resolve(Overrides{}, file)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("error = %v, want ErrInvalidConfig", err)
		}
	})
}

func TestResolve_DoesNotShareStorage(t *testing.T) {
	t.Run("resolved pointers are copies", func(t *testing.T) {
		src := boolPtr(true)
		cfg, err := Resolve(Overrides{RemoveHs: src}, nil)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cfg.RemoveHs == src {
			t.Error("RemoveHs shares storage with the override")
		}
		*src = false
		if !*cfg.RemoveHs {
			t.Error("mutating the override changed the resolved config")
		}
	})

	t.Run("resolved subset is a copy", func(t *testing.T) {
		file := &FileConfig{Subset: []string{"ccd"}}
		cfg, err := Resolve(Overrides{}, file)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		file.Subset[0] = "mutated"
		if cfg.Subset[0] != "ccd" {
			t.Errorf("Subset[0] = %q, want %q (no shared storage)", cfg.Subset[0], "ccd")
		}
	})
}
