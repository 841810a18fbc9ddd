package m2gimage

// Notes:
// - GridOptions: tests validation for columns, cell size, font, gap, alignment
// - resolve: tests zero-value defaulting and explicit-zero gap handling
// - WithTimeout: tests panic behavior for non-positive durations

import (
	"errors"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestGridOptions_Validate - GridOptions Validation
// ---------------------------------------------------------------------------

func TestGridOptions_Validate(t *testing.T) {
	t.Parallel()

	zero := 0
	negative := -5

	tests := []struct {
		name    string
		grid    *GridOptions
		wantErr error
	}{
		{
			name:    "nil is valid (use defaults)",
			grid:    nil,
			wantErr: nil,
		},
		{
			name:    "empty struct is valid (all use defaults)",
			grid:    &GridOptions{},
			wantErr: nil,
		},
		{
			name: "fully populated valid options",
			grid: &GridOptions{
				Columns:    8,
				CellWidth:  200,
				CellHeight: 180,
				FontSize:   14,
				Border:     "1px solid #ccc",
				Gap:        &zero,
				FontFamily: "monospace",
				TextAlign:  TextAlignLeft,
			},
			wantErr: nil,
		},
		{
			name:    "columns zero valid (uses default)",
			grid:    &GridOptions{Columns: 0},
			wantErr: nil,
		},
		{
			name:    "columns negative",
			grid:    &GridOptions{Columns: -1},
			wantErr: ErrInvalidColumns,
		},
		{
			name:    "cell width negative",
			grid:    &GridOptions{CellWidth: -100},
			wantErr: ErrInvalidCellSize,
		},
		{
			name:    "cell height negative",
			grid:    &GridOptions{CellHeight: -1},
			wantErr: ErrInvalidCellSize,
		},
		{
			name:    "font size negative",
			grid:    &GridOptions{FontSize: -12},
			wantErr: ErrInvalidFontSize,
		},
		{
			name:    "gap explicit zero valid",
			grid:    &GridOptions{Gap: &zero},
			wantErr: nil,
		},
		{
			name:    "gap negative",
			grid:    &GridOptions{Gap: &negative},
			wantErr: ErrInvalidGap,
		},
		{
			name:    "text align left",
			grid:    &GridOptions{TextAlign: "left"},
			wantErr: nil,
		},
		{
			name:    "text align case insensitive",
			grid:    &GridOptions{TextAlign: "CENTER"},
			wantErr: nil,
		},
		{
			name:    "text align justify",
			grid:    &GridOptions{TextAlign: TextAlignJustify},
			wantErr: nil,
		},
		{
			name:    "empty text align valid (uses default)",
			grid:    &GridOptions{TextAlign: ""},
			wantErr: nil,
		},
		{
			name:    "invalid text align",
			grid:    &GridOptions{TextAlign: "diagonal"},
			wantErr: ErrInvalidTextAlign,
		},
		{
			name:    "columns validated before cell size",
			grid:    &GridOptions{Columns: -1, CellWidth: -1},
			wantErr: ErrInvalidColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.grid.Validate()

			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDefaultGridOptions - Default GridOptions Values
// ---------------------------------------------------------------------------

func TestDefaultGridOptions(t *testing.T) {
	t.Parallel()

	g := DefaultGridOptions()

	if g.Columns != DefaultColumns {
		t.Errorf("Columns = %d, want %d", g.Columns, DefaultColumns)
	}
	if g.CellWidth != DefaultCellWidth {
		t.Errorf("CellWidth = %d, want %d", g.CellWidth, DefaultCellWidth)
	}
	if g.CellHeight != DefaultCellHeight {
		t.Errorf("CellHeight = %d, want %d", g.CellHeight, DefaultCellHeight)
	}
	if g.FontSize != DefaultFontSize {
		t.Errorf("FontSize = %d, want %d", g.FontSize, DefaultFontSize)
	}
	if g.Border != DefaultBorder {
		t.Errorf("Border = %q, want %q", g.Border, DefaultBorder)
	}
	if g.Gap == nil || *g.Gap != DefaultGap {
		t.Errorf("Gap = %v, want %d", g.Gap, DefaultGap)
	}
	if g.TextAlign != DefaultTextAlign {
		t.Errorf("TextAlign = %q, want %q", g.TextAlign, DefaultTextAlign)
	}

	// Ensure defaults are valid
	if err := g.Validate(); err != nil {
		t.Errorf("DefaultGridOptions() not valid: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestGridOptions_Resolve - Zero Value Defaulting
// ---------------------------------------------------------------------------

func TestGridOptions_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("nil receiver yields defaults", func(t *testing.T) {
		t.Parallel()

		var g *GridOptions
		r := g.resolve()

		if r.Columns != DefaultColumns {
			t.Errorf("Columns = %d, want %d", r.Columns, DefaultColumns)
		}
		if r.CellWidth != DefaultCellWidth || r.CellHeight != DefaultCellHeight {
			t.Errorf("cell size = %dx%d, want %dx%d", r.CellWidth, r.CellHeight, DefaultCellWidth, DefaultCellHeight)
		}
		if r.Gap == nil || *r.Gap != DefaultGap {
			t.Errorf("Gap = %v, want %d", r.Gap, DefaultGap)
		}
		if r.ScriptURL != DefaultScriptURL {
			t.Errorf("ScriptURL = %q, want default", r.ScriptURL)
		}
	})

	t.Run("zero fields take defaults", func(t *testing.T) {
		t.Parallel()

		g := &GridOptions{Columns: 7}
		r := g.resolve()

		if r.Columns != 7 {
			t.Errorf("Columns = %d, want 7", r.Columns)
		}
		if r.CellWidth != DefaultCellWidth {
			t.Errorf("CellWidth = %d, want default %d", r.CellWidth, DefaultCellWidth)
		}
		if r.TextAlign != DefaultTextAlign {
			t.Errorf("TextAlign = %q, want default %q", r.TextAlign, DefaultTextAlign)
		}
	})

	t.Run("explicit zero gap is preserved", func(t *testing.T) {
		t.Parallel()

		zero := 0
		g := &GridOptions{Gap: &zero}
		r := g.resolve()

		if r.Gap == nil || *r.Gap != 0 {
			t.Errorf("Gap = %v, want explicit 0", r.Gap)
		}
	})

	t.Run("drawer flags pass through untouched", func(t *testing.T) {
		t.Parallel()

		useCoords := true
		g := &GridOptions{UseCoords: &useCoords}
		r := g.resolve()

		if r.UseCoords == nil || *r.UseCoords != true {
			t.Error("UseCoords pointer should survive resolution")
		}
		if r.RemoveHs != nil || r.CoordGen != nil {
			t.Error("unset drawer flags should stay nil")
		}
	})
}

// ---------------------------------------------------------------------------
// TestIsValidTextAlign - Text Alignment Validation
// ---------------------------------------------------------------------------

func TestIsValidTextAlign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		align string
		want  bool
	}{
		{"left", true},
		{"center", true},
		{"right", true},
		{"justify", true},
		{"LEFT", true},
		{"Center", true},
		{"", true},
		{"diagonal", false},
		{"middle", false},
		{"top", false},
	}

	for _, tt := range tests {
		t.Run(tt.align, func(t *testing.T) {
			t.Parallel()

			got := isValidTextAlign(tt.align)
			if got != tt.want {
				t.Errorf("isValidTextAlign(%q) = %v, want %v", tt.align, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWithTimeoutPanic - WithTimeout Panic Behavior
// ---------------------------------------------------------------------------

func TestWithTimeoutPanic(t *testing.T) {
	t.Parallel()

	t.Run("zero duration panics", func(t *testing.T) {
		t.Parallel()
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic for zero duration")
			}
		}()
		WithTimeout(0)
	})

	t.Run("negative duration panics", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic for negative duration")
			}
		}()
		WithTimeout(-1 * time.Second)
	})
}
