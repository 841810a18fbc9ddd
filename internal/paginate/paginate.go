// Package paginate splits a row count into ordered per-page output plans.
//
// A plan assigns each page a contiguous row range and the file paths its
// artifacts are written to. Path computation is pure: directories named by
// a plan are created by the caller, never here.
package paginate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidPlan reports plan inputs that cannot describe any page set.
var ErrInvalidPlan = errors.New("invalid pagination input")

// PagePlan describes one output page.
type PagePlan struct {
	Index      int    // 1-based page number
	Start      int    // first row, inclusive
	End        int    // last row, exclusive
	Output     string // image path for this page
	OutputHTML string // HTML path for this page, empty when not requested
}

// Rows returns how many rows the page covers.
func (p PagePlan) Rows() int { return p.End - p.Start }

// Plan partitions totalRows rows into ordered page plans.
//
// itemsPerPage == 0 disables pagination: one page covers every row and the
// output filename is used unchanged. Otherwise pages hold itemsPerPage rows
// each, the last page taking the remainder, and every filename gains a
// zero-padded page suffix before its extension.
//
// When outputDir is non-empty each path is relocated into it, keeping only
// the base filename. totalRows == 0 yields an empty plan and no error.
func Plan(itemsPerPage, totalRows int, output, outputHTML, outputDir string) ([]PagePlan, error) {
	if itemsPerPage < 0 {
		return nil, fmt.Errorf("%w: items per page must not be negative, got %d", ErrInvalidPlan, itemsPerPage)
	}
	if totalRows < 0 {
		return nil, fmt.Errorf("%w: total rows must not be negative, got %d", ErrInvalidPlan, totalRows)
	}
	if output == "" {
		return nil, fmt.Errorf("%w: output path is empty", ErrInvalidPlan)
	}

	if totalRows == 0 {
		return nil, nil
	}

	output = relocate(output, outputDir)
	if outputHTML != "" {
		outputHTML = relocate(outputHTML, outputDir)
	}

	if itemsPerPage == 0 {
		return []PagePlan{{
			Index:      1,
			Start:      0,
			End:        totalRows,
			Output:     output,
			OutputHTML: outputHTML,
		}}, nil
	}

	pages := (totalRows + itemsPerPage - 1) / itemsPerPage
	plans := make([]PagePlan, 0, pages)

	for i := 1; i <= pages; i++ {
		start := (i - 1) * itemsPerPage
		end := i * itemsPerPage
		if end > totalRows {
			end = totalRows
		}

		plan := PagePlan{
			Index:  i,
			Start:  start,
			End:    end,
			Output: NumberedPath(output, i, pages),
		}
		if outputHTML != "" {
			plan.OutputHTML = NumberedPath(outputHTML, i, pages)
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

// NumberedPath inserts a page suffix before the path extension.
// The suffix is zero-padded to the digit count of the total page count, so
// lexicographic filename order matches page order for any page count:
// 4 pages yield _1.._4, 18 pages _01.._18, 100 pages _001.._100.
func NumberedPath(path string, index, pages int) string {
	width := len(strconv.Itoa(pages))
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%0*d%s", stem, width, index, ext)
}

// relocate moves path into dir, discarding its original directory part.
func relocate(path, dir string) string {
	if dir == "" {
		return path
	}
	return filepath.Join(dir, filepath.Base(path))
}
