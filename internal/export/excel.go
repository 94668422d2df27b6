package export

import (
	"fmt"
	"strings"

	"github.com/apprentice-alert/go-scraper/internal/domain"
	"github.com/xuri/excelize/v2"
)

// DefaultFilename is the workbook written into the working directory
const DefaultFilename = "Apprenticeships.xlsx"

var headerRow = []interface{}{"Title", "Company", "Location", "Wage", "Closing Date", "Job URL"}

// Exporter writes a run's new listings into a multi-sheet workbook,
// one sheet per role label
type Exporter struct {
	filename string
}

// NewExporter creates an exporter writing to filename, overwriting any
// previous workbook of that name
func NewExporter(filename string) *Exporter {
	if filename == "" {
		filename = DefaultFilename
	}
	return &Exporter{filename: filename}
}

// Export writes one sheet per distinct role label across categories. A
// listing lands on a sheet when the label appears, case-insensitively,
// in its title, location or company; a listing may appear on several
// sheets or on none. Returns the workbook filename.
func (e *Exporter) Export(listings []*domain.Listing, categories []domain.Category) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	for _, label := range roleLabels(categories) {
		if _, err := f.NewSheet(label); err != nil {
			return "", fmt.Errorf("create sheet %q: %w", label, err)
		}
		if err := f.SetSheetRow(label, "A1", &headerRow); err != nil {
			return "", fmt.Errorf("write header on %q: %w", label, err)
		}

		row := 2
		for _, l := range listings {
			if !matchesLabel(l, label) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return "", fmt.Errorf("cell name: %w", err)
			}
			values := []interface{}{l.Title, l.Company, l.Location, l.Wage, l.ClosingDate, l.JobURL}
			if err := f.SetSheetRow(label, cell, &values); err != nil {
				return "", fmt.Errorf("write row on %q: %w", label, err)
			}
			row++
		}
	}

	// Drop the workbook's default sheet now that the label sheets exist
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(e.filename); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return e.filename, nil
}

// roleLabels returns the distinct labels across categories in first
// declaration order. A label declared by two categories belongs to the
// later one, which only matters for configuration bookkeeping: the
// sheet it produces is identical either way.
func roleLabels(categories []domain.Category) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, c := range categories {
		for _, label := range c.RoleLabels {
			if seen[label] {
				continue
			}
			seen[label] = true
			labels = append(labels, label)
		}
	}
	return labels
}

func matchesLabel(l *domain.Listing, label string) bool {
	needle := strings.ToLower(label)
	return strings.Contains(strings.ToLower(l.Title), needle) ||
		strings.Contains(strings.ToLower(l.Location), needle) ||
		strings.Contains(strings.ToLower(l.Company), needle)
}
