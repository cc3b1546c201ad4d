package roster

import (
	"fmt"
	"io"

	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

var xlsxHeader = []string{"first_name", "last_name", "team", "flag", "logo"}

// WriteYAML encodes competitors in the layout ParseYAML reads.
func WriteYAML(w io.Writer, competitors []matchdomain.Competitor) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Competitors: competitors}); err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}
	return enc.Close()
}

// WriteXLSX writes competitors to a single-sheet workbook with a header row.
func WriteXLSX(w io.Writer, competitors []matchdomain.Competitor) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows := make([][]string, 0, len(competitors)+1)
	rows = append(rows, xlsxHeader)
	for _, c := range competitors {
		rows = append(rows, []string{c.FirstName, c.LastName, c.Team.Name, c.Flag, c.Team.Logo})
	}

	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(row))
		for i, val := range row {
			cells[i] = val
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", idx+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XLSX file: %w", err)
	}
	return nil
}
