package roster

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXGenerator reads competitors from the first sheet of a workbook. The
// first row is a header naming the columns first_name, last_name, team and
// optionally flag and logo, in any order.
type XLSXGenerator struct {
	path string
}

func NewXLSXGenerator(path string) *XLSXGenerator {
	return &XLSXGenerator{path: path}
}

func (g *XLSXGenerator) Generate(ctx context.Context, n int) ([]matchdomain.Competitor, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %q: %w", g.path, err)
	}
	competitors, err := ParseXLSX(data)
	if err != nil {
		return nil, fmt.Errorf("roster %q: %w", g.path, err)
	}
	return take(competitors, n)
}

// ParseXLSX decodes a roster workbook.
func ParseXLSX(data []byte) ([]matchdomain.Competitor, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}
	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"first_name", "last_name", "team"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("sheet %q: missing %q column", sheetName, required)
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var out []matchdomain.Competitor
	for r, row := range rows[1:] {
		if len(strings.Join(row, "")) == 0 {
			continue
		}
		team := matchdomain.NewTeam(cell(row, "team"))
		team.Logo = cell(row, "logo")
		c := matchdomain.NewCompetitor(cell(row, "first_name"), cell(row, "last_name"), team)
		c.Flag = cell(row, "flag")
		if err := validate(c); err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", sheetName, r+2, err)
		}
		out = append(out, c)
	}
	return out, nil
}
