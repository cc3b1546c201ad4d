package roster

import (
	"context"
	"fmt"
	"os"

	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	"gopkg.in/yaml.v3"
)

// File is the YAML roster layout.
type File struct {
	Competitors []matchdomain.Competitor `yaml:"competitors"`
}

// FileGenerator reads competitors from a YAML roster, in file order.
type FileGenerator struct {
	path string
}

func NewFileGenerator(path string) *FileGenerator {
	return &FileGenerator{path: path}
}

func (g *FileGenerator) Generate(ctx context.Context, n int) ([]matchdomain.Competitor, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %q: %w", g.path, err)
	}
	competitors, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("roster %q: %w", g.path, err)
	}
	return take(competitors, n)
}

// ParseYAML decodes and validates a YAML roster.
func ParseYAML(data []byte) ([]matchdomain.Competitor, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}
	for i, c := range f.Competitors {
		if err := validate(c); err != nil {
			return nil, fmt.Errorf("competitor %d: %w", i+1, err)
		}
	}
	return f.Competitors, nil
}

func validate(c matchdomain.Competitor) error {
	if c.FirstName == "" || c.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}
	if c.Team.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}
