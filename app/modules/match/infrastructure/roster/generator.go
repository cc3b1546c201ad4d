// Package roster supplies the competitors for a match.
package roster

import (
	"context"
	"errors"
	"fmt"

	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
)

// ErrNotEnoughCompetitors indicates a roster with fewer entries than requested.
var ErrNotEnoughCompetitors = errors.New("not enough competitors in roster")

// Generator produces competitors, each owning its own Team.
type Generator interface {
	Generate(ctx context.Context, n int) ([]matchdomain.Competitor, error)
}

// Pair draws the two competitors of a match from g.
func Pair(ctx context.Context, g Generator) (matchdomain.Competitor, matchdomain.Competitor, error) {
	cs, err := g.Generate(ctx, 2)
	if err != nil {
		return matchdomain.Competitor{}, matchdomain.Competitor{}, err
	}
	if len(cs) < 2 {
		return matchdomain.Competitor{}, matchdomain.Competitor{}, fmt.Errorf("%w: got %d, need 2", ErrNotEnoughCompetitors, len(cs))
	}
	return cs[0], cs[1], nil
}

// New picks a generator by source name: fake, file or xlsx.
func New(source, path string, seed int64) (Generator, error) {
	switch source {
	case "fake", "":
		return NewFakeGenerator(seed), nil
	case "file":
		return NewFileGenerator(path), nil
	case "xlsx":
		return NewXLSXGenerator(path), nil
	}
	return nil, fmt.Errorf("unknown roster source %q", source)
}

// take returns the first n entries of all, or ErrNotEnoughCompetitors.
func take(all []matchdomain.Competitor, n int) ([]matchdomain.Competitor, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid competitor count %d", n)
	}
	if len(all) < n {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrNotEnoughCompetitors, len(all), n)
	}
	out := make([]matchdomain.Competitor, n)
	copy(out, all[:n])
	return out, nil
}
