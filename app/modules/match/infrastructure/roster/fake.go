package roster

import (
	"context"
	"sync"
	"time"

	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	"github.com/brianvoe/gofakeit/v7"
)

// FakeGenerator invents competitors and teams. Output is reproducible for a
// given seed.
type FakeGenerator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
	seed  int64
}

// NewFakeGenerator creates a generator. A zero seed uses the current time.
func NewFakeGenerator(seed int64) *FakeGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &FakeGenerator{
		faker: gofakeit.New(uint64(seed)),
		seed:  seed,
	}
}

func (g *FakeGenerator) Seed() int64 { return g.seed }

// Team creates a team with a company name and no logo.
func (g *FakeGenerator) Team() matchdomain.Team {
	g.mu.Lock()
	defer g.mu.Unlock()
	return matchdomain.NewTeam(g.faker.Company())
}

func (g *FakeGenerator) Generate(ctx context.Context, n int) ([]matchdomain.Competitor, error) {
	out := make([]matchdomain.Competitor, 0, max(n, 0))
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		team := g.Team()

		g.mu.Lock()
		c := matchdomain.NewCompetitor(g.faker.FirstName(), g.faker.LastName(), team)
		g.mu.Unlock()

		out = append(out, c)
	}
	return out, nil
}
