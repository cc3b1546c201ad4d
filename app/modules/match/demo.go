package match

import (
	"context"

	matchservice "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/bjj-scoreboard/app/modules/match/domain"
	"github.com/brianvoe/gofakeit/v7"
)

// DemoScript returns a TickFunc that scores at random, roughly every third
// tick, and occasionally corrects a score. It never declares a winner.
func DemoScript(seed int64) TickFunc {
	faker := gofakeit.New(uint64(seed))
	values := map[matchdomain.PointsKind][]uint8{
		matchdomain.KindPoints:     {2, 3, 4},
		matchdomain.KindAdvantages: {1},
		matchdomain.KindPenalties:  {1},
	}
	kinds := []matchdomain.PointsKind{matchdomain.KindPoints, matchdomain.KindAdvantages, matchdomain.KindPenalties}

	return func(ctx context.Context, svc matchservice.Service, tick int) error {
		if faker.IntRange(0, 2) != 0 {
			return nil
		}
		competitor := matchdomain.CompetitorOne
		if faker.Bool() {
			competitor = matchdomain.CompetitorTwo
		}
		kind := kinds[faker.IntRange(0, len(kinds)-1)]
		amounts := values[kind]
		points := matchdomain.Points{Kind: kind, Amount: amounts[faker.IntRange(0, len(amounts)-1)]}

		if faker.IntRange(0, 9) == 0 {
			return svc.RemoveScore(ctx, points, competitor)
		}
		return svc.AddScore(ctx, points, competitor)
	}
}
