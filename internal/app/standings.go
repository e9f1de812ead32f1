package app

import (
	"context"
	"fmt"

	"github.com/brianzzs/GreenFiveInnings/internal/adapters/statsapi"
	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

// GetStandings returns division standings for both leagues, either current
// (date == "") or as of a given date.
type GetStandings func(ctx context.Context, date string) ([]domain.TeamStanding, error)

func BuildGetStandings(engine *Engine, api statsapi.StatsAPI, ttl TTLClasses) GetStandings {
	return func(ctx context.Context, date string) ([]domain.TeamStanding, error) {
		cacheDate := date
		if cacheDate == "" {
			cacheDate = "current"
		}

		result := engine.Resolve(ctx, []SubRequest{{
			Name: "standings",
			Key:  fmt.Sprintf("standings:%s", cacheDate),
			TTL:  ttl.Standings,
			Fetch: func(ctx context.Context) (any, error) {
				return api.GetStandings(ctx, date)
			},
		}})
		if err := result.Err("standings"); err != nil {
			return nil, fmt.Errorf("failed to get standings: %w", err)
		}

		return result.Value("standings").([]domain.TeamStanding), nil
	}
}
