package app

import (
	"context"
	"fmt"

	"github.com/brianzzs/GreenFiveInnings/internal/adapters/statsapi"
	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

// GetPlayerSeason returns the composite player page: identity plus one
// season's stats plus career totals. A non-nil error map marks the pieces
// that failed on an otherwise usable result; a non-nil error means the
// whole composite failed.
type GetPlayerSeason func(ctx context.Context, playerID int64, season string) (*domain.PlayerSeason, map[string]error, error)

func playerSeasonKey(playerID int64, season string) string {
	return fmt.Sprintf("player:%d:season:%s:stats", playerID, season)
}

func playerSeasonSub(api statsapi.StatsAPI, ttl TTLClasses, name string, playerID int64, season string) SubRequest {
	return SubRequest{
		Name: name,
		Key:  playerSeasonKey(playerID, season),
		TTL:  ttl.SeasonStats,
		Fetch: func(ctx context.Context) (any, error) {
			return api.GetPlayerSeason(ctx, playerID, season)
		},
	}
}

func BuildGetPlayerSeason(engine *Engine, api statsapi.StatsAPI, ttl TTLClasses) GetPlayerSeason {
	return func(ctx context.Context, playerID int64, season string) (*domain.PlayerSeason, map[string]error, error) {
		// Both career groups are always fetched: whether the player pitches
		// is unknown until the profile resolves, and sub-requests must not
		// depend on each other's results. A position player simply gets a
		// nil career pitching line back.
		subs := []SubRequest{
			playerSeasonSub(api, ttl, "profile", playerID, season),
			{
				Name: "career_hitting",
				Key:  fmt.Sprintf("player:%d:career:hitting", playerID),
				TTL:  ttl.SeasonStats,
				Fetch: func(ctx context.Context) (any, error) {
					return api.GetCareerHitting(ctx, playerID)
				},
			},
			{
				Name: "career_pitching",
				Key:  fmt.Sprintf("player:%d:career:pitching", playerID),
				TTL:  ttl.SeasonStats,
				Fetch: func(ctx context.Context) (any, error) {
					return api.GetCareerPitching(ctx, playerID)
				},
			},
		}

		result := engine.Resolve(ctx, subs)
		if result.Outcome() == FullyFailed {
			return nil, nil, fmt.Errorf("failed to get player %d: %w", playerID, result.DominantError())
		}

		playerSeason := &domain.PlayerSeason{}
		if profile, ok := result.Value("profile").(*domain.PlayerSeason); ok && profile != nil {
			playerSeason.Player = profile.Player
			playerSeason.Season = profile.Season
		}

		career := &domain.CareerStats{}
		if hitting, ok := result.Value("career_hitting").(*domain.HittingStats); ok {
			career.Hitting = hitting
		}
		if pitching, ok := result.Value("career_pitching").(*domain.PitchingStats); ok {
			career.Pitching = pitching
		}
		playerSeason.Career = career

		if result.Outcome() == FullySucceeded {
			return playerSeason, nil, nil
		}
		return playerSeason, result.Errors(), nil
	}
}
