package app

import (
	"context"
	"fmt"

	"github.com/brianzzs/GreenFiveInnings/internal/adapters/statsapi"
	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

// GetRosterWithStats returns a team's roster with each player's season
// stats. The roster fetch and the per-player fetches run as two phases so
// that the sub-requests within each phase stay independent of one another.
type GetRosterWithStats func(ctx context.Context, teamID int64, season string) (*domain.RosterWithStats, map[string]error, error)

func BuildGetRosterWithStats(engine *Engine, api statsapi.StatsAPI, ttl TTLClasses) GetRosterWithStats {
	return func(ctx context.Context, teamID int64, season string) (*domain.RosterWithStats, map[string]error, error) {
		rosterResult := engine.Resolve(ctx, []SubRequest{{
			Name: "roster",
			Key:  fmt.Sprintf("roster:%d:%s", teamID, season),
			TTL:  ttl.Roster,
			Fetch: func(ctx context.Context) (any, error) {
				return api.GetRoster(ctx, teamID, season)
			},
		}})
		if err := rosterResult.Err("roster"); err != nil {
			// Without the roster there is nothing to hang stats on
			return nil, nil, fmt.Errorf("failed to get roster for team %d: %w", teamID, err)
		}

		roster := rosterResult.Value("roster").(*domain.Roster)

		subs := make([]SubRequest, 0, len(roster.Entries))
		for _, entry := range roster.Entries {
			name := fmt.Sprintf("player:%d", entry.PlayerID)
			subs = append(subs, playerSeasonSub(api, ttl, name, entry.PlayerID, season))
		}

		statsResult := engine.Resolve(ctx, subs)

		rosterWithStats := &domain.RosterWithStats{
			Roster:  roster,
			Players: make([]*domain.PlayerSeason, len(roster.Entries)),
		}
		for i, value := range statsResult.Values() {
			if playerSeason, ok := value.(*domain.PlayerSeason); ok {
				rosterWithStats.Players[i] = playerSeason
			}
		}

		if statsResult.Outcome() == FullySucceeded {
			return rosterWithStats, nil, nil
		}
		// The roster itself resolved, so even all-players-failed is a
		// partial result, not a hard failure.
		return rosterWithStats, statsResult.Errors(), nil
	}
}
