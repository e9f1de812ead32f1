package app

import (
	"context"
	"fmt"

	"github.com/brianzzs/GreenFiveInnings/internal/adapters/statsapi"
	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

// ComparePlayers fetches one season line per requested player and pairs
// them up. Players appear in request order; a failed player leaves a nil
// slot and an annotation.
type ComparePlayers func(ctx context.Context, playerIDs []int64, season string) (*domain.PlayerComparison, map[string]error, error)

func BuildComparePlayers(engine *Engine, api statsapi.StatsAPI, ttl TTLClasses) ComparePlayers {
	return func(ctx context.Context, playerIDs []int64, season string) (*domain.PlayerComparison, map[string]error, error) {
		if len(playerIDs) < 2 {
			return nil, nil, fmt.Errorf("comparison requires at least two players, got %d", len(playerIDs))
		}

		subs := make([]SubRequest, 0, len(playerIDs))
		for _, playerID := range playerIDs {
			name := fmt.Sprintf("player:%d", playerID)
			subs = append(subs, playerSeasonSub(api, ttl, name, playerID, season))
		}

		result := engine.Resolve(ctx, subs)
		if result.Outcome() == FullyFailed {
			return nil, nil, fmt.Errorf("failed to compare players: %w", result.DominantError())
		}

		comparison := &domain.PlayerComparison{
			Season:  season,
			Players: make([]*domain.PlayerSeason, len(playerIDs)),
		}
		for i, value := range result.Values() {
			if playerSeason, ok := value.(*domain.PlayerSeason); ok {
				comparison.Players[i] = playerSeason
			}
		}

		if result.Outcome() == FullySucceeded {
			return comparison, nil, nil
		}
		return comparison, result.Errors(), nil
	}
}
