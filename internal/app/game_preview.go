package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/brianzzs/GreenFiveInnings/internal/adapters/statsapi"
	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

// GetGamePreview returns the live feed for a game joined with both probable
// pitchers' season lines. An unannounced starter, or one whose stats cannot
// be fetched, comes back as the TBD placeholder rather than failing the
// preview.
type GetGamePreview func(ctx context.Context, gamePk int64) (*domain.GamePreview, map[string]error, error)

func BuildGetGamePreview(engine *Engine, api statsapi.StatsAPI, ttl TTLClasses) GetGamePreview {
	return func(ctx context.Context, gamePk int64) (*domain.GamePreview, map[string]error, error) {
		feedResult := engine.Resolve(ctx, []SubRequest{{
			Name: "feed",
			Key:  fmt.Sprintf("game:%d:feed", gamePk),
			TTL:  ttl.LiveFeed,
			Fetch: func(ctx context.Context) (any, error) {
				return api.GetGameFeed(ctx, gamePk)
			},
		}})
		if err := feedResult.Err("feed"); err != nil {
			// Without the feed there is no game to preview
			return nil, nil, fmt.Errorf("failed to get feed for game %d: %w", gamePk, err)
		}

		feed := feedResult.Value("feed").(*domain.GameFeed)
		season := strconv.Itoa(feed.GameDate.Year())

		var subs []SubRequest
		if feed.HomeProbablePitcher != nil {
			subs = append(subs, playerSeasonSub(api, ttl, "home_pitcher", feed.HomeProbablePitcher.ID, season))
		}
		if feed.AwayProbablePitcher != nil {
			subs = append(subs, playerSeasonSub(api, ttl, "away_pitcher", feed.AwayProbablePitcher.ID, season))
		}

		preview := &domain.GamePreview{
			Feed:        feed,
			HomePitcher: domain.TBDPitcher(),
			AwayPitcher: domain.TBDPitcher(),
		}

		if len(subs) == 0 {
			return preview, nil, nil
		}

		pitchersResult := engine.Resolve(ctx, subs)
		if feed.HomeProbablePitcher != nil {
			preview.HomePitcher = pitcherInfo(feed.HomeProbablePitcher, pitchersResult.Value("home_pitcher"))
		}
		if feed.AwayProbablePitcher != nil {
			preview.AwayPitcher = pitcherInfo(feed.AwayProbablePitcher, pitchersResult.Value("away_pitcher"))
		}

		if pitchersResult.Outcome() == FullySucceeded {
			return preview, nil, nil
		}
		// The feed resolved, so a missing pitcher line degrades to TBD
		// instead of failing the whole preview.
		return preview, pitchersResult.Errors(), nil
	}
}

func pitcherInfo(probable *domain.ProbablePitcher, value any) domain.PitcherInfo {
	info := domain.TBDPitcher()
	info.ID = probable.ID
	info.Name = probable.FullName
	if probable.Hand != "" {
		info.Hand = probable.Hand
	}

	playerSeason, ok := value.(*domain.PlayerSeason)
	if !ok || playerSeason == nil || playerSeason.Season == nil || playerSeason.Season.Pitching == nil {
		return info
	}

	pitching := playerSeason.Season.Pitching
	info.Wins = strconv.Itoa(pitching.Wins)
	info.Losses = strconv.Itoa(pitching.Losses)
	info.ERA = pitching.ERA
	return info
}
