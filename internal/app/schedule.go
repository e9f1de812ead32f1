package app

import (
	"context"
	"fmt"
	"time"

	"github.com/brianzzs/GreenFiveInnings/internal/adapters/statsapi"
	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

const scheduleWindowDays = 5

// GetTeamSchedule returns a team's games over the trailing span of days,
// oldest window first. The span is split into 5-day windows fetched
// concurrently; each window is its own cache entry, so overlapping spans
// reuse already-fetched windows.
type GetTeamSchedule func(ctx context.Context, teamID int64, days int) ([]domain.GameSummary, map[string]error, error)

type scheduleWindow struct {
	start time.Time
	end   time.Time
}

func scheduleWindows(end time.Time, days int) []scheduleWindow {
	var windows []scheduleWindow
	start := end.AddDate(0, 0, -days)
	for windowStart := start; !windowStart.After(end); {
		windowEnd := windowStart.AddDate(0, 0, scheduleWindowDays-1)
		if windowEnd.After(end) {
			windowEnd = end
		}
		windows = append(windows, scheduleWindow{start: windowStart, end: windowEnd})
		windowStart = windowEnd.AddDate(0, 0, 1)
	}
	return windows
}

func BuildGetTeamSchedule(engine *Engine, api statsapi.StatsAPI, ttl TTLClasses, nowFunc func() time.Time) GetTeamSchedule {
	return func(ctx context.Context, teamID int64, days int) ([]domain.GameSummary, map[string]error, error) {
		if days < 1 {
			return nil, nil, fmt.Errorf("days must be positive, got %d", days)
		}

		windows := scheduleWindows(nowFunc().UTC().Truncate(24*time.Hour), days)

		subs := make([]SubRequest, 0, len(windows))
		for _, window := range windows {
			window := window
			startDay := window.start.Format("2006-01-02")
			endDay := window.end.Format("2006-01-02")
			subs = append(subs, SubRequest{
				Name: fmt.Sprintf("window:%s", startDay),
				Key:  fmt.Sprintf("schedule:%d:%s:%s", teamID, startDay, endDay),
				TTL:  ttl.Schedule,
				Fetch: func(ctx context.Context) (any, error) {
					return api.GetSchedule(ctx, teamID, window.start, window.end)
				},
			})
		}

		result := engine.Resolve(ctx, subs)
		if result.Outcome() == FullyFailed {
			return nil, nil, fmt.Errorf("failed to get schedule for team %d: %w", teamID, result.DominantError())
		}

		// Windows were declared oldest first, so concatenation keeps the
		// merged schedule chronological no matter which fetch finished first.
		var games []domain.GameSummary
		for _, value := range result.Values() {
			if windowGames, ok := value.([]domain.GameSummary); ok {
				games = append(games, windowGames...)
			}
		}

		if result.Outcome() == FullySucceeded {
			return games, nil, nil
		}
		return games, result.Errors(), nil
	}
}
