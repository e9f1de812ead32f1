package app

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brianzzs/GreenFiveInnings/internal/adapters/cache"
	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

type testClock struct {
	mutex sync.Mutex
	now   time.Time
}

func (c *testClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = c.now.Add(d)
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestEngine(t *testing.T, clock *testClock) *Engine {
	t.Helper()
	engine, err := NewEngine(cache.NewMemoryCache[any](128, clock.Now))
	require.NoError(t, err)
	return engine
}

// fakeStatsAPI counts calls per endpoint and serves deterministic sample
// data unless an override is set.
type fakeStatsAPI struct {
	mutex sync.Mutex
	calls map[string]int

	playerSeason   func(playerID int64, season string) (*domain.PlayerSeason, error)
	careerHitting  func(playerID int64) (*domain.HittingStats, error)
	careerPitching func(playerID int64) (*domain.PitchingStats, error)
	roster         func(teamID int64, season string) (*domain.Roster, error)
	schedule       func(teamID int64, start, end time.Time) ([]domain.GameSummary, error)
	gameFeed       func(gamePk int64) (*domain.GameFeed, error)
	standings      func(date string) ([]domain.TeamStanding, error)
}

func newFakeStatsAPI() *fakeStatsAPI {
	return &fakeStatsAPI{calls: make(map[string]int)}
}

func (f *fakeStatsAPI) count(endpoint string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.calls[endpoint]++
}

func (f *fakeStatsAPI) callCount(endpoint string) int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.calls[endpoint]
}

func (f *fakeStatsAPI) totalCalls() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	total := 0
	for _, count := range f.calls {
		total += count
	}
	return total
}

func samplePlayerSeason(playerID int64, season string) *domain.PlayerSeason {
	return &domain.PlayerSeason{
		Player: &domain.Player{
			ID:       playerID,
			FullName: "Player " + strconv.FormatInt(playerID, 10),
			Position: "RF",
		},
		Season: &domain.SeasonStats{
			Season:  season,
			Hitting: &domain.HittingStats{GamesPlayed: 100, HomeRuns: 20, AVG: ".300"},
		},
	}
}

func (f *fakeStatsAPI) GetPlayerSeason(ctx context.Context, playerID int64, season string) (*domain.PlayerSeason, error) {
	f.count("player_season")
	if f.playerSeason != nil {
		return f.playerSeason(playerID, season)
	}
	return samplePlayerSeason(playerID, season), nil
}

func (f *fakeStatsAPI) GetCareerHitting(ctx context.Context, playerID int64) (*domain.HittingStats, error) {
	f.count("career_hitting")
	if f.careerHitting != nil {
		return f.careerHitting(playerID)
	}
	return &domain.HittingStats{GamesPlayed: 1000, HomeRuns: 250, AVG: ".290"}, nil
}

func (f *fakeStatsAPI) GetCareerPitching(ctx context.Context, playerID int64) (*domain.PitchingStats, error) {
	f.count("career_pitching")
	if f.careerPitching != nil {
		return f.careerPitching(playerID)
	}
	return nil, nil
}

func (f *fakeStatsAPI) GetRoster(ctx context.Context, teamID int64, season string) (*domain.Roster, error) {
	f.count("roster")
	if f.roster != nil {
		return f.roster(teamID, season)
	}
	return &domain.Roster{
		TeamID: teamID,
		Season: season,
		Entries: []domain.RosterEntry{
			{PlayerID: 101, FullName: "Player 101", Position: "C"},
			{PlayerID: 102, FullName: "Player 102", Position: "1B"},
		},
	}, nil
}

func (f *fakeStatsAPI) GetSchedule(ctx context.Context, teamID int64, start, end time.Time) ([]domain.GameSummary, error) {
	f.count("schedule")
	if f.schedule != nil {
		return f.schedule(teamID, start, end)
	}
	return []domain.GameSummary{
		{GamePk: start.Unix(), GameDate: start, State: "Final", HomeTeamID: teamID},
	}, nil
}

func (f *fakeStatsAPI) GetGameFeed(ctx context.Context, gamePk int64) (*domain.GameFeed, error) {
	f.count("game_feed")
	if f.gameFeed != nil {
		return f.gameFeed(gamePk)
	}
	return &domain.GameFeed{
		GamePk:   gamePk,
		GameDate: time.Date(2024, 7, 1, 19, 0, 0, 0, time.UTC),
		State:    "Scheduled",
	}, nil
}

func (f *fakeStatsAPI) GetStandings(ctx context.Context, date string) ([]domain.TeamStanding, error) {
	f.count("standings")
	if f.standings != nil {
		return f.standings(date)
	}
	return []domain.TeamStanding{
		{TeamID: 147, TeamName: "New York Yankees", Division: "AL East", Wins: 94, Losses: 68},
	}, nil
}
