package ports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianzzs/GreenFiveInnings/internal/app"
	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func identityMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return next
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestGetPlayerSeasonHandler(t *testing.T) {
	makeRequest := func(playerID, season string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/v1/players/"+playerID+"/season/"+season, nil)
		req.SetPathValue("playerID", playerID)
		req.SetPathValue("season", season)
		return req
	}

	t.Run("success", func(t *testing.T) {
		getPlayerSeason := app.GetPlayerSeason(func(ctx context.Context, playerID int64, season string) (*domain.PlayerSeason, map[string]error, error) {
			assert.Equal(t, int64(592450), playerID)
			assert.Equal(t, "2024", season)
			return &domain.PlayerSeason{
				Player: &domain.Player{ID: playerID, FullName: "Aaron Judge"},
				Season: &domain.SeasonStats{
					Season:  season,
					Hitting: &domain.HittingStats{HomeRuns: 58, AVG: ".322"},
				},
			}, nil, nil
		})
		handler := MakeGetPlayerSeasonHandler(getPlayerSeason, testLogger(), identityMiddleware)

		recorder := httptest.NewRecorder()
		handler(recorder, makeRequest("592450", "2024"))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		envelope := decodeEnvelope(t, recorder)
		assert.True(t, envelope.Success)
		assert.Empty(t, envelope.Errors)

		data, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"fullName":"Aaron Judge"`)
		assert.Contains(t, string(data), `"homeRuns":58`)
	})

	t.Run("partial result annotates failed pieces", func(t *testing.T) {
		getPlayerSeason := app.GetPlayerSeason(func(ctx context.Context, playerID int64, season string) (*domain.PlayerSeason, map[string]error, error) {
			return &domain.PlayerSeason{
					Player: &domain.Player{ID: playerID},
				}, map[string]error{
					"career_pitching": fmt.Errorf("%w: boom", domain.ErrUpstream),
				}, nil
		})
		handler := MakeGetPlayerSeasonHandler(getPlayerSeason, testLogger(), identityMiddleware)

		recorder := httptest.NewRecorder()
		handler(recorder, makeRequest("592450", "2024"))

		require.Equal(t, http.StatusOK, recorder.Code, "a partial result is still a success")

		envelope := decodeEnvelope(t, recorder)
		assert.True(t, envelope.Success)
		assert.Equal(t, map[string]string{"career_pitching": "upstream"}, envelope.Errors)
	})

	t.Run("hard failures map to the taxonomy status", func(t *testing.T) {
		cases := []struct {
			name       string
			err        error
			wantStatus int
			wantLabel  string
		}{
			{name: "not found", err: fmt.Errorf("%w: player", domain.ErrNotFound), wantStatus: http.StatusNotFound, wantLabel: "not_found"},
			{name: "rate limited", err: fmt.Errorf("%w: upstream", domain.ErrRateLimited), wantStatus: http.StatusTooManyRequests, wantLabel: "rate_limited"},
			{name: "timeout", err: fmt.Errorf("%w: slow", domain.ErrTimeout), wantStatus: http.StatusGatewayTimeout, wantLabel: "timeout"},
			{name: "upstream", err: fmt.Errorf("%w: 500", domain.ErrUpstream), wantStatus: http.StatusBadGateway, wantLabel: "upstream"},
			{name: "malformed", err: fmt.Errorf("%w: bad json", domain.ErrMalformedResponse), wantStatus: http.StatusBadGateway, wantLabel: "malformed_response"},
			{name: "canceled", err: fmt.Errorf("%w: gone", domain.ErrCanceled), wantStatus: statusClientClosedRequest, wantLabel: "canceled"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				getPlayerSeason := app.GetPlayerSeason(func(ctx context.Context, playerID int64, season string) (*domain.PlayerSeason, map[string]error, error) {
					return nil, nil, tc.err
				})
				handler := MakeGetPlayerSeasonHandler(getPlayerSeason, testLogger(), identityMiddleware)

				recorder := httptest.NewRecorder()
				handler(recorder, makeRequest("592450", "2024"))

				assert.Equal(t, tc.wantStatus, recorder.Code)

				envelope := decodeEnvelope(t, recorder)
				assert.False(t, envelope.Success)
				assert.Equal(t, tc.wantLabel, envelope.Error)
			})
		}
	})

	t.Run("invalid player id", func(t *testing.T) {
		called := false
		getPlayerSeason := app.GetPlayerSeason(func(ctx context.Context, playerID int64, season string) (*domain.PlayerSeason, map[string]error, error) {
			called = true
			return nil, nil, nil
		})
		handler := MakeGetPlayerSeasonHandler(getPlayerSeason, testLogger(), identityMiddleware)

		recorder := httptest.NewRecorder()
		handler(recorder, makeRequest("judge", "2024"))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.False(t, called)
	})

	t.Run("invalid season", func(t *testing.T) {
		getPlayerSeason := app.GetPlayerSeason(func(ctx context.Context, playerID int64, season string) (*domain.PlayerSeason, map[string]error, error) {
			t.Error("should not be called")
			return nil, nil, nil
		})
		handler := MakeGetPlayerSeasonHandler(getPlayerSeason, testLogger(), identityMiddleware)

		recorder := httptest.NewRecorder()
		handler(recorder, makeRequest("592450", "banana"))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestComparePlayersHandler(t *testing.T) {
	t.Run("parses ids and season", func(t *testing.T) {
		comparePlayers := app.ComparePlayers(func(ctx context.Context, playerIDs []int64, season string) (*domain.PlayerComparison, map[string]error, error) {
			assert.Equal(t, []int64{660271, 592450}, playerIDs)
			assert.Equal(t, "2024", season)
			return &domain.PlayerComparison{
				Season:  season,
				Players: []*domain.PlayerSeason{{}, {}},
			}, nil, nil
		})
		handler := MakeComparePlayersHandler(comparePlayers, testLogger(), identityMiddleware)

		req := httptest.NewRequest(http.MethodGet, "/v1/players/compare?ids=660271,592450&season=2024", nil)
		recorder := httptest.NewRecorder()
		handler(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.True(t, envelope.Success)
	})

	t.Run("rejects a single id", func(t *testing.T) {
		comparePlayers := app.ComparePlayers(func(ctx context.Context, playerIDs []int64, season string) (*domain.PlayerComparison, map[string]error, error) {
			t.Error("should not be called")
			return nil, nil, nil
		})
		handler := MakeComparePlayersHandler(comparePlayers, testLogger(), identityMiddleware)

		req := httptest.NewRequest(http.MethodGet, "/v1/players/compare?ids=592450&season=2024", nil)
		recorder := httptest.NewRecorder()
		handler(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("failed comparison slots serialize as null", func(t *testing.T) {
		comparePlayers := app.ComparePlayers(func(ctx context.Context, playerIDs []int64, season string) (*domain.PlayerComparison, map[string]error, error) {
			return &domain.PlayerComparison{
					Season:  season,
					Players: []*domain.PlayerSeason{{Player: &domain.Player{ID: playerIDs[0]}}, nil},
				}, map[string]error{
					"player:592450": fmt.Errorf("%w: player", domain.ErrNotFound),
				}, nil
		})
		handler := MakeComparePlayersHandler(comparePlayers, testLogger(), identityMiddleware)

		req := httptest.NewRequest(http.MethodGet, "/v1/players/compare?ids=660271,592450&season=2024", nil)
		recorder := httptest.NewRecorder()
		handler(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, map[string]string{"player:592450": "not_found"}, envelope.Errors)

		data, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		assert.Contains(t, string(data), "null")
	})
}

func TestGetScheduleHandler(t *testing.T) {
	makeRequest := func(teamID, query string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/v1/teams/"+teamID+"/schedule"+query, nil)
		req.SetPathValue("teamID", teamID)
		return req
	}

	t.Run("defaults the span", func(t *testing.T) {
		getTeamSchedule := app.GetTeamSchedule(func(ctx context.Context, teamID int64, days int) ([]domain.GameSummary, map[string]error, error) {
			assert.Equal(t, int64(147), teamID)
			assert.Equal(t, defaultScheduleDays, days)
			return []domain.GameSummary{{GamePk: 1, GameDate: time.Now()}}, nil, nil
		})
		handler := MakeGetScheduleHandler(getTeamSchedule, testLogger(), identityMiddleware)

		recorder := httptest.NewRecorder()
		handler(recorder, makeRequest("147", ""))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("honours an explicit span", func(t *testing.T) {
		getTeamSchedule := app.GetTeamSchedule(func(ctx context.Context, teamID int64, days int) ([]domain.GameSummary, map[string]error, error) {
			assert.Equal(t, 7, days)
			return nil, nil, nil
		})
		handler := MakeGetScheduleHandler(getTeamSchedule, testLogger(), identityMiddleware)

		recorder := httptest.NewRecorder()
		handler(recorder, makeRequest("147", "?days=7"))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("rejects out of range spans", func(t *testing.T) {
		getTeamSchedule := app.GetTeamSchedule(func(ctx context.Context, teamID int64, days int) ([]domain.GameSummary, map[string]error, error) {
			t.Error("should not be called")
			return nil, nil, nil
		})
		handler := MakeGetScheduleHandler(getTeamSchedule, testLogger(), identityMiddleware)

		for _, query := range []string{"?days=0", "?days=-3", "?days=9999", "?days=soon"} {
			recorder := httptest.NewRecorder()
			handler(recorder, makeRequest("147", query))
			assert.Equal(t, http.StatusBadRequest, recorder.Code, "query %q", query)
		}
	})
}

func TestGetStandingsHandler(t *testing.T) {
	t.Run("passes the date through", func(t *testing.T) {
		getStandings := app.GetStandings(func(ctx context.Context, date string) ([]domain.TeamStanding, error) {
			assert.Equal(t, "2024-07-01", date)
			return []domain.TeamStanding{{TeamID: 147, TeamName: "New York Yankees"}}, nil
		})
		handler := MakeGetStandingsHandler(getStandings, testLogger(), identityMiddleware)

		req := httptest.NewRequest(http.MethodGet, "/v1/standings?date=2024-07-01", nil)
		recorder := httptest.NewRecorder()
		handler(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.True(t, envelope.Success)
	})

	t.Run("missing date means current standings", func(t *testing.T) {
		getStandings := app.GetStandings(func(ctx context.Context, date string) ([]domain.TeamStanding, error) {
			assert.Empty(t, date)
			return nil, nil
		})
		handler := MakeGetStandingsHandler(getStandings, testLogger(), identityMiddleware)

		req := httptest.NewRequest(http.MethodGet, "/v1/standings", nil)
		recorder := httptest.NewRecorder()
		handler(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		getStandings := app.GetStandings(func(ctx context.Context, date string) ([]domain.TeamStanding, error) {
			t.Error("should not be called")
			return nil, nil
		})
		handler := MakeGetStandingsHandler(getStandings, testLogger(), identityMiddleware)

		req := httptest.NewRequest(http.MethodGet, "/v1/standings?date=July+1st", nil)
		recorder := httptest.NewRecorder()
		handler(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetGamePreviewHandler(t *testing.T) {
	t.Run("serializes the preview", func(t *testing.T) {
		getGamePreview := app.GetGamePreview(func(ctx context.Context, gamePk int64) (*domain.GamePreview, map[string]error, error) {
			assert.Equal(t, int64(745804), gamePk)
			return &domain.GamePreview{
				Feed: &domain.GameFeed{
					GamePk: gamePk,
					State:  "In Progress",
					Innings: []domain.Inning{
						{Num: 1, AwayRuns: 2, HomeRuns: 0},
						{Num: 2, AwayRuns: 0, HomeRuns: 3},
					},
				},
				HomePitcher: domain.TBDPitcher(),
				AwayPitcher: domain.PitcherInfo{ID: 543037, Name: "Gerrit Cole", Hand: "R", Wins: "8", Losses: "3", ERA: "3.12"},
			}, nil, nil
		})
		handler := MakeGetGamePreviewHandler(getGamePreview, testLogger(), identityMiddleware)

		req := httptest.NewRequest(http.MethodGet, "/v1/games/745804/preview", nil)
		req.SetPathValue("gamePk", "745804")
		recorder := httptest.NewRecorder()
		handler(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)

		data, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"homeRuns":3`, "linescore totals should be summed")
		assert.Contains(t, string(data), `"awayRuns":2`)
		assert.Contains(t, string(data), `"name":"TBD"`)
		assert.Contains(t, string(data), `"name":"Gerrit Cole"`)
	})

	t.Run("invalid game pk", func(t *testing.T) {
		getGamePreview := app.GetGamePreview(func(ctx context.Context, gamePk int64) (*domain.GamePreview, map[string]error, error) {
			t.Error("should not be called")
			return nil, nil, nil
		})
		handler := MakeGetGamePreviewHandler(getGamePreview, testLogger(), identityMiddleware)

		req := httptest.NewRequest(http.MethodGet, "/v1/games/yesterday/preview", nil)
		req.SetPathValue("gamePk", "yesterday")
		recorder := httptest.NewRecorder()
		handler(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetRosterHandler(t *testing.T) {
	getRosterWithStats := app.GetRosterWithStats(func(ctx context.Context, teamID int64, season string) (*domain.RosterWithStats, map[string]error, error) {
		return &domain.RosterWithStats{
			Roster: &domain.Roster{
				TeamID: teamID,
				Season: season,
				Entries: []domain.RosterEntry{
					{PlayerID: 592450, FullName: "Aaron Judge", Position: "RF"},
					{PlayerID: 543037, FullName: "Gerrit Cole", Position: "P"},
				},
			},
			Players: []*domain.PlayerSeason{
				{Player: &domain.Player{ID: 592450}},
				nil,
			},
		}, map[string]error{"player:543037": fmt.Errorf("%w: boom", domain.ErrTimeout)}, nil
	})
	handler := MakeGetRosterHandler(getRosterWithStats, testLogger(), identityMiddleware)

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/147/roster/2024", nil)
	req.SetPathValue("teamID", "147")
	req.SetPathValue("season", "2024")
	recorder := httptest.NewRecorder()
	handler(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.True(t, envelope.Success)
	assert.Equal(t, map[string]string{"player:543037": "timeout"}, envelope.Errors)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fullName":"Gerrit Cole"`, "roster row survives a failed stats fetch")
}
