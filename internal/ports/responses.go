package ports

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brianzzs/GreenFiveInnings/internal/domain"
	"github.com/brianzzs/GreenFiveInnings/internal/reporting"
)

// responseEnvelope is the shared response shape. Partial results set
// success=true with non-empty errors; hard failures set success=false with
// no data.
type responseEnvelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, envelope responseEnvelope) {
	marshalled, err := json.Marshal(envelope)
	if err != nil {
		reporting.Report(r.Context(), fmt.Errorf("failed to marshal response: %w", err))
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(marshalled)
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, r, statusForError(err), responseEnvelope{
		Success: false,
		Error:   errorLabel(err),
	})
}

type playerResponse struct {
	ID            int64  `json:"id"`
	FullName      string `json:"fullName"`
	PrimaryNumber string `json:"primaryNumber,omitempty"`
	Position      string `json:"position,omitempty"`
	TeamID        int64  `json:"teamId,omitempty"`
	TeamName      string `json:"teamName,omitempty"`
	BatSide       string `json:"batSide,omitempty"`
	PitchHand     string `json:"pitchHand,omitempty"`
}

type hittingResponse struct {
	GamesPlayed int    `json:"gamesPlayed"`
	AtBats      int    `json:"atBats"`
	Runs        int    `json:"runs"`
	Hits        int    `json:"hits"`
	Doubles     int    `json:"doubles"`
	HomeRuns    int    `json:"homeRuns"`
	RBI         int    `json:"rbi"`
	StolenBases int    `json:"stolenBases"`
	BaseOnBalls int    `json:"baseOnBalls"`
	StrikeOuts  int    `json:"strikeOuts"`
	AVG         string `json:"avg"`
	OBP         string `json:"obp"`
	SLG         string `json:"slg"`
	OPS         string `json:"ops"`
}

type pitchingResponse struct {
	GamesPlayed    int    `json:"gamesPlayed"`
	GamesStarted   int    `json:"gamesStarted"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Saves          int    `json:"saves"`
	InningsPitched string `json:"inningsPitched"`
	StrikeOuts     int    `json:"strikeOuts"`
	BaseOnBalls    int    `json:"baseOnBalls"`
	ERA            string `json:"era"`
	WHIP           string `json:"whip"`
}

type seasonStatsResponse struct {
	Season   string            `json:"season"`
	Hitting  *hittingResponse  `json:"hitting,omitempty"`
	Pitching *pitchingResponse `json:"pitching,omitempty"`
}

type careerStatsResponse struct {
	Hitting  *hittingResponse  `json:"hitting,omitempty"`
	Pitching *pitchingResponse `json:"pitching,omitempty"`
}

type playerSeasonResponse struct {
	Player *playerResponse      `json:"player,omitempty"`
	Season *seasonStatsResponse `json:"season,omitempty"`
	Career *careerStatsResponse `json:"career,omitempty"`
}

func hittingToResponse(hitting *domain.HittingStats) *hittingResponse {
	if hitting == nil {
		return nil
	}
	return &hittingResponse{
		GamesPlayed: hitting.GamesPlayed,
		AtBats:      hitting.AtBats,
		Runs:        hitting.Runs,
		Hits:        hitting.Hits,
		Doubles:     hitting.Doubles,
		HomeRuns:    hitting.HomeRuns,
		RBI:         hitting.RBI,
		StolenBases: hitting.StolenBases,
		BaseOnBalls: hitting.BaseOnBalls,
		StrikeOuts:  hitting.StrikeOuts,
		AVG:         hitting.AVG,
		OBP:         hitting.OBP,
		SLG:         hitting.SLG,
		OPS:         hitting.OPS,
	}
}

func pitchingToResponse(pitching *domain.PitchingStats) *pitchingResponse {
	if pitching == nil {
		return nil
	}
	return &pitchingResponse{
		GamesPlayed:    pitching.GamesPlayed,
		GamesStarted:   pitching.GamesStarted,
		Wins:           pitching.Wins,
		Losses:         pitching.Losses,
		Saves:          pitching.Saves,
		InningsPitched: pitching.InningsPitched,
		StrikeOuts:     pitching.StrikeOuts,
		BaseOnBalls:    pitching.BaseOnBalls,
		ERA:            pitching.ERA,
		WHIP:           pitching.WHIP,
	}
}

func playerSeasonToResponse(playerSeason *domain.PlayerSeason) *playerSeasonResponse {
	if playerSeason == nil {
		return nil
	}

	response := &playerSeasonResponse{}
	if player := playerSeason.Player; player != nil {
		response.Player = &playerResponse{
			ID:            player.ID,
			FullName:      player.FullName,
			PrimaryNumber: player.PrimaryNumber,
			Position:      player.Position,
			TeamID:        player.TeamID,
			TeamName:      player.TeamName,
			BatSide:       player.BatSide,
			PitchHand:     player.PitchHand,
		}
	}
	if season := playerSeason.Season; season != nil {
		response.Season = &seasonStatsResponse{
			Season:   season.Season,
			Hitting:  hittingToResponse(season.Hitting),
			Pitching: pitchingToResponse(season.Pitching),
		}
	}
	if career := playerSeason.Career; career != nil {
		response.Career = &careerStatsResponse{
			Hitting:  hittingToResponse(career.Hitting),
			Pitching: pitchingToResponse(career.Pitching),
		}
	}
	return response
}

type comparisonResponse struct {
	Season  string                  `json:"season"`
	Players []*playerSeasonResponse `json:"players"`
}

func comparisonToResponse(comparison *domain.PlayerComparison) *comparisonResponse {
	players := make([]*playerSeasonResponse, len(comparison.Players))
	for i, playerSeason := range comparison.Players {
		players[i] = playerSeasonToResponse(playerSeason)
	}
	return &comparisonResponse{
		Season:  comparison.Season,
		Players: players,
	}
}

type rosterPlayerResponse struct {
	PlayerID     int64                 `json:"playerId"`
	FullName     string                `json:"fullName"`
	JerseyNumber string                `json:"jerseyNumber,omitempty"`
	Position     string                `json:"position,omitempty"`
	Stats        *playerSeasonResponse `json:"stats,omitempty"`
}

type rosterResponse struct {
	TeamID  int64                  `json:"teamId"`
	Season  string                 `json:"season"`
	Players []rosterPlayerResponse `json:"players"`
}

func rosterToResponse(rosterWithStats *domain.RosterWithStats) *rosterResponse {
	roster := rosterWithStats.Roster
	players := make([]rosterPlayerResponse, len(roster.Entries))
	for i, entry := range roster.Entries {
		players[i] = rosterPlayerResponse{
			PlayerID:     entry.PlayerID,
			FullName:     entry.FullName,
			JerseyNumber: entry.JerseyNumber,
			Position:     entry.Position,
			Stats:        playerSeasonToResponse(rosterWithStats.Players[i]),
		}
	}
	return &rosterResponse{
		TeamID:  roster.TeamID,
		Season:  roster.Season,
		Players: players,
	}
}

type gameSummaryResponse struct {
	GamePk       int64     `json:"gamePk"`
	GameDate     time.Time `json:"gameDate"`
	State        string    `json:"state"`
	HomeTeamID   int64     `json:"homeTeamId"`
	HomeTeamName string    `json:"homeTeamName"`
	HomeScore    int       `json:"homeScore"`
	AwayTeamID   int64     `json:"awayTeamId"`
	AwayTeamName string    `json:"awayTeamName"`
	AwayScore    int       `json:"awayScore"`
}

func gameSummariesToResponse(games []domain.GameSummary) []gameSummaryResponse {
	response := make([]gameSummaryResponse, len(games))
	for i, game := range games {
		response[i] = gameSummaryResponse{
			GamePk:       game.GamePk,
			GameDate:     game.GameDate,
			State:        game.State,
			HomeTeamID:   game.HomeTeamID,
			HomeTeamName: game.HomeTeamName,
			HomeScore:    game.HomeScore,
			AwayTeamID:   game.AwayTeamID,
			AwayTeamName: game.AwayTeamName,
			AwayScore:    game.AwayScore,
		}
	}
	return response
}

type inningResponse struct {
	Num      int `json:"num"`
	AwayRuns int `json:"awayRuns"`
	HomeRuns int `json:"homeRuns"`
}

type pitcherResponse struct {
	ID     int64  `json:"id,omitempty"`
	Name   string `json:"name"`
	Hand   string `json:"hand"`
	Wins   string `json:"wins"`
	Losses string `json:"losses"`
	ERA    string `json:"era"`
}

type gamePreviewResponse struct {
	GamePk       int64            `json:"gamePk"`
	GameDate     time.Time        `json:"gameDate"`
	State        string           `json:"state"`
	HomeTeamID   int64            `json:"homeTeamId"`
	HomeTeamName string           `json:"homeTeamName"`
	HomeRuns     int              `json:"homeRuns"`
	AwayTeamID   int64            `json:"awayTeamId"`
	AwayTeamName string           `json:"awayTeamName"`
	AwayRuns     int              `json:"awayRuns"`
	Innings      []inningResponse `json:"innings"`
	HomePitcher  pitcherResponse  `json:"homePitcher"`
	AwayPitcher  pitcherResponse  `json:"awayPitcher"`
}

func pitcherToResponse(pitcher domain.PitcherInfo) pitcherResponse {
	return pitcherResponse{
		ID:     pitcher.ID,
		Name:   pitcher.Name,
		Hand:   pitcher.Hand,
		Wins:   pitcher.Wins,
		Losses: pitcher.Losses,
		ERA:    pitcher.ERA,
	}
}

func gamePreviewToResponse(preview *domain.GamePreview) *gamePreviewResponse {
	feed := preview.Feed
	innings := make([]inningResponse, len(feed.Innings))
	for i, inning := range feed.Innings {
		innings[i] = inningResponse{
			Num:      inning.Num,
			AwayRuns: inning.AwayRuns,
			HomeRuns: inning.HomeRuns,
		}
	}
	return &gamePreviewResponse{
		GamePk:       feed.GamePk,
		GameDate:     feed.GameDate,
		State:        feed.State,
		HomeTeamID:   feed.HomeTeamID,
		HomeTeamName: feed.HomeTeamName,
		HomeRuns:     feed.HomeRuns(),
		AwayTeamID:   feed.AwayTeamID,
		AwayTeamName: feed.AwayTeamName,
		AwayRuns:     feed.AwayRuns(),
		Innings:      innings,
		HomePitcher:  pitcherToResponse(preview.HomePitcher),
		AwayPitcher:  pitcherToResponse(preview.AwayPitcher),
	}
}

type standingResponse struct {
	TeamID       int64  `json:"teamId"`
	TeamName     string `json:"teamName"`
	Division     string `json:"division"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Pct          string `json:"pct"`
	GamesBack    string `json:"gamesBack"`
	DivisionRank string `json:"divisionRank"`
}

func standingsToResponse(standings []domain.TeamStanding) []standingResponse {
	response := make([]standingResponse, len(standings))
	for i, standing := range standings {
		response[i] = standingResponse{
			TeamID:       standing.TeamID,
			TeamName:     standing.TeamName,
			Division:     standing.Division,
			Wins:         standing.Wins,
			Losses:       standing.Losses,
			Pct:          standing.Pct,
			GamesBack:    standing.GamesBack,
			DivisionRank: standing.DivisionRank,
		}
	}
	return response
}
