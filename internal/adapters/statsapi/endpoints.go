package statsapi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

const dateLayout = "2006-01-02"

func (s *statsAPIImpl) GetPlayerSeason(ctx context.Context, playerID int64, season string) (*domain.PlayerSeason, error) {
	hydrate := fmt.Sprintf("stats(group=[hitting,pitching],type=[season],season=%s)", season)
	endpoint := "people"
	requestURL := fmt.Sprintf(
		"%s/v1/people/%d?hydrate=%s",
		s.baseURL, playerID, url.QueryEscape(hydrate),
	)

	var response wirePeopleResponse
	if err := s.getJSON(ctx, endpoint, requestURL, &response); err != nil {
		return nil, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}

	if len(response.People) == 0 {
		return nil, fmt.Errorf("%w: player %d", domain.ErrNotFound, playerID)
	}

	person := response.People[0]
	hitting, pitching, err := statLinesFromWire(person.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stats for player %d: %w", playerID, err)
	}

	return &domain.PlayerSeason{
		Player: playerFromWire(person),
		Season: &domain.SeasonStats{
			Season:   season,
			Hitting:  hitting,
			Pitching: pitching,
		},
	}, nil
}

func (s *statsAPIImpl) GetCareerHitting(ctx context.Context, playerID int64) (*domain.HittingStats, error) {
	hitting, _, err := s.getCareerGroup(ctx, playerID, "hitting")
	return hitting, err
}

func (s *statsAPIImpl) GetCareerPitching(ctx context.Context, playerID int64) (*domain.PitchingStats, error) {
	_, pitching, err := s.getCareerGroup(ctx, playerID, "pitching")
	return pitching, err
}

func (s *statsAPIImpl) getCareerGroup(ctx context.Context, playerID int64, group string) (*domain.HittingStats, *domain.PitchingStats, error) {
	endpoint := "people/stats"
	requestURL := fmt.Sprintf(
		"%s/v1/people/%d/stats?stats=career&group=%s",
		s.baseURL, playerID, group,
	)

	var response wireStatsResponse
	if err := s.getJSON(ctx, endpoint, requestURL, &response); err != nil {
		return nil, nil, fmt.Errorf("failed to get career %s for player %d: %w", group, playerID, err)
	}

	// A player with no appearances in the group has no splits; that is a
	// nil line, not an error.
	hitting, pitching, err := statLinesFromWire(response.Stats)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse career %s for player %d: %w", group, playerID, err)
	}
	return hitting, pitching, nil
}

func (s *statsAPIImpl) GetRoster(ctx context.Context, teamID int64, season string) (*domain.Roster, error) {
	endpoint := "teams/roster"
	requestURL := fmt.Sprintf(
		"%s/v1/teams/%d/roster?season=%s",
		s.baseURL, teamID, url.QueryEscape(season),
	)

	var response wireRosterResponse
	if err := s.getJSON(ctx, endpoint, requestURL, &response); err != nil {
		return nil, fmt.Errorf("failed to get roster for team %d: %w", teamID, err)
	}

	entries := make([]domain.RosterEntry, 0, len(response.Roster))
	for _, row := range response.Roster {
		entries = append(entries, domain.RosterEntry{
			PlayerID:     row.Person.ID,
			FullName:     row.Person.FullName,
			JerseyNumber: row.JerseyNumber,
			Position:     row.Position.Abbreviation,
		})
	}

	return &domain.Roster{
		TeamID:  teamID,
		Season:  season,
		Entries: entries,
	}, nil
}

func (s *statsAPIImpl) GetSchedule(ctx context.Context, teamID int64, start, end time.Time) ([]domain.GameSummary, error) {
	endpoint := "schedule"
	requestURL := fmt.Sprintf(
		"%s/v1/schedule?sportId=1&teamId=%d&startDate=%s&endDate=%s",
		s.baseURL, teamID, start.Format(dateLayout), end.Format(dateLayout),
	)

	var response wireScheduleResponse
	if err := s.getJSON(ctx, endpoint, requestURL, &response); err != nil {
		return nil, fmt.Errorf("failed to get schedule for team %d: %w", teamID, err)
	}

	var games []domain.GameSummary
	for _, date := range response.Dates {
		for _, game := range date.Games {
			games = append(games, domain.GameSummary{
				GamePk:       game.GamePk,
				GameDate:     game.GameDate,
				State:        game.Status.DetailedState,
				HomeTeamID:   game.Teams.Home.Team.ID,
				HomeTeamName: game.Teams.Home.Team.Name,
				HomeScore:    game.Teams.Home.Score,
				AwayTeamID:   game.Teams.Away.Team.ID,
				AwayTeamName: game.Teams.Away.Team.Name,
				AwayScore:    game.Teams.Away.Score,
			})
		}
	}

	return games, nil
}

func (s *statsAPIImpl) GetGameFeed(ctx context.Context, gamePk int64) (*domain.GameFeed, error) {
	endpoint := "game/feed"
	requestURL := fmt.Sprintf("%s/v1.1/game/%d/feed/live", s.baseURL, gamePk)

	var response wireFeedResponse
	if err := s.getJSON(ctx, endpoint, requestURL, &response); err != nil {
		return nil, fmt.Errorf("failed to get feed for game %d: %w", gamePk, err)
	}

	if response.GamePk == 0 {
		return nil, fmt.Errorf("%w: feed for game %d had no gamePk", domain.ErrMalformedResponse, gamePk)
	}

	return feedFromWire(response), nil
}

func (s *statsAPIImpl) GetStandings(ctx context.Context, date string) ([]domain.TeamStanding, error) {
	endpoint := "standings"
	requestURL := fmt.Sprintf("%s/v1/standings?leagueId=103,104&hydrate=division", s.baseURL)
	if date != "" {
		requestURL += "&date=" + url.QueryEscape(date)
	}

	var response wireStandingsResponse
	if err := s.getJSON(ctx, endpoint, requestURL, &response); err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	var standings []domain.TeamStanding
	for _, record := range response.Records {
		for _, team := range record.TeamRecords {
			standings = append(standings, domain.TeamStanding{
				TeamID:       team.Team.ID,
				TeamName:     team.Team.Name,
				Division:     record.Division.NameShort,
				Wins:         team.Wins,
				Losses:       team.Losses,
				Pct:          team.LeagueRecord.Pct,
				GamesBack:    team.GamesBack,
				DivisionRank: team.DivisionRank,
			})
		}
	}

	return standings, nil
}
