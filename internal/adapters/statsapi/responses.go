package statsapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

// Wire types for the MLB Stats API responses we consume. Schemas are fixed
// per endpoint; anything that fails to decode into these shapes surfaces as
// domain.ErrMalformedResponse rather than a loosely-typed value.

type wireTeamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type wirePositionRef struct {
	Abbreviation string `json:"abbreviation"`
}

type wireCodeRef struct {
	Code string `json:"code"`
}

type wirePersonRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type wireStatGroup struct {
	Group struct {
		DisplayName string `json:"displayName"`
	} `json:"group"`
	Splits []struct {
		Season string          `json:"season"`
		Stat   json.RawMessage `json:"stat"`
	} `json:"splits"`
}

type wireHittingStats struct {
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

type wirePitchingStats struct {
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

type wirePerson struct {
	ID              int64           `json:"id"`
	FullName        string          `json:"fullName"`
	PrimaryNumber   string          `json:"primaryNumber"`
	CurrentTeam     wireTeamRef     `json:"currentTeam"`
	PrimaryPosition wirePositionRef `json:"primaryPosition"`
	BatSide         wireCodeRef     `json:"batSide"`
	PitchHand       wireCodeRef     `json:"pitchHand"`
	Stats           []wireStatGroup `json:"stats"`
}

type wirePeopleResponse struct {
	People []wirePerson `json:"people"`
}

type wireStatsResponse struct {
	Stats []wireStatGroup `json:"stats"`
}

type wireRosterResponse struct {
	Roster []struct {
		Person       wirePersonRef   `json:"person"`
		JerseyNumber string          `json:"jerseyNumber"`
		Position     wirePositionRef `json:"position"`
	} `json:"roster"`
}

type wireScheduleResponse struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePk   int64     `json:"gamePk"`
			GameDate time.Time `json:"gameDate"`
			Status   struct {
				DetailedState string `json:"detailedState"`
			} `json:"status"`
			Teams struct {
				Away wireScheduleSide `json:"away"`
				Home wireScheduleSide `json:"home"`
			} `json:"teams"`
		} `json:"games"`
	} `json:"dates"`
}

type wireScheduleSide struct {
	Score int         `json:"score"`
	Team  wireTeamRef `json:"team"`
}

type wireFeedResponse struct {
	GamePk   int64 `json:"gamePk"`
	GameData struct {
		Datetime struct {
			DateTime time.Time `json:"dateTime"`
		} `json:"datetime"`
		Status struct {
			DetailedState string `json:"detailedState"`
		} `json:"status"`
		Teams struct {
			Away wireTeamRef `json:"away"`
			Home wireTeamRef `json:"home"`
		} `json:"teams"`
		ProbablePitchers struct {
			Away *wirePersonRef `json:"away"`
			Home *wirePersonRef `json:"home"`
		} `json:"probablePitchers"`
		// Keyed by "ID<personId>"
		Players map[string]struct {
			PitchHand wireCodeRef `json:"pitchHand"`
		} `json:"players"`
	} `json:"gameData"`
	LiveData struct {
		Linescore struct {
			Innings []struct {
				Num  int `json:"num"`
				Away struct {
					Runs int `json:"runs"`
				} `json:"away"`
				Home struct {
					Runs int `json:"runs"`
				} `json:"home"`
			} `json:"innings"`
		} `json:"linescore"`
	} `json:"liveData"`
}

type wireStandingsResponse struct {
	Records []struct {
		Division struct {
			NameShort string `json:"nameShort"`
		} `json:"division"`
		TeamRecords []struct {
			Team         wireTeamRef `json:"team"`
			Wins         int         `json:"wins"`
			Losses       int         `json:"losses"`
			DivisionRank string      `json:"divisionRank"`
			GamesBack    string      `json:"gamesBack"`
			LeagueRecord struct {
				Pct string `json:"pct"`
			} `json:"leagueRecord"`
		} `json:"teamRecords"`
	} `json:"records"`
}

func playerFromWire(person wirePerson) *domain.Player {
	return &domain.Player{
		ID:            person.ID,
		FullName:      person.FullName,
		PrimaryNumber: person.PrimaryNumber,
		Position:      person.PrimaryPosition.Abbreviation,
		TeamID:        person.CurrentTeam.ID,
		TeamName:      person.CurrentTeam.Name,
		BatSide:       person.BatSide.Code,
		PitchHand:     person.PitchHand.Code,
	}
}

// statLinesFromWire pulls the hitting and pitching lines out of a stats
// array. Groups with no splits are returned as nil, which is how the API
// represents "no line for this group" (e.g. pitching for position players).
func statLinesFromWire(groups []wireStatGroup) (*domain.HittingStats, *domain.PitchingStats, error) {
	var hitting *domain.HittingStats
	var pitching *domain.PitchingStats

	for _, group := range groups {
		if len(group.Splits) == 0 {
			continue
		}
		raw := group.Splits[0].Stat

		switch group.Group.DisplayName {
		case "hitting":
			var line wireHittingStats
			if err := json.Unmarshal(raw, &line); err != nil {
				return nil, nil, fmt.Errorf("%w: bad hitting stat line: %w", domain.ErrMalformedResponse, err)
			}
			hitting = hittingFromWire(line)
		case "pitching":
			var line wirePitchingStats
			if err := json.Unmarshal(raw, &line); err != nil {
				return nil, nil, fmt.Errorf("%w: bad pitching stat line: %w", domain.ErrMalformedResponse, err)
			}
			pitching = pitchingFromWire(line)
		}
	}

	return hitting, pitching, nil
}

func hittingFromWire(line wireHittingStats) *domain.HittingStats {
	return &domain.HittingStats{
		GamesPlayed: line.GamesPlayed,
		AtBats:      line.AtBats,
		Runs:        line.Runs,
		Hits:        line.Hits,
		Doubles:     line.Doubles,
		HomeRuns:    line.HomeRuns,
		RBI:         line.RBI,
		StolenBases: line.StolenBases,
		BaseOnBalls: line.BaseOnBalls,
		StrikeOuts:  line.StrikeOuts,
		AVG:         line.AVG,
		OBP:         line.OBP,
		SLG:         line.SLG,
		OPS:         line.OPS,
	}
}

func pitchingFromWire(line wirePitchingStats) *domain.PitchingStats {
	return &domain.PitchingStats{
		GamesPlayed:    line.GamesPlayed,
		GamesStarted:   line.GamesStarted,
		Wins:           line.Wins,
		Losses:         line.Losses,
		Saves:          line.Saves,
		InningsPitched: line.InningsPitched,
		StrikeOuts:     line.StrikeOuts,
		BaseOnBalls:    line.BaseOnBalls,
		ERA:            line.ERA,
		WHIP:           line.WHIP,
	}
}

func feedFromWire(feed wireFeedResponse) *domain.GameFeed {
	innings := make([]domain.Inning, 0, len(feed.LiveData.Linescore.Innings))
	for _, inning := range feed.LiveData.Linescore.Innings {
		innings = append(innings, domain.Inning{
			Num:      inning.Num,
			AwayRuns: inning.Away.Runs,
			HomeRuns: inning.Home.Runs,
		})
	}

	pitcherFromRef := func(ref *wirePersonRef) *domain.ProbablePitcher {
		if ref == nil {
			return nil
		}
		hand := ""
		if player, ok := feed.GameData.Players[fmt.Sprintf("ID%d", ref.ID)]; ok {
			hand = player.PitchHand.Code
		}
		return &domain.ProbablePitcher{
			ID:       ref.ID,
			FullName: ref.FullName,
			Hand:     hand,
		}
	}

	return &domain.GameFeed{
		GamePk:              feed.GamePk,
		GameDate:            feed.GameData.Datetime.DateTime,
		State:               feed.GameData.Status.DetailedState,
		HomeTeamID:          feed.GameData.Teams.Home.ID,
		HomeTeamName:        feed.GameData.Teams.Home.Name,
		AwayTeamID:          feed.GameData.Teams.Away.ID,
		AwayTeamName:        feed.GameData.Teams.Away.Name,
		Innings:             innings,
		HomeProbablePitcher: pitcherFromRef(feed.GameData.ProbablePitchers.Home),
		AwayProbablePitcher: pitcherFromRef(feed.GameData.ProbablePitchers.Away),
	}
}
