package domain

import "time"

// GameSummary is one scheduled or completed game as returned by the
// schedule endpoint.
type GameSummary struct {
	GamePk       int64
	GameDate     time.Time
	State        string
	HomeTeamID   int64
	HomeTeamName string
	HomeScore    int
	AwayTeamID   int64
	AwayTeamName string
	AwayScore    int
}

type Inning struct {
	Num      int
	AwayRuns int
	HomeRuns int
}

// ProbablePitcher may be absent from the feed before a starter is announced.
type ProbablePitcher struct {
	ID       int64
	FullName string
	Hand     string
}

// GameFeed is the subset of the live game feed the service consumes.
type GameFeed struct {
	GamePk              int64
	GameDate            time.Time
	State               string
	HomeTeamID          int64
	HomeTeamName        string
	AwayTeamID          int64
	AwayTeamName        string
	Innings             []Inning
	HomeProbablePitcher *ProbablePitcher
	AwayProbablePitcher *ProbablePitcher
}

// HomeRuns and AwayRuns sum the linescore rather than trusting a separate
// score field, matching how the original service computed totals.
func (f *GameFeed) HomeRuns() int {
	total := 0
	for _, inning := range f.Innings {
		total += inning.HomeRuns
	}
	return total
}

func (f *GameFeed) AwayRuns() int {
	total := 0
	for _, inning := range f.Innings {
		total += inning.AwayRuns
	}
	return total
}

// PitcherInfo is a probable pitcher joined with their season pitching line.
// The zero value with Name == "TBD" represents an unannounced starter.
type PitcherInfo struct {
	ID     int64
	Name   string
	Hand   string
	Wins   string
	Losses string
	ERA    string
}

// TBDPitcher mirrors the original service's placeholder for unannounced or
// stat-less starters.
func TBDPitcher() PitcherInfo {
	return PitcherInfo{Name: "TBD", Hand: "TBD", Wins: "TBD", Losses: "TBD", ERA: "TBD"}
}

// GamePreview is the composite game value: the feed plus both probable
// pitchers' season lines.
type GamePreview struct {
	Feed        *GameFeed
	HomePitcher PitcherInfo
	AwayPitcher PitcherInfo
}
