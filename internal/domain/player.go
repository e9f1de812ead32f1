package domain

// Player is the identity part of the MLB Stats API people resource.
type Player struct {
	ID            int64
	FullName      string
	PrimaryNumber string
	Position      string
	TeamID        int64
	TeamName      string
	BatSide       string
	PitchHand     string
}

// Counting stats are ints; rate stats are kept as the strings the MLB API
// returns (".274", "3.12") to avoid lossy float round-trips.
type HittingStats struct {
	GamesPlayed int
	AtBats      int
	Runs        int
	Hits        int
	Doubles     int
	HomeRuns    int
	RBI         int
	StolenBases int
	BaseOnBalls int
	StrikeOuts  int
	AVG         string
	OBP         string
	SLG         string
	OPS         string
}

type PitchingStats struct {
	GamesPlayed    int
	GamesStarted   int
	Wins           int
	Losses         int
	Saves          int
	InningsPitched string
	StrikeOuts     int
	BaseOnBalls    int
	ERA            string
	WHIP           string
}

// SeasonStats holds one season's stat lines for a player. Either group may
// be nil: position players have no pitching line and most pitchers have no
// meaningful hitting line.
type SeasonStats struct {
	Season   string
	Hitting  *HittingStats
	Pitching *PitchingStats
}

type CareerStats struct {
	Hitting  *HittingStats
	Pitching *PitchingStats
}

// PlayerSeason is the composite "player page" value: identity, one season's
// stats, and career totals.
type PlayerSeason struct {
	Player *Player
	Season *SeasonStats
	Career *CareerStats
}

// PlayerComparison pairs up the season lines of several players. Entries
// appear in the order the players were requested; a nil entry means that
// player's sub-request failed.
type PlayerComparison struct {
	Season  string
	Players []*PlayerSeason
}
