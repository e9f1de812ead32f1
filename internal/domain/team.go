package domain

type RosterEntry struct {
	PlayerID     int64
	FullName     string
	JerseyNumber string
	Position     string
}

type Roster struct {
	TeamID  int64
	Season  string
	Entries []RosterEntry
}

// RosterWithStats is the composite roster value: one PlayerSeason per roster
// entry, in roster order. A nil entry means that player's stats sub-request
// failed; the roster row itself is still present in Roster.
type RosterWithStats struct {
	Roster  *Roster
	Players []*PlayerSeason
}

type TeamStanding struct {
	TeamID       int64
	TeamName     string
	Division     string
	Wins         int
	Losses       int
	Pct          string
	GamesBack    string
	DivisionRank string
}
