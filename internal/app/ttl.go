package app

import "time"

// TTLClasses holds the freshness policy per resource class. Live game state
// changes pitch to pitch; historical stat lines barely change within a day.
type TTLClasses struct {
	LiveFeed    time.Duration
	Schedule    time.Duration
	Standings   time.Duration
	SeasonStats time.Duration
	Roster      time.Duration
}

func DefaultTTLClasses() TTLClasses {
	return TTLClasses{
		LiveFeed:    15 * time.Second,
		Schedule:    5 * time.Minute,
		Standings:   1 * time.Hour,
		SeasonStats: 6 * time.Hour,
		Roster:      24 * time.Hour,
	}
}
