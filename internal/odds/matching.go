package odds

import "github.com/tpham/dailycard/internal/names"

// VendorEvent is the minimal shape of one event in the odds vendor's batch
// response, ahead of being parsed into full markets.
type VendorEvent struct {
	HomeTeam string
	AwayTeam string
}

// MatchesGame implements _matches_game from §4.4: an event matches a game
// if Match succeeds in either team orientation (the vendor doesn't
// guarantee home/away ordering agrees with the schedule source).
func MatchesGame(ev VendorEvent, team1, team2 string) bool {
	straight := names.Match(ev.HomeTeam, team1) && names.Match(ev.AwayTeam, team2)
	crossed := names.Match(ev.HomeTeam, team2) && names.Match(ev.AwayTeam, team1)
	return straight || crossed
}
