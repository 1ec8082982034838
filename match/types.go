package match

// Team is the short team shape shared by most payloads.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Event is a single in-match incident (goal, card, substitution, VAR decision).
type Event struct {
	Minute   int    `json:"minute"`
	Extra    int    `json:"extra,omitempty"`
	TeamID   int    `json:"teamId"`
	PlayerID int    `json:"playerId,omitempty"`
	Player   string `json:"player,omitempty"`
	Assist   string `json:"assist,omitempty"`
	Type     string `json:"type"`
	Detail   string `json:"detail,omitempty"`
}

// LineupPlayer is one player in a starting XI or on the bench.
type LineupPlayer struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	Position string `json:"pos,omitempty"`
	Grid     string `json:"grid,omitempty"`
}

// TeamLineup is one side's formation, starters and substitutes.
type TeamLineup struct {
	Team        Team           `json:"team"`
	Formation   string         `json:"formation,omitempty"`
	Coach       string         `json:"coach,omitempty"`
	StartXI     []LineupPlayer `json:"startXI"`
	Substitutes []LineupPlayer `json:"substitutes"`
}

// Lineups holds both sides. A nil *Lineups means the lineups are not published yet.
type Lineups struct {
	Home TeamLineup `json:"home"`
	Away TeamLineup `json:"away"`
}

// PlayerIDs returns every player id on both team sheets, unsorted.
func (l *Lineups) PlayerIDs() []int {
	if l == nil {
		return nil
	}
	var ids []int
	for _, side := range []TeamLineup{l.Home, l.Away} {
		for _, p := range side.StartXI {
			ids = append(ids, p.ID)
		}
		for _, p := range side.Substitutes {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// StatItem is one team statistic such as "Ball Possession" = "55%".
type StatItem struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// TeamStats holds the statistics for one team in the match.
type TeamStats struct {
	Team       Team       `json:"team"`
	Statistics []StatItem `json:"statistics"`
}

// StandingRow is one line of a league table.
type StandingRow struct {
	Rank         int    `json:"rank"`
	Team         Team   `json:"team"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	Points       int    `json:"points"`
	Form         string `json:"form,omitempty"`
}

// Standings is the league table for the match's competition.
// A nil *Standings means the competition has no table (cups, friendlies).
type Standings struct {
	League string        `json:"league"`
	Season int           `json:"season,omitempty"`
	Rows   []StandingRow `json:"rows"`
}

// H2HResult is one previous meeting between the two teams.
type H2HResult struct {
	Date      string `json:"date"`
	HomeID    int    `json:"homeId"`
	AwayID    int    `json:"awayId"`
	HomeGoals int    `json:"homeGoals"`
	AwayGoals int    `json:"awayGoals"`
}

// TopPlayer is a leading performer for one side in the power comparison.
type TopPlayer struct {
	TeamID int     `json:"teamId"`
	Name   string  `json:"name"`
	Goals  int     `json:"goals"`
	Rating float64 `json:"rating"`
}

// HeadToHead is the power comparison between the two teams.
type HeadToHead struct {
	HomeID     int         `json:"teamA"`
	AwayID     int         `json:"teamB"`
	HomeRating float64     `json:"ratingA"`
	AwayRating float64     `json:"ratingB"`
	HomeForm   []int       `json:"formA"` // goals scored in recent matches, oldest first
	AwayForm   []int       `json:"formB"`
	Meetings   []H2HResult `json:"h2h"`
	TopPlayers []TopPlayer `json:"topPlayers"`
}

// PlayerStats is one player's in-match statistics.
type PlayerStats struct {
	PlayerID int     `json:"playerId"`
	Minutes  int     `json:"minutes"`
	Rating   float64 `json:"rating"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`
	Shots    int     `json:"shots"`
	Passes   int     `json:"passes"`
	Yellow   int     `json:"yellow"`
	Red      int     `json:"red"`
}

// PlayerStatsMap is keyed by player id.
type PlayerStatsMap map[int]PlayerStats
