package models

// Roster is the client-submitted grouping of players for a new match: the
// unassigned pool plus the two team lists. It carries no label; one is
// generated at creation time.
type Roster struct {
	Players []Player `json:"players"`
	TeamOne []Player `json:"team_1"`
	TeamTwo []Player `json:"team_2"`
}

// Match is the denormalized view returned to clients on both create and read.
type Match struct {
	Label   string   `json:"label"`
	Players []Player `json:"players"`
	TeamOne []Player `json:"team_1"`
	TeamTwo []Player `json:"team_2"`
}

// MatchesTable is the MySQL table holding match headers, keyed by label
const MatchesTable = "matches"
