package models

// Player is a roster entry as submitted by clients and stored in the players table.
// Avatar is optional and serializes as null when absent.
type Player struct {
	Name   string  `json:"name" db:"name"`
	Elo    int32   `json:"elo" db:"elo"`
	Avatar *string `json:"avatar" db:"avatar"`
}

// PlayersTable is the MySQL table holding known players
const PlayersTable = "players"
