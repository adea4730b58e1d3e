package model

import (
	"github.com/benbeisheim/greedychess-backend/internal/chess"
)

// ClientPlayer is a seat as shown to clients. ID is empty while the seat is open.
type ClientPlayer struct {
	ID    string      `json:"id"`
	Color PlayerColor `json:"color"`
	Agent string      `json:"agent,omitempty"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func ColorOf(side chess.Side) PlayerColor {
	if side == chess.Black {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}
