package model

import (
	"strings"

	"github.com/benbeisheim/greedychess-backend/internal/chess"
)

// WSMove is a move as clients send it.
type WSMove struct {
	From chess.Square `json:"from"`
	To   chess.Square `json:"to"`
}

func (m WSMove) Move() chess.Move {
	return chess.Move{From: m.From, To: m.To}
}

// Ply records one applied move.
type Ply struct {
	Side     chess.Side   `json:"side"`
	Piece    chess.Piece  `json:"piece"`
	Move     chess.Move   `json:"move"`
	Captured *chess.Piece `json:"capturedPiece"`
	ByAgent  bool         `json:"byAgent,omitempty"`
	Notation string       `json:"notation"`
}

var pieceLetters = map[chess.Kind]string{
	chess.Knight: "N",
	chess.Bishop: "B",
	chess.Rook:   "R",
	chess.Queen:  "Q",
	chess.King:   "K",
}

// newPly describes m as played on b, the board before the move.
func newPly(b chess.Board, m chess.Move, byAgent bool) Ply {
	piece, _ := b.PieceAt(m.From)
	ply := Ply{
		Side:    piece.Side,
		Piece:   piece,
		Move:    m,
		ByAgent: byAgent,
	}

	sep := "-"
	if target, _ := b.PieceAt(m.To); !target.IsZero() {
		ply.Captured = &target
		sep = "x"
	}

	var sb strings.Builder
	sb.WriteString(pieceLetters[piece.Kind])
	sb.WriteString(m.From.String())
	sb.WriteString(sep)
	sb.WriteString(m.To.String())
	ply.Notation = sb.String()
	return ply
}
