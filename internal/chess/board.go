// Package chess implements the board model, move generation, check detection
// and the greedy move evaluator.
package chess

import (
	"encoding/json"
	"fmt"
)

// Side is one of the two players.
type Side int

const (
	White Side = iota
	Black
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// forward is the row delta a pawn of this side moves by.
func (s Side) forward() int {
	if s == White {
		return -1
	}
	return 1
}

// pawnRank is the row this side's pawns start on.
func (s Side) pawnRank() int {
	if s == White {
		return 6
	}
	return 1
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*s = White
	case "black":
		*s = Black
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

// Kind is the type of a piece. NoKind marks an empty square.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind := Pawn; kind <= King; kind++ {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	if len(text) == 0 {
		*k = NoKind
		return nil
	}
	return fmt.Errorf("unknown piece type %q", text)
}

// Piece is a kind and the side owning it.
type Piece struct {
	Kind Kind `json:"type"`
	Side Side `json:"color"`
}

// IsZero reports whether p is the empty square value.
func (p Piece) IsZero() bool {
	return p.Kind == NoKind
}

func (p Piece) String() string {
	if p.IsZero() {
		return "empty"
	}
	return p.Side.String() + " " + p.Kind.String()
}

// Square addresses a board cell. Row 0 is black's home rank.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether the square lies on the board.
func (sq Square) Valid() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

func (sq Square) offset(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// String returns algebraic notation, e.g. (6,4) is "e2".
func (sq Square) String() string {
	if !sq.Valid() {
		return fmt.Sprintf("(%d,%d)", sq.Row, sq.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+sq.Col, 8-sq.Row)
}

// Move relocates the piece on From to To, capturing whatever stands there.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// Board is an 8x8 grid indexed [row][col]. It is a value: assignment copies it.
type Board [8][8]Piece

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// EmptyBoard returns a board with no pieces.
func EmptyBoard() Board {
	return Board{}
}

// InitialBoard returns the standard starting position.
func InitialBoard() Board {
	var b Board
	for col := range 8 {
		b[0][col] = Piece{Kind: backRank[col], Side: Black}
		b[1][col] = Piece{Kind: Pawn, Side: Black}
		b[6][col] = Piece{Kind: Pawn, Side: White}
		b[7][col] = Piece{Kind: backRank[col], Side: White}
	}
	return b
}

func mustBeValid(sq Square) {
	if !sq.Valid() {
		panic(fmt.Sprintf("chess: square (%d,%d) out of bounds", sq.Row, sq.Col))
	}
}

// PieceAt returns the piece on sq and whether one is there.
// It panics if sq is off the board.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	mustBeValid(sq)
	p := b[sq.Row][sq.Col]
	return p, !p.IsZero()
}

// Set places p on sq; the zero Piece clears it.
func (b *Board) Set(sq Square, p Piece) {
	mustBeValid(sq)
	b[sq.Row][sq.Col] = p
}

// ApplyMove returns a copy of b with m played. It does not check legality.
func ApplyMove(b Board, m Move) Board {
	p, _ := b.PieceAt(m.From)
	b.Set(m.To, p)
	b.Set(m.From, Piece{})
	return b
}

// MarshalJSON encodes the board as rows of pieces, with null for empty squares.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, 8)
	for r := range 8 {
		rows[r] = make([]*Piece, 8)
		for c := range 8 {
			if p := b[r][c]; !p.IsZero() {
				rows[r][c] = &p
			}
		}
	}
	return json.Marshal(rows)
}
