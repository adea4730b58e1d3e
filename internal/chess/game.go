package chess

import (
	"fmt"
	"slices"
)

// Status is the terminal flag of a game.
type Status int

const (
	InProgress Status = iota
	Checkmate
)

func (s Status) String() string {
	if s == Checkmate {
		return "checkmate"
	}
	return "inProgress"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "inProgress":
		*s = InProgress
	case "checkmate":
		*s = Checkmate
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// GameState is the whole state of a game. Operations take it by value and
// return the successor; nothing is shared between games.
type GameState struct {
	Board  Board  `json:"board"`
	ToMove Side   `json:"toMove"`
	Status Status `json:"status"`
	// Checkmated is the mated side. Only meaningful when Status is Checkmate.
	Checkmated Side `json:"checkmated"`
}

// NewGame returns the starting position with white to move.
func NewGame() GameState {
	return GameState{
		Board:  InitialBoard(),
		ToMove: White,
		Status: InProgress,
	}
}

// Over reports whether the game has ended.
func (s GameState) Over() bool {
	return s.Status != InProgress
}

// InCheck reports whether the side to move is in check.
func (s GameState) InCheck() bool {
	return IsKingInCheck(s.Board, s.ToMove)
}

// LegalMoves returns the legal destinations for the piece on sq. It is empty
// when sq is empty, holds a piece of the side not to move, or the game is over.
func (s GameState) LegalMoves(sq Square) ([]Square, error) {
	if !sq.Valid() {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, sq.Row, sq.Col)
	}
	p, ok := s.Board.PieceAt(sq)
	if !ok || p.Side != s.ToMove || s.Over() {
		return nil, nil
	}
	return LegalMoves(s.Board, sq), nil
}

// ChooseMove asks the greedy evaluator for a move for side. The result is
// played through ApplySelectedMove like any other move.
func (s GameState) ChooseMove(side Side) (Move, bool) {
	return ChooseMove(s.Board, side)
}

// ApplySelectedMove validates m against the legal move set, plays it, passes
// the turn and checks whether the new side to move is checkmated.
func ApplySelectedMove(s GameState, m Move) (GameState, error) {
	if !m.From.Valid() || !m.To.Valid() {
		return s, fmt.Errorf("%w: %d,%d -> %d,%d", ErrOutOfBounds, m.From.Row, m.From.Col, m.To.Row, m.To.Col)
	}
	if s.Over() {
		return s, ErrGameOver
	}
	p, ok := s.Board.PieceAt(m.From)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrEmptySquare, m.From)
	}
	if p.Side != s.ToMove {
		return s, fmt.Errorf("%w: %s to move", ErrNotYourTurn, s.ToMove)
	}
	if !slices.Contains(LegalMoves(s.Board, m.From), m.To) {
		return s, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	s.Board = ApplyMove(s.Board, m)
	s.ToMove = s.ToMove.Opposite()
	s.settle()
	return s, nil
}

// settle marks the game finished if the side to move is checkmated.
func (s *GameState) settle() {
	if IsCheckmate(s.Board, s.ToMove) {
		s.Status = Checkmate
		s.Checkmated = s.ToMove
	}
}
