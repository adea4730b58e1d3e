package chess

import "errors"

// Sentinel errors returned by the turn controller and the FEN codec.
// Callers inspect them with errors.Is.
var (
	// ErrOutOfBounds indicates a square outside the 8x8 board.
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrEmptySquare indicates a move from a square with no piece.
	ErrEmptySquare = errors.New("no piece at from square")

	// ErrNotYourTurn indicates a move of the side not to move.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrIllegalMove indicates a destination outside the legal move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver indicates a move after the game has ended.
	ErrGameOver = errors.New("game is over")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")
)
