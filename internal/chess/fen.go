package chess

import (
	"fmt"
	"strings"

	notnil "github.com/notnil/chess"
)

var (
	fromNotnilKind = map[notnil.PieceType]Kind{
		notnil.Pawn:   Pawn,
		notnil.Knight: Knight,
		notnil.Bishop: Bishop,
		notnil.Rook:   Rook,
		notnil.Queen:  Queen,
		notnil.King:   King,
	}

	toNotnilPiece = map[Piece]notnil.Piece{
		{Pawn, White}:   notnil.WhitePawn,
		{Knight, White}: notnil.WhiteKnight,
		{Bishop, White}: notnil.WhiteBishop,
		{Rook, White}:   notnil.WhiteRook,
		{Queen, White}:  notnil.WhiteQueen,
		{King, White}:   notnil.WhiteKing,
		{Pawn, Black}:   notnil.BlackPawn,
		{Knight, Black}: notnil.BlackKnight,
		{Bishop, Black}: notnil.BlackBishop,
		{Rook, Black}:   notnil.BlackRook,
		{Queen, Black}:  notnil.BlackQueen,
		{King, Black}:   notnil.BlackKing,
	}
)

// notnilSquare maps a row/col square to notnil's a1 = 0 indexing.
func notnilSquare(sq Square) notnil.Square {
	return notnil.Square((7-sq.Row)*8 + sq.Col)
}

// ParseFEN decodes the piece placement and side-to-move fields of a FEN
// string. Castling, en passant and clock fields are accepted and ignored
// since those rules are not played. If the side to move is already
// checkmated the returned state is finished.
func ParseFEN(fen string) (GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return GameState{}, fmt.Errorf("%w: %q: want placement and side to move", ErrInvalidFEN, fen)
	}

	var nb notnil.Board
	if err := nb.UnmarshalText([]byte(fields[0])); err != nil {
		return GameState{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	var s GameState
	for r := range 8 {
		for c := range 8 {
			sq := Square{Row: r, Col: c}
			np := nb.Piece(notnilSquare(sq))
			if np == notnil.NoPiece {
				continue
			}
			side := White
			if np.Color() == notnil.Black {
				side = Black
			}
			s.Board.Set(sq, Piece{Kind: fromNotnilKind[np.Type()], Side: side})
		}
	}

	switch fields[1] {
	case "w":
		s.ToMove = White
	case "b":
		s.ToMove = Black
	default:
		return GameState{}, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	s.settle()
	return s, nil
}

// EncodeFEN renders s as a FEN string with no castling or en passant rights.
func EncodeFEN(s GameState) string {
	pieces := make(map[notnil.Square]notnil.Piece)
	for r := range 8 {
		for c := range 8 {
			if p := s.Board[r][c]; !p.IsZero() {
				pieces[notnilSquare(Square{Row: r, Col: c})] = toNotnilPiece[p]
			}
		}
	}
	turn := "w"
	if s.ToMove == Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", notnil.NewBoard(pieces).String(), turn)
}
