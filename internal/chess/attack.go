package chess

import "slices"

// IsSquareAttacked reports whether any piece of side by has sq among its
// pseudo-legal destinations. Self-check filtering is deliberately not applied:
// the legality filter itself is built on this function.
func IsSquareAttacked(b Board, sq Square, by Side) bool {
	mustBeValid(sq)
	for r := range 8 {
		for c := range 8 {
			p := b[r][c]
			if p.IsZero() || p.Side != by {
				continue
			}
			if slices.Contains(PseudoLegalMoves(b, Square{Row: r, Col: c}), sq) {
				return true
			}
		}
	}
	return false
}

// FindKing returns the square of side's king, scanning in row-major order.
func FindKing(b Board, side Side) (Square, bool) {
	for r := range 8 {
		for c := range 8 {
			if p := b[r][c]; p.Kind == King && p.Side == side {
				return Square{Row: r, Col: c}, true
			}
		}
	}
	return Square{}, false
}

// IsKingInCheck reports whether side's king is attacked. A board without that
// king is never in check.
func IsKingInCheck(b Board, side Side) bool {
	king, ok := FindKing(b, side)
	if !ok {
		return false
	}
	return IsSquareAttacked(b, king, side.Opposite())
}
