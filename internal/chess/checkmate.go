package chess

// IsCheckmate reports whether side is in check and none of its pieces has a
// legal move. A side with no legal moves that is not in check (stalemate) is
// not reported.
func IsCheckmate(b Board, side Side) bool {
	if !IsKingInCheck(b, side) {
		return false
	}
	return !hasLegalMove(b, side)
}

func hasLegalMove(b Board, side Side) bool {
	for r := range 8 {
		for c := range 8 {
			if p := b[r][c]; p.IsZero() || p.Side != side {
				continue
			}
			if len(LegalMoves(b, Square{Row: r, Col: c})) > 0 {
				return true
			}
		}
	}
	return false
}
