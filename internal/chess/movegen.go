package chess

type direction struct {
	dr, dc int
}

var (
	orthogonalDirs = []direction{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	diagonalDirs   = []direction{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	knightOffsets  = []direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets    = []direction{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// PseudoLegalMoves returns the destinations the piece on sq can reach by its
// movement rules alone, in generation order. Moves that expose the mover's
// king are included. An empty square yields no moves.
func PseudoLegalMoves(b Board, sq Square) []Square {
	p, ok := b.PieceAt(sq)
	if !ok {
		return nil
	}

	var moves []Square
	switch p.Kind {
	case Pawn:
		moves = pawnMoves(&b, sq, p.Side)
	case Knight:
		moves = stepMoves(&b, sq, p.Side, knightOffsets)
	case Bishop:
		moves = slideMoves(&b, sq, p.Side, diagonalDirs, nil)
	case Rook:
		moves = slideMoves(&b, sq, p.Side, orthogonalDirs, nil)
	case Queen:
		moves = slideMoves(&b, sq, p.Side, orthogonalDirs, nil)
		moves = slideMoves(&b, sq, p.Side, diagonalDirs, moves)
	case King:
		moves = stepMoves(&b, sq, p.Side, kingOffsets)
	}
	return moves
}

// LegalMoves returns the pseudo-legal moves of the piece on sq that do not
// leave its own king attacked.
func LegalMoves(b Board, sq Square) []Square {
	p, ok := b.PieceAt(sq)
	if !ok {
		return nil
	}

	var legal []Square
	for _, to := range PseudoLegalMoves(b, sq) {
		if !leavesKingInCheck(b, Move{From: sq, To: to}, p.Side) {
			legal = append(legal, to)
		}
	}
	return legal
}

// leavesKingInCheck plays m on a copy of b and reports whether side's king is
// attacked afterwards. A missing king counts as safe.
func leavesKingInCheck(b Board, m Move, side Side) bool {
	return IsKingInCheck(ApplyMove(b, m), side)
}

func pawnMoves(b *Board, sq Square, side Side) []Square {
	var moves []Square
	dir := side.forward()

	one := sq.offset(dir, 0)
	if one.Valid() && b[one.Row][one.Col].IsZero() {
		moves = append(moves, one)
	}
	if sq.Row == side.pawnRank() {
		two := sq.offset(2*dir, 0)
		if b[one.Row][one.Col].IsZero() && b[two.Row][two.Col].IsZero() {
			moves = append(moves, two)
		}
	}
	for _, dc := range []int{-1, 1} {
		diag := sq.offset(dir, dc)
		if diag.Valid() && isEnemy(b, diag, side) {
			moves = append(moves, diag)
		}
	}
	return moves
}

func stepMoves(b *Board, sq Square, side Side, offsets []direction) []Square {
	var moves []Square
	for _, d := range offsets {
		to := sq.offset(d.dr, d.dc)
		if to.Valid() && (b[to.Row][to.Col].IsZero() || isEnemy(b, to, side)) {
			moves = append(moves, to)
		}
	}
	return moves
}

func slideMoves(b *Board, sq Square, side Side, dirs []direction, moves []Square) []Square {
	for _, d := range dirs {
		for to := sq.offset(d.dr, d.dc); to.Valid(); to = to.offset(d.dr, d.dc) {
			if b[to.Row][to.Col].IsZero() {
				moves = append(moves, to)
				continue
			}
			if isEnemy(b, to, side) {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

func isEnemy(b *Board, sq Square, side Side) bool {
	p := b[sq.Row][sq.Col]
	return !p.IsZero() && p.Side != side
}
