package chess

import "math"

// safeSquareBonus is added when the moved piece cannot be taken on its
// destination.
const safeSquareBonus = 0.5

// PieceValue returns the material value the evaluator uses for captures.
func PieceValue(k Kind) float64 {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 100
	}
	return 0
}

// ChooseMove picks a move for side by a one-ply greedy score: the value of
// the captured piece, read from the board before the move, plus a bonus if the
// destination is not attacked by the opponent after the move. Pieces are
// scanned in row-major order and the first move with the highest score wins.
// It returns false if side has no legal move.
func ChooseMove(b Board, side Side) (Move, bool) {
	var (
		best      Move
		bestScore = math.Inf(-1)
		found     bool
	)
	for r := range 8 {
		for c := range 8 {
			if p := b[r][c]; p.IsZero() || p.Side != side {
				continue
			}
			from := Square{Row: r, Col: c}
			for _, to := range LegalMoves(b, from) {
				m := Move{From: from, To: to}
				if score := scoreMove(b, m, side); score > bestScore {
					best, bestScore, found = m, score, true
				}
			}
		}
	}
	return best, found
}

func scoreMove(b Board, m Move, side Side) float64 {
	var score float64
	if target := b[m.To.Row][m.To.Col]; !target.IsZero() && target.Side != side {
		score += PieceValue(target.Kind)
	}
	if !IsSquareAttacked(ApplyMove(b, m), m.To, side.Opposite()) {
		score += safeSquareBonus
	}
	return score
}

// GreedyAgent plays ChooseMove.
type GreedyAgent struct{}

func (GreedyAgent) Name() string {
	return "greedy"
}

func (GreedyAgent) ChooseMove(b Board, side Side) (Move, bool) {
	return ChooseMove(b, side)
}
