package chess

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// equateEmpty treats nil and empty move lists as equal.
var equateEmpty = cmpopts.EquateEmpty()

func sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

func wp(k Kind) Piece { return Piece{Kind: k, Side: White} }
func bp(k Kind) Piece { return Piece{Kind: k, Side: Black} }

// boardOf builds a board holding exactly the given pieces.
func boardOf(pieces map[Square]Piece) Board {
	b := EmptyBoard()
	for at, p := range pieces {
		b.Set(at, p)
	}
	return b
}

func mustParseFEN(t *testing.T, fen string) GameState {
	t.Helper()
	s, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return s
}

// playAll applies moves in order and fails the test on the first rejection.
func playAll(t *testing.T, s GameState, moves ...Move) GameState {
	t.Helper()
	for i, m := range moves {
		var err error
		s, err = ApplySelectedMove(s, m)
		if err != nil {
			t.Fatalf("move %d (%s): %v", i+1, m, err)
		}
	}
	return s
}

func mv(fr, fc, tr, tc int) Move {
	return Move{From: sq(fr, fc), To: sq(tr, tc)}
}
