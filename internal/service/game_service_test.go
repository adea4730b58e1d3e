package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/benbeisheim/greedychess-backend/internal/chess"
	"github.com/benbeisheim/greedychess-backend/internal/model"
)

func newTestService(t *testing.T) (*GameService, *GameManager) {
	t.Helper()
	n := 0
	gm := NewGameManager(ManagerOptions{
		AgentSide: chess.Black,
		Logger:    log.New(io.Discard),
		NewID: func() string {
			n++
			return fmt.Sprintf("game-%d", n)
		},
	})
	return NewGameService(gm), gm
}

func sq(r, c int) chess.Square {
	return chess.Square{Row: r, Col: c}
}

func TestCreateGame(t *testing.T) {
	gs, gm := newTestService(t)

	tests := []struct {
		name      string
		mode      string
		fen       string
		wantID    string
		wantColor model.PlayerColor
		wantErr   error
	}{
		{"default mode", "", "", "game-1", model.PlayerColorWhite, nil},
		{"agent mode", "agent", "", "game-2", model.PlayerColorWhite, nil},
		{"from FEN", "twoPlayer", "4k3/8/8/8/8/8/8/R3K3 b - - 0 1", "game-3", model.PlayerColorWhite, nil},
		{"bad mode", "chaos", "", "", "", model.ErrInvalidMode},
		{"bad FEN", "", "not a fen", "", "", chess.ErrInvalidFEN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, color, err := gs.CreateGame("creator", tt.mode, tt.fen)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateGame() error = %v, want %v", err, tt.wantErr)
			}
			if id != tt.wantID || color != tt.wantColor {
				t.Errorf("CreateGame() = %q, %q; want %q, %q", id, color, tt.wantID, tt.wantColor)
			}
		})
	}
	if n := gm.GameCount(); n != 3 {
		t.Errorf("GameCount() = %d, want 3", n)
	}

	v, err := gs.GetGameView("game-3")
	if err != nil {
		t.Fatal(err)
	}
	if v.ToMove != chess.Black {
		t.Errorf("FEN game ToMove = %s, want black", v.ToMove)
	}
}

func TestUnknownGame(t *testing.T) {
	gs, _ := newTestService(t)

	if _, err := gs.JoinGame("missing", "p1"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("JoinGame error = %v, want ErrGameNotFound", err)
	}
	if _, err := gs.GetGameView("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGameView error = %v, want ErrGameNotFound", err)
	}
	if _, err := gs.HandleMove("missing", "p1", model.WSMove{}); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("HandleMove error = %v, want ErrGameNotFound", err)
	}
	if _, err := gs.Suggest("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Suggest error = %v, want ErrGameNotFound", err)
	}
	if _, err := gs.LegalMoves("missing", sq(6, 4)); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LegalMoves error = %v, want ErrGameNotFound", err)
	}
	if _, err := gs.Reset("missing", "p1"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Reset error = %v, want ErrGameNotFound", err)
	}
}

func TestTwoPlayerFlow(t *testing.T) {
	gs, _ := newTestService(t)

	id, _, err := gs.CreateGame("alice", "twoPlayer", "")
	if err != nil {
		t.Fatal(err)
	}
	if color, err := gs.JoinGame(id, "bob"); err != nil || color != model.PlayerColorBlack {
		t.Fatalf("JoinGame(bob) = %q, %v; want black", color, err)
	}

	moves, err := gs.LegalMoves(id, sq(6, 4))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]chess.Square{sq(5, 4), sq(4, 4)}, moves); diff != "" {
		t.Errorf("LegalMoves(e2) mismatch (-want +got):\n%s", diff)
	}

	v, err := gs.HandleMove(id, "alice", model.WSMove{From: sq(6, 4), To: sq(4, 4)})
	if err != nil {
		t.Fatalf("HandleMove(alice e2e4) error: %v", err)
	}
	if v.ToMove != chess.Black || len(v.MoveHistory) != 1 {
		t.Errorf("after e2e4 ToMove = %s with %d plies", v.ToMove, len(v.MoveHistory))
	}
	if _, err := gs.HandleMove(id, "alice", model.WSMove{From: sq(6, 3), To: sq(4, 3)}); !errors.Is(err, chess.ErrNotYourTurn) {
		t.Errorf("second white move error = %v, want ErrNotYourTurn", err)
	}

	v, err = gs.Reset(id, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if v.Board != chess.InitialBoard() {
		t.Error("Reset did not restore the starting position")
	}
}

func TestAgentFlow(t *testing.T) {
	gs, _ := newTestService(t)

	id, color, err := gs.CreateGame("solo", "agent", "")
	if err != nil || color != model.PlayerColorWhite {
		t.Fatalf("CreateGame(agent) = %q, %v", color, err)
	}

	suggestion, err := gs.Suggest(id)
	if err != nil {
		t.Fatal(err)
	}
	if want := (chess.Move{From: sq(6, 0), To: sq(5, 0)}); suggestion != want {
		t.Errorf("Suggest() = %s, want %s", suggestion, want)
	}

	v, err := gs.HandleMove(id, "solo", model.WSMove{From: suggestion.From, To: suggestion.To})
	if err != nil {
		t.Fatal(err)
	}
	if v.ToMove != chess.White || len(v.MoveHistory) != 2 || !v.MoveHistory[1].ByAgent {
		t.Errorf("agent did not answer: ToMove = %s, history = %+v", v.ToMove, v.MoveHistory)
	}
}

func TestSuggestAfterMate(t *testing.T) {
	gs, _ := newTestService(t)
	id, _, err := gs.CreateGame("p", "", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 1 3")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gs.Suggest(id); !errors.Is(err, ErrNoMove) {
		t.Errorf("Suggest() error = %v, want ErrNoMove", err)
	}
}

func TestMatchmaking(t *testing.T) {
	gs, gm := newTestService(t)

	if got := gs.MatchmakingStatus("a"); got.Status != MatchStatusIdle {
		t.Errorf("status before joining = %s, want idle", got.Status)
	}
	for _, id := range []string{"a", "b", "c"} {
		if err := gs.JoinMatchmaking(id); err != nil {
			t.Fatalf("JoinMatchmaking(%q) error: %v", id, err)
		}
	}
	if err := gs.JoinMatchmaking("a"); !errors.Is(err, model.ErrAlreadyQueued) {
		t.Errorf("JoinMatchmaking(a) again error = %v, want ErrAlreadyQueued", err)
	}

	if n := gm.matchWaitingPlayers(); n != 1 {
		t.Fatalf("matchWaitingPlayers() = %d, want 1", n)
	}

	a, b := gs.MatchmakingStatus("a"), gs.MatchmakingStatus("b")
	want := MatchResult{Status: MatchStatusMatched, GameID: "game-1", Color: model.PlayerColorWhite}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("status(a) mismatch (-want +got):\n%s", diff)
	}
	if b.GameID != a.GameID || b.Color != model.PlayerColorBlack {
		t.Errorf("status(b) = %+v, want black in %s", b, a.GameID)
	}
	if got := gs.MatchmakingStatus("c"); got.Status != MatchStatusQueued {
		t.Errorf("status(c) = %s, want queued", got.Status)
	}

	if !gm.LeaveMatchmaking("c") {
		t.Error("LeaveMatchmaking(c) = false, want true")
	}
	if got := gs.MatchmakingStatus("c"); got.Status != MatchStatusIdle {
		t.Errorf("status(c) after leaving = %s, want idle", got.Status)
	}
}

func TestRunMatchmaking(t *testing.T) {
	gs, gm := newTestService(t)
	gs.JoinMatchmaking("a")
	gs.JoinMatchmaking("b")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		gm.RunMatchmaking(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for gs.MatchmakingStatus("a").Status != MatchStatusMatched {
		select {
		case <-deadline:
			t.Fatal("players were not matched")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunMatchmaking did not stop after cancel")
	}
}
