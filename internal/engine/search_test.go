package engine

import (
	"testing"

	"github.com/arvidsson/chesscore/internal/board"
)

func TestSearchFindsMateInOne(t *testing.T) {
	e := NewEngine(1)
	e.SetFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")

	var lastReport SearchReport
	best := e.Search(0, 5, nil, func(r SearchReport) { lastReport = r })

	want, _ := board.ParseSquare("a1")
	wantTo, _ := board.ParseSquare("a8")
	if best.From != want || best.To != wantTo {
		t.Fatalf("best move = %s, want a1a8", best)
	}
	if moves, ok := ScoreToMateDistance(lastReport.Score); !ok || moves != 1 {
		t.Errorf("mate distance = %d (ok=%v), want 1", moves, ok)
	}
}

func TestSearchFiftyMoveDrawReportsZero(t *testing.T) {
	e := NewEngine(1)
	e.SetFEN("8/8/8/4k3/8/4K3/8/8 w - - 100 50")

	var lastReport SearchReport
	e.Search(0, 2, nil, func(r SearchReport) { lastReport = r })

	if moves, ok := ScoreToMateDistance(lastReport.Score); ok {
		t.Errorf("reported a mate (%d), want cp 0 at fifty-move limit", moves)
	}
	if lastReport.Score != 0 {
		t.Errorf("reported score %d, want cp 0 at fifty-move limit", lastReport.Score)
	}
}

func TestSearchMonotonicAtFixedDepth(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"

	run := func() int {
		e := NewEngine(1)
		e.SetFEN(fen)
		var score int
		e.Search(0, 3, nil, func(r SearchReport) { score = r.Score })
		return score
	}

	first := run()
	second := run()
	if first != second {
		t.Errorf("search is not deterministic at fixed depth: %d != %d", first, second)
	}
}

func TestSearchAfterReversibleRepetitionStillSearchesRoot(t *testing.T) {
	e := NewEngine(1)
	e.SetStartPos()
	for _, mv := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		if err := e.ApplyProtocolMove(mv); err != nil {
			t.Fatalf("ApplyProtocolMove(%q) failed: %v", mv, err)
		}
	}

	fresh := board.NewBoard()
	if e.Board.ZobristHash != fresh.ZobristHash {
		t.Fatalf("shuffle sequence did not return to the starting position's hash")
	}
	if e.Board.HistoryLen() != 4 {
		t.Fatalf("expected 4 history frames after the shuffle, got %d", e.Board.HistoryLen())
	}

	var lastReport SearchReport
	best := e.Search(0, 4, nil, func(r SearchReport) { lastReport = r })

	// The position already recurred once (ply 0 of this search), so
	// isRepetition will fire for branches deeper in the tree that shuffle
	// back to it again — but the root itself has full freedom to pick any
	// move, and must not be shortcut into reporting a forced draw just
	// because its hash is already in the pre-search history.
	var ml board.MoveList
	e.Board.GenerateLegalMoves(&ml)
	if best.IsNone() {
		t.Fatal("Search returned no move for a position already seen once in history")
	}
	if !ml.Contains(best) {
		t.Fatalf("Search returned %s, not a currently legal move", best)
	}
	if lastReport.Depth != 4 {
		t.Errorf("search did not complete the requested depth, got %d", lastReport.Depth)
	}
	if moves, ok := ScoreToMateDistance(lastReport.Score); ok {
		t.Errorf("unexpected mate score (%d) from the starting position", moves)
	}
}

func TestApplyProtocolMoveRejectsIllegal(t *testing.T) {
	e := NewEngine(1)
	e.SetStartPos()
	if err := e.ApplyProtocolMove("e2e5"); err == nil {
		t.Error("ApplyProtocolMove accepted an illegal move")
	}
	if err := e.ApplyProtocolMove("e2e4"); err != nil {
		t.Errorf("ApplyProtocolMove rejected a legal move: %v", err)
	}
}
