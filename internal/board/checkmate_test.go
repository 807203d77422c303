package board

import "testing"

func TestCastlingScenario(t *testing.T) {
	b := &Board{}
	b.SetFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	var ml MoveList
	b.GenerateLegalMoves(&ml)

	kingSide, _ := ParseSquare("g1")
	queenSide, _ := ParseSquare("c1")
	e1, _ := ParseSquare("e1")
	found := map[Square]bool{}
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From == e1 {
			found[m.To] = true
		}
	}
	if !found[kingSide] {
		t.Error("e1g1 (kingside castle) not found among legal moves")
	}
	if !found[queenSide] {
		t.Error("e1c1 (queenside castle) not found among legal moves")
	}

	before := b.ToFEN()
	b.MakeMove(Move{From: e1, To: kingSide, Moved: NewPiece(White, King)})
	f1, _ := ParseSquare("f1")
	if b.PieceAt(f1).Type() != Rook || b.PieceAt(f1).Color() != White {
		t.Error("rook did not move to f1 after kingside castle")
	}
	if b.PieceAt(kingSide).Type() != King {
		t.Error("king did not land on g1 after kingside castle")
	}
	b.UndoMove()
	if got := b.ToFEN(); got != before {
		t.Errorf("undo castle: ToFEN() = %q, want %q", got, before)
	}
}

func TestEnPassantScenario(t *testing.T) {
	b := &Board{}
	b.SetFromFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	before := b.ToFEN()
	beforeHash := b.ZobristHash

	var ml MoveList
	b.GenerateLegalMoves(&ml)
	e5, _ := ParseSquare("e5")
	f6, _ := ParseSquare("f6")
	var epMove Move
	found := false
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From == e5 && m.To == f6 {
			epMove = m
			found = true
		}
	}
	if !found {
		t.Fatal("e5f6 en-passant capture not found among legal moves")
	}
	if epMove.Captured.Type() != Pawn || epMove.Captured.Color() != Black {
		t.Errorf("en-passant move captured = %v, want black pawn", epMove.Captured)
	}

	b.MakeMove(epMove)
	f5, _ := ParseSquare("f5")
	if b.PieceAt(f5) != NoPiece {
		t.Error("captured pawn still on f5 after en-passant capture")
	}
	b.UndoMove()

	if got := b.ToFEN(); got != before {
		t.Errorf("undo en-passant: ToFEN() = %q, want %q", got, before)
	}
	if b.ZobristHash != beforeHash {
		t.Error("undo en-passant did not restore hash")
	}
}

func TestMateInOneDetection(t *testing.T) {
	b := &Board{}
	b.SetFromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")

	a1, _ := ParseSquare("a1")
	a8, _ := ParseSquare("a8")

	var ml MoveList
	b.GenerateLegalMoves(&ml)
	var mate Move
	found := false
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From == a1 && m.To == a8 {
			mate = m
			found = true
		}
	}
	if !found {
		t.Fatal("a1a8 not found among legal moves")
	}

	b.MakeMove(mate)
	var reply MoveList
	b.GenerateLegalMoves(&reply)
	if reply.Len() != 0 {
		t.Errorf("after a1a8, opponent has %d legal moves, want 0 (mate)", reply.Len())
	}
	if !b.InCheck() {
		t.Error("after a1a8, opponent should be in check")
	}
	b.UndoMove()
}

func TestFiftyMoveHalfMoveClockParsedFromFEN(t *testing.T) {
	b := &Board{}
	b.SetFromFEN("8/8/8/4k3/8/4K3/8/8 w - - 100 50")
	if b.HalfMoveClock != 100 {
		t.Fatalf("half-move clock = %d, want 100", b.HalfMoveClock)
	}
}
