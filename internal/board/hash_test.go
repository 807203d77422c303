package board

import "testing"

// walkAndCheck recursively applies every legal move to depth, verifying the
// hash-consistency and king-cache invariants (spec §8.1, §8.4) at every
// node, then undoes and checks that undo restored the position exactly
// (spec §8.2).
func walkAndCheck(t *testing.T, b *Board, depth int) {
	t.Helper()
	if b.ZobristHash != b.CalculateHash() {
		t.Fatalf("hash mismatch: incremental=%d recalculated=%d", b.ZobristHash, b.CalculateHash())
	}
	if b.PieceAt(b.WhiteKingPos).Type() != King || b.PieceAt(b.WhiteKingPos).Color() != White {
		t.Fatalf("white king cache points to %v, holds %v", b.WhiteKingPos, b.PieceAt(b.WhiteKingPos))
	}
	if b.PieceAt(b.BlackKingPos).Type() != King || b.PieceAt(b.BlackKingPos).Color() != Black {
		t.Fatalf("black king cache points to %v, holds %v", b.BlackKingPos, b.PieceAt(b.BlackKingPos))
	}
	if depth == 0 {
		return
	}

	var ml MoveList
	b.GenerateLegalMoves(&ml)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		before := *b
		b.MakeMove(m)
		walkAndCheck(t, b, depth-1)
		b.UndoMove()
		if b.ZobristHash != before.ZobristHash {
			t.Fatalf("undo did not restore hash for move %s", m)
		}
		if b.Squares != before.Squares {
			t.Fatalf("undo did not restore squares for move %s", m)
		}
		if b.CastlingRights != before.CastlingRights || b.EnPassantIndex != before.EnPassantIndex ||
			b.HalfMoveClock != before.HalfMoveClock || b.ActiveColor != before.ActiveColor {
			t.Fatalf("undo did not restore state for move %s", m)
		}
	}
}

func TestUndoReversibilityFromStartPos(t *testing.T) {
	b := NewBoard()
	walkAndCheck(t, b, 3)
}

func TestUndoReversibilityKiwipete(t *testing.T) {
	b := &Board{}
	b.SetFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	walkAndCheck(t, b, 2)
}

func TestNullMoveReversibility(t *testing.T) {
	b := NewBoard()
	before := *b
	b.MakeNullMove()
	if b.ZobristHash != b.CalculateHash() {
		t.Fatalf("null move broke hash consistency")
	}
	if b.ActiveColor == before.ActiveColor {
		t.Fatalf("null move did not flip side to move")
	}
	b.UndoNullMove()
	if b.ZobristHash != before.ZobristHash || b.ActiveColor != before.ActiveColor ||
		b.EnPassantIndex != before.EnPassantIndex || b.CastlingRights != before.CastlingRights {
		t.Fatalf("undo null move did not restore state")
	}
}

func TestLegalMoveCompletenessMatchesPseudoLegalFilter(t *testing.T) {
	b := &Board{}
	b.SetFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	var legal, pseudo MoveList
	b.GenerateLegalMoves(&legal)
	b.GeneratePseudoLegalMoves(&pseudo)

	us := b.ActiveColor
	var expected MoveList
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		b.MakeMove(m)
		attacked := b.IsSquareAttacked(func() Square {
			if us == White {
				return b.WhiteKingPos
			}
			return b.BlackKingPos
		}(), us.Other())
		b.UndoMove()
		if !attacked {
			expected.Add(m)
		}
	}

	if legal.Len() != expected.Len() {
		t.Fatalf("legal move count = %d, want %d", legal.Len(), expected.Len())
	}
	for i := 0; i < expected.Len(); i++ {
		if !legal.Contains(expected.Get(i)) {
			t.Errorf("legal moves missing %s", expected.Get(i))
		}
	}
}
