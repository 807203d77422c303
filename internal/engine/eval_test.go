package engine

import (
	"testing"

	"github.com/arvidsson/chesscore/internal/board"
)

// mirrorColors returns a copy of b with every piece's color swapped and the
// side to move unchanged, used to check evaluation symmetry (spec §8.6).
func mirrorColors(b *board.Board) *board.Board {
	mirrored := &board.Board{}
	*mirrored = *b
	for sq := board.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		other := board.NoColor
		if p.Color() == board.White {
			other = board.Black
		} else {
			other = board.White
		}
		mirrored.Squares[sq] = board.NewPiece(other, p.Type())
	}
	return mirrored
}

func TestEvaluateSymmetryWithoutPST(t *testing.T) {
	savedPST := [6]*[64]int{&pawnPST, &knightPST, &bishopPST, &rookPST, &queenPST, &kingPST}
	var zeroed [6][64]int
	for i, pst := range savedPST {
		zeroed[i] = *pst
		for j := range pst {
			pst[j] = 0
		}
	}
	defer func() {
		for i, pst := range savedPST {
			*pst = zeroed[i]
		}
	}()

	b := &board.Board{}
	b.SetFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	mirrored := mirrorColors(b)

	if Evaluate(b) != -Evaluate(mirrored) {
		t.Errorf("Evaluate(b) = %d, want %d (= -Evaluate(mirror))", Evaluate(b), -Evaluate(mirrored))
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	b := &board.Board{}
	b.SetFromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if Evaluate(b) <= 0 {
		t.Errorf("Evaluate() = %d, want positive (white has an extra rook and is to move)", Evaluate(b))
	}
}
