package board

// knightDeltas and kingDeltas are file/rank offsets for leaping pieces.
var knightDeltas = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingDeltas = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var bishopDeltas = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDeltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// IsSquareAttacked reports whether sq is attacked by any piece of color
// attacker, checking knight jumps, pawn diagonals, sliding rook/bishop/queen
// rays, and the adjacent king in turn (spec §4.3).
func (b *Board) IsSquareAttacked(sq Square, attacker Color) bool {
	f, r := sq.File(), sq.Rank()

	for _, d := range knightDeltas {
		if nf, nr := f+d[0], r+d[1]; onBoard(nf, nr) {
			p := b.Squares[NewSquare(nf, nr)]
			if p.Type() == Knight && p.Color() == attacker {
				return true
			}
		}
	}

	pawnRankDir := -1 // a white pawn attacking sq sits one rank below it
	if attacker == Black {
		pawnRankDir = 1 // a black pawn attacking sq sits one rank above it
	}
	for _, df := range [2]int{-1, 1} {
		if nf, nr := f+df, r+pawnRankDir; onBoard(nf, nr) {
			p := b.Squares[NewSquare(nf, nr)]
			if p.Type() == Pawn && p.Color() == attacker {
				return true
			}
		}
	}

	for _, d := range rookDeltas {
		if b.rayHits(f, r, d[0], d[1], attacker, Rook, Queen) {
			return true
		}
	}
	for _, d := range bishopDeltas {
		if b.rayHits(f, r, d[0], d[1], attacker, Bishop, Queen) {
			return true
		}
	}

	for _, d := range kingDeltas {
		if nf, nr := f+d[0], r+d[1]; onBoard(nf, nr) {
			p := b.Squares[NewSquare(nf, nr)]
			if p.Type() == King && p.Color() == attacker {
				return true
			}
		}
	}

	return false
}

// rayHits walks from (f,r) in direction (df,dr), stopping at the first
// occupied square, and reports whether that square holds an attacker piece
// of type want1 or want2.
func (b *Board) rayHits(f, r, df, dr int, attacker Color, want1, want2 PieceType) bool {
	nf, nr := f+df, r+dr
	for onBoard(nf, nr) {
		p := b.Squares[NewSquare(nf, nr)]
		if p != NoPiece {
			if p.Color() == attacker && (p.Type() == want1 || p.Type() == want2) {
				return true
			}
			return false
		}
		nf += df
		nr += dr
	}
	return false
}

func onBoard(f, r int) bool {
	return f >= 0 && f < 8 && r >= 0 && r < 8
}
