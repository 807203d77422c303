package board

import "log"

// DebugMoveValidation enables the king-position-cache sanity check inside
// GeneratePseudoLegalMoves, off by default, toggled by the protocol layer's
// "setoption name Debug value true".
var DebugMoveValidation bool

// GeneratePseudoLegalMoves appends every pseudo-legal move for the side to
// move into ml: moves that obey piece movement rules but may leave the
// mover's own king in check (spec §4.4). Castling legality (path clear,
// squares not attacked) is still enforced here; only the "does this leave
// my king in check" test is deferred.
func (b *Board) GeneratePseudoLegalMoves(ml *MoveList) {
	ml.Clear()
	us := b.ActiveColor
	if DebugMoveValidation {
		sq := b.kingPos(us)
		if b.Squares[sq].Type() != King || b.Squares[sq].Color() != us {
			log.Printf("MOVEGEN FATAL: %v king cache points to %v, holds %v", us, sq, b.Squares[sq])
		}
	}
	for sq := Square(0); sq < 64; sq++ {
		p := b.Squares[sq]
		if p == NoPiece || p.Color() != us {
			continue
		}
		switch p.Type() {
		case Pawn:
			b.generatePawnMoves(ml, sq, p)
		case Knight:
			b.generateLeaperMoves(ml, sq, p, knightDeltas)
		case Bishop:
			b.generateSliderMoves(ml, sq, p, bishopDeltas)
		case Rook:
			b.generateSliderMoves(ml, sq, p, rookDeltas)
		case Queen:
			b.generateSliderMoves(ml, sq, p, bishopDeltas)
			b.generateSliderMoves(ml, sq, p, rookDeltas)
		case King:
			b.generateLeaperMoves(ml, sq, p, kingDeltas)
			b.generateCastlingMoves(ml, us)
		}
	}
}

// GenerateLegalMoves generates pseudo-legal moves and filters out any that
// leave the mover's own king attacked, via make/check/undo (spec §4.4, the
// deferred-legality design chosen over eager pin tracking).
func (b *Board) GenerateLegalMoves(ml *MoveList) {
	var pseudo MoveList
	b.GeneratePseudoLegalMoves(&pseudo)
	ml.Clear()

	us := b.ActiveColor
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		b.MakeMove(m)
		attacked := b.IsSquareAttacked(b.kingPos(us), us.Other())
		b.UndoMove()
		if !attacked {
			ml.Add(m)
		}
	}
}

// GenerateCaptures produces only capturing and promoting moves, the set
// quiescence search considers (spec §4.7).
func (b *Board) GenerateCaptures(ml *MoveList) {
	var pseudo MoveList
	b.GeneratePseudoLegalMoves(&pseudo)
	ml.Clear()

	us := b.ActiveColor
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if m.Captured == NoPiece && m.Promotion == NoPieceType {
			continue
		}
		b.MakeMove(m)
		attacked := b.IsSquareAttacked(b.kingPos(us), us.Other())
		b.UndoMove()
		if !attacked {
			ml.Add(m)
		}
	}
}

func (b *Board) generateLeaperMoves(ml *MoveList, from Square, p Piece, deltas [8][2]int) {
	f, r := from.File(), from.Rank()
	for _, d := range deltas {
		nf, nr := f+d[0], r+d[1]
		if !onBoard(nf, nr) {
			continue
		}
		to := NewSquare(nf, nr)
		target := b.Squares[to]
		if target != NoPiece && target.Color() == p.Color() {
			continue
		}
		ml.Add(Move{From: from, To: to, Captured: target, Moved: p})
	}
}

func (b *Board) generateSliderMoves(ml *MoveList, from Square, p Piece, deltas [4][2]int) {
	f, r := from.File(), from.Rank()
	for _, d := range deltas {
		nf, nr := f+d[0], r+d[1]
		for onBoard(nf, nr) {
			to := NewSquare(nf, nr)
			target := b.Squares[to]
			if target != NoPiece && target.Color() == p.Color() {
				break
			}
			ml.Add(Move{From: from, To: to, Captured: target, Moved: p})
			if target != NoPiece {
				break
			}
			nf += d[0]
			nr += d[1]
		}
	}
}

var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

func (b *Board) generatePawnMoves(ml *MoveList, from Square, p Piece) {
	us := p.Color()
	f, r := from.File(), from.Rank()
	dir := 1
	startRank, promoRank := 1, 7
	if us == Black {
		dir = -1
		startRank, promoRank = 6, 0
	}

	if onBoard(f, r+dir) {
		to := NewSquare(f, r+dir)
		if b.Squares[to] == NoPiece {
			b.addPawnMove(ml, from, to, p, NoPiece, promoRank)
			if r == startRank {
				to2 := NewSquare(f, r+2*dir)
				if b.Squares[to2] == NoPiece {
					ml.Add(Move{From: from, To: to2, Moved: p})
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		nf, nr := f+df, r+dir
		if !onBoard(nf, nr) {
			continue
		}
		to := NewSquare(nf, nr)
		target := b.Squares[to]
		if target != NoPiece && target.Color() != us {
			b.addPawnMove(ml, from, to, p, target, promoRank)
		} else if target == NoPiece && to == b.EnPassantIndex && b.EnPassantIndex.IsValid() {
			victim := NewPiece(us.Other(), Pawn)
			ml.Add(Move{From: from, To: to, Moved: p, Captured: victim})
		}
	}
}

func (b *Board) addPawnMove(ml *MoveList, from, to Square, p Piece, captured Piece, promoRank int) {
	if to.Rank() == promoRank {
		for _, pt := range promotionPieces {
			ml.Add(Move{From: from, To: to, Moved: p, Captured: captured, Promotion: pt})
		}
		return
	}
	ml.Add(Move{From: from, To: to, Moved: p, Captured: captured})
}

// generateCastlingMoves appends kingside/queenside castling moves for us if
// the corresponding right is held, the squares between king and rook are
// empty, and the king does not pass through or land on an attacked square
// (spec §4.2, §4.4).
func (b *Board) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	if us == White {
		king := b.Squares[E1]
		if king.Type() != King {
			return
		}
		if b.CastlingRights&WhiteKingSide != 0 &&
			b.Squares[5] == NoPiece && b.Squares[6] == NoPiece &&
			!b.IsSquareAttacked(E1, them) && !b.IsSquareAttacked(5, them) && !b.IsSquareAttacked(6, them) {
			ml.Add(Move{From: E1, To: 6, Moved: king})
		}
		if b.CastlingRights&WhiteQueenSide != 0 &&
			b.Squares[1] == NoPiece && b.Squares[2] == NoPiece && b.Squares[3] == NoPiece &&
			!b.IsSquareAttacked(E1, them) && !b.IsSquareAttacked(3, them) && !b.IsSquareAttacked(2, them) {
			ml.Add(Move{From: E1, To: 2, Moved: king})
		}
		return
	}

	king := b.Squares[E8]
	if king.Type() != King {
		return
	}
	if b.CastlingRights&BlackKingSide != 0 &&
		b.Squares[61] == NoPiece && b.Squares[62] == NoPiece &&
		!b.IsSquareAttacked(E8, them) && !b.IsSquareAttacked(61, them) && !b.IsSquareAttacked(62, them) {
		ml.Add(Move{From: E8, To: 62, Moved: king})
	}
	if b.CastlingRights&BlackQueenSide != 0 &&
		b.Squares[57] == NoPiece && b.Squares[58] == NoPiece && b.Squares[59] == NoPiece &&
		!b.IsSquareAttacked(E8, them) && !b.IsSquareAttacked(59, them) && !b.IsSquareAttacked(58, them) {
		ml.Add(Move{From: E8, To: 58, Moved: king})
	}
}
