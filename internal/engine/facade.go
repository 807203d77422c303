package engine

import (
	"fmt"

	"github.com/arvidsson/chesscore/internal/board"
)

// Engine is the Core façade (spec §2 component #11): it owns a board and a
// transposition table and exposes the three core operations external
// collaborators (the protocol layer) call — load a position, apply a
// protocol move string, and run a search — plus NewGame, Perft and
// SetHashSizeMB for the protocol layer's game-reset, debug and option
// commands.
type Engine struct {
	Board    *board.Board
	tt       *TranspositionTable
	searcher *Searcher
}

// NewEngine builds an Engine with a transposition table sized ttSizeMB
// megabytes (0 selects the default).
func NewEngine(ttSizeMB int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	return &Engine{
		Board:    board.NewBoard(),
		tt:       tt,
		searcher: NewSearcher(tt),
	}
}

// SetStartPos resets the board to the standard starting position.
func (e *Engine) SetStartPos() {
	e.Board.SetFromFEN(board.StartFEN)
}

// SetFEN resets the board from a FEN string (spec §4.2's set_from_fen).
func (e *Engine) SetFEN(fen string) {
	e.Board.SetFromFEN(fen)
}

// ApplyProtocolMove parses a move string in the grammar
// [a-h][1-8][a-h][1-8][qrbn]? and, if it matches a currently legal move,
// applies it. It never applies a move outside the legal set (spec §4.4's
// legality filter, §7's "illegal protocol move string" error rule).
func (e *Engine) ApplyProtocolMove(moveStr string) error {
	if len(moveStr) < 4 {
		return fmt.Errorf("malformed move %q", moveStr)
	}
	from, err := board.ParseSquare(moveStr[0:2])
	if err != nil {
		return fmt.Errorf("malformed move %q: %w", moveStr, err)
	}
	to, err := board.ParseSquare(moveStr[2:4])
	if err != nil {
		return fmt.Errorf("malformed move %q: %w", moveStr, err)
	}
	promo := board.NoPieceType
	if len(moveStr) == 5 {
		switch moveStr[4] {
		case 'q':
			promo = board.Queen
		case 'r':
			promo = board.Rook
		case 'b':
			promo = board.Bishop
		case 'n':
			promo = board.Knight
		default:
			return fmt.Errorf("invalid promotion letter in %q", moveStr)
		}
	}

	var ml board.MoveList
	e.Board.GenerateLegalMoves(&ml)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From == from && m.To == to && m.Promotion == promo {
			e.Board.MakeMove(m)
			return nil
		}
	}
	return fmt.Errorf("illegal move %q", moveStr)
}

// NewGame clears the transposition table and resets the board, used when
// the protocol layer signals a fresh game.
func (e *Engine) NewGame() {
	e.tt.Clear()
	e.SetStartPos()
}

// Search runs a search under the given time budget (milliseconds, 0 for
// unbounded) and optional depth cap (0 for the default 64), polling
// shouldStop cooperatively, and returns the best move along with every
// per-depth report (spec §1's external contract, §4.7's root loop).
func (e *Engine) Search(budgetMs int64, maxDepth int, shouldStop func() bool, onReport func(SearchReport)) board.Move {
	return e.searcher.Search(e.Board, budgetMs, maxDepth, shouldStop, onReport)
}

// Perft counts leaf nodes reachable in exactly depth plies of legal moves
// from the current position, the standard move-generator correctness check
// (spec §8). It is exposed for the protocol layer's "perft" debug command.
func (e *Engine) Perft(depth int) int64 {
	return perft(e.Board, depth)
}

func perft(b *board.Board, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var ml board.MoveList
	b.GenerateLegalMoves(&ml)
	if depth == 1 {
		return int64(ml.Len())
	}
	var nodes int64
	for i := 0; i < ml.Len(); i++ {
		b.MakeMove(ml.Get(i))
		nodes += perft(b, depth-1)
		b.UndoMove()
	}
	return nodes
}

// SetHashSizeMB replaces the transposition table with a freshly sized one,
// used by the protocol layer's "setoption name Hash value N" handler.
func (e *Engine) SetHashSizeMB(sizeMB int) {
	e.tt = NewTranspositionTable(sizeMB)
	e.searcher = NewSearcher(e.tt)
}

// ScoreToMateDistance converts a raw negamax score into a UCI-style mate
// distance: a positive count means the side to move delivers mate in that
// many moves, negative means it is mated (spec §6's mate-score convention).
// ok is false when score is not a mate score.
func ScoreToMateDistance(score int) (moves int, ok bool) {
	if !IsMateScore(score) {
		return 0, false
	}
	if score > 0 {
		plies := MateValue - score
		return (plies + 1) / 2, true
	}
	plies := MateValue + score
	return -((plies + 1) / 2), true
}
