package engine

import (
	"time"

	"github.com/arvidsson/chesscore/internal/board"
)

// nodeCheckInterval is how often (in evaluated nodes) the search polls the
// stop condition (spec §4.7 step 1, §5).
const nodeCheckInterval = 512

// maxSearchPly caps recursion to break pathological lines (spec §4.7 step 2).
const maxSearchPly = 100

// SearchReport is emitted once per completed iterative-deepening depth
// (spec §6's "info" line).
type SearchReport struct {
	Depth     int
	Score     int
	Nodes     uint64
	ElapsedMs int64
	PV        []board.Move
}

// Searcher runs iterative-deepening negamax search over a board it does
// not own; the caller (the façade) owns the board and its lifetime (spec
// §9: "the board is the single source of truth mutated only by the search
// thread").
type Searcher struct {
	tt      *TranspositionTable
	orderer *MoveOrderer

	nodes     uint64
	startTime time.Time
	timeLimit time.Duration
	noLimit   bool
	shouldStop func() bool
	stopped   bool
}

// NewSearcher builds a searcher backed by tt, which may be reused across
// calls to Search (spec §5: "the transposition table survives across
// get_best_move invocations").
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
	}
}

// Search runs iterative deepening up to maxDepth (0 means the default of
// 64) or until budgetMs elapses or shouldStop returns true, reporting one
// SearchReport per completed depth via onReport. It returns the best move
// found at the last depth that completed (spec §4.7's root loop, §5's
// cancellation semantics).
func (s *Searcher) Search(b *board.Board, budgetMs int64, maxDepth int, shouldStop func() bool, onReport func(SearchReport)) board.Move {
	s.orderer.Clear()
	s.nodes = 0
	s.stopped = false
	s.startTime = time.Now()
	s.shouldStop = shouldStop
	if budgetMs <= 0 {
		s.noLimit = true
	} else {
		s.noLimit = false
		s.timeLimit = time.Duration(budgetMs) * time.Millisecond
	}
	if maxDepth <= 0 {
		maxDepth = 64
	}

	var bestMove board.Move
	var ml board.MoveList
	b.GenerateLegalMoves(&ml)
	if ml.Len() == 0 {
		if onReport != nil {
			onReport(SearchReport{Depth: 0, Score: 0, Nodes: 0, ElapsedMs: s.elapsedMs()})
		}
		return board.NoMove
	}
	bestMove = ml.Get(0)

	for depth := 1; depth <= maxDepth; depth++ {
		score, move, completed := s.searchRoot(b, depth, &ml)
		if !completed {
			break
		}
		bestMove = move
		if onReport != nil {
			onReport(SearchReport{
				Depth:     depth,
				Score:     score,
				Nodes:     s.nodes,
				ElapsedMs: s.elapsedMs(),
				PV:        s.extractPV(b, depth),
			})
		}
		if s.checkStop() {
			break
		}
	}
	return bestMove
}

func (s *Searcher) elapsedMs() int64 {
	return time.Since(s.startTime).Milliseconds()
}

// checkStop polls the time budget and the external predicate (spec §4.7
// step 1, §5).
func (s *Searcher) checkStop() bool {
	if s.stopped {
		return true
	}
	if !s.noLimit && time.Since(s.startTime) >= s.timeLimit {
		s.stopped = true
		return true
	}
	if s.shouldStop != nil && s.shouldStop() {
		s.stopped = true
		return true
	}
	return false
}

// searchRoot searches every legal root move at depth and returns the best
// score/move. completed is false if the search was aborted mid-iteration,
// in which case the caller must discard this depth's result.
func (s *Searcher) searchRoot(b *board.Board, depth int, ml *board.MoveList) (score int, move board.Move, completed bool) {
	ttMove := board.NoMove
	if entry, ok := s.tt.Probe(b.ZobristHash); ok {
		ttMove = entry.BestMove
	}
	OrderMoves(ml, s.orderer, ttMove, 0)

	alpha, beta := -Infinity, Infinity
	best := -Infinity
	bestMove := ml.Get(0)

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		b.MakeMove(m)
		val := -s.negamax(b, depth-1, 1, -beta, -alpha)
		b.UndoMove()

		if s.stopped {
			return 0, board.NoMove, false
		}
		if val > best {
			best = val
			bestMove = m
		}
		if val > alpha {
			alpha = val
		}
	}

	flag := TTExact
	s.tt.Store(b.ZobristHash, depth, AdjustScoreToTT(best, 0), flag, bestMove)
	return best, bestMove, true
}

// negamax implements spec §4.7's core recursion.
func (s *Searcher) negamax(b *board.Board, depth, ply, alpha, beta int) int {
	s.nodes++
	if s.nodes%nodeCheckInterval == 0 && s.checkStop() {
		return 0
	}
	if ply >= maxSearchPly {
		return Evaluate(b)
	}

	if ply > 0 {
		if b.HalfMoveClock >= 100 {
			return 0
		}
		if s.isRepetition(b) {
			return 0
		}
	}

	origAlpha := alpha
	ttMove := board.NoMove
	if entry, ok := s.tt.Probe(b.ZobristHash); ok {
		ttMove = entry.BestMove
		if entry.Depth >= depth {
			score := AdjustScoreFromTT(entry.Score, ply)
			switch entry.Flag {
			case TTExact:
				return score
			case TTBeta:
				if score >= beta {
					return score
				}
				if score > alpha {
					alpha = score
				}
			case TTAlpha:
				if score <= alpha {
					return score
				}
				if score < beta {
					beta = score
				}
			}
		}
	}

	if depth <= 0 {
		return s.quiesce(b, alpha, beta, ply)
	}

	inCheck := b.InCheck()

	// Null-move pruning (spec §4.7 step 6).
	if depth >= 3 && ply > 0 && !inCheck && !IsMateScore(beta) && b.HasNonPawnMaterial() {
		r := 2 + depth/6
		b.MakeNullMove()
		score := -s.negamax(b, depth-1-r, ply+1, -beta, -beta+1)
		b.UndoNullMove()
		if s.stopped {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	var ml board.MoveList
	b.GeneratePseudoLegalMoves(&ml)
	OrderMoves(&ml, s.orderer, ttMove, ply)

	legalMoves := 0
	best := -Infinity
	bestMove := board.NoMove

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		b.MakeMove(m)
		if b.IsSquareAttacked(kingSquareOfMover(b, m), b.ActiveColor) {
			b.UndoMove()
			continue
		}
		legalMoves++

		givesCheck := b.InCheck()
		extension := 0
		if givesCheck && !b.IsSquareAttacked(m.To, b.ActiveColor) {
			extension = 1
		}

		reduction := 0
		isQuiet := m.Captured == board.NoPiece && m.Promotion == board.NoPieceType
		_, isKiller := s.orderer.isKiller(ply, m)
		if i >= 3 && !inCheck && isQuiet && !isKiller && extension == 0 {
			reduction = 1 + depth/4 + i/8
			if depth-reduction < 1 {
				reduction = depth - 1
			}
		}

		var score int
		if reduction > 0 {
			score = -s.negamax(b, depth-1+extension-reduction, ply+1, -alpha-1, -alpha)
			if score > alpha {
				score = -s.negamax(b, depth-1+extension, ply+1, -beta, -alpha)
			}
		} else {
			score = -s.negamax(b, depth-1+extension, ply+1, -beta, -alpha)
		}
		b.UndoMove()

		if s.stopped {
			return 0
		}

		if score > best {
			best = score
			bestMove = m
		}
		if score >= beta {
			if isQuiet {
				s.orderer.RecordKiller(ply, m)
			}
			s.tt.Store(b.ZobristHash, depth, AdjustScoreToTT(score, ply), TTBeta, m)
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	if legalMoves == 0 {
		if inCheck {
			return -MateValue + ply
		}
		return 0
	}

	flag := TTAlpha
	if alpha > origAlpha {
		flag = TTExact
	}
	s.tt.Store(b.ZobristHash, depth, AdjustScoreToTT(best, ply), flag, bestMove)
	return best
}

// kingSquareOfMover returns the square of the king belonging to whichever
// side just moved (the side that is no longer to move).
func kingSquareOfMover(b *board.Board, m board.Move) board.Square {
	mover := m.Moved.Color()
	if mover == board.White {
		return b.WhiteKingPos
	}
	return b.BlackKingPos
}

// quiesce implements the stand-pat + captures-only extension (spec §4.7).
func (s *Searcher) quiesce(b *board.Board, alpha, beta, ply int) int {
	s.nodes++
	if s.nodes%nodeCheckInterval == 0 && s.checkStop() {
		return 0
	}
	if ply >= maxSearchPly {
		return Evaluate(b)
	}

	standPat := Evaluate(b)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var ml board.MoveList
	b.GenerateCaptures(&ml)
	OrderMoves(&ml, s.orderer, board.NoMove, -1)

	legalMoves := 0
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		b.MakeMove(m)
		if b.IsSquareAttacked(kingSquareOfMover(b, m), b.ActiveColor) {
			b.UndoMove()
			continue
		}
		legalMoves++
		score := -s.quiesce(b, -beta, -alpha, ply+1)
		b.UndoMove()

		if s.stopped {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	if legalMoves == 0 {
		// ml only held captures/promotions, so zero of those doesn't mean
		// no legal move exists at all; check the full legal move list
		// before deciding this is mate, stalemate, or just a quiet leaf.
		var fullML board.MoveList
		b.GenerateLegalMoves(&fullML)
		if fullML.Len() == 0 {
			if b.InCheck() {
				return -MateValue + ply
			}
			return 0
		}
	}

	return alpha
}

// isRepetition scans the undo stack two plies at a time (matching sides to
// move) back to the start of the current fifty-move window (spec §4.7
// step 3).
func (s *Searcher) isRepetition(b *board.Board) bool {
	n := b.HistoryLen()
	limit := n - b.HalfMoveClock
	if limit < 0 {
		limit = 0
	}
	for i := n - 2; i >= limit; i -= 2 {
		if b.HashAt(i) == b.ZobristHash {
			return true
		}
	}
	return false
}

// extractPV walks the TT from the current position, following best moves
// up to maxLen plies (spec §4.7's "Principal variation extraction").
func (s *Searcher) extractPV(b *board.Board, maxLen int) []board.Move {
	pv := make([]board.Move, 0, maxLen)
	applied := 0
	for i := 0; i < maxLen; i++ {
		if b.InCheck() {
			break
		}
		entry, ok := s.tt.Probe(b.ZobristHash)
		if !ok || entry.BestMove.IsNone() {
			break
		}
		m := entry.BestMove
		if m.From == m.To {
			break
		}
		var ml board.MoveList
		b.GenerateLegalMoves(&ml)
		if !ml.Contains(m) {
			break
		}
		b.MakeMove(m)
		applied++
		pv = append(pv, m)
	}
	for i := 0; i < applied; i++ {
		b.UndoMove()
	}
	return pv
}
