package engine

import "github.com/arvidsson/chesscore/internal/board"

// Move-ordering score bands, highest first (spec §4.7).
const (
	ttMoveScore      = 2_000_000
	captureBaseScore = 1_000_000
	killerScore1     = 900_000
	killerScore2     = 800_000
)

// killerPlyLimit bounds the killer table; deeper plies share no killers.
const killerPlyLimit = 64

// MoveOrderer tracks killer moves across a search (spec §4.7, §5: cleared
// at the start of every get_best_move call).
type MoveOrderer struct {
	killers [killerPlyLimit][2]board.Move
}

// NewMoveOrderer returns an orderer with empty killer slots.
func NewMoveOrderer() *MoveOrderer {
	mo := &MoveOrderer{}
	mo.Clear()
	return mo
}

// Clear resets all killer slots, run once per get_best_move call.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
}

// RecordKiller stores m as a killer at ply, evicting the current slot 0
// into slot 1 (spec §4.7). Captures and promotions are never recorded.
func (mo *MoveOrderer) RecordKiller(ply int, m board.Move) {
	if ply < 0 || ply >= killerPlyLimit {
		return
	}
	if m.Captured != board.NoPiece || m.Promotion != board.NoPieceType {
		return
	}
	if mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

func (mo *MoveOrderer) isKiller(ply int, m board.Move) (slot int, ok bool) {
	if ply < 0 || ply >= killerPlyLimit {
		return 0, false
	}
	if mo.killers[ply][0] == m {
		return 0, true
	}
	if mo.killers[ply][1] == m {
		return 1, true
	}
	return 0, false
}

// ScoreMove assigns an ordering score to m at ply, given the TT's preferred
// move for this position (spec §4.7's priority bands). ply < 0 signals
// quiescence search, where killers are never consulted.
func (mo *MoveOrderer) ScoreMove(m, ttMove board.Move, ply int) int {
	if m == ttMove {
		return ttMoveScore
	}
	if m.Captured != board.NoPiece {
		return captureBaseScore + m.Captured.Value()*100 - m.Moved.Value()
	}
	if m.Promotion != board.NoPieceType {
		return captureBaseScore + board.PieceValue[m.Promotion]
	}
	if ply >= 0 {
		if slot, ok := mo.isKiller(ply, m); ok {
			if slot == 0 {
				return killerScore1
			}
			return killerScore2
		}
	}
	return 0
}

// OrderMoves sorts ml in place, highest ordering score first, via
// insertion sort (move lists are short enough that this beats sort.Slice's
// overhead, and the generator already emits them in from-square order,
// which is preserved among equal scores).
func OrderMoves(ml *board.MoveList, mo *MoveOrderer, ttMove board.Move, ply int) {
	n := ml.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		scores[i] = mo.ScoreMove(ml.Get(i), ttMove, ply)
	}
	for i := 1; i < n; i++ {
		mv, sc := ml.Get(i), scores[i]
		j := i - 1
		for j >= 0 && scores[j] < sc {
			ml.Set(j+1, ml.Get(j))
			scores[j+1] = scores[j]
			j--
		}
		ml.Set(j+1, mv)
		scores[j+1] = sc
	}
}
