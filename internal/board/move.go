package board

// Move records a single chess move. Captured and Moved are filled in by
// the generator so that UndoMove never needs to recompute them (spec §3).
type Move struct {
	From      Square
	To        Square
	Promotion PieceType // NoPieceType if this is not a promotion
	Captured  Piece     // NoPiece if this move captures nothing
	Moved     Piece     // the piece that stood on From before the move
}

// NoMove is the zero Move: From == To == a1, a degenerate move no legal
// generator ever produces, used as a sentinel.
var NoMove = Move{}

// IsNone reports whether m is the null/sentinel move.
func (m Move) IsNone() bool {
	return m.From == m.To
}

// String renders the move in protocol form: from-square, to-square, and
// an optional promotion letter (q, r, b, or n).
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case Queen:
		s += "q"
	case Rook:
		s += "r"
	case Bishop:
		s += "b"
	case Knight:
		s += "n"
	}
	return s
}

// MoveList is a fixed-capacity buffer of moves, avoiding per-node
// allocation during generation and search (spec §9: caller-provided
// buffer, capacity 256 comfortably exceeds the true maximum of 218).
type MoveList struct {
	moves [256]Move
	count int
}

func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

func (ml *MoveList) Len() int {
	return ml.count
}

func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

func (ml *MoveList) Clear() {
	ml.count = 0
}

func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}
