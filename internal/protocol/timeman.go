package protocol

// GoOptions holds the parsed arguments of a "go" command (spec §6).
type GoOptions struct {
	WTime     int64
	BTime     int64
	WInc      int64
	BInc      int64
	MovesToGo int
	MoveTime  int64
	Depth     int
	Infinite  bool
}

// defaultMoveTimeMs is used when the active side's clock is not provided
// at all (spec §6's final fallback).
const defaultMoveTimeMs = 5000

// defaultMovesToGo is assumed when "movestogo" is absent (spec §6).
const defaultMovesToGo = 30

// allocateTimeMs maps a "go" command's time-control fields to a search
// budget in milliseconds, and reports whether the search should instead
// run unbounded by time (depth-limited or infinite). This mapping belongs
// to the protocol layer, not the core (spec §1's external-collaborator
// contract: "map time controls to a search budget").
func allocateTimeMs(opts GoOptions, whiteToMove bool) (budgetMs int64, unbounded bool) {
	if opts.MoveTime > 0 {
		return opts.MoveTime, false
	}
	if opts.Depth > 0 || opts.Infinite {
		return 0, true
	}

	myTime, myInc := opts.WTime, opts.WInc
	if !whiteToMove {
		myTime, myInc = opts.BTime, opts.BInc
	}
	if myTime <= 0 {
		return defaultMoveTimeMs, false
	}

	movesToGo := opts.MovesToGo
	if movesToGo <= 0 {
		movesToGo = defaultMovesToGo
	}

	budget := myTime/int64(movesToGo) + myInc/2
	minBudget := int64(10)
	maxBudget := myTime - 50
	if maxBudget < minBudget {
		maxBudget = minBudget
	}
	if budget < minBudget {
		budget = minBudget
	}
	if budget > maxBudget {
		budget = maxBudget
	}
	return budget, false
}
