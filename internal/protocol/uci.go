// Package protocol implements the line-oriented engine command protocol
// described in spec §6: command dispatch, time-control-to-search-budget
// mapping, and info/bestmove line formatting. It is an external
// collaborator of internal/engine's core façade, never the reverse.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/arvidsson/chesscore/internal/board"
	"github.com/arvidsson/chesscore/internal/engine"
)

const (
	engineName   = "chesscore"
	engineAuthor = "arvidsson"
)

// Handler runs the protocol loop over an Engine. It owns no board state of
// its own beyond what the façade exposes.
type Handler struct {
	eng *engine.Engine
	out io.Writer

	searching  atomic.Bool
	searchDone chan struct{}
	stopFlag   atomic.Bool

	// OnSearchComplete, if set, is called after every "go" finishes with
	// the last completed depth's report, the FEN searched, and the best
	// move returned — the hook main() uses to persist session telemetry.
	OnSearchComplete func(fen string, report engine.SearchReport, best board.Move)

	// SessionID, if set, is echoed in an "info string" line at the start of
	// every search so external tooling can correlate a go/bestmove cycle
	// with the persisted telemetry record main() writes for it.
	SessionID string
}

// NewHandler builds a protocol handler writing responses to out.
func NewHandler(eng *engine.Engine, out io.Writer) *Handler {
	return &Handler{eng: eng, out: out}
}

// Run reads commands from in line by line until "quit" or EOF (spec §6).
func (h *Handler) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			h.handleUCI()
		case "isready":
			fmt.Fprintln(h.out, "readyok")
		case "ucinewgame":
			h.eng.NewGame()
		case "position":
			h.handlePosition(args)
		case "setoption":
			h.handleSetOption(args)
		case "go":
			h.handleGo(args)
		case "stop":
			h.handleStop()
		case "d":
			fmt.Fprintln(h.out, h.eng.Board.ToFEN())
		case "perft":
			h.handlePerft(args)
		case "quit":
			h.handleStop()
			return
		default:
			// Unknown protocol command: ignored silently (spec §7).
		}
	}
}

func (h *Handler) handleUCI() {
	fmt.Fprintf(h.out, "id name %s\n", engineName)
	fmt.Fprintf(h.out, "id author %s\n", engineAuthor)
	fmt.Fprintln(h.out, "option name Hash type spin default 64 min 1 max 4096")
	fmt.Fprintln(h.out, "uciok")
}

// handleSetOption implements "setoption name <name> value <value>" (spec
// §6). Hash and Debug are recognized; any other name is ignored silently,
// the same tolerant behavior the teacher's handler uses for options this
// engine does not implement.
func (h *Handler) handleSetOption(args []string) {
	var name, value string
	reading := ""
	for _, a := range args {
		switch a {
		case "name":
			reading = "name"
		case "value":
			reading = "value"
		default:
			switch reading {
			case "name":
				if name != "" {
					name += " "
				}
				name += a
			case "value":
				if value != "" {
					value += " "
				}
				value += a
			}
		}
	}

	switch {
	case strings.EqualFold(name, "Hash"):
		if mb, err := strconv.Atoi(value); err == nil && mb > 0 {
			h.eng.SetHashSizeMB(mb)
		}
	case strings.EqualFold(name, "Debug"):
		enabled := strings.EqualFold(value, "true")
		board.DebugMoveValidation = enabled
		if enabled {
			fmt.Fprintln(os.Stderr, "info string Debug mode enabled")
		}
	}
}

// handlePerft runs the façade's perft counter and reports timing, the
// standard move-generator correctness debug command (spec §8).
func (h *Handler) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}
	start := time.Now()
	nodes := h.eng.Perft(depth)
	elapsed := time.Since(start)
	fmt.Fprintf(h.out, "nodes %d\n", nodes)
	fmt.Fprintf(h.out, "time %dms\n", elapsed.Milliseconds())
}

// handlePosition implements:
//
//	position startpos [moves m1 m2 ...]
//	position fen <6 fen fields> [moves m1 m2 ...]
func (h *Handler) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var movesIdx int
	switch args[0] {
	case "startpos":
		h.eng.SetStartPos()
		movesIdx = 1
	case "fen":
		fenFields := args[1:]
		for i, f := range fenFields {
			if f == "moves" {
				fenFields = fenFields[:i]
				break
			}
		}
		h.eng.SetFEN(strings.Join(fenFields, " "))
		movesIdx = 1 + len(fenFields)
	default:
		return
	}

	if movesIdx >= len(args) || args[movesIdx] != "moves" {
		return
	}
	for _, mv := range args[movesIdx+1:] {
		// Unknown or illegal protocol move strings are ignored here;
		// ApplyProtocolMove's error only matters for interactive
		// single-move application (spec §7), not for replaying a
		// trusted move history supplied by the GUI.
		_ = h.eng.ApplyProtocolMove(mv)
	}
}

// handleGo parses "go" options, computes a search budget, and runs the
// search in a background goroutine so Run's scan loop stays responsive to
// "stop"/"quit" (spec §5's cooperative-polling suspension model).
func (h *Handler) handleGo(args []string) {
	opts := parseGoOptions(args)
	budgetMs, unbounded := allocateTimeMs(opts, h.eng.Board.ActiveColor == board.White)
	if unbounded {
		budgetMs = 0
	}

	if h.SessionID != "" {
		fmt.Fprintf(os.Stderr, "info string session %s\n", h.SessionID)
	}

	h.stopFlag.Store(false)
	h.searching.Store(true)
	h.searchDone = make(chan struct{})

	shouldStop := func() bool { return h.stopFlag.Load() }
	var lastReport engine.SearchReport
	onReport := func(r engine.SearchReport) {
		lastReport = r
		h.sendInfo(r)
	}

	fen := h.eng.Board.ToFEN()

	go func() {
		defer close(h.searchDone)
		best := h.eng.Search(budgetMs, opts.Depth, shouldStop, onReport)
		h.searching.Store(false)
		fmt.Fprintf(h.out, "bestmove %s\n", best.String())
		if h.OnSearchComplete != nil {
			h.OnSearchComplete(fen, lastReport, best)
		}
	}()
}

func (h *Handler) handleStop() {
	if !h.searching.Load() {
		return
	}
	h.stopFlag.Store(true)
	<-h.searchDone
}

// sendInfo renders one "info" line per completed depth (spec §6).
func (h *Handler) sendInfo(r engine.SearchReport) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d score %s time %d nodes %d",
		r.Depth, formatScore(r.Score), r.ElapsedMs, r.Nodes)

	if r.ElapsedMs > 0 {
		nps := r.Nodes * 1000 / uint64(r.ElapsedMs)
		fmt.Fprintf(&sb, " nps %d", nps)
	}
	if len(r.PV) > 0 {
		sb.WriteString(" pv")
		for _, m := range r.PV {
			sb.WriteByte(' ')
			sb.WriteString(m.String())
		}
	}
	fmt.Fprintln(h.out, sb.String())
}

// formatScore renders a centipawn score, or a mate distance when the score
// crosses the mate threshold (spec §6's mate-score convention).
func formatScore(score int) string {
	if moves, ok := engine.ScoreToMateDistance(score); ok {
		return fmt.Sprintf("mate %d", moves)
	}
	return fmt.Sprintf("cp %d", score)
}

// parseGoOptions parses the bracketed tokens of a "go" command (spec §6).
// Unknown options are ignored silently.
func parseGoOptions(args []string) GoOptions {
	var opts GoOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			i++
			opts.WTime = atoi64(args, i)
		case "btime":
			i++
			opts.BTime = atoi64(args, i)
		case "winc":
			i++
			opts.WInc = atoi64(args, i)
		case "binc":
			i++
			opts.BInc = atoi64(args, i)
		case "movestogo":
			i++
			opts.MovesToGo = int(atoi64(args, i))
		case "movetime":
			i++
			opts.MoveTime = atoi64(args, i)
		case "depth":
			i++
			opts.Depth = int(atoi64(args, i))
		case "infinite":
			opts.Infinite = true
		}
	}
	return opts
}

func atoi64(args []string, i int) int64 {
	if i < 0 || i >= len(args) {
		return 0
	}
	v, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil {
		return 0
	}
	return v
}
