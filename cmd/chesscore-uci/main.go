package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/arvidsson/chesscore/internal/board"
	"github.com/arvidsson/chesscore/internal/engine"
	"github.com/arvidsson/chesscore/internal/protocol"
	"github.com/arvidsson/chesscore/internal/store"
)

var hashMB = flag.Int("hash", 64, "transposition table size in megabytes")

func main() {
	flag.Parse()

	eng := engine.NewEngine(*hashMB)

	sessions, err := store.Open(sessionStoreDir())
	if err != nil {
		log.Printf("session store unavailable: %v (continuing without telemetry)", err)
		sessions = nil
	} else {
		defer sessions.Close()
	}

	session := store.NewSession()
	if sessions != nil {
		log.Printf("session %s started", session)
	}

	h := protocol.NewHandler(eng, os.Stdout)
	if sessions != nil {
		h.SessionID = session.String()
		h.OnSearchComplete = func(fen string, report engine.SearchReport, best board.Move) {
			err := sessions.RecordSearch(store.SearchRecord{
				Session:   session,
				FEN:       fen,
				BestMove:  best.String(),
				Depth:     report.Depth,
				Nodes:     report.Nodes,
				ElapsedMs: report.ElapsedMs,
				Recorded:  time.Now(),
			})
			if err != nil {
				log.Printf("session record failed: %v", err)
			}
		}
	}
	h.Run(os.Stdin)
}

// sessionStoreDir returns where per-session telemetry is persisted
// (~/.chesscore/sessions by default).
func sessionStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.chesscore-sessions"
	}
	return filepath.Join(home, ".chesscore", "sessions")
}
