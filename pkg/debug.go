package pkg

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/qnkhuat/termchess/pkg/engine"
	"github.com/qnkhuat/termchess/pkg/gui"
)

// MatchInfo is the debug view of one match.
type MatchInfo struct {
	Id       string
	Fen      string
	Status   string
	Players  []string
	Viewers  int
	IdleSecs int
}

// Info snapshots the match under its lock.
func (m *Match) Info() MatchInfo {
	m.Lock()
	defer m.Unlock()
	info := MatchInfo{
		Id:       m.Id,
		Fen:      m.Board.FEN(),
		Status:   gui.StatusText(m.Board),
		Viewers:  len(m.Viewers),
		IdleSecs: int(time.Since(m.lastActivity).Seconds()),
	}
	for _, p := range m.Players {
		if p != nil {
			info.Players = append(info.Players, p.Name)
		}
	}
	return info
}

// Snapshot returns a copy of the match board that is safe to read without
// the lock.
func (m *Match) Snapshot() *engine.Board {
	m.Lock()
	defer m.Unlock()
	return m.Board.Clone()
}

// DebugHandler serves /matches as JSON and /matches/<id>.svg as a picture
// of the board.
func (s *Server) DebugHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/matches", func(w http.ResponseWriter, r *http.Request) {
		infos := []MatchInfo{}
		for _, id := range s.MatchIds() {
			if m, ok := s.Match(id); ok {
				infos = append(infos, m.Info())
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(infos); err != nil {
			log.Printf("debug: %v", err)
		}
	})
	mux.HandleFunc("/matches/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/matches/")
		if !strings.HasSuffix(id, ".svg") {
			http.NotFound(w, r)
			return
		}
		m, ok := s.Match(strings.TrimSuffix(id, ".svg"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		flip := r.URL.Query().Get("flip") != ""
		gs := gui.GameState{Board: m.Snapshot(), Theme: gui.ThemeBasic, Flip: flip}
		w.Header().Set("Content-Type", "image/svg+xml")
		gui.WriteSVG(w, gs)
	})
	return mux
}

// ListenDebug serves DebugHandler on addr until ctx is done.
func (s *Server) ListenDebug(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.DebugHandler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	log.Printf("Debug endpoint at %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
