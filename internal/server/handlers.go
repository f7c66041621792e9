package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/mubarak-24/football-matches/pkg/match"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		loc = time.UTC
	}
	today := time.Now().In(loc).Format("2006-01-02")

	rows, err := s.DB.MatchesOn(r.Context(), today)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": today, "matches": rows})
}

func (s *Server) handleByDate(w http.ResponseWriter, r *http.Request) {
	d := r.URL.Query().Get("d")
	if _, err := time.Parse("2006-01-02", d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date"})
		return
	}

	rows, err := s.DB.MatchesOn(r.Context(), d)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": d, "matches": rows})
}

// handleTop returns the ranked finished matches for a date.
func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	d := q.Get("d")
	if _, err := time.Parse("2006-01-02", d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date"})
		return
	}
	limit := 5
	if n, err := strconv.Atoi(q.Get("limit")); err == nil {
		limit = n
	}

	rows, err := s.DB.FinishedOn(r.Context(), d, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": d, "matches": match.PickTop(rows, limit)})
}
