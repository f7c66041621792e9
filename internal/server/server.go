// Package server exposes the stored fixtures as a tiny JSON API for the PWA.
package server

import (
	"net/http"

	"github.com/mubarak-24/football-matches/internal/utils"
	"github.com/mubarak-24/football-matches/pkg/storage"
)

type Server struct {
	DB       *storage.DB
	Timezone string
}

func New(db *storage.DB, timezone string) *Server {
	return &Server{DB: db, Timezone: timezone}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.cors(s.handleHealth))
	mux.HandleFunc("GET /api/matches/today", s.cors(s.handleToday))
	mux.HandleFunc("GET /api/matches/date", s.cors(s.handleByDate))
	mux.HandleFunc("GET /api/matches/top", s.cors(s.handleTop))
	mux.HandleFunc("OPTIONS /", s.cors(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	utils.Log.Infof("Serving API on %s", addr)
	return http.ListenAndServe(addr, mux)
}

// cors allows the PWA frontend to call the API from any origin.
func (s *Server) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}
