package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ktuncer/wastewise/internal/analytics"
	"github.com/ktuncer/wastewise/internal/menu"
	"github.com/ktuncer/wastewise/internal/orchestrator"
	"github.com/ktuncer/wastewise/internal/repositories"
	"github.com/ktuncer/wastewise/internal/storage"
)

// PhotoLister lists stored photo objects; nil when no object store is
// configured.
type PhotoLister interface {
	ListPhotos(ctx context.Context) ([]storage.PhotoObject, error)
}

// Server is the HTTP surface over the waste analytics core.
type Server struct {
	engine         *analytics.Engine
	optimizer      *menu.Optimizer
	orch           *orchestrator.Orchestrator
	repo           repositories.AnalysisRepository
	photos         PhotoLister
	allowedOrigins []string
	router         *mux.Router
}

func New(engine *analytics.Engine, optimizer *menu.Optimizer, orch *orchestrator.Orchestrator, repo repositories.AnalysisRepository, photos PhotoLister, allowedOrigins []string) *Server {
	s := &Server{
		engine:         engine,
		optimizer:      optimizer,
		orch:           orch,
		repo:           repo,
		photos:         photos,
		allowedOrigins: allowedOrigins,
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/upload", s.handleUpload).Methods("POST")
	r.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	r.HandleFunc("/api/analysis-results", s.handleListResults).Methods("GET")
	r.HandleFunc("/api/analysis-results", s.handleReset).Methods("DELETE")
	r.HandleFunc("/api/dashboard-summary", s.handleDashboardSummary).Methods("GET")
	r.HandleFunc("/api/menu", s.handleMenu).Methods("GET")
	r.HandleFunc("/api/results/week", s.handleWeekTable).Methods("GET")
	r.HandleFunc("/api/statistics/weekly", s.handleWeeklyStats).Methods("GET")
	r.HandleFunc("/api/statistics/monthly", s.handleMonthlyStats).Methods("GET")
	r.HandleFunc("/api/statistics/types", s.handleTypeStats).Methods("GET")
	r.HandleFunc("/api/photos", s.handlePhotos).Methods("GET")
	s.router = r

	return s
}

// Handler returns the router wrapped with CORS.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// ListenAndServe starts the API server on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
