package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pterm/pterm"

	"github.com/xhess/bodie/metrics"
	"github.com/xhess/bodie/store"
)

// Server exposes the recorded progress as JSON.
type Server struct {
	recorder *metrics.Recorder
	store    store.Store
	log      *slog.Logger
	router   chi.Router
}

// NewServer creates a Server with all routes configured.
func NewServer(s store.Store, rec *metrics.Recorder, log *slog.Logger) *Server {
	srv := &Server{
		recorder: rec,
		store:    s,
		log:      log,
		router:   chi.NewRouter(),
	}

	srv.routes()

	return srv
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(s.requestLogging)

	s.router.Get("/api/summary", s.handleSummary)
	s.router.Get("/api/weights/{workoutID}", s.handleWeights)
}

func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", sw.status),
			slog.String("duration", time.Since(start).String()),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	sum, err := Compute(s.recorder)
	if err != nil {
		s.log.Error("computing summary failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to read summary"})

		return
	}

	writeJSON(w, http.StatusOK, sum)
}

type weightsResponse struct {
	WorkoutID string   `json:"workout_id"`
	Weights   []string `json:"weights"`
}

func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workoutID")

	weights, err := Weights(s.store, id)
	if err != nil {
		s.log.Error("reading weights failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to read weights"})

		return
	}

	if weights == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no weights for workout"})
		return
	}

	writeJSON(w, http.StatusOK, weightsResponse{WorkoutID: id, Weights: weights})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves the API on localhost until the server fails.
func (s *Server) ListenAndServe(port uint) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	pterm.Info.Printfln("starting server on http://%s", addr)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}
