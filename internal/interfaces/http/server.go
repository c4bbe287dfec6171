// Package http is the thin request/response surface over the analysis
// engine: one analyze route, one batch route, health and metrics. No
// auth, sessions or presentation logic lives here.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/gamepulse/gamepulse/internal/orchestrator"
)

// Server wraps the mux router and the orchestrator it fronts.
type Server struct {
	engine *orchestrator.Orchestrator
	srv    *http.Server
}

// Config tunes listener address and timeouts.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewServer builds the HTTP surface over an orchestrator.
func NewServer(engine *orchestrator.Orchestrator, cfg Config) *Server {
	s := &Server{engine: engine}

	r := mux.NewRouter()
	r.Use(requestLogging)
	r.HandleFunc("/api/v1/analysis/{appid:[0-9]+}", s.handleAnalyze).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/analysis/batch", s.handleBatch).Methods(http.MethodPost)
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.srv.Addr).Msg("http server listening")
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	appID, err := strconv.Atoi(mux.Vars(r)["appid"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid app id")
		return
	}

	opts := orchestrator.DefaultOptions()
	opts.ForceRefresh = r.URL.Query().Get("refresh") == "true"
	if r.URL.Query().Get("history") == "false" {
		opts.IncludeSalesHistory = false
	}

	result, err := s.engine.Analyze(r.Context(), appID, opts)
	if err != nil {
		switch {
		case errors.Is(err, orchestrator.ErrInvalidAppID):
			writeError(w, http.StatusBadRequest, "invalid app id")
		case orchestrator.IsAllSourcesDown(err):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type batchRequest struct {
	AppIDs []int `json:"app_ids"`
}

type batchItemResponse struct {
	AppID  int    `json:"app_id"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.AppIDs) == 0 {
		writeError(w, http.StatusBadRequest, "app_ids is required")
		return
	}

	items := s.engine.AnalyzeMany(r.Context(), req.AppIDs, orchestrator.DefaultOptions())

	out := make([]batchItemResponse, 0, len(items))
	for _, item := range items {
		resp := batchItemResponse{AppID: item.AppID}
		if item.Err != nil {
			resp.Error = item.Err.Error()
		} else {
			resp.Result = item.Result
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("http: encode response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogging tags each request with an id and logs its outcome.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		started := time.Now()
		next.ServeHTTP(w, r)

		log.Debug().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(started)).
			Msg("http request")
	})
}
