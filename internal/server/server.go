// Package server exposes the STFT engine as a websocket streaming service.
//
// A client connects to /ws/stft, optionally overriding analysis settings in
// the query string, and streams binary messages of little-endian float32
// mono PCM. Every completed column is sent back as one binary message of
// OutputSize() little-endian float32 values. Text messages carry JSON
// control frames.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-stft/internal/config"
)

// Server serves /healthz and /ws/stft.
type Server struct {
	cfg      config.ServerConfig
	analysis config.AnalysisConfig
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// New creates a server. analysis provides the defaults a connection can
// override through query parameters.
func New(cfg config.ServerConfig, analysis config.AnalysisConfig, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		analysis: analysis,
		log:      logger.With().Str("component", "server").Logger(),
	}

	s.upgrader = websocket.Upgrader{
		CheckOrigin:     s.checkOrigin,
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
	}

	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/ws/stft", s.handleSTFT)

	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("stft server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.log.Info().Msg("stft server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}

	origin := r.Header.Get("Origin")

	return origin == "" || slices.Contains(s.cfg.AllowedOrigins, origin)
}

func (s *Server) handleSTFT(w http.ResponseWriter, r *http.Request) {
	analysis, err := sessionAnalysis(s.analysis, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	engine, err := config.NewEngine[float32, complex64](analysis)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	logger := s.log.With().
		Str("remote", r.RemoteAddr).
		Str("window", analysis.Window).
		Int("size", analysis.WindowSize).
		Int("step", analysis.StepSize).
		Logger()

	sess := newSession(conn, engine, analysis, s.cfg, logger)
	sess.run()
}

// sessionAnalysis applies query overrides to the server defaults.
func sessionAnalysis(base config.AnalysisConfig, q url.Values) (config.AnalysisConfig, error) {
	a := base

	if v := q.Get("window"); v != "" {
		a.Window = v
	}
	if v := q.Get("reduction"); v != "" {
		a.Reduction = v
	}
	if v := q.Get("backend"); v != "" {
		a.Backend = v
	}

	for key, dst := range map[string]*int{"size": &a.WindowSize, "step": &a.StepSize} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return a, fmt.Errorf("%w: %s=%q", config.ErrInvalid, key, v)
		}
		*dst = n
	}

	if v := q.Get("alpha"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return a, fmt.Errorf("%w: alpha=%q", config.ErrInvalid, v)
		}
		a.Alpha = f
	}

	if err := a.Validate(); err != nil {
		return a, err
	}

	// A zero step never releases buffered samples, so a stream would grow
	// the session's buffer without bound.
	if a.StepSize == 0 {
		return a, fmt.Errorf("%w: step must be > 0 for streaming", config.ErrInvalid)
	}

	return a, nil
}
