// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server exposes the chess and gomoku engines over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/kibitz/pkg/config"
	"laptudirm.com/x/kibitz/pkg/games/chess"
	"laptudirm.com/x/kibitz/pkg/games/gomoku"
)

// Server answers best move queries.
type Server struct {
	chess  *chess.Engine
	gomoku *gomoku.Engine

	chessBudget  time.Duration
	gomokuBudget time.Duration

	logger logrus.FieldLogger
}

// New returns a server using the engines described by cfg.
func New(cfg *config.Config, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Server{
		chess:  chess.NewEngine(cfg.Options(cfg.Chess, logger)),
		gomoku: gomoku.NewEngine(cfg.Options(cfg.Gomoku, logger)),

		chessBudget:  cfg.Chess.Budget(),
		gomokuBudget: cfg.Gomoku.Budget(),

		logger: logger,
	}
}

// Handler returns the server's routes.
func (server *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/bestmove", server.bestMove)
	r.Post("/connect-five-move", server.connectFiveMove)
	r.Get("/analysis", server.analysis)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (server *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		server.logger.WithField("addr", addr).Info("server: listening")
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdown); err != nil {
			return err
		}

		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}

// budget returns the requested budget, or fallback when none was given.
func budget(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}

	return time.Duration(ms) * time.Millisecond
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
