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

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/kibitz/pkg/games/gomoku"
)

type bestMoveRequest struct {
	FEN    string `json:"fen"`
	TimeMS int    `json:"time_ms"`
}

type bestMoveResponse struct {
	BestMove string `json:"bestmove"`
	CP       int    `json:"cp"`
	Mate     int    `json:"mate"`
	Depth    int    `json:"depth"`
}

func (server *Server) bestMove(w http.ResponseWriter, r *http.Request) {
	var request bestMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	result, err := server.chess.Analyse(request.FEN, budget(request.TimeMS, server.chessBudget))
	if err != nil {
		server.logger.WithFields(logrus.Fields{
			"fen":   request.FEN,
			"error": err,
		}).Warn("server: bad position")

		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, bestMoveResponse{
		BestMove: result.BestMove,
		CP:       result.Score,
		Mate:     result.Mate,
		Depth:    result.Depth,
	})
}

type connectFiveRequest struct {
	Board  string `json:"board"`
	TimeMS int    `json:"time_ms"`
}

type connectFiveResponse struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Eval  int `json:"eval"`
	Depth int `json:"depth"`
}

func (server *Server) connectFiveMove(w http.ResponseWriter, r *http.Request) {
	var request connectFiveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	result, err := server.gomoku.Analyse(request.Board, budget(request.TimeMS, server.gomokuBudget))
	switch {
	case errors.Is(err, gomoku.ErrInvalidBoard):
		// short boards get the no move answer
		result = gomoku.NoResult
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, connectFiveResponse{
		Row:   result.Row,
		Col:   result.Col,
		Eval:  result.Eval,
		Depth: result.Depth,
	})
}
