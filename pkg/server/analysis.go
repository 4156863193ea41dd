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
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/kibitz/pkg/games/chess"
	"laptudirm.com/x/kibitz/pkg/games/gomoku"
)

const idlePingInterval = 30 * time.Second

var ErrUnknownGame = errors.New("server: unknown game")

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type analysisRequest struct {
	Game     string `json:"game"`
	Position string `json:"position"`
	TimeMS   int    `json:"time_ms"`
}

type progress struct {
	Depth     int    `json:"depth"`
	Score     int    `json:"score"`
	Mate      int    `json:"mate,omitempty"`
	Move      string `json:"move"`
	Nodes     int    `json:"nodes"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// analysis streams the progress of searches requested over a websocket.
// Requests on one connection are searched one after the other.
func (server *Server) analysis(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		server.logger.WithField("error", err).Warn("server: websocket upgrade failed")
		return
	}
	defer conn.Close()

	send := make(chan []byte, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := writeWithHeartbeat(conn, send); err != nil {
			server.logger.WithField("error", err).Debug("server: websocket write failed")
		}

		// keep the readers unblocked after a failed write
		for range send {
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var request analysisRequest
		if err := json.Unmarshal(data, &request); err != nil {
			send <- errorMessage(fmt.Errorf("invalid payload: %w", err))
			continue
		}

		server.analyse(request, send)
	}

	close(send)
	<-done
}

func (server *Server) analyse(request analysisRequest, send chan<- []byte) {
	logger := server.logger.WithFields(logrus.Fields{
		"game":    request.Game,
		"time_ms": request.TimeMS,
	})

	switch request.Game {
	case "chess":
		position, err := chess.NewPosition(request.Position)
		if err != nil {
			send <- errorMessage(err)
			return
		}

		report := func(kind string, result chess.Result) {
			send <- encode(kind, progress{
				Depth: result.Depth, Score: result.Score, Mate: result.Mate,
				Move: result.BestMove, Nodes: result.Nodes,
				ElapsedMS: result.Elapsed.Milliseconds(),
			})
		}

		result := server.chess.Search(position, budget(request.TimeMS, server.chessBudget), func(result chess.Result) {
			report("depth", result)
		})
		report("result", result)

	case "gomoku":
		board, err := gomoku.Parse(request.Position)
		if err != nil {
			send <- errorMessage(err)
			return
		}

		report := func(kind string, result gomoku.Result) {
			move := ""
			if result.Move != gomoku.NoMove {
				move = result.Move.String()
			}

			send <- encode(kind, progress{
				Depth: result.Depth, Score: result.Eval,
				Move: move, Nodes: result.Nodes,
				ElapsedMS: result.Elapsed.Milliseconds(),
			})
		}

		result := server.gomoku.Search(board, budget(request.TimeMS, server.gomokuBudget), func(result gomoku.Result) {
			report("depth", result)
		})
		report("result", result)

	default:
		send <- errorMessage(fmt.Errorf("%w: %q", ErrUnknownGame, request.Game))
		return
	}

	logger.Debug("server: analysis complete")
}

func encode(kind string, payload any) []byte {
	data, _ := json.Marshal(message{Type: kind, Payload: mustMarshal(payload)})
	return data
}

func errorMessage(err error) []byte {
	return encode("error", map[string]string{"error": err.Error()})
}

// writeWithHeartbeat writes every message from send to conn, and a ping
// message whenever the connection has been idle for idlePingInterval.
func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(idlePingInterval)
	defer ticker.Stop()

	lastWrite := time.Now()
	ping, _ := json.Marshal(message{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < idlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
