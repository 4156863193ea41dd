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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/kibitz/pkg/config"
	"laptudirm.com/x/kibitz/pkg/games/gomoku"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		Chess:  config.Game{TimeMS: 50, MaxDepth: 3},
		Gomoku: config.Game{TimeMS: 50, MaxDepth: 2},
		Search: config.Search{TableMB: 1},
	}

	srv := httptest.NewServer(New(cfg, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string, out any) int {
	t.Helper()

	res, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer res.Body.Close()

	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	return res.StatusCode
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()

	var body map[string]bool
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, body["ok"])
}

func TestBestMove(t *testing.T) {
	srv := newTestServer(t)

	t.Run("mate", func(t *testing.T) {
		var body bestMoveResponse
		status := post(t, srv, "/bestmove", `{"fen": "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "time_ms": 500}`, &body)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "a1a8", body.BestMove)
		assert.Equal(t, 1, body.Mate)
		assert.Equal(t, 1, body.Depth)
	})

	t.Run("stalemate", func(t *testing.T) {
		var body bestMoveResponse
		status := post(t, srv, "/bestmove", `{"fen": "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"}`, &body)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, bestMoveResponse{}, body)
	})

	t.Run("invalid fen", func(t *testing.T) {
		var body map[string]string
		status := post(t, srv, "/bestmove", `{"fen": "nonsense"}`, &body)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body["error"], "invalid fen")
	})

	t.Run("invalid payload", func(t *testing.T) {
		var body map[string]string
		status := post(t, srv, "/bestmove", `{`, &body)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid payload", body["error"])
	})
}

func TestConnectFiveMove(t *testing.T) {
	srv := newTestServer(t)

	t.Run("empty board", func(t *testing.T) {
		var body connectFiveResponse
		status := post(t, srv, "/connect-five-move", `{"board": "`+strings.Repeat(".", gomoku.Cells)+`"}`, &body)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, 7, body.Row)
		assert.Equal(t, 7, body.Col)
		assert.Equal(t, 1, body.Depth)
	})

	t.Run("win", func(t *testing.T) {
		cells := []byte(strings.Repeat(".", gomoku.Cells))
		for col := 3; col <= 6; col++ {
			cells[7*gomoku.Size+col] = 'B'
		}
		for col := 0; col <= 6; col += 2 {
			cells[col] = 'W'
		}

		var body connectFiveResponse
		status := post(t, srv, "/connect-five-move", `{"board": "`+string(cells)+`", "time_ms": 100}`, &body)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, 7, body.Row)
		assert.Contains(t, []int{2, 7}, body.Col)
		assert.Equal(t, gomoku.WinScore, body.Eval)
	})

	t.Run("short board", func(t *testing.T) {
		var body connectFiveResponse
		status := post(t, srv, "/connect-five-move", `{"board": "BW"}`, &body)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, connectFiveResponse{Row: -1, Col: -1}, body)
	})
}

func TestAnalysis(t *testing.T) {
	srv := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/analysis"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() (string, progress) {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))

		var msg message
		require.NoError(t, conn.ReadJSON(&msg))

		var payload progress
		if msg.Type != "error" {
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		}
		return msg.Type, payload
	}

	t.Run("gomoku", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(analysisRequest{
			Game: "gomoku", Position: strings.Repeat(".", gomoku.Cells), TimeMS: 50,
		}))

		kind, payload := read()
		assert.Equal(t, "depth", kind)
		assert.Equal(t, 1, payload.Depth)

		kind, payload = read()
		assert.Equal(t, "result", kind)
		assert.Equal(t, "7,7", payload.Move)
	})

	t.Run("chess", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(analysisRequest{
			Game: "chess", Position: "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", TimeMS: 500,
		}))

		var kinds []string
		for {
			kind, payload := read()
			kinds = append(kinds, kind)

			if kind == "result" {
				assert.Equal(t, "a1a8", payload.Move)
				assert.Equal(t, 1, payload.Mate)
				break
			}
		}

		assert.Equal(t, []string{"depth", "result"}, kinds)
	})

	t.Run("unknown game", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(analysisRequest{Game: "go"}))

		kind, _ := read()
		assert.Equal(t, "error", kind)
	})
}
