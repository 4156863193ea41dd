// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

package match

import (
	"bufio"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// StartUCIPlayer starts the external engine described by config and
// performs the protocol handshake.
func StartUCIPlayer(config PlayerConfig) (*UCIPlayer, error) {
	player := UCIPlayer{config: config, protocol: config.Protocol}
	if player.protocol == "" {
		player.protocol = "uci"
	}

	process := exec.Command(config.Cmd, strings.Fields(config.Arg)...)
	process.Dir = config.Dir

	stdin, err := process.StdinPipe()
	if err != nil {
		return nil, err
	}

	stdout, err := process.StdoutPipe()
	if err != nil {
		return nil, err
	}

	player.writer = bufio.NewWriter(stdin)
	player.reader = bufio.NewReader(stdout)
	player.lines = make(chan string)
	player.done = make(chan struct{})

	player.Cmd = process

	if err := player.Cmd.Start(); err != nil {
		return nil, err
	}

	go func() {
		for {
			line, err := player.reader.ReadString('\n')
			if err != nil {
				player.setErr(err)
				close(player.lines)
				return
			}

			line = strings.Trim(line, " \n\t\r")

			logrus.Debugf("info: (%s)> %s", player.config.Name, line)
			select {
			case player.lines <- line:
			case <-player.done:
				return
			}
		}
	}()

	if err := player.handshake(); err != nil {
		player.stop(0)
		return nil, err
	}

	return &player, nil
}

func (player *UCIPlayer) handshake() error {
	if player.config.InitStr != "" {
		if err := player.Write("%s", player.config.InitStr); err != nil {
			return err
		}
	}

	if err := player.Initialize(); err != nil {
		return err
	}

	for name, value := range player.config.Options {
		if err := player.Write("setoption name %s value %s", name, value); err != nil {
			return err
		}
	}

	return player.NewGame()
}

// UCIPlayer is an external engine process spoken to over UCI.
type UCIPlayer struct {
	config PlayerConfig

	*exec.Cmd

	protocol string

	writer *bufio.Writer
	reader *bufio.Reader

	lines chan string
	done  chan struct{} // closed once the process has been reaped

	mu  sync.Mutex
	err error

	stopOnce sync.Once
}

func (player *UCIPlayer) setErr(err error) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.err = err
}

func (player *UCIPlayer) readErr() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.err
}

func (player *UCIPlayer) Name() string {
	return player.config.Name
}

// NewGame prepares the engine for a new game.
func (player *UCIPlayer) NewGame() error {
	if err := player.Write("%snewgame", player.protocol); err != nil {
		return err
	}

	return player.Synchronize()
}

// Initialize initializes the engine on startup.
func (player *UCIPlayer) Initialize() error {
	if err := player.Write("%s", player.protocol); err != nil {
		return err
	}

	_, err := player.Await(player.protocol+"ok", 5*time.Second)
	return err
}

// Synchronize waits for the engine to complete some time consuming task
// and synchronizes the interface with it.
func (player *UCIPlayer) Synchronize() error {
	if err := player.Write("isready"); err != nil {
		return err
	}

	_, err := player.Await("readyok", 5*time.Second)
	return err
}

// searchSlack is added to the time an engine without a clock may take.
const searchSlack = 5 * time.Second

func (player *UCIPlayer) BestMove(position string, moves []string, clock Clock) (string, error) {
	command := "position fen " + position
	if len(moves) > 0 {
		command += " moves " + strings.Join(moves, " ")
	}

	if err := player.Write("%s", command); err != nil {
		return "", err
	}

	if err := player.Synchronize(); err != nil {
		return "", err
	}

	timeout := clock.Ours.Base
	switch {
	case !clock.Ours.Unlimited():
		white, black := clock.Ours, clock.Theirs
		if !clock.First {
			white, black = black, white
		}

		err := player.Write(
			"go wtime %d btime %d winc %d binc %d",
			white.Base.Milliseconds(), black.Base.Milliseconds(),
			white.Inc.Milliseconds(), black.Inc.Milliseconds(),
		)
		if err != nil {
			return "", err
		}

	case player.config.Depth > 0:
		if err := player.Write("go depth %d", player.config.Depth); err != nil {
			return "", err
		}
		timeout = time.Minute

	default:
		moveTime := time.Duration(player.config.TimeMS) * time.Millisecond
		if moveTime <= 0 {
			moveTime = DefaultMoveTime
		}

		if err := player.Write("go movetime %d", moveTime.Milliseconds()); err != nil {
			return "", err
		}
		timeout = moveTime + searchSlack
	}

	line, err := player.Await("^bestmove .*", timeout)
	if err != nil {
		return "", err
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] == "0000" || fields[1] == "(none)" {
		return "", ErrNoMove
	}

	return fields[1], nil
}

// quitGrace is how long an engine may take to exit after quit before it
// is killed.
const quitGrace = time.Second

// Close asks the engine to quit, kills it if it is still running after
// quitGrace, and reaps the process.
func (player *UCIPlayer) Close() error {
	err := player.Write("quit")
	player.stop(quitGrace)
	return err
}

// stop waits up to grace for the process to exit, kills it otherwise, and
// always waits for it so that no zombie is left behind.
func (player *UCIPlayer) stop(grace time.Duration) {
	player.stopOnce.Do(func() {
		exited := make(chan struct{})
		go func() {
			// the exit status of a quitting engine is of no interest
			_ = player.Wait()
			close(exited)
		}()

		select {
		case <-exited:
		case <-time.After(grace):
			_ = player.Process.Kill()
			<-exited
		}

		close(player.done)
	})
}

var ErrReadTimeout = errors.New("engine: read i/o timeout")

// Await is a utility function which waits for a particular string from
// the engine with a fixed timeout.
func (player *UCIPlayer) Await(pattern string, timeout time.Duration) (string, error) {
	regex := regexp.MustCompile(pattern)
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			// timer ran out: wait timeout

			if err := player.readErr(); err != nil {
				return "", err
			}

			return "", ErrReadTimeout

		case line, ok := <-player.lines:
			if !ok {
				return "", fmt.Errorf("engine %s: %w", player.config.Name, player.readErr())
			}

			if regex.MatchString(line) {
				// line is the expected line
				return line, nil
			}
		}
	}
}

func (player *UCIPlayer) Write(format string, a ...any) error {
	line := fmt.Sprintf(format, a...)
	logrus.Debugf("info: (%s)< %s", player.config.Name, line)

	if _, err := fmt.Fprintln(player.writer, line); err != nil {
		return err
	}

	return player.writer.Flush()
}
