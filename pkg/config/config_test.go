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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8000", config.Server.Addr)
	assert.Equal(t, 200*time.Millisecond, config.Chess.Budget())
	assert.Equal(t, time.Second, config.Gomoku.Budget())
	assert.Equal(t, 0.7, config.Chess.Guard)
	assert.Equal(t, 10, config.Gomoku.MaxDepth)
	assert.Equal(t, 64, config.Search.TableMB)

	options := config.Options(config.Gomoku, nil)
	assert.Equal(t, 0.8, options.Guard)
	assert.Equal(t, 900_000, options.Decisive)
	assert.Equal(t, 64, options.TableMB)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gomoku:\n  max_depth: 4\nserver:\n  addr: \":9000\"\n"), 0o644))

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, config.Gomoku.MaxDepth)
	assert.Equal(t, ":9000", config.Server.Addr)
	assert.Equal(t, 8, config.Chess.MaxDepth, "untouched keys keep defaults")
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("KIBITZ_CHESS_TIME_MS", "500")
	t.Setenv("KIBITZ_SEARCH_NO_TABLE", "true")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, config.Chess.Budget())
	assert.True(t, config.Search.NoTable)
}
