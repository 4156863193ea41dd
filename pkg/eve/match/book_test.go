package match

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tc, err := ParseTime("40/60+0.5")
	require.NoError(t, err)
	assert.Equal(t, TimeControl{MovesToGo: 40, Base: time.Minute, Inc: 500 * time.Millisecond}, tc)
	assert.Equal(t, 1500*time.Millisecond+250*time.Millisecond, tc.Budget())

	tc, err = ParseTime("")
	require.NoError(t, err)
	assert.True(t, tc.Unlimited())
	assert.True(t, tc.Spend(time.Hour))

	_, err = ParseTime("60")
	assert.Error(t, err)

	_, err = ParseTime("x/60+1")
	assert.Error(t, err)
}

func TestSpend(t *testing.T) {
	tc := TimeControl{Base: time.Second, Inc: 100 * time.Millisecond}

	require.True(t, tc.Spend(400*time.Millisecond))
	assert.Equal(t, 700*time.Millisecond, tc.Base)

	assert.False(t, tc.Spend(time.Second))
}

func TestResult(t *testing.T) {
	assert.Equal(t, Loss, Win.Flip())
	assert.Equal(t, 0.5, Draw.Score())
	assert.Equal(t, "0-1", Loss.String())

	assert.Equal(t, WinDraw, GetPairResult(Win, Draw))
	assert.Equal(t, DrawDraw, GetPairResult(Win, Loss))
	assert.Equal(t, LossLoss, GetPairResult(Loss, Loss))
}

func TestBookSequential(t *testing.T) {
	book := NewBookFromEntries([]string{"a", "", " b\r", "c"}, "sequential")
	require.Equal(t, 3, book.Len())

	assert.Equal(t, "a", book.Current())
	book.Next()
	assert.Equal(t, "b", book.Current())
	book.Next()
	book.Next()
	assert.Equal(t, "a", book.Current())

	book.Next()
	assert.Equal(t, OpeningConfig{File: "x", Start: 1}, book.Wrap(OpeningConfig{File: "x"}))
}

func TestBookRandom(t *testing.T) {
	book := NewBookFromEntries([]string{"a", "b", "c"}, "random")
	for i := 0; i < 20; i++ {
		book.Next()
		assert.Contains(t, []string{"a", "b", "c"}, book.Current())
	}
}

func TestNewBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.epd")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	book, err := NewBook(OpeningConfig{File: path, Start: 4}, "chess")
	require.NoError(t, err)
	assert.Equal(t, 3, book.Len())
	assert.Equal(t, "two", book.Current())

	book, err = NewBook(OpeningConfig{}, "gomoku")
	require.NoError(t, err)
	assert.Equal(t, "7,7", book.Current())

	_, err = NewBook(OpeningConfig{File: filepath.Join(t.TempDir(), "missing")}, "chess")
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.epd")
	require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0o644))
	_, err = NewBook(OpeningConfig{File: empty}, "chess")
	assert.Error(t, err)
}
