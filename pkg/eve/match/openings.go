package match

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/rand"

	"laptudirm.com/x/kibitz/pkg/data"
)

// OpeningConfig selects an opening book: a file with one position per
// line, or one of the built-in suites.
type OpeningConfig struct {
	File  string `yaml:"file"`
	Suite string `yaml:"suite"`
	Order string `yaml:"order"`
	Start int    `yaml:"start"`
}

// NewBook loads the book described by config for game.
func NewBook(config OpeningConfig, game string) (*OpeningBook, error) {
	var entries []string
	switch {
	case config.File != "":
		file, err := os.ReadFile(config.File)
		if err != nil {
			return nil, err
		}

		entries = strings.Split(string(file), "\n")

	default:
		suite, err := data.Openings(game, config.Suite)
		if err != nil {
			return nil, err
		}

		entries = suite
	}

	book := NewBookFromEntries(entries, config.Order)
	if len(book.entries) == 0 {
		return nil, fmt.Errorf("opening book: no positions")
	}

	book.current = config.Start % len(book.entries)
	return book, nil
}

// NewBookFromEntries returns a book of the non-empty entries.
func NewBookFromEntries(entries []string, strategy string) *OpeningBook {
	book := OpeningBook{strategy: strategy}
	for _, entry := range entries {
		if entry = strings.Trim(entry, "\n\r\t "); entry != "" {
			book.entries = append(book.entries, entry)
		}
	}

	return &book
}

type OpeningBook struct {
	entries  []string
	strategy string
	current  int
}

func (book *OpeningBook) Next() {
	switch book.strategy {
	case "random":
		book.current = rand.Intn(len(book.entries))
	default:
		book.current = (book.current + 1) % len(book.entries)
	}
}

func (book *OpeningBook) Current() string {
	return book.entries[book.current]
}

func (book *OpeningBook) Len() int {
	return len(book.entries)
}

// Wrap returns config set to resume the book from its current opening.
func (book *OpeningBook) Wrap(config OpeningConfig) OpeningConfig {
	config.Start = book.current
	return config
}
