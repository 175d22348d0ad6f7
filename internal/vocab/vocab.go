// internal/vocab/vocab.go
//
// Surface-form vocabulary for the move canonicalizer.
//
// Responsibilities:
//   - Load the surface-form → canonical-move table from an
//     environment-provided file or fall back to the embedded default.
//   - Validate entries (move must be rock/paper/scissors/bomb).
//   - Expose the table as a game.Vocabulary plus per-move counts.
//
// File format (VOCAB_FILE):
//   one entry per line: surface form, a tab, canonical move.
//   Lines starting with '#' and blank lines are ignored.
//   Surface forms are lowercased; natural-language frames such as
//   "I choose rock" resolve through their embedded move token, so the
//   table only needs tokens, variants, misspellings, and emoji.
//
// Initialization is run once (sync.Once), mirroring how word lists are
// loaded elsewhere in this codebase.

package vocab

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/rps-plus/internal/game"
)

//go:embed default_vocab.txt
var embeddedVocab string

var (
	initOnce   sync.Once
	table      game.Vocabulary
	initialErr error
)

// Init loads the vocabulary exactly once.
// Returns an error if the resulting table is empty or malformed.
func Init() error {
	initOnce.Do(func() {
		var lines []string
		if path := os.Getenv("VOCAB_FILE"); path != "" {
			var err error
			lines, err = readLines(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			lines = strings.Split(embeddedVocab, "\n")
		}

		t, err := parse(lines)
		if err != nil {
			initialErr = err
			return
		}
		if len(t) == 0 {
			initialErr = errors.New("vocab: table is empty")
			return
		}
		table = t
	})
	return initialErr
}

// Table returns the loaded vocabulary. Callers must not mutate it.
func Table() game.Vocabulary {
	if table == nil {
		_ = Init()
	}
	return table
}

// Stats returns the number of surface forms registered per move.
func Stats() map[game.Move]int {
	out := make(map[game.Move]int, 4)
	for _, m := range Table() {
		out[m]++
	}
	return out
}

// readLines loads raw lines from a file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// parse converts raw lines into a validated vocabulary table.
func parse(lines []string) (game.Vocabulary, error) {
	t := make(game.Vocabulary)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		surface, move, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("vocab: line %d: expected <surface>\\t<move>", i+1)
		}
		surface = strings.ToLower(strings.TrimSpace(surface))
		m := game.Move(strings.ToLower(strings.TrimSpace(move)))
		if surface == "" || !m.Playable() {
			return nil, fmt.Errorf("vocab: line %d: bad entry %q → %q", i+1, surface, move)
		}
		t[surface] = m
	}
	return t, nil
}
