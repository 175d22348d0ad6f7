// internal/game/canonical.go
//
// Free-text move canonicalization.
// Responsibilities:
//   - Normalize raw input (case, surrounding whitespace).
//   - Match against a vocabulary of accepted surface forms per move:
//     single-word forms match on token boundaries, everything else
//     (emoji, multi-word phrases) matches by substring.
//   - Empty input, no recognized form, or signals for two or more
//     different moves all yield Unclear.
//
// Matching is token/substring based, never fuzzy: "rck" does not
// resolve unless the table lists it. Pure function of the input text
// and the vocabulary table.

package game

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Vocabulary maps an accepted surface form to its canonical move.
// Keys are lowercase.
type Vocabulary map[string]Move

// Canonicalize reads raw free text against the vocabulary and reports
// the canonical move, or Unclear with a note saying why.
func Canonicalize(raw string, v Vocabulary) MoveInterpretation {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return MoveInterpretation{RawText: raw, Canonical: Unclear, Note: "empty input"}
	}

	tokens := tokenize(text)

	// Longest matching surface form per move, so the note cites the
	// most specific thing that matched.
	matched := map[Move]string{}
	for surface, move := range v {
		if !surfaceMatches(text, tokens, surface) {
			continue
		}
		if prev, ok := matched[move]; !ok || len(surface) > len(prev) {
			matched[move] = surface
		}
	}

	switch len(matched) {
	case 0:
		return MoveInterpretation{RawText: raw, Canonical: Unclear, Note: "no recognizable move in input"}
	case 1:
		for move, surface := range matched {
			return MoveInterpretation{
				RawText:   raw,
				Canonical: move,
				Note:      fmt.Sprintf("matched %q", surface),
			}
		}
	}

	// Two or more different moves signaled at once.
	moves := make([]string, 0, len(matched))
	for move := range matched {
		moves = append(moves, string(move))
	}
	sort.Strings(moves)
	return MoveInterpretation{
		RawText:   raw,
		Canonical: Unclear,
		Note:      "ambiguous: input signals " + strings.Join(moves, " and "),
	}
}

// surfaceMatches reports whether one surface form appears in the text.
// Plain ASCII words must appear as a whole token; emoji and phrases
// match by containment.
func surfaceMatches(text string, tokens map[string]struct{}, surface string) bool {
	if isASCIIWord(surface) {
		_, ok := tokens[surface]
		return ok
	}
	return strings.Contains(text, surface)
}

// tokenize splits normalized text into a token set. Splits on anything
// that is not a letter or digit, which strips punctuation like the
// apostrophe in "i'll" and the trailing "!" in "scissors!".
func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// isASCIIWord reports whether s is all lowercase ASCII letters.
func isASCIIWord(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return len(s) > 0
}
