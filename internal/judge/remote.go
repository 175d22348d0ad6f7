// internal/judge/remote.go
//
// Remote judgment backend.
// Serializes the instruction prompt, the player's state snapshot, and
// the raw text into a POST to an external reasoning service, and parses
// the structured {move, valid, reason} response back into engine shapes.
//
// Fail-closed policy: transport errors, timeouts, non-2xx statuses,
// unparseable bodies, missing fields, and moves outside the accepted
// vocabulary all degrade to Unclear/invalid for that side. The round
// proceeds with forfeiture semantics; nothing here aborts a match.

package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rps-plus/internal/game"
)

// maxJudgeResponse bounds how much of a response body is read.
const maxJudgeResponse = 64 << 10

// Remote delegates interpretation and validation to a reasoning
// service over HTTP.
type Remote struct {
	URL          string
	Instructions string
	Client       *http.Client
}

// NewRemote constructs a Remote backend with a bounded timeout.
func NewRemote(url string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Remote{
		URL:          url,
		Instructions: Instructions,
		Client:       &http.Client{Timeout: timeout},
	}
}

// judgeReq is the wire request toward the reasoning service.
type judgeReq struct {
	Instructions string           `json:"instructions"`
	State        game.PlayerState `json:"state"`
	Input        string           `json:"input"`
}

// judgeRes is the expected structured response. Pointer fields let us
// tell "absent" from zero values.
type judgeRes struct {
	Move   *string `json:"move"`
	Valid  *bool   `json:"valid"`
	Reason *string `json:"reason"`
}

// InterpretAndValidate asks the reasoning service to read the text.
// Any failure along the way falls back to Unclear/invalid.
func (rb *Remote) InterpretAndValidate(ctx context.Context, rawText string, st game.PlayerState) (game.MoveInterpretation, game.ValidationOutcome) {
	body, err := json.Marshal(judgeReq{Instructions: rb.Instructions, State: st, Input: rawText})
	if err != nil {
		return failClosed(rawText, "judge request could not be encoded")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rb.URL, bytes.NewReader(body))
	if err != nil {
		return failClosed(rawText, "judge request could not be built")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := rb.Client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", rb.URL).Msg("judge backend unreachable")
		return failClosed(rawText, "judge backend unavailable")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Warn().Int("status", res.StatusCode).Str("url", rb.URL).Msg("judge backend error status")
		return failClosed(rawText, "judge backend returned an error")
	}

	var parsed judgeRes
	data, err := io.ReadAll(io.LimitReader(res.Body, maxJudgeResponse))
	if err != nil || json.Unmarshal(data, &parsed) != nil {
		log.Warn().Err(err).Msg("judge response unreadable")
		return failClosed(rawText, "judge response could not be parsed")
	}
	if parsed.Move == nil || parsed.Valid == nil || parsed.Reason == nil {
		log.Warn().Msg("judge response missing required fields")
		return failClosed(rawText, "judge response missing required fields")
	}

	move := game.Move(*parsed.Move)
	if !move.Playable() && move != game.Unclear {
		log.Warn().Str("move", *parsed.Move).Msg("judge response outside move vocabulary")
		return failClosed(rawText, "judge response outside move vocabulary")
	}

	interp := game.MoveInterpretation{RawText: rawText, Canonical: move, Note: *parsed.Reason}
	validity := game.ValidationOutcome{Valid: *parsed.Valid, Reason: *parsed.Reason}

	// The service cannot overrule hard constraints: an unclear move is
	// never valid, and a spent bomb stays spent.
	if local := game.Validate(move, st); !local.Valid && validity.Valid {
		log.Warn().Str("move", string(move)).Msg("judge response contradicted constraint state")
		validity = local
	}
	return interp, validity
}

// failClosed produces the Unclear/invalid pair used on every failure
// path.
func failClosed(rawText, note string) (game.MoveInterpretation, game.ValidationOutcome) {
	return game.MoveInterpretation{RawText: rawText, Canonical: game.Unclear, Note: note},
		game.ValidationOutcome{Valid: false, Reason: "move could not be determined"}
}
