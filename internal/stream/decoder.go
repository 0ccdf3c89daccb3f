// Package stream turns the raw text of a streaming model response into
// something renderable. The assistant replies with a single JSON object,
// which means the buffer is invalid JSON on every chunk until the last
// one arrives; Decode extracts whatever is already displayable instead of
// blocking on completion.
package stream

import (
	"encoding/json"
	"strings"
)

// State is what the UI should show for the current buffer. Recomputed
// from scratch on every chunk; never patched incrementally.
type State struct {
	VisibleText string
	IsWaiting   bool
}

// Decode inspects the accumulated response buffer and returns the
// best-effort visible state. It is a pure function of its inputs:
// calling it again on the same buffer yields the same State, and growing
// the buffer never regresses previously visible text.
func Decode(buffer string, finished bool) State {
	trimmed := strings.TrimSpace(buffer)

	// Plain-text replies (legacy model outputs) are shown verbatim.
	if !strings.HasPrefix(trimmed, "{") {
		return State{VisibleText: buffer}
	}

	// Preferred strategy: the whole object has arrived.
	var full struct {
		ChatMessage string `json:"chatMessage"`
	}
	if err := json.Unmarshal([]byte(trimmed), &full); err == nil {
		return State{VisibleText: full.ChatMessage}
	}

	// The object is still streaming. The chatMessage string value has a
	// complete grammar of its own, so it can often be lifted out of the
	// surrounding partial object.
	if msg, ok := extractStringField(buffer, "chatMessage"); ok {
		return State{VisibleText: msg}
	}

	if !finished {
		// A buffer that opens with the ui block will not contain
		// chatMessage for a while; waiting silently beats flashing a
		// spinner for a field that has not started.
		if strings.HasPrefix(trimmed, `{"ui"`) {
			return State{}
		}
		return State{IsWaiting: true}
	}

	// Stream ended and nothing was recoverable: formatting failure,
	// show nothing for this turn.
	return State{}
}

// extractStringField scans for the first occurrence of the given key and
// returns its decoded string value if the value has fully arrived. It
// tolerates arbitrarily broken JSON around the key.
func extractStringField(buffer, key string) (string, bool) {
	needle := `"` + key + `"`
	i := strings.Index(buffer, needle)
	if i < 0 {
		return "", false
	}
	rest := buffer[i+len(needle):]

	j := 0
	for j < len(rest) && isSpace(rest[j]) {
		j++
	}
	if j >= len(rest) || rest[j] != ':' {
		return "", false
	}
	j++
	for j < len(rest) && isSpace(rest[j]) {
		j++
	}
	if j >= len(rest) || rest[j] != '"' {
		return "", false
	}

	start := j
	j++
	for j < len(rest) {
		switch rest[j] {
		case '\\':
			j += 2
		case '"':
			// Complete string literal; let encoding/json decode the
			// escapes (including \uXXXX surrogate pairs).
			var out string
			if err := json.Unmarshal([]byte(rest[start:j+1]), &out); err != nil {
				return "", false
			}
			return out, true
		default:
			j++
		}
	}
	// Closing quote not streamed yet.
	return "", false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
