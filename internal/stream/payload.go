package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"barnabus-backend/internal/types"
)

var (
	ErrNoJSONFound   = errors.New("no json object found in response")
	ErrMalformedJSON = errors.New("malformed json in response")
)

// wirePayload is the JSON shape the model is instructed to produce:
// chat text at the top level, structured UI nested under "ui".
type wirePayload struct {
	ChatMessage  string `json:"chatMessage"`
	ResponseType string `json:"responseType"`
	UI           struct {
		Products         []types.Product     `json:"products"`
		Explanations     []types.Explanation `json:"explanations"`
		DynamicComponent string              `json:"dynamicComponent"`
	} `json:"ui"`
}

// componentPolicy keeps the model's Tailwind-styled markup renderable
// while stripping anything executable. The class attribute carries all
// of the styling, so it has to survive sanitization.
var componentPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}()

// ParsePayload parses the fully-assembled text of an assistant turn into
// a normalized payload. Prose around the JSON object is tolerated, as is
// a double-encoded (string-wrapped) object. Failure is always local to
// the turn; callers log and move on.
func ParsePayload(finalText string) (*types.ResponsePayload, error) {
	trimmed := strings.TrimSpace(finalText)

	// Models occasionally return the object encoded as a JSON string.
	var inner string
	if err := json.Unmarshal([]byte(trimmed), &inner); err == nil {
		return ParsePayload(inner)
	}

	span, err := jsonSpan(finalText)
	if err != nil {
		return nil, err
	}

	var wp wirePayload
	if err := json.Unmarshal([]byte(span), &wp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	out := &types.ResponsePayload{
		ChatMessage:  wp.ChatMessage,
		Products:     wp.UI.Products,
		Explanations: wp.UI.Explanations,
		// Unknown responseType values pass through; the renderer treats
		// them as plain explanations rather than errors.
		ResponseType: wp.ResponseType,
	}
	if out.Products == nil {
		out.Products = []types.Product{}
	}
	if out.Explanations == nil {
		out.Explanations = []types.Explanation{}
	}
	if wp.UI.DynamicComponent != "" {
		out.DynamicComponent = componentPolicy.Sanitize(wp.UI.DynamicComponent)
	}
	return out, nil
}

// jsonSpan returns the substring from the first '{' to its balanced
// closing '}'. Braces inside string literals do not count toward the
// balance.
func jsonSpan(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSONFound
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unbalanced braces", ErrMalformedJSON)
}
