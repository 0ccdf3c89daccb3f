package stream

import (
	"testing"
)

func TestDecodePlainText(t *testing.T) {
	got := Decode("Sorry, I can only help with tech questions.", false)
	if got.VisibleText != "Sorry, I can only help with tech questions." {
		t.Errorf("VisibleText = %q", got.VisibleText)
	}
	if got.IsWaiting {
		t.Error("plain text must not be waiting")
	}
}

func TestDecodeCompleteObject(t *testing.T) {
	buffer := `{"chatMessage":"Go with the Air. What's your budget?","ui":{"products":[],"explanations":[]}}`
	got := Decode(buffer, true)
	if got.VisibleText != "Go with the Air. What's your budget?" {
		t.Errorf("VisibleText = %q", got.VisibleText)
	}
	if got.IsWaiting {
		t.Error("complete object must not be waiting")
	}
}

func TestDecodeCompleteObjectWithoutChatMessage(t *testing.T) {
	got := Decode(`{"ui":{"products":[]}}`, true)
	if got.VisibleText != "" || got.IsWaiting {
		t.Errorf("got %+v, want empty non-waiting state", got)
	}
}

func TestDecodeIncompleteValueIsWaiting(t *testing.T) {
	// The string value has no closing quote yet.
	got := Decode(`{"chatMessage":"Here are`, false)
	if got.VisibleText != "" {
		t.Errorf("VisibleText = %q, want empty", got.VisibleText)
	}
	if !got.IsWaiting {
		t.Error("expected waiting state while the value streams")
	}
}

func TestDecodePartialObjectWithCompleteValue(t *testing.T) {
	got := Decode(`{"chatMessage":"Here are two laptops 🎮","ui":{`, false)
	if got.VisibleText != "Here are two laptops 🎮" {
		t.Errorf("VisibleText = %q", got.VisibleText)
	}
	if got.IsWaiting {
		t.Error("complete value must not be waiting")
	}
}

func TestDecodeUIPrefixWaitsSilently(t *testing.T) {
	got := Decode(`{"ui":{"products":[{"name":"iPad`, false)
	if got.VisibleText != "" {
		t.Errorf("VisibleText = %q, want empty", got.VisibleText)
	}
	if got.IsWaiting {
		t.Error("ui-only prefix must wait silently, not show a spinner")
	}
}

func TestDecodeFinishedUnrecoverable(t *testing.T) {
	got := Decode(`{"chatMessage": [broken`, true)
	if got.VisibleText != "" || got.IsWaiting {
		t.Errorf("got %+v, want empty non-waiting state", got)
	}
}

func TestDecodeEscapedValue(t *testing.T) {
	buffer := `{"chatMessage":"Line one\nSaid \"sure\" — done","ui":{`
	got := Decode(buffer, false)
	want := "Line one\nSaid \"sure\" — done"
	if got.VisibleText != want {
		t.Errorf("VisibleText = %q, want %q", got.VisibleText, want)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	buffers := []string{
		`{"chatMessage":"hello","ui":{}}`,
		`{"chatMessage":"hel`,
		`plain text`,
	}
	for _, b := range buffers {
		first := Decode(b, true)
		second := Decode(b, true)
		if first != second {
			t.Errorf("Decode(%q) not idempotent: %+v vs %+v", b, first, second)
		}
	}
}

// Growing prefixes of a valid final buffer must never replace previously
// visible text with an empty state, and the full buffer must yield the
// complete message.
func TestDecodeMonotonicOverPrefixes(t *testing.T) {
	final := `{"chatMessage":"Two strong picks here 🎮 \"trust me\". What's your budget?","ui":{"products":[{"name":"MacBook Air M4"}],"explanations":[]}}`
	want := "Two strong picks here 🎮 \"trust me\". What's your budget?"

	var seen string
	for k := 1; k <= len(final); k++ {
		state := Decode(final[:k], k == len(final))
		if seen != "" && state.VisibleText == "" {
			t.Fatalf("prefix %d regressed from %q to empty", k, seen)
		}
		if state.VisibleText != "" {
			seen = state.VisibleText
		}
	}
	if seen != want {
		t.Errorf("final visible text = %q, want %q", seen, want)
	}
}
