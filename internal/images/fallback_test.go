package images

import (
	"strings"
	"testing"
)

func TestFallbackSpecificBeatsGeneric(t *testing.T) {
	// "MacBook Air M4" must hit the macbook air entry, not the generic
	// laptop one.
	got := FallbackImage("MacBook Air M4", "laptop")
	if !strings.Contains(got, "photo-1541807084") {
		t.Errorf("got %q, want the macbook air image", got)
	}
}

func TestFallbackDeclarationOrderWins(t *testing.T) {
	// "iphone 16" is declared before "iphone"; a name containing both
	// substrings resolves to the first declared entry.
	got := FallbackImage("iPhone 16 Pro", "phone")
	if !strings.Contains(got, "photo-1715739842155") {
		t.Errorf("got %q, want the iphone 16 image", got)
	}
}

func TestFallbackPunctuationStripped(t *testing.T) {
	got := FallbackImage("MacBook Air (M4, 2025)", "laptop")
	if !strings.Contains(got, "photo-1541807084") {
		t.Errorf("got %q, want the macbook air image", got)
	}
}

func TestFallbackUsesProductType(t *testing.T) {
	got := FallbackImage("Zorblax 9000", "tablet")
	if !strings.Contains(got, "photo-1561154464") {
		t.Errorf("got %q, want the tablet image", got)
	}
}

func TestFallbackDefault(t *testing.T) {
	got := FallbackImage("Zorblax 9000", "toaster")
	if got == "" {
		t.Fatal("fallback must never be empty")
	}
	if !strings.Contains(got, "photo-1496181133206") {
		t.Errorf("got %q, want the generic laptop image", got)
	}
}
