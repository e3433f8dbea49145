package ui

import (
	"fmt"
	"strings"
	"testing"
)

// TestBannerPreview prints the banner so `go test ./pkg/ui -run TestBannerPreview` shows it.
func TestBannerPreview(t *testing.T) {
	fmt.Println(Banner())
}

func TestBannerIncludesWordmark(t *testing.T) {
	banner := Banner()
	if !strings.Contains(banner, "memtop") {
		t.Fatalf("banner missing memtop wordmark: %q", banner)
	}
	if !strings.Contains(banner, "proportional memory lens") {
		t.Fatalf("banner missing tagline")
	}
	lines := strings.Split(strings.TrimSpace(banner), "\n")
	if len(lines) < 7 {
		t.Fatalf("expected multi-line banner, got %d lines", len(lines))
	}
}

func TestBannerUsesGradientColors(t *testing.T) {
	banner := Banner()
	colors := []string{bold, emberRed, amber, gold, mint, cobalt, deepIndigo}
	for _, color := range colors {
		if !strings.Contains(banner, color) {
			t.Fatalf("banner missing color code %q", color)
		}
	}
}
