package app

import (
	"image/color"
	"strings"
	"testing"

	"github.com/decker502/skyshot/pkg/game"
)

func TestBannerExpires(t *testing.T) {
	h := newHUD()
	h.OnNotice(game.Notice{Kind: game.NoticeTrample})
	if h.banner != "TRAMPLED!" {
		t.Fatalf("banner = %q", h.banner)
	}

	h.update(bannerDuration / 2)
	if h.banner == "" {
		t.Fatal("banner cleared too early")
	}
	h.update(bannerDuration / 2)
	if h.banner != "" {
		t.Errorf("banner = %q, want cleared after %vs", h.banner, bannerDuration)
	}

	// 无提示的事件不覆盖当前横幅
	h.show("HELLO")
	h.OnNotice(game.Notice{Kind: game.NoticeBossRoar})
	if h.banner != "HELLO" {
		t.Errorf("banner = %q, want HELLO", h.banner)
	}
}

func TestOutcomePrompt(t *testing.T) {
	h := newHUD()
	h.OnRoundWon(36, 1)
	if !strings.Contains(h.lastOutcome, "ROUND 1 CLEARED") || !strings.Contains(h.lastOutcome, "36") {
		t.Errorf("won prompt = %q", h.lastOutcome)
	}
	h.OnRoundLost(12)
	if !strings.HasPrefix(h.lastOutcome, "TIME UP! SCORE 12") {
		t.Errorf("lost prompt = %q", h.lastOutcome)
	}
}

func TestFade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if got := fade(c, 1); got != c {
		t.Errorf("fade(1) = %v, want %v", got, c)
	}
	if got := fade(c, 0); got != (color.RGBA{}) {
		t.Errorf("fade(0) = %v, want transparent", got)
	}
	if got := fade(c, 2); got != c {
		t.Errorf("fade clamps above 1, got %v", got)
	}
}
