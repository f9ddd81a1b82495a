package session

import (
	"context"
	"testing"

	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/game"
)

type outcomeCounter struct {
	game.BaseObserver
	lost int
}

func (o *outcomeCounter) OnRoundLost(int) { o.lost++ }

func openTestSession(t *testing.T, cfg Config, extra ...game.Observer) *Session {
	t.Helper()
	cfg.NoStorage = true
	cfg.Bundle = config.DefaultBundle()
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	s, err := Open(context.Background(), cfg, extra...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestOpenStartsRound(t *testing.T) {
	tests := []struct {
		name      string
		round     int
		wantRound int
	}{
		{"explicit round", 3, 3},
		{"resume from empty profile", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestSession(t, Config{Round: tt.round})
			if s.Engine.Round() != tt.wantRound {
				t.Errorf("Round() = %d, want %d", s.Engine.Round(), tt.wantRound)
			}
			if s.Engine.Phase() != game.PhaseRunning {
				t.Errorf("Phase() = %s, want running", s.Engine.Phase())
			}
			if s.Feed != nil {
				t.Error("feed should not start without an address")
			}
		})
	}
}

func TestAdvanceAfterLoss(t *testing.T) {
	counter := &outcomeCounter{}
	s := openTestSession(t, Config{Round: 2}, counter)

	if err := s.Advance(); err != nil {
		t.Fatalf("Advance() while running should be a no-op: %v", err)
	}

	// 不射击直接耗尽时间：必然失败
	for s.Engine.Phase() == game.PhaseRunning {
		if err := s.Engine.Tick(1000); err != nil {
			t.Fatal(err)
		}
	}
	if s.Engine.Phase() != game.PhaseLost || counter.lost != 1 {
		t.Fatalf("phase %s, lost callbacks %d", s.Engine.Phase(), counter.lost)
	}
	if s.Progress.Profile().RoundsPlayed != 1 {
		t.Error("progress manager should record the finished round")
	}

	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	if s.Engine.Round() != 2 || s.Engine.Phase() != game.PhaseRunning {
		t.Errorf("after retry: round %d phase %s", s.Engine.Round(), s.Engine.Phase())
	}
}

func TestCloseAbandonsRound(t *testing.T) {
	s := openTestSession(t, Config{Round: 1, FeedAddr: "127.0.0.1:0"})
	if s.Feed == nil {
		t.Fatal("feed should start when an address is given")
	}

	s.Close()
	if s.Engine.Phase() != game.PhaseIdle {
		t.Errorf("Phase() after Close = %s, want idle", s.Engine.Phase())
	}
	// 重复关闭是安全的
	s.Close()
}
