package game

import (
	"testing"

	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/types"
)

func newRunningState(t *testing.T, round int) *RoundState {
	t.Helper()
	cfg, err := config.DefaultRoundTable().ForRound(round)
	if err != nil {
		t.Fatalf("ForRound(%d) failed: %v", round, err)
	}
	rs := NewRoundState()
	rs.Reset(round, cfg, config.DefaultTuning().Ledger)
	return rs
}

func TestRoundStateReset(t *testing.T) {
	rs := newRunningState(t, 2)
	rs.RecordSpawn(types.VariantGoldenClock)
	rs.StartParty(5)
	rs.SpawnAccumulator = 500
	rs.Ledger.Bullets = 3
	rs.Ledger.GrantFullAuto(5, 80)

	cfg, _ := config.DefaultRoundTable().ForRound(3)
	rs.Reset(3, cfg, config.DefaultTuning().Ledger)

	if rs.Phase != PhaseRunning {
		t.Errorf("Phase = %s, want running", rs.Phase)
	}
	if rs.SpawnCount(types.VariantGoldenClock) != 0 {
		t.Error("spawn counters should be cleared")
	}
	if rs.PartyActive || rs.SpawnAccumulator != 0 {
		t.Error("party mode and spawn accumulator should be cleared")
	}
	if rs.Ledger.Bullets != 50 || rs.Ledger.Shells != 5 || rs.Ledger.FullAutoActive {
		t.Errorf("ledger not reset: %+v", rs.Ledger)
	}
	if rs.TimeLeft != 30 {
		t.Errorf("TimeLeft = %v, want 30", rs.TimeLeft)
	}
}

func TestRoundScoreAndTarget(t *testing.T) {
	rs := newRunningState(t, 1)
	rs.Score = 100
	rs.ScoreAtRoundStart = 70

	if rs.RoundScore() != 30 {
		t.Errorf("RoundScore() = %d, want 30", rs.RoundScore())
	}
	if rs.TargetReached() {
		t.Error("30 < 35 should not reach the target")
	}
	rs.AddScore(5)
	if !rs.TargetReached() {
		t.Error("35 >= 35 should reach the target")
	}
}

func TestApplyPenaltyClampsAtZero(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		penalty   int
		wantScore int
		wantTaken int
	}{
		{"normal", 10, 3, 7, 3},
		{"clamped", 2, 3, 0, 2},
		{"already zero", 0, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewRoundState()
			rs.Score = tt.score
			taken := rs.ApplyPenalty(tt.penalty)
			if rs.Score != tt.wantScore || taken != tt.wantTaken {
				t.Errorf("score=%d taken=%d, want score=%d taken=%d", rs.Score, taken, tt.wantScore, tt.wantTaken)
			}
		})
	}
}

func TestPartyMode(t *testing.T) {
	rs := NewRoundState()

	if !rs.StartParty(5) {
		t.Fatal("first StartParty should succeed")
	}
	if rs.StartParty(5) {
		t.Error("StartParty while active should be ignored")
	}
	if rs.TickParty(4.9) {
		t.Error("party should still be active at 4.9s")
	}
	if !rs.TickParty(0.1) {
		t.Error("party should end at 5s")
	}
	if rs.PartyActive {
		t.Error("PartyActive should be false after expiry")
	}
	if rs.TickParty(1) {
		t.Error("inactive party should not report expiry again")
	}
}

func TestTimeLeftCeil(t *testing.T) {
	rs := NewRoundState()
	for _, tt := range []struct {
		left float64
		want int
	}{{29.01, 30}, {30, 30}, {0.2, 1}, {0, 0}, {-1, 0}} {
		rs.TimeLeft = tt.left
		if got := rs.TimeLeftCeil(); got != tt.want {
			t.Errorf("TimeLeftCeil(%v) = %d, want %d", tt.left, got, tt.want)
		}
	}
}
