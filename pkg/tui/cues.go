package tui

import (
	"log"
	"sync"
	"time"

	"github.com/decker502/skyshot/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const cueSampleRate = beep.SampleRate(44100)

// cue 一个提示音：正弦波频率与时长
type cue struct {
	freq     float64
	duration time.Duration
}

var cues = map[game.NoticeKind]cue{
	game.NoticeBossSpawned:     {110, 400 * time.Millisecond},
	game.NoticeBossRoar:        {80, 300 * time.Millisecond},
	game.NoticeTrample:         {1200, 60 * time.Millisecond}, // 吱
	game.NoticeDetonation:      {60, 350 * time.Millisecond},
	game.NoticeCelebration:     {880, 250 * time.Millisecond},
	game.NoticeFullAutoStarted: {660, 120 * time.Millisecond},
	game.NoticeFullAutoExpired: {220, 200 * time.Millisecond},
	game.NoticePartyStarted:    {1046, 300 * time.Millisecond},
	game.NoticePartyEnded:      {523, 150 * time.Millisecond},
}

// CuePlayer 把引擎通知转成提示音
//
// 音频设备不可用时所有操作都是空操作，游戏照常运行。
type CuePlayer struct {
	game.BaseObserver

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewCuePlayer 创建提示音播放器，需调用 Initialize 才会发声
func NewCuePlayer() *CuePlayer {
	return &CuePlayer{mixer: &beep.Mixer{}}
}

// Initialize 打开音频设备
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(cueSampleRate, cueSampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close 停止所有提示音
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

func (p *CuePlayer) OnNotice(n game.Notice) {
	c, ok := cues[n.Kind]
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}

	tone, err := generators.SineTone(cueSampleRate, c.freq)
	if err != nil {
		log.Printf("[CuePlayer] Failed to create tone for %s: %v", n.Kind, err)
		return
	}
	quiet := &effects.Volume{
		Streamer: beep.Take(cueSampleRate.N(c.duration), tone),
		Base:     2,
		Volume:   -3,
	}
	speaker.Lock()
	p.mixer.Add(quiet)
	speaker.Unlock()
}
