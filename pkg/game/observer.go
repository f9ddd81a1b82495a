package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/decker502/skyshot/pkg/types"
)

// Telemetry 每帧上报给外部的状态快照
type Telemetry struct {
	Score          int  `json:"score"`
	RoundScore     int  `json:"roundScore"`
	Bullets        int  `json:"bullets"` // 全自动模式下为 UnlimitedAmmo
	Shells         int  `json:"shells"`
	Round          int  `json:"round"`
	TimeLeft       int  `json:"time"` // 向上取整的剩余秒数
	Target         int  `json:"target"`
	FullAutoActive bool `json:"fullAutoActive"`
	PartyActive    bool `json:"partyActive"`
}

// String 单行状态栏文字，全自动模式下子弹显示为 AUTO
func (t Telemetry) String() string {
	bullets := strconv.Itoa(t.Bullets)
	if t.Bullets == UnlimitedAmmo {
		bullets = "AUTO"
	}
	status := fmt.Sprintf("ROUND %d  SCORE %d  TARGET %d/%d  TIME %d  BULLETS %s  SHELLS %d",
		t.Round, t.Score, t.RoundScore, t.Target, t.TimeLeft, bullets, t.Shells)
	if t.PartyActive {
		status += "  PARTY!"
	}
	return status
}

// NoticeKind 事件通知类型，外部可据此播放音效或提示
type NoticeKind int

const (
	NoticeBossSpawned NoticeKind = iota
	NoticeBossRoar
	NoticeTrample
	NoticeDetonation
	NoticeCelebration
	NoticeFullAutoStarted
	NoticeFullAutoExpired
	NoticePartyStarted
	NoticePartyEnded
)

var noticeNames = map[NoticeKind]string{
	NoticeBossSpawned:     "boss_spawned",
	NoticeBossRoar:        "boss_roar",
	NoticeTrample:         "trample",
	NoticeDetonation:      "detonation",
	NoticeCelebration:     "celebration",
	NoticeFullAutoStarted: "full_auto_started",
	NoticeFullAutoExpired: "full_auto_expired",
	NoticePartyStarted:    "party_started",
	NoticePartyEnded:      "party_ended",
}

func (k NoticeKind) String() string {
	if name, ok := noticeNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText 通知类型以名称形式序列化
func (k NoticeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Notice 一次事件通知
type Notice struct {
	Kind    NoticeKind    `json:"kind"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Variant types.Variant `json:"variant"`
}

// Headline 事件对应的横幅文字，空字符串表示不需要横幅
// 命中类事件已有飘字反馈，吼叫只作为音效提示
func (n Notice) Headline() string {
	switch n.Kind {
	case NoticeBossSpawned:
		return strings.ToUpper(n.Variant.String()) + " INCOMING!"
	case NoticeTrample:
		return "TRAMPLED!"
	case NoticeFullAutoExpired:
		return "FULL AUTO OVER"
	case NoticePartyEnded:
		return "PARTY'S OVER"
	}
	return ""
}

// Observer 引擎的外部协作者
//
// 引擎从不直接渲染、播放音效或访问网络，所有结果都通过 Observer 上报。
type Observer interface {
	OnTick(t Telemetry)
	OnRoundWon(score, round int)
	OnRoundLost(score int)
	OnScoreChanged(score, round int)
	OnNotice(n Notice)
}

// BaseObserver 空实现，嵌入后只需覆盖关心的方法
type BaseObserver struct{}

func (BaseObserver) OnTick(Telemetry)        {}
func (BaseObserver) OnRoundWon(int, int)     {}
func (BaseObserver) OnRoundLost(int)         {}
func (BaseObserver) OnScoreChanged(int, int) {}
func (BaseObserver) OnNotice(Notice)         {}

// MultiObserver 将事件依次分发给多个 Observer
type MultiObserver []Observer

func (m MultiObserver) OnTick(t Telemetry) {
	for _, o := range m {
		o.OnTick(t)
	}
}

func (m MultiObserver) OnRoundWon(score, round int) {
	for _, o := range m {
		o.OnRoundWon(score, round)
	}
}

func (m MultiObserver) OnRoundLost(score int) {
	for _, o := range m {
		o.OnRoundLost(score)
	}
}

func (m MultiObserver) OnScoreChanged(score, round int) {
	for _, o := range m {
		o.OnScoreChanged(score, round)
	}
}

func (m MultiObserver) OnNotice(n Notice) {
	for _, o := range m {
		o.OnNotice(n)
	}
}
