package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Profile 玩家进度档案
// 只记录跨局统计，单局内的回合状态从不持久化
type Profile struct {
	BestScore       int `yaml:"bestScore"`       // 历史最高累计分数
	HighestRoundWon int `yaml:"highestRoundWon"` // 通过的最高回合
	RoundsPlayed    int `yaml:"roundsPlayed"`    // 已结束的回合数
	RoundsWon       int `yaml:"roundsWon"`
}

// ProgressManager 进度管理器
// 负责进度档案的加载、保存，并作为 Observer 在回合结束时自动记录
type ProgressManager struct {
	BaseObserver

	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	profile      Profile
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "profile"
)

// NewProgressManager 创建进度管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存记录）
//
// 加载失败不是致命错误，使用空档案继续。
func NewProgressManager(gdataManager *gdata.Manager) *ProgressManager {
	pm := &ProgressManager{gdataManager: gdataManager}
	if err := pm.Load(); err != nil {
		log.Printf("[ProgressManager] Warning: Failed to load profile: %v (starting fresh)", err)
	}
	return pm
}

// Load 从 gdata 加载进度档案
func (pm *ProgressManager) Load() error {
	pm.profile = Profile{}

	if pm.gdataManager == nil {
		return nil
	}
	if !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	var loaded Profile
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	pm.profile = loaded
	log.Printf("[ProgressManager] Profile loaded: best=%d, highest round=%d", loaded.BestScore, loaded.HighestRoundWon)
	return nil
}

// Save 保存进度档案到 gdata
// gdataManager 为 nil 时不做任何事（降级模式，不报错）
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&pm.profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Profile 返回当前档案的副本
func (pm *ProgressManager) Profile() Profile {
	return pm.profile
}

// ResumeRound 建议的起始回合：通过的最高回合的下一回合
func (pm *ProgressManager) ResumeRound() int {
	return pm.profile.HighestRoundWon + 1
}

// RecordWin 记录一次胜利
func (pm *ProgressManager) RecordWin(score, round int) {
	pm.profile.RoundsPlayed++
	pm.profile.RoundsWon++
	pm.profile.BestScore = max(pm.profile.BestScore, score)
	pm.profile.HighestRoundWon = max(pm.profile.HighestRoundWon, round)
}

// RecordLoss 记录一次失败
func (pm *ProgressManager) RecordLoss(score int) {
	pm.profile.RoundsPlayed++
	pm.profile.BestScore = max(pm.profile.BestScore, score)
}

// OnRoundWon 实现 Observer：记录并保存
func (pm *ProgressManager) OnRoundWon(score, round int) {
	pm.RecordWin(score, round)
	if err := pm.Save(); err != nil {
		log.Printf("[ProgressManager] Warning: %v", err)
	}
}

// OnRoundLost 实现 Observer：记录并保存
func (pm *ProgressManager) OnRoundLost(score int) {
	pm.RecordLoss(score)
	if err := pm.Save(); err != nil {
		log.Printf("[ProgressManager] Warning: %v", err)
	}
}
