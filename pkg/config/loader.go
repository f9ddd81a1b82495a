package config

import (
	"fmt"
	"os"

	"github.com/decker502/skyshot/pkg/embedded"
)

// readConfigFile 读取配置文件
//
// 优先从嵌入资源读取（发布版本），嵌入资源未初始化或不存在该文件时回退到文件系统，
// 便于测试和开发时直接加载磁盘上的 YAML。
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded config %s: %w", path, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return data, nil
}

// Bundle 聚合引擎运行所需的全部配置
type Bundle struct {
	Rounds *RoundTable
	Spawn  *SpawnRulesConfig
	Tuning *TuningConfig
}

// 默认配置文件路径
const (
	RoundsPath     = "data/rounds.yaml"
	SpawnRulesPath = "data/spawn_rules.yaml"
	TuningPath     = "data/tuning.yaml"
)

// LoadBundle 从默认路径加载所有配置
func LoadBundle() (*Bundle, error) {
	rounds, err := LoadRoundTable(RoundsPath)
	if err != nil {
		return nil, err
	}
	spawn, err := LoadSpawnRules(SpawnRulesPath)
	if err != nil {
		return nil, err
	}
	tuning, err := LoadTuning(TuningPath)
	if err != nil {
		return nil, err
	}
	return &Bundle{Rounds: rounds, Spawn: spawn, Tuning: tuning}, nil
}

// DefaultBundle 返回内置默认配置（与 data/ 目录下的文件一致）
func DefaultBundle() *Bundle {
	return &Bundle{
		Rounds: DefaultRoundTable(),
		Spawn:  DefaultSpawnRules(),
		Tuning: DefaultTuning(),
	}
}
