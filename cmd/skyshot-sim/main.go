// skyshot-sim 无界面运行若干回合，由机器人玩家射击，输出每回合汇总
//
// 用法:
//
//	go run ./cmd/skyshot-sim --rounds 5 --seed 42 [--reaction 250] [--feed :8090] [--verbose]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/decker502/skyshot/pkg/config"
	"github.com/decker502/skyshot/pkg/session"
	"github.com/decker502/skyshot/pkg/sim"
	"github.com/decker502/skyshot/pkg/types"
)

var (
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
	rounds   = flag.Int("rounds", 5, "模拟的回合数")
	start    = flag.Int("round", 1, "起始回合")
	seed     = flag.Int64("seed", 1, "随机种子")
	frame    = flag.Float64("frame", 1000.0/60, "帧长（毫秒）")
	reaction = flag.Float64("reaction", 250, "机器人两次射击的最短间隔（毫秒）")
	feedAddr = flag.String("feed", "", "旁观者 websocket 广播地址，如 :8090")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	bundle, err := config.LoadBundle()
	if err != nil {
		log.Printf("[Sim] Using built-in configuration: %v", err)
		bundle = config.DefaultBundle()
	}

	s, err := session.Open(context.Background(), session.Config{
		Round:     *start,
		Seed:      *seed,
		FeedAddr:  *feedAddr,
		NoStorage: true,
		Bundle:    bundle,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "skyshot-sim: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	fmt.Printf("=== 模拟 %d 个回合（种子 %d）===\n\n", *rounds, *seed)
	fmt.Printf("%-6s %-6s %8s %12s %6s  %s\n", "ROUND", "RESULT", "SCORE", "ROUND/TARGET", "HITS", "SPAWNED")

	bot := sim.NewBot(*reaction)
	for range *rounds {
		report, err := sim.Play(s.Engine, bot, *frame)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skyshot-sim: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%-6d %-6s %8d %12s %6d  %s\n",
			report.Round, report.Phase, report.Score,
			fmt.Sprintf("%d/%d", report.RoundScore, report.Target),
			report.Hits, formatSpawned(report.Spawned))

		if err := s.Advance(); err != nil {
			fmt.Fprintf(os.Stderr, "skyshot-sim: %v\n", err)
			os.Exit(1)
		}
	}
}

// formatSpawned 按名称排序输出各种类的生成数量
func formatSpawned(spawned map[types.Variant]int) string {
	parts := make([]string, 0, len(spawned))
	for v, n := range spawned {
		parts = append(parts, fmt.Sprintf("%s=%d", v, n))
	}
	slices.Sort(parts)
	return strings.Join(parts, " ")
}
