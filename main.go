package main

import (
	"flag"
	"log"

	"github.com/decker502/skyshot/pkg/app"
	"github.com/decker502/skyshot/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
	round    = flag.Int("round", 0, "起始回合（0 表示从进度档案续玩）")
	seed     = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	feedAddr = flag.String("feed", "", "旁观者 websocket 广播地址，如 :8090")
)

func main() {
	flag.Parse()

	// 初始化嵌入配置，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		Round:    *round,
		Seed:     *seed,
		FeedAddr: *feedAddr,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	w, h := gameApp.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Sky Shot")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
