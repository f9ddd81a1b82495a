//go:build mobile

// embed.go - 移动端配置嵌入声明
//
// 构建前需把根目录 data/ 复制到 mobile/data/，再以 -tags mobile 构建。
package mobile

import "embed"

//go:embed data/rounds.yaml data/spawn_rules.yaml data/tuning.yaml
var dataFS embed.FS
