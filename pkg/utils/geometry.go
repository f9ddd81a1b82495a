package utils

import "math"

// Distance 两点之间的欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// BottomAnchoredRect 以底边中点 (x, y) 定位的矩形的边界
func BottomAnchoredRect(x, y, width, height float64) (left, top, right, bottom float64) {
	return x - width/2, y - height, x + width/2, y
}

// PointInBottomAnchoredRect 判断点是否位于以底边中点定位的矩形内（含边界）
func PointInBottomAnchoredRect(px, py, x, y, width, height float64) bool {
	left, top, right, bottom := BottomAnchoredRect(x, y, width, height)
	return px >= left && px <= right && py >= top && py <= bottom
}

// DistanceToBottomAnchoredRect 点到矩形的最近距离，点在矩形内时为 0
func DistanceToBottomAnchoredRect(px, py, x, y, width, height float64) float64 {
	left, top, right, bottom := BottomAnchoredRect(x, y, width, height)
	cx := math.Max(left, math.Min(px, right))
	cy := math.Max(top, math.Min(py, bottom))
	return math.Hypot(px-cx, py-cy)
}

// IsFinite 所有参数都是有限值
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
