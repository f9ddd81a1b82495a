package utils

import "math/rand"

// RandomSource 随机数来源
// *rand.Rand 满足此接口；测试中使用 SequenceRandom 获得确定性结果
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// NewRandomSource 创建一个以 seed 为种子的随机数来源
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// RandRange 返回 [min, max] 范围内的随机整数
func RandRange(rng RandomSource, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// SequenceRandom 按给定序列循环返回浮点数的随机来源
//
// Float64 依次返回 values 中的值；Intn 使用下一个值乘以 n 向下取整。
// 序列为空时始终返回 Fallback。
type SequenceRandom struct {
	values   []float64
	index    int
	Fallback float64
}

// NewSequenceRandom 创建确定性随机来源
func NewSequenceRandom(values ...float64) *SequenceRandom {
	return &SequenceRandom{values: values, Fallback: 0.99}
}

// Float64 返回序列中的下一个值，序列耗尽后返回 Fallback
func (s *SequenceRandom) Float64() float64 {
	if s.index >= len(s.values) {
		return s.Fallback
	}
	v := s.values[s.index]
	s.index++
	return v
}

// Intn 返回 [0, n) 内的整数
func (s *SequenceRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(s.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Push 追加序列值
func (s *SequenceRandom) Push(values ...float64) {
	s.values = append(s.values, values...)
}
