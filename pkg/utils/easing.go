package utils

import "math"

// 缓动函数
// 输入进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]

// EaseOutCubic 三次方缓出，开始快结束慢（加载条填充）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInQuad 二次方缓入，开始慢结束快（方块破碎缩小）
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(t float64) float64 {
	return max(0, min(t, 1))
}
