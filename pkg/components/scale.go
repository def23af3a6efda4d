package components

// ScaleComponent 存储实体级别的缩放因子
// 渲染时按此缩放绘制（如方块破碎时的缩小动画）
type ScaleComponent struct {
	ScaleX float64 // 1.0 = 原始大小
	ScaleY float64
}
