package components

// ClickableComponent 可以被点中的实体
// 爱心按圆形检测，Radius 为未缩放时的半径（逻辑像素）
type ClickableComponent struct {
	Radius    float64
	IsEnabled bool // 接住后立即置为 false，同一帧的重复点击不再计分
}
