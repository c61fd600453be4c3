package components

// PositionComponent 存储实体的位置
// 爱心使用屏幕百分比坐标 (0~100)，渲染时再换算为像素
type PositionComponent struct {
	X float64
	Y float64
}
