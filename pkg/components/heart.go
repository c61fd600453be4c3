package components

import "time"

// HeartComponent 标记实体为小游戏中的爱心
type HeartComponent struct {
	Size float64       // 爱心尺寸(逻辑像素)
	Age  time.Duration // 出现后经过的时间，用于弹出/漂浮动画
}
