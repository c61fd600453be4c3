//go:build !mobile

package utils

import "os"

// IsMobile 是否按移动端方式运行（无悬停、无全屏快捷键）
// 桌面端可以设置 VALENTINE_MOBILE_EMULATE=1 模拟
func IsMobile() bool {
	return os.Getenv("VALENTINE_MOBILE_EMULATE") == "1"
}
