//go:build !mobile

// 桌面构建时 mobile 包只保留这个占位文件。
// gomobile bind 使用 -tags mobile 编译 mobile.go 和 embed.go，
// 文案需要先通过 make prepare-mobile 复制到 mobile/data。
package mobile

// Dummy 让桌面构建也能引用本包
func Dummy() {}
