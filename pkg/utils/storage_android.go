//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStorageDir 在打开 gdata 之前创建 Android 上的设置目录
// gdata 在 Android 上写入 /data/data/{package}/，但不会创建子目录
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return fmt.Errorf("failed to detect Android package name")
	}
	if err := os.MkdirAll(filepath.Join(dir, "settings"), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory in %s: %w", dir, err)
	}
	return nil
}

// GetStoragePath 返回 /data/data/{package}
// 包名取自 /proc/self/cmdline，失败时返回空字符串
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	app := strings.TrimSpace(strings.ReplaceAll(string(data), "\x00", ""))
	if app == "" {
		return ""
	}
	return filepath.Join("/data/data", app)
}
