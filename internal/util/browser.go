// Package util 命令行辅助函数
package util

import (
	"fmt"
	"net"
	"os/exec"
	"path/filepath"
	"runtime"
)

// openCommand 按平台构造打开命令
func openCommand(goos, target string) *exec.Cmd {
	switch goos {
	case "windows":
		// rundll32 兼容 Windows 7 及以上
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case "darwin":
		return exec.Command("open", target)
	default:
		return exec.Command("xdg-open", target)
	}
}

// OpenBrowser 打开默认浏览器
func OpenBrowser(url string) error {
	return openCommand(runtime.GOOS, url).Start()
}

// OpenFile 用系统默认程序打开生成的文件
func OpenFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return openCommand(runtime.GOOS, abs).Start()
}

// FindAvailablePort 从 startPort 起查找可监听的端口，最多尝试 20 个
func FindAvailablePort(startPort int) int {
	for port := startPort; port < startPort+20; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			continue
		}
		_ = ln.Close()
		return port
	}
	return startPort
}

// FormatPercent 格式化占比，保留一位小数
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}
