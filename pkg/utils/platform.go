package utils

import "os"

// MobileEmulateEnv 设为 1 时桌面端也按移动设备处理（显示虚拟摇杆和触摸按钮，用于本地调试）
const MobileEmulateEnv = "BRICKDIGGER_MOBILE_EMULATE"

// IsMobile 检测是否按移动设备运行
// 带 mobile 标签编译时总是 true，否则由 MobileEmulateEnv 决定
func IsMobile() bool {
	return mobileBuild || os.Getenv(MobileEmulateEnv) == "1"
}
