package game

import (
	"fmt"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata 管理器
// 同一测试中多次调用返回指向同一存储的新管理器，用于模拟重启
func openTestGdata(t *testing.T) func() *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	appName := fmt.Sprintf("brickdigger_test_%s", sanitize(t.Name()))

	return func() *gdata.Manager {
		t.Helper()
		m, err := gdata.Open(gdata.Config{AppName: appName})
		if err != nil {
			t.Fatalf("Failed to create gdata manager: %v", err)
		}
		return m
	}
}

func sanitize(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}
