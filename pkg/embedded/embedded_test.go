package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"game_rules.yaml":  {Data: []byte("level:\n  baseWidth: 7\n")},
		"levels/one.yaml":  {Data: []byte("a")},
		"levels/two.yaml":  {Data: []byte("b")},
		"levels/notes.txt": {Data: []byte("c")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
	Init(nil)
}

// TestNotInitialized 测试未初始化时调用各接口
func TestNotInitialized(t *testing.T) {
	Init(nil)

	if _, err := ReadFile("data/game_rules.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile: got %v, want ErrNotInitialized", err)
	}
	if _, err := Open("data/game_rules.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open: got %v, want ErrNotInitialized", err)
	}
	if _, err := Glob("data/*.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Glob: got %v, want ErrNotInitialized", err)
	}
	if Exists("data/game_rules.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试读取与路径标准化
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	for _, p := range []string{"data/game_rules.yaml", "./data/game_rules.yaml"} {
		data, err := ReadFile(p)
		if err != nil {
			t.Fatalf("ReadFile(%q): %v", p, err)
		}
		if string(data) != "level:\n  baseWidth: 7\n" {
			t.Errorf("ReadFile(%q): got %q", p, data)
		}
	}

	if _, err := ReadFile("assets/game_rules.yaml"); err == nil {
		t.Error("Expected error for unknown prefix")
	}
	if _, err := ReadFile("data/missing.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestExists 测试文件存在检查
func TestExists(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/levels/one.yaml") {
		t.Error("Expected data/levels/one.yaml to exist")
	}
	if Exists("data/levels/three.yaml") {
		t.Error("Expected data/levels/three.yaml not to exist")
	}
}

// TestGlob 测试匹配结果带前缀
func TestGlob(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	matches, err := Glob("data/levels/*.yaml")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	want := []string{"data/levels/one.yaml", "data/levels/two.yaml"}
	if len(matches) != len(want) {
		t.Fatalf("Glob: got %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Errorf("Glob[%d]: got %s, want %s", i, matches[i], want[i])
		}
	}
}

// TestReadDir 测试读取目录
func TestReadDir(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	entries, err := ReadDir("data/levels")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("ReadDir: got %d entries, want 3", len(entries))
	}

	root, err := ReadDir("data/")
	if err != nil {
		t.Fatalf("ReadDir(data/): %v", err)
	}
	if len(root) != 2 {
		t.Errorf("ReadDir(data/): got %d entries, want 2", len(root))
	}
}
