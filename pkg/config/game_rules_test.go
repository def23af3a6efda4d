package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultGameRules 测试默认规则数值
func TestDefaultGameRules(t *testing.T) {
	rules := DefaultGameRules()

	if rules.Level.BaseWidth != 7 || rules.Level.Height != 15 {
		t.Errorf("Level size: got %dx%d, want 7x15", rules.Level.BaseWidth, rules.Level.Height)
	}
	if rules.Level.MinAxes != 20 {
		t.Errorf("MinAxes: got %d, want 20", rules.Level.MinAxes)
	}
	if rules.Economy.WinBonus != 5 || rules.Economy.AxePrice != 5 || rules.Economy.AxePack != 3 {
		t.Errorf("Economy: got %+v, want bonus 5, price 5, pack 3", rules.Economy)
	}
	if rules.Timing.DigDuration != 0.3 || rules.Timing.DigCooldown != 0.5 {
		t.Errorf("Dig timing: got %v/%v, want 0.3/0.5", rules.Timing.DigDuration, rules.Timing.DigCooldown)
	}
	if rules.Movement.Gravity != -20 {
		t.Errorf("Gravity: got %v, want -20", rules.Movement.Gravity)
	}
}

// TestLoadGameRules 测试规则文件加载
func TestLoadGameRules(t *testing.T) {
	t.Run("partial config keeps defaults", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "rules.yaml")

		partialYAML := `level:
  baseWidth: 9
economy:
  winBonus: 10
timing:
  digDuration: 0.1
`
		if err := os.WriteFile(testFile, []byte(partialYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		rules, err := LoadGameRules(testFile)
		if err != nil {
			t.Fatalf("LoadGameRules() failed: %v", err)
		}

		if rules.Level.BaseWidth != 9 {
			t.Errorf("BaseWidth: got %d, want 9", rules.Level.BaseWidth)
		}
		if rules.Level.Height != 15 {
			t.Errorf("Height: got %d, want default 15", rules.Level.Height)
		}
		if rules.Economy.WinBonus != 10 {
			t.Errorf("WinBonus: got %d, want 10", rules.Economy.WinBonus)
		}
		if rules.Economy.AxePack != 3 {
			t.Errorf("AxePack: got %d, want default 3", rules.Economy.AxePack)
		}
		if rules.Timing.DigDuration != 0.1 {
			t.Errorf("DigDuration: got %v, want 0.1", rules.Timing.DigDuration)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadGameRules(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := ParseGameRules([]byte("level: [")); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

// TestValidateGameRules 测试非法规则被拒绝
func TestValidateGameRules(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"positive gravity", "movement:\n  gravity: 5\n"},
		{"negative price", "economy:\n  axePrice: -1\n"},
		{"negative width", "level:\n  baseWidth: -3\n"},
		{"width below piece size", "level:\n  baseWidth: 4\n"},
		{"single row", "level:\n  height: 1\n"},
		{"starting character out of range", "economy:\n  characterCount: 2\n  startingCharacter: 3\n"},
		{"negative timing", "timing:\n  outcomeDelay: -0.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGameRules([]byte(tt.yaml)); err == nil {
				t.Errorf("ParseGameRules(%q): expected validation error", tt.yaml)
			}
		})
	}
}

// TestValidateGameRulesMinBoardSize 测试最小边长的规则可以通过校验
func TestValidateGameRulesMinBoardSize(t *testing.T) {
	rules, err := ParseGameRules([]byte("level:\n  baseWidth: 5\n  height: 5\n"))
	if err != nil {
		t.Fatalf("ParseGameRules: unexpected error %v", err)
	}
	if rules.Level.BaseWidth != MinBoardSize || rules.Level.Height != MinBoardSize {
		t.Errorf("Level size: got %dx%d, want %dx%d", rules.Level.BaseWidth, rules.Level.Height, MinBoardSize, MinBoardSize)
	}
}
