package app

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/embedded"
)

func TestLoadRulesDefaultsWithoutEmbeddedData(t *testing.T) {
	embedded.Init(nil)

	rules, err := LoadRules("", nil)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if rules.Level.BaseWidth != 7 {
		t.Errorf("BaseWidth: got %d, want 7", rules.Level.BaseWidth)
	}
}

func TestLoadRulesFromEmbeddedData(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"game_rules.yaml": {Data: []byte("economy:\n  winBonus: 9\n")},
	})
	defer embedded.Init(nil)

	rules, err := LoadRules("", nil)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if rules.Economy.WinBonus != 9 {
		t.Errorf("WinBonus: got %d, want 9", rules.Economy.WinBonus)
	}
	if rules.Economy.AxePrice != 5 {
		t.Errorf("AxePrice default: got %d, want 5", rules.Economy.AxePrice)
	}
}

func TestLoadRulesInvalidEmbeddedDataFallsBack(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"game_rules.yaml": {Data: []byte("movement:\n  gravity: 5\n")},
	})
	defer embedded.Init(nil)

	rules, err := LoadRules("", nil)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if rules.Movement.Gravity != config.DefaultGameRules().Movement.Gravity {
		t.Errorf("Gravity: got %v, want default", rules.Movement.Gravity)
	}
}

func TestLoadRulesFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("level:\n  baseWidth: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path, nil)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if rules.Level.BaseWidth != 9 {
		t.Errorf("BaseWidth: got %d, want 9", rules.Level.BaseWidth)
	}
}

func TestLoadRulesMissingPathFails(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected an error for a missing rules file")
	}
}
