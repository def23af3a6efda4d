package scenes

import (
	"testing"

	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/grid"
	"github.com/decker502/brickdigger/pkg/level"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/systems"
	"github.com/decker502/brickdigger/pkg/types"
	"github.com/decker502/brickdigger/pkg/utils"
)

const frame = 1.0 / 60

// newTestServices 创建内存存储的场景服务
// coins 为初始累计金币
func newTestServices(t *testing.T, coins int) *Services {
	t.Helper()
	rules := config.DefaultGameRules()
	prefs := game.NewPrefs(nil, nil)
	prefs.SetInt(game.KeyTotalCoins, coins)

	gs := game.NewGameState(rules, level.NewGenerator(rules, 3, nil), grid.New(rules, nil), game.NewSaveManager(prefs, nil), nil)
	outcome := NewOutcomeTracker(nil)
	gs.AddListener(outcome)

	s := &Services{
		Rules:    rules,
		State:    gs,
		World:    systems.NewWorld(gs, nil),
		Shop:     game.NewCharacterShop(rules, prefs, gs, nil),
		Settings: game.NewSettingsManager(prefs, nil),
		Scenes:   game.NewSceneManager(nil),
		Outcome:  outcome,
		Log:      logger.Discard(),
	}
	s.Scenes.SetSceneFactory(NewFactory(s))
	return s
}

// stepWorld 推进模拟若干帧（无输入）
func stepWorld(s *Services, frames int) {
	for i := 0; i < frames; i++ {
		s.World.Update(frame, systems.InputFrame{})
	}
}

func loseLevel(t *testing.T, s *Services) {
	t.Helper()
	for s.State.AxesRemaining() > 0 {
		s.State.UseAxe()
	}
	if s.State.State() != game.StateLost {
		t.Fatalf("state: got %v, want lost", s.State.State())
	}
	stepWorld(s, 40)
}

func winLevel(t *testing.T, s *Services) {
	t.Helper()
	for s.State.State() == game.StateActive {
		s.State.RevealPiece()
	}
	if s.State.State() != game.StateWon {
		t.Fatalf("state: got %v, want won", s.State.State())
	}
	stepWorld(s, 40)
}

func TestNewFactory(t *testing.T) {
	s := newTestServices(t, 0)
	factory := NewFactory(s)

	if _, ok := factory(game.SceneLoading).(*LoadingScene); !ok {
		t.Error("SceneLoading should create a LoadingScene")
	}
	if _, ok := factory(game.SceneHome).(*HomeScene); !ok {
		t.Error("SceneHome should create a HomeScene")
	}
	if _, ok := factory(game.SceneGame).(*GameScene); !ok {
		t.Error("SceneGame should create a GameScene")
	}
	if factory(game.SceneID(99)) != nil {
		t.Error("unknown scene id should create nothing")
	}
}

func TestOutcomeTracker(t *testing.T) {
	o := NewOutcomeTracker(nil)
	if o.Panel() != PanelNone {
		t.Fatalf("initial panel: got %v, want none", o.Panel())
	}

	o.OnLost(3)
	if o.Panel() != PanelLost || o.Level() != 3 {
		t.Errorf("after OnLost: got panel %v level %d", o.Panel(), o.Level())
	}
	o.OnLevelStarted(3, 26, 4)
	if o.Panel() != PanelNone {
		t.Errorf("after OnLevelStarted: got %v, want none", o.Panel())
	}
	o.OnWon(4)
	if o.Panel() != PanelWon || o.Level() != 4 {
		t.Errorf("after OnWon: got panel %v level %d", o.Panel(), o.Level())
	}
}

func TestLoadingSceneSwitchesToHome(t *testing.T) {
	s := newTestServices(t, 0)
	l := NewLoadingScene(s)
	s.Scenes.SwitchTo(game.SceneLoading, l)

	for i := 0; i < 130; i++ {
		s.Scenes.Update(frame)
	}
	if s.Scenes.CurrentID() != game.SceneLoading {
		t.Fatalf("scene after 2.17s: got %v, want loading", s.Scenes.CurrentID())
	}
	if l.Progress() != 1 {
		t.Errorf("progress after the fill: got %v, want 1", l.Progress())
	}

	for i := 0; i < 15; i++ {
		s.Scenes.Update(frame)
	}
	if s.Scenes.CurrentID() != game.SceneHome {
		t.Fatalf("scene after hold: got %v, want home", s.Scenes.CurrentID())
	}
	if _, ok := s.Scenes.GetCurrentScene().(*HomeScene); !ok {
		t.Error("current scene should be a HomeScene")
	}
}

func TestLoadingSceneProgressEases(t *testing.T) {
	s := newTestServices(t, 0)
	l := NewLoadingScene(s)
	l.elapsed = 1.0

	if got := l.Progress(); got != 0.875 {
		t.Errorf("progress at half time: got %v, want 0.875", got)
	}
}

func TestHomePlayStartsLevel(t *testing.T) {
	s := newTestServices(t, 0)
	h := NewHomeScene(s)
	if h.play.Label != "PLAY LEVEL 1" {
		t.Errorf("play label: got %q", h.play.Label)
	}

	h.Play()
	if s.State.State() != game.StateActive {
		t.Errorf("state: got %v, want active", s.State.State())
	}
	if s.Scenes.CurrentID() != game.SceneGame {
		t.Errorf("scene: got %v, want game", s.Scenes.CurrentID())
	}
}

func TestHomePlayContinuesActiveLevel(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	s.State.UseAxe()
	axes := s.State.AxesRemaining()

	NewHomeScene(s).Play()
	if s.State.AxesRemaining() != axes {
		t.Errorf("axes: got %d, want %d (level continued)", s.State.AxesRemaining(), axes)
	}
}

func TestHomePlayAfterWinStartsNextLevel(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	winLevel(t, s)

	h := NewHomeScene(s)
	if h.play.Label != "PLAY LEVEL 2" {
		t.Errorf("play label: got %q, want PLAY LEVEL 2", h.play.Label)
	}
	h.Play()
	if s.State.CurrentLevel() != 2 || s.State.State() != game.StateActive {
		t.Errorf("after play: level %d state %v", s.State.CurrentLevel(), s.State.State())
	}
}

func TestHomeShopBuyAndEquip(t *testing.T) {
	s := newTestServices(t, 25)
	h := NewHomeScene(s)

	h.NextCharacter()
	if h.shop.Label != "BUY (20)" || h.shop.Disabled {
		t.Fatalf("shop button: got %q disabled=%v", h.shop.Label, h.shop.Disabled)
	}

	h.ActivateShop()
	if h.message != "UNLOCKED Character 2" {
		t.Errorf("message: got %q", h.message)
	}
	if s.State.Coins() != 5 {
		t.Errorf("coins: got %d, want 5", s.State.Coins())
	}
	if h.shop.Label != "EQUIP" {
		t.Errorf("shop label after buy: got %q, want EQUIP", h.shop.Label)
	}

	h.ActivateShop()
	if s.Shop.Selected() != 2 {
		t.Errorf("selected: got %d, want 2", s.Shop.Selected())
	}
	if s.World.Player().Character != 2 {
		t.Errorf("player character: got %d, want 2", s.World.Player().Character)
	}
	if h.shop.Label != "SELECTED" || !h.shop.Disabled {
		t.Errorf("shop button after equip: got %q disabled=%v", h.shop.Label, h.shop.Disabled)
	}
}

func TestHomeShopNotEnoughCoins(t *testing.T) {
	s := newTestServices(t, 0)
	h := NewHomeScene(s)

	h.PrevCharacter()
	if s.Shop.Current() != s.Shop.Count() {
		t.Fatalf("prev wraps: got %d, want %d", s.Shop.Current(), s.Shop.Count())
	}
	if !h.shop.Disabled {
		t.Error("buy button should be disabled without coins")
	}

	h.ActivateShop()
	if h.message != "NOT ENOUGH COINS" {
		t.Errorf("message: got %q", h.message)
	}
	if s.Shop.IsUnlocked(s.Shop.Current()) {
		t.Error("character should stay locked")
	}
}

func TestHomeToggleSettings(t *testing.T) {
	s := newTestServices(t, 0)
	h := NewHomeScene(s)
	if h.sound.Label != "SOUND ON" {
		t.Fatalf("sound label: got %q", h.sound.Label)
	}

	h.ToggleSound()
	h.ToggleHaptics()
	if h.sound.Label != "SOUND OFF" {
		t.Errorf("sound label: got %q, want SOUND OFF", h.sound.Label)
	}
	if h.music.Label != "MUSIC ON" {
		t.Errorf("music label: got %q, want MUSIC ON", h.music.Label)
	}
	if h.haptics.Label != "VIBE OFF" {
		t.Errorf("haptics label: got %q, want VIBE OFF", h.haptics.Label)
	}
}

func TestGameSceneLostPanel(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	axes := s.State.AxesRemaining()
	g := NewGameScene(s)

	loseLevel(t, s)
	g.syncPanel()
	if g.shownPanel != PanelLost {
		t.Fatalf("panel: got %v, want lost", g.shownPanel)
	}
	if len(g.panelButtons) != 3 {
		t.Fatalf("panel buttons: got %d, want 3", len(g.panelButtons))
	}
	if !g.panelButtons[1].Disabled {
		t.Error("buy button should be disabled without coins")
	}

	if g.BuyAxes() {
		t.Error("BuyAxes should fail without coins")
	}
	if g.Message() != "NOT ENOUGH COINS" {
		t.Errorf("message: got %q", g.Message())
	}

	g.Retry()
	if s.State.State() != game.StateActive {
		t.Errorf("state after retry: got %v, want active", s.State.State())
	}
	if s.State.AxesRemaining() != axes {
		t.Errorf("axes after retry: got %d, want %d", s.State.AxesRemaining(), axes)
	}
	if g.shownPanel != PanelNone || g.panelButtons != nil {
		t.Error("panel should be hidden after retry")
	}
}

func TestGameSceneBuyAxesCarriesIntoRetry(t *testing.T) {
	s := newTestServices(t, 10)
	s.State.StartLevel(1)
	axes := s.State.AxesRemaining()
	g := NewGameScene(s)

	loseLevel(t, s)
	g.syncPanel()
	if !g.BuyAxes() {
		t.Fatal("BuyAxes should succeed with 10 coins")
	}
	if g.Message() != "+3 AXES NEXT TRY" {
		t.Errorf("message: got %q", g.Message())
	}
	if s.State.State() != game.StateLost {
		t.Errorf("buying must not revive the level, got %v", s.State.State())
	}

	g.Retry()
	if s.State.AxesRemaining() != axes+3 {
		t.Errorf("axes after retry: got %d, want %d", s.State.AxesRemaining(), axes+3)
	}
}

func TestGameSceneBuyAxesWhileActive(t *testing.T) {
	s := newTestServices(t, 10)
	s.State.StartLevel(1)
	axes := s.State.AxesRemaining()
	g := NewGameScene(s)

	if !g.BuyAxes() {
		t.Fatal("BuyAxes should succeed with 10 coins")
	}
	if s.State.AxesRemaining() != axes+3 {
		t.Errorf("axes: got %d, want %d", s.State.AxesRemaining(), axes+3)
	}
	if g.Message() != "+3 AXES" {
		t.Errorf("message: got %q", g.Message())
	}
}

func TestGameSceneMessageExpires(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	g := NewGameScene(s)

	g.showMessage("HELLO")
	g.messageTimer = 0
	if g.Message() != "" {
		t.Errorf("expired message: got %q", g.Message())
	}
}

func TestGameSceneWonPanelNext(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	g := NewGameScene(s)

	winLevel(t, s)
	g.syncPanel()
	if g.shownPanel != PanelWon || len(g.panelButtons) != 2 {
		t.Fatalf("panel: got %v with %d buttons", g.shownPanel, len(g.panelButtons))
	}

	g.Next()
	if s.State.CurrentLevel() != 2 {
		t.Errorf("level: got %d, want 2", s.State.CurrentLevel())
	}
	if g.shownPanel != PanelNone {
		t.Errorf("panel after next: got %v, want none", g.shownPanel)
	}
}

func TestGameSceneHome(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	g := NewGameScene(s)
	s.Scenes.SwitchTo(game.SceneGame, g)

	if !s.Scenes.SaveCurrent() {
		t.Error("SaveCurrent should succeed with memory prefs")
	}
	g.Home()
	if s.Scenes.CurrentID() != game.SceneHome {
		t.Errorf("scene: got %v, want home", s.Scenes.CurrentID())
	}
}

func TestGameSceneBoardLayoutFitsScreen(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	g := NewGameScene(s)

	b := g.boardLayout()
	if b.CellSize <= 0 {
		t.Fatalf("cell size: got %v", b.CellSize)
	}
	if b.OriginY < hudHeight {
		t.Errorf("board overlaps the HUD: origin y %v", b.OriginY)
	}
	bottom := b.OriginY + b.CellSize*float64(b.Rows)
	if bottom > ScreenHeight-controlsHeight {
		t.Errorf("board overlaps the controls: bottom %v", bottom)
	}
}

func TestGameScenePauseFreezesDig(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	g := NewGameScene(s)

	g.step(frame, systems.InputFrame{Dig: true})
	if !s.World.Dig.IsDigging() {
		t.Fatal("dig should start on the first frame")
	}
	progress := s.World.Dig.Progress()

	g.Pause()
	if !g.Paused() {
		t.Fatal("scene should be paused")
	}
	for i := 0; i < 30; i++ {
		g.step(frame, systems.InputFrame{MoveX: 1})
	}
	if got := s.World.Dig.Progress(); got != progress {
		t.Errorf("dig progress while paused: got %v, want %v", got, progress)
	}

	g.Resume()
	g.step(frame, systems.InputFrame{})
	if got := s.World.Dig.Progress(); got <= progress {
		t.Errorf("dig progress after resume: got %v, want > %v", got, progress)
	}
}

func TestGameScenePauseHoldsOutcome(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	g := NewGameScene(s)

	for s.State.State() == game.StateActive {
		s.State.RevealPiece()
	}
	g.Pause()
	for i := 0; i < 120; i++ {
		g.step(frame, systems.InputFrame{})
	}
	if s.Outcome.Panel() != PanelNone {
		t.Errorf("panel while paused: got %v, want none", s.Outcome.Panel())
	}

	g.TogglePause()
	for i := 0; i < 40; i++ {
		g.step(frame, systems.InputFrame{})
	}
	if s.Outcome.Panel() != PanelWon {
		t.Errorf("panel after resume: got %v, want won", s.Outcome.Panel())
	}
}

func TestGameScenePausePanelButtons(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	g := NewGameScene(s)
	s.Scenes.SwitchTo(game.SceneGame, g)

	g.Pause()
	if len(g.pauseButtons) != 2 {
		t.Fatalf("pause buttons: got %d, want 2", len(g.pauseButtons))
	}
	g.pauseButtons[0].OnClick()
	if g.Paused() || g.pauseButtons != nil {
		t.Error("RESUME should close the pause panel")
	}

	g.Pause()
	g.pauseButtons[1].OnClick()
	if s.Scenes.CurrentID() != game.SceneHome {
		t.Errorf("scene after HOME: got %v, want home", s.Scenes.CurrentID())
	}
}

func TestGameScenePauseBlockedByOutcomePanel(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	g := NewGameScene(s)

	loseLevel(t, s)
	g.syncPanel()
	g.Pause()
	if g.Paused() {
		t.Error("pause should be ignored while the lost panel is shown")
	}
}

func TestGameSceneTapPlayerCell(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)
	g := NewGameScene(s)

	layout := g.boardLayout()
	cell := s.World.Player().Cell()
	x, y := layout.CellToScreen(cell)
	if !g.tapsPlayerCell(int(x), int(y)) {
		t.Errorf("tap at the player cell %s should dig", cell)
	}

	other := types.C(cell.X+1, cell.Y)
	if cell.X+1 >= layout.Columns {
		other = types.C(cell.X-1, cell.Y)
	}
	x, y = layout.CellToScreen(other)
	if g.tapsPlayerCell(int(x), int(y)) {
		t.Errorf("tap at %s should not dig", other)
	}
	if g.tapsPlayerCell(0, 0) {
		t.Error("tap on the HUD should not dig")
	}
}

func TestGameSceneTouchControls(t *testing.T) {
	s := newTestServices(t, 0)
	s.State.StartLevel(1)

	t.Setenv(utils.MobileEmulateEnv, "1")
	if !NewGameScene(s).touch {
		t.Error("touch controls should be enabled in mobile mode")
	}

	t.Setenv(utils.MobileEmulateEnv, "")
	if got := NewGameScene(s).touch; got != utils.IsMobile() {
		t.Errorf("touch: got %v, want %v", got, utils.IsMobile())
	}
}
