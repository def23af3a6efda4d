package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/grid"
	"github.com/decker502/brickdigger/pkg/level"
	"github.com/decker502/brickdigger/pkg/scenes"
	"github.com/decker502/brickdigger/pkg/systems"
	"github.com/decker502/brickdigger/pkg/types"
)

const dt = 1.0 / 60

func newTestSession(t *testing.T, coins int) *session {
	t.Helper()
	rules := config.DefaultGameRules()
	prefs := game.NewPrefs(nil, nil)
	prefs.SetInt(game.KeyTotalCoins, coins)

	gs := game.NewGameState(rules, level.NewGenerator(rules, 11, nil), grid.New(rules, nil), game.NewSaveManager(prefs, nil), nil)
	outcome := scenes.NewOutcomeTracker(nil)
	gs.AddListener(outcome)
	world := systems.NewWorld(gs, nil)
	gs.StartLevel(1)

	return newSession(gs, world, game.NewSettingsManager(prefs, nil), outcome, nil)
}

func tick(s *session, frames int, now time.Time) {
	for i := 0; i < frames; i++ {
		s.Tick(dt, now)
	}
}

func TestKeyInputMovementHold(t *testing.T) {
	var k keyInput
	now := time.Unix(100, 0)

	assert.Equal(t, CommandNone, k.HandleKey(tcell.KeyRight, 0, now))
	in := k.Frame(now.Add(50 * time.Millisecond))
	assert.Equal(t, 1.0, in.MoveX)
	assert.Zero(t, in.MoveY)

	in = k.Frame(now.Add(holdDuration + time.Millisecond))
	assert.Zero(t, in.MoveX, "movement should stop once the key is no longer repeated")

	k.HandleKey(tcell.KeyRune, 'w', now)
	in = k.Frame(now)
	assert.Equal(t, -1.0, in.MoveY)
	assert.Zero(t, in.MoveX, "a new direction replaces the previous one")
}

func TestKeyInputEdgeTriggers(t *testing.T) {
	var k keyInput
	now := time.Unix(100, 0)

	k.HandleKey(tcell.KeyRune, ' ', now)
	k.HandleKey(tcell.KeyEnter, 0, now)
	in := k.Frame(now)
	assert.True(t, in.Jump)
	assert.True(t, in.Dig)

	in = k.Frame(now)
	assert.False(t, in.Jump, "jump fires for a single frame")
	assert.False(t, in.Dig, "dig fires for a single frame")
}

func TestKeyInputCommands(t *testing.T) {
	var k keyInput
	now := time.Unix(100, 0)

	cases := []struct {
		key  tcell.Key
		r    rune
		want Command
	}{
		{tcell.KeyEscape, 0, CommandQuit},
		{tcell.KeyCtrlC, 0, CommandQuit},
		{tcell.KeyRune, 'q', CommandQuit},
		{tcell.KeyRune, 'n', CommandNext},
		{tcell.KeyRune, 'r', CommandRetry},
		{tcell.KeyRune, 'b', CommandBuyAxes},
		{tcell.KeyRune, 'm', CommandToggleSound},
		{tcell.KeyRune, 'p', CommandPause},
		{tcell.KeyRune, 'z', CommandNone},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, k.HandleKey(c.key, c.r, now), "key %v rune %q", c.key, c.r)
	}
}

func TestToneStreamerLength(t *testing.T) {
	sr := beep.SampleRate(1000)
	notes := []game.Note{{Freq: 100, Dur: 20 * time.Millisecond}, {Freq: 200, Dur: 30 * time.Millisecond}}
	streamer := newToneStreamer(sr, notes, 1)

	total := 0
	buf := make([][2]float64, 16)
	for {
		n, ok := streamer.Stream(buf)
		total += n
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			assert.LessOrEqual(t, buf[i][0], 1.0)
			assert.Equal(t, buf[i][0], buf[i][1], "tones are mono")
		}
	}
	assert.Equal(t, 50, total)
	assert.NoError(t, streamer.Err())
}

func TestBeepListenerSilentBeforeInitialize(t *testing.T) {
	b := NewBeepListener(nil, nil)
	assert.False(t, b.Play(game.SoundDig))
	b.Close()
}

func TestSessionRetryAfterLoss(t *testing.T) {
	s := newTestSession(t, 0)
	now := time.Unix(100, 0)

	s.Apply(CommandRetry, now)
	assert.Equal(t, game.StateActive, s.state.State(), "retry is ignored while playing")

	for s.state.AxesRemaining() > 0 {
		s.state.UseAxe()
	}
	tick(s, 40, now)
	require.Equal(t, scenes.PanelLost, s.outcome.Panel())

	s.Apply(CommandNext, now)
	assert.Equal(t, game.StateLost, s.state.State(), "next level requires a win")

	assert.True(t, s.Apply(CommandRetry, now))
	assert.Equal(t, game.StateActive, s.state.State())
	assert.Equal(t, scenes.PanelNone, s.outcome.Panel())
	assert.Equal(t, 1, s.state.CurrentLevel())
}

func TestSessionNextAfterWin(t *testing.T) {
	s := newTestSession(t, 0)
	now := time.Unix(100, 0)

	for s.state.State() == game.StateActive {
		s.state.RevealPiece()
	}
	tick(s, 40, now)
	require.Equal(t, scenes.PanelWon, s.outcome.Panel())

	s.Apply(CommandNext, now)
	assert.Equal(t, 2, s.state.CurrentLevel())
	assert.Equal(t, game.StateActive, s.state.State())
}

func TestSessionBuyAxes(t *testing.T) {
	s := newTestSession(t, 0)
	now := time.Unix(100, 0)

	s.Apply(CommandBuyAxes, now)
	assert.Equal(t, "NOT ENOUGH COINS", s.Message(now))

	s = newTestSession(t, 50)
	axes := s.state.AxesRemaining()
	s.Apply(CommandBuyAxes, now)
	assert.Equal(t, axes+s.state.Rules().Economy.AxePack, s.state.AxesRemaining())
	assert.Equal(t, "+3 AXES", s.Message(now))
	assert.Empty(t, s.Message(now.Add(messageDuration)), "message expires")
}

func TestSessionToggleSound(t *testing.T) {
	s := newTestSession(t, 0)
	now := time.Unix(100, 0)

	s.Apply(CommandToggleSound, now)
	assert.False(t, s.settings.GetSettings().SoundEnabled)
	assert.Equal(t, "SOUND OFF", s.Message(now))
	assert.False(t, s.Apply(CommandQuit, now))
}

func TestSessionPanelBlocksMovement(t *testing.T) {
	s := newTestSession(t, 0)
	now := time.Unix(100, 0)

	for s.state.AxesRemaining() > 0 {
		s.state.UseAxe()
	}
	tick(s, 40, now)
	start := s.world.Player().X

	s.keys.HandleKey(tcell.KeyRight, 0, now)
	tick(s, 10, now)
	assert.Equal(t, start, s.world.Player().X)
}

func TestSessionPauseFreezesWorld(t *testing.T) {
	s := newTestSession(t, 0)
	now := time.Unix(100, 0)

	s.keys.HandleKey(tcell.KeyEnter, 0, now)
	tick(s, 1, now)
	require.True(t, s.world.Dig.IsDigging())
	progress := s.world.Dig.Progress()

	s.Apply(CommandPause, now)
	require.True(t, s.Paused())
	s.keys.HandleKey(tcell.KeyRight, 0, now)
	tick(s, 30, now)
	assert.Equal(t, progress, s.world.Dig.Progress(), "dig timer stops while paused")
	assert.True(t, s.world.Dig.IsDigging())

	s.Apply(CommandPause, now)
	require.False(t, s.Paused())
	tick(s, 5, now)
	assert.Greater(t, s.world.Dig.Progress(), progress)
}

func TestSessionPauseIgnoredOnPanel(t *testing.T) {
	s := newTestSession(t, 0)
	now := time.Unix(100, 0)

	for s.state.AxesRemaining() > 0 {
		s.state.UseAxe()
	}
	tick(s, 40, now)
	require.Equal(t, scenes.PanelLost, s.outcome.Panel())

	s.Apply(CommandPause, now)
	assert.False(t, s.Paused())
}

func TestDrawPaused(t *testing.T) {
	s := newTestSession(t, 0)
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 30)

	s.Apply(CommandPause, time.Unix(100, 0))
	s.draw(screen, time.Unix(100, 0))

	row := boardTop + s.state.Grid().Height() + 1
	r, _, _, _ := screen.GetContent(boardLeft+1, row)
	assert.Equal(t, 'P', r)
}

func TestCellGlyph(t *testing.T) {
	glyph, _ := cellGlyph(grid.GridCell{Top: types.BlockDirt, Bottom: types.BlockBedrock})
	assert.Equal(t, "▓▓", glyph)
	glyph, _ = cellGlyph(grid.GridCell{Top: types.BlockCoin, Bottom: types.BlockLegoPiece})
	assert.Equal(t, "$$", glyph, "top layer hides the bottom")
	glyph, _ = cellGlyph(grid.GridCell{Top: types.BlockAir, Bottom: types.BlockLegoPiece})
	assert.Equal(t, "██", glyph)
	glyph, _ = cellGlyph(grid.GridCell{Top: types.BlockAir, Bottom: types.BlockBedrock})
	assert.Equal(t, "··", glyph)
}

func TestDrawHUD(t *testing.T) {
	s := newTestSession(t, 0)
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 30)

	s.draw(screen, time.Unix(100, 0))

	r, _, _, _ := screen.GetContent(boardLeft, 0)
	assert.Equal(t, 'L', r)
	p := s.world.Player().Cell()
	r, _, _, _ = screen.GetContent(boardLeft+p.X*cellWidth, boardTop+p.Y)
	assert.Equal(t, '@', r)
}
