package components

import (
	"testing"

	"github.com/decker502/brickdigger/pkg/types"
)

func TestTimerComponent(t *testing.T) {
	var timer TimerComponent
	if timer.Advance(1) {
		t.Error("stopped timer should not fire")
	}

	timer.Start(0.3)
	if timer.Advance(0.2) {
		t.Error("timer fired early")
	}
	if got := timer.Progress(); got < 0.66 || got > 0.67 {
		t.Errorf("Progress: got %v, want ~0.667", got)
	}
	if !timer.Advance(0.1) {
		t.Error("timer should fire once target time is reached")
	}
	if timer.Advance(1) {
		t.Error("timer should fire only once")
	}
	if !timer.IsReady || timer.Progress() != 1 {
		t.Errorf("finished timer: IsReady=%v Progress=%v", timer.IsReady, timer.Progress())
	}

	timer.Stop()
	if timer.IsReady || timer.Running {
		t.Error("Stop should clear state")
	}
}

func TestLifetimeRemaining(t *testing.T) {
	l := LifetimeComponent{MaxLifetime: 0.3, CurrentLifetime: 0.15}
	if got := l.Remaining(); got != 0.5 {
		t.Errorf("Remaining: got %v, want 0.5", got)
	}
	l.CurrentLifetime = 1
	if got := l.Remaining(); got != 0 {
		t.Errorf("Remaining past max: got %v, want 0", got)
	}
}

func TestPlayerCell(t *testing.T) {
	p := PlayerComponent{X: 2.49, Y: 3.5}
	if got := p.Cell(); got != types.C(2, 4) {
		t.Errorf("Cell: got %v, want (2, 4)", got)
	}

	p.VelocityY = 5
	p.PlaceAt(types.C(1, 1), 1.5)
	if p.X != 1 || p.Y != 1 || p.Height != 1.5 || p.VelocityY != 0 || !p.Grounded {
		t.Errorf("PlaceAt: got %+v", p)
	}
}
