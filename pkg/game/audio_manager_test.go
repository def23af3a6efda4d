package game

import (
	"testing"
	"time"
)

func TestSynthNotes_Length(t *testing.T) {
	notes := []Note{{Freq: 440, Dur: 100 * time.Millisecond}, {Freq: 880, Dur: 50 * time.Millisecond}}
	pcm := synthNotes(SampleRate, notes, 1)

	wantFrames := SampleRate/10 + SampleRate/20
	if got := len(pcm); got != wantFrames*4 {
		t.Errorf("pcm bytes: got %d, want %d", got, wantFrames*4)
	}
}

func TestSynthNotes_StartsSilent(t *testing.T) {
	pcm := synthNotes(SampleRate, []Note{{Freq: 440, Dur: 10 * time.Millisecond}}, 1)
	if pcm[0] != 0 || pcm[1] != 0 {
		t.Errorf("first sample: got %v, want silence", pcm[:2])
	}
}

func TestAudioManager_WithoutContext(t *testing.T) {
	am := NewAudioManager(nil, NewSettingsManager(NewPrefs(nil, nil), nil), nil)

	if am.PlaySound(SoundCoin) {
		t.Error("PlaySound without audio context: got true, want false")
	}
	if am.PlayMusic() {
		t.Error("PlayMusic without audio context: got true, want false")
	}
	am.StopMusic()
}

func TestAudioManager_HapticsToggle(t *testing.T) {
	settings := NewSettingsManager(NewPrefs(nil, nil), nil)
	am := NewAudioManager(nil, settings, nil)

	settings.ToggleHaptics()
	if am.Vibrate(10 * time.Millisecond) {
		t.Error("Vibrate with haptics disabled: got true, want false")
	}
}

func TestSoundNotes_AllDefined(t *testing.T) {
	for _, id := range []SoundID{SoundDig, SoundCoin, SoundPiece, SoundWin, SoundLose, SoundBuy, SoundClick} {
		if len(soundNotes[id]) == 0 {
			t.Errorf("sound %d has no notes", id)
		}
	}
}
