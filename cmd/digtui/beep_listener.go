package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/game"
	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/types"
)

const (
	beepSampleRate = beep.SampleRate(game.SampleRate)
	beepVolume     = 0.25
)

// BeepListener 终端宿主的音效监听者
// 用 beep 在扬声器上合成与图形版相同的音符序列
type BeepListener struct {
	game.NopListener

	mu          sync.Mutex
	mixer       *beep.Mixer
	settings    *game.SettingsManager
	initialized bool
	log         logrus.FieldLogger
}

// NewBeepListener 创建音效监听者
// settings 可为 nil（视为音效开启）
func NewBeepListener(settings *game.SettingsManager, log logrus.FieldLogger) *BeepListener {
	return &BeepListener{
		mixer:    &beep.Mixer{},
		settings: settings,
		log:      logger.Component(log, "BeepListener"),
	}
}

// Initialize 打开扬声器，失败时保持静音
func (b *BeepListener) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(beepSampleRate, beepSampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close 关闭扬声器
func (b *BeepListener) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	b.initialized = false
}

// Play 播放音效，未初始化或音效关闭时返回 false
func (b *BeepListener) Play(id game.SoundID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return false
	}
	if b.settings != nil && !b.settings.GetSettings().SoundEnabled {
		return false
	}
	notes := game.SoundNotes(id)
	if len(notes) == 0 {
		b.log.WithField("sound", id).Warn("unknown sound")
		return false
	}

	speaker.Lock()
	b.mixer.Add(newToneStreamer(beepSampleRate, notes, beepVolume))
	speaker.Unlock()
	return true
}

func (b *BeepListener) OnBlockRemoved(types.CellCoord, types.BlockType) { b.Play(game.SoundDig) }
func (b *BeepListener) OnCoinCollected(int)                             { b.Play(game.SoundCoin) }
func (b *BeepListener) OnPieceRevealed(int, int)                        { b.Play(game.SoundPiece) }
func (b *BeepListener) OnWon(int)                                       { b.Play(game.SoundWin) }
func (b *BeepListener) OnLost(int)                                      { b.Play(game.SoundLose) }

// toneStreamer 按顺序播放音符的正弦波流
// 每个音符 5ms 起音后线性衰减
type toneStreamer struct {
	sr     beep.SampleRate
	notes  []game.Note
	volume float64
	index  int // 当前音符
	pos    int // 当前音符内的采样位置
}

func newToneStreamer(sr beep.SampleRate, notes []game.Note, volume float64) *toneStreamer {
	return &toneStreamer{sr: sr, notes: notes, volume: volume}
}

func (t *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	attack := int(t.sr) / 200
	for n < len(samples) && t.index < len(t.notes) {
		note := t.notes[t.index]
		frames := t.sr.N(note.Dur)
		if t.pos >= frames {
			t.index++
			t.pos = 0
			continue
		}

		env := 1 - float64(t.pos)/float64(frames)
		if t.pos < attack {
			env *= float64(t.pos) / float64(attack)
		}
		v := math.Sin(2*math.Pi*note.Freq*float64(t.pos)/float64(t.sr)) * env * t.volume
		samples[n][0] = v
		samples[n][1] = v
		t.pos++
		n++
	}
	return n, n > 0
}

func (t *toneStreamer) Err() error {
	return nil
}
