package game

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/logger"
	"github.com/decker502/brickdigger/pkg/types"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// SoundID 音效标识
type SoundID int

const (
	SoundDig SoundID = iota
	SoundCoin
	SoundPiece
	SoundWin
	SoundLose
	SoundBuy
	SoundClick
)

// Note 一个合成音符
type Note struct {
	Freq float64       // 频率 (Hz)
	Dur  time.Duration // 时长
}

// SoundNotes 返回音效的音符序列，未知音效返回 nil
func SoundNotes(id SoundID) []Note {
	return soundNotes[id]
}

// soundNotes 每个音效的音符序列
var soundNotes = map[SoundID][]Note{
	SoundDig:   {{Freq: 110, Dur: 60 * time.Millisecond}},
	SoundCoin:  {{Freq: 988, Dur: 70 * time.Millisecond}, {Freq: 1319, Dur: 140 * time.Millisecond}},
	SoundPiece: {{Freq: 523, Dur: 90 * time.Millisecond}, {Freq: 784, Dur: 120 * time.Millisecond}},
	SoundWin:   {{Freq: 523, Dur: 120 * time.Millisecond}, {Freq: 659, Dur: 120 * time.Millisecond}, {Freq: 784, Dur: 120 * time.Millisecond}, {Freq: 1047, Dur: 300 * time.Millisecond}},
	SoundLose:  {{Freq: 392, Dur: 180 * time.Millisecond}, {Freq: 330, Dur: 180 * time.Millisecond}, {Freq: 262, Dur: 360 * time.Millisecond}},
	SoundBuy:   {{Freq: 660, Dur: 80 * time.Millisecond}, {Freq: 880, Dur: 80 * time.Millisecond}},
	SoundClick: {{Freq: 1200, Dur: 25 * time.Millisecond}},
}

// musicNotes 背景音乐循环段
var musicNotes = []Note{
	{Freq: 262, Dur: 400 * time.Millisecond}, {Freq: 330, Dur: 400 * time.Millisecond},
	{Freq: 392, Dur: 400 * time.Millisecond}, {Freq: 330, Dur: 400 * time.Millisecond},
	{Freq: 294, Dur: 400 * time.Millisecond}, {Freq: 349, Dur: 400 * time.Millisecond},
	{Freq: 440, Dur: 400 * time.Millisecond}, {Freq: 349, Dur: 400 * time.Millisecond},
}

const (
	soundVolume = 0.8
	musicVolume = 0.3
)

// AudioManager 音频管理器
// 职责：
//   - 合成并播放音效和循环背景音乐（无外部音频文件）
//   - 遵循 SettingsManager 中的音效/音乐/震动开关
//   - 作为 Listener 响应进度事件
//
// 音频上下文为 nil 时只处理震动，所有播放调用返回 false。
type AudioManager struct {
	NopListener

	ctx      *audio.Context
	settings *SettingsManager
	players  map[SoundID]*audio.Player
	music    *audio.Player
	log      logrus.FieldLogger
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（可为 nil，例如测试环境）
//   - settings: 设置管理器（可为 nil，视为全部开启）
//   - log: 日志器（可为 nil）
func NewAudioManager(ctx *audio.Context, settings *SettingsManager, log logrus.FieldLogger) *AudioManager {
	am := &AudioManager{
		ctx:      ctx,
		settings: settings,
		players:  make(map[SoundID]*audio.Player),
		log:      logger.Component(log, "AudioManager"),
	}
	if settings != nil {
		settings.OnChange(am.applySettings)
	}
	return am
}

// PlaySound 播放音效，音效关闭或无音频上下文时返回 false
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am.ctx == nil || !am.current().SoundEnabled {
		return false
	}

	player, ok := am.players[id]
	if !ok {
		notes, exists := soundNotes[id]
		if !exists {
			am.log.WithField("sound", int(id)).Warn("unknown sound")
			return false
		}
		player = am.ctx.NewPlayerFromBytes(synthNotes(SampleRate, notes, 1))
		player.SetVolume(soundVolume)
		am.players[id] = player
	}

	if err := player.Rewind(); err != nil {
		am.log.WithError(err).WithField("sound", int(id)).Warn("failed to rewind sound")
	}
	player.Play()
	return true
}

// PlayMusic 开始循环播放背景音乐（已在播放时无操作）
func (am *AudioManager) PlayMusic() bool {
	if am.ctx == nil || !am.current().MusicEnabled {
		return false
	}
	if am.music == nil {
		pcm := synthNotes(SampleRate, musicNotes, musicVolume)
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		player, err := am.ctx.NewPlayer(loop)
		if err != nil {
			am.log.WithError(err).Warn("failed to create music player")
			return false
		}
		am.music = player
	}
	if !am.music.IsPlaying() {
		am.music.Play()
	}
	return true
}

// StopMusic 暂停背景音乐
func (am *AudioManager) StopMusic() {
	if am.music != nil {
		am.music.Pause()
	}
}

// Vibrate 触发震动（震动关闭时无操作）
func (am *AudioManager) Vibrate(d time.Duration) bool {
	if !am.current().HapticsEnabled {
		return false
	}
	ebiten.Vibrate(&ebiten.VibrateOptions{Duration: d, Magnitude: 0.5})
	return true
}

// applySettings 设置变化时启停背景音乐
func (am *AudioManager) applySettings(s *GameSettings) {
	if s.MusicEnabled {
		am.PlayMusic()
	} else {
		am.StopMusic()
	}
}

func (am *AudioManager) current() *GameSettings {
	if am.settings == nil {
		return DefaultSettings()
	}
	return am.settings.GetSettings()
}

func (am *AudioManager) OnBlockRemoved(types.CellCoord, types.BlockType) {
	am.PlaySound(SoundDig)
	am.Vibrate(20 * time.Millisecond)
}

func (am *AudioManager) OnCoinCollected(int) { am.PlaySound(SoundCoin) }

func (am *AudioManager) OnPieceRevealed(int, int) { am.PlaySound(SoundPiece) }

func (am *AudioManager) OnWon(int) {
	am.PlaySound(SoundWin)
	am.Vibrate(200 * time.Millisecond)
}

func (am *AudioManager) OnLost(int) {
	am.PlaySound(SoundLose)
	am.Vibrate(400 * time.Millisecond)
}

// synthNotes 合成 16 位小端立体声 PCM
// 每个音符带 5ms 起音和线性衰减，避免爆音
func synthNotes(sampleRate int, notes []Note, volume float64) []byte {
	var buf bytes.Buffer
	attack := sampleRate / 200
	for _, n := range notes {
		frames := int(float64(sampleRate) * n.Dur.Seconds())
		for i := 0; i < frames; i++ {
			env := 1 - float64(i)/float64(frames)
			if i < attack {
				env *= float64(i) / float64(attack)
			}
			v := math.Sin(2*math.Pi*n.Freq*float64(i)/float64(sampleRate)) * env * volume
			sample := int16(v * math.MaxInt16)
			_ = binary.Write(&buf, binary.LittleEndian, [2]int16{sample, sample})
		}
	}
	return buf.Bytes()
}
