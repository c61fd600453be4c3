// Package chime 播放流程中的提示音
//
// 所有提示音都是合成的正弦波，不需要音频资源文件：
//   - CueCatch: 接住爱心，短促的高音
//   - CueGoal:  达成目标，上行三连音
//   - CueYes:   接受邀请，琶音和弦
//
// 没有音频设备时使用 NopPlayer，流程不受影响。
package chime

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/decker502/valentine/pkg/flow"
	"github.com/decker502/valentine/pkg/game"
	"github.com/decker502/valentine/pkg/logging"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// Cue 提示音类型
type Cue int

const (
	CueCatch Cue = iota
	CueGoal
	CueYes
)

// String returns the string representation of the cue
func (c Cue) String() string {
	switch c {
	case CueCatch:
		return "catch"
	case CueGoal:
		return "goal"
	case CueYes:
		return "yes"
	default:
		return "unknown"
	}
}

// Player 提示音播放器
type Player interface {
	Play(cue Cue, volume float64)
	Close()
}

// NopPlayer 静音播放器
type NopPlayer struct{}

// Play implements Player
func (NopPlayer) Play(Cue, float64) {}

// Close implements Player
func (NopPlayer) Close() {}

// note 一个音符
type note struct {
	freq     float64
	duration time.Duration
}

// notes 返回提示音的音符序列
func notes(cue Cue) []note {
	switch cue {
	case CueCatch:
		return []note{{freq: 1046.5, duration: 70 * time.Millisecond}}
	case CueGoal:
		return []note{
			{freq: 659.3, duration: 90 * time.Millisecond},
			{freq: 784.0, duration: 90 * time.Millisecond},
			{freq: 1046.5, duration: 160 * time.Millisecond},
		}
	case CueYes:
		return []note{
			{freq: 523.3, duration: 110 * time.Millisecond},
			{freq: 659.3, duration: 110 * time.Millisecond},
			{freq: 784.0, duration: 110 * time.Millisecond},
			{freq: 1046.5, duration: 260 * time.Millisecond},
		}
	default:
		return nil
	}
}

// Stream 构建提示音的音频流
// volume 范围 0.0 ~ 1.0，0 表示静音
func Stream(cue Cue, volume float64) (beep.Streamer, error) {
	ns := notes(cue)
	if len(ns) == 0 {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}

	parts := make([]beep.Streamer, 0, len(ns))
	for _, n := range ns {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s tone: %w", cue, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(n.duration), tone))
	}

	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   volumeExponent(volume),
		Silent:   volume <= 0,
	}, nil
}

// volumeExponent 把 0~1 的音量换算成以 2 为底的指数
// 留出余量避免正弦波削顶
func volumeExponent(volume float64) float64 {
	if volume <= 0 {
		return 0
	}
	return math.Log2(math.Min(volume, 1)) - 1.5
}

// BeepPlayer 通过系统扬声器播放
type BeepPlayer struct {
	mu     sync.Mutex
	closed bool
	logger *zap.Logger
}

// NewBeepPlayer 初始化扬声器
func NewBeepPlayer(logger *zap.Logger) (*BeepPlayer, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &BeepPlayer{logger: logging.OrNop(logger).Named("Chime")}, nil
}

// Play implements Player
func (p *BeepPlayer) Play(cue Cue, volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	s, err := Stream(cue, volume)
	if err != nil {
		p.logger.Warn("无法播放提示音", zap.Error(err))
		return
	}
	speaker.Play(s)
	p.logger.Debug("播放提示音", zap.Stringer("cue", cue), zap.Float64("volume", volume))
}

// Close implements Player
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
}

// Open 尝试打开扬声器，失败时降级为 NopPlayer
func Open(logger *zap.Logger) Player {
	p, err := NewBeepPlayer(logger)
	if err != nil {
		logging.OrNop(logger).Warn("音频不可用，使用静音模式", zap.Error(err))
		return NopPlayer{}
	}
	return p
}

// Attach 把提示音挂到控制器的回调上
// settings 可为 nil（始终以默认音量播放）
func Attach(c *flow.Controller, p Player, settings *game.SettingsManager) {
	play := func(cue Cue) {
		volume := game.DefaultSettings().SoundVolume
		if settings != nil {
			s := settings.Settings()
			if !s.SoundEnabled {
				return
			}
			volume = s.SoundVolume
		}
		p.Play(cue, volume)
	}

	c.OnCatch(func(score, goal int) {
		if score >= goal {
			play(CueGoal)
			return
		}
		play(CueCatch)
	})
	c.OnStageChange(func(from, to flow.Stage) {
		if to == flow.StageYes {
			play(CueYes)
		}
	})
}
