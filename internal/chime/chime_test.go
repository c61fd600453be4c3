package chime

import (
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/flow"
	"github.com/decker502/valentine/pkg/game"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlayer struct {
	cues    []Cue
	volumes []float64
}

func (r *recordingPlayer) Play(cue Cue, volume float64) {
	r.cues = append(r.cues, cue)
	r.volumes = append(r.volumes, volume)
}

func (r *recordingPlayer) Close() {}

// drain 读完音频流，返回样本数和最大振幅
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			peak = max(peak, sample[0], -sample[0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestStream_Length(t *testing.T) {
	for _, cue := range []Cue{CueCatch, CueGoal, CueYes} {
		t.Run(cue.String(), func(t *testing.T) {
			s, err := Stream(cue, 1)
			require.NoError(t, err)

			var want time.Duration
			for _, n := range notes(cue) {
				want += n.duration
			}
			total, peak := drain(t, s)
			assert.Equal(t, sampleRate.N(want), total)
			assert.Greater(t, peak, 0.0)
			assert.LessOrEqual(t, peak, 1.0)
		})
	}
}

func TestStream_Silent(t *testing.T) {
	s, err := Stream(CueCatch, 0)
	require.NoError(t, err)
	_, peak := drain(t, s)
	assert.Equal(t, 0.0, peak)
}

func TestStream_UnknownCue(t *testing.T) {
	_, err := Stream(Cue(42), 1)
	assert.Error(t, err)
	assert.Equal(t, "unknown", Cue(42).String())
}

func newController(t *testing.T) *flow.Controller {
	t.Helper()
	content, err := config.LoadContent("../../data/content.yaml")
	require.NoError(t, err)
	c := flow.NewController(content, config.DefaultGameplay(), rand.New(rand.NewSource(5)), nil)
	t.Cleanup(c.Close)
	return c
}

// catchAll 接住爱心直到得分达到目标
func catchAll(t *testing.T, c *flow.Controller) {
	t.Helper()
	for i := 0; i < 3000 && c.Score() < c.Goal(); i++ {
		c.Update(time.Second / 60)
		for _, h := range c.Hearts() {
			c.Catch(h.ID)
		}
	}
	require.Equal(t, c.Goal(), c.Score())
}

func TestAttach_Cues(t *testing.T) {
	c := newController(t)
	p := &recordingPlayer{}
	Attach(c, p, nil)

	require.True(t, c.Transition(flow.EventStartGame))
	catchAll(t, c)

	want := []Cue{CueCatch, CueCatch, CueCatch, CueCatch, CueGoal}
	assert.Equal(t, want, p.cues)

	c.Update(time.Second)
	require.Equal(t, flow.StageReasons, c.CurrentStage())
	for c.CurrentStage() == flow.StageReasons {
		c.Transition(flow.EventNextReason)
	}
	require.True(t, c.Transition(flow.EventAcceptProposal))
	assert.Equal(t, CueYes, p.cues[len(p.cues)-1])
	assert.InDelta(t, game.DefaultSettings().SoundVolume, p.volumes[0], 1e-9)
}

func TestAttach_RespectsSettings(t *testing.T) {
	c := newController(t)
	p := &recordingPlayer{}
	settings := game.NewSettingsManager(nil, nil)
	settings.SetSoundEnabled(false)
	Attach(c, p, settings)

	require.True(t, c.Transition(flow.EventStartGame))
	catchAll(t, c)
	assert.Empty(t, p.cues)

	settings.SetSoundEnabled(true)
	settings.SetSoundVolume(0.25)
	c.Reset()
	require.True(t, c.Transition(flow.EventStartGame))
	catchAll(t, c)
	require.NotEmpty(t, p.cues)
	assert.InDelta(t, 0.25, p.volumes[0], 1e-9)
}
