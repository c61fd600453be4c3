package term

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/flow"
	"github.com/decker502/valentine/pkg/view"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func newController(t *testing.T) *flow.Controller {
	t.Helper()
	content, err := config.LoadContent("../../data/content.yaml")
	require.NoError(t, err)
	c := flow.NewController(content, config.DefaultGameplay(), rand.New(rand.NewSource(9)), zaptest.NewLogger(t))
	t.Cleanup(c.Close)
	return c
}

func newTestTerminal(t *testing.T) (*Terminal, *flow.Controller, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 30)

	c := newController(t)
	term := New(screen, c, view.DefaultLayout(config.DefaultGameplay()), nil, zaptest.NewLogger(t))
	return term, c, screen
}

// screenText 按行读取屏幕文字
func screenText(screen tcell.Screen) []string {
	w, h := screen.Size()
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			b.WriteRune(r)
		}
		lines[y] = b.String()
	}
	return lines
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestTerminal_DrawWelcome(t *testing.T) {
	term, _, screen := newTestTerminal(t)
	term.Draw()

	text := strings.Join(screenText(screen), "\n")
	assert.Contains(t, text, "[ Start Game ]")
	assert.Contains(t, text, "Play the game")
}

func TestTerminal_ClickButton(t *testing.T) {
	term, c, _ := newTestTerminal(t)
	term.Draw()

	start := term.tree.Buttons()[0]
	cx, cy := term.toCell(start.Bounds().Center())
	assert.True(t, term.Click(cx, cy))
	assert.Equal(t, flow.StageGame, c.CurrentStage())

	assert.False(t, term.Click(0, 0), "nothing clickable in the corner")
}

func TestTerminal_MouseEdge(t *testing.T) {
	term, c, _ := newTestTerminal(t)
	term.Draw()

	start := term.tree.Buttons()[0]
	cx, cy := term.toCell(start.Bounds().Center())
	require.True(t, term.HandleEvent(tcell.NewEventMouse(cx, cy, tcell.Button1, tcell.ModNone)))
	assert.Equal(t, flow.StageGame, c.CurrentStage())

	// 按住不放不会重复点击
	c.Reset()
	term.HandleEvent(tcell.NewEventMouse(cx, cy, tcell.Button1, tcell.ModNone))
	assert.Equal(t, flow.StageWelcome, c.CurrentStage())

	term.HandleEvent(tcell.NewEventMouse(cx, cy, tcell.ButtonNone, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(cx, cy, tcell.Button1, tcell.ModNone))
	assert.Equal(t, flow.StageGame, c.CurrentStage())
}

func TestTerminal_ClickHeartCell(t *testing.T) {
	term, c, _ := newTestTerminal(t)
	require.True(t, c.Transition(flow.EventStartGame))

	var target view.Node
	for i := 0; i < 600 && target.Kind != view.KindHeart; i++ {
		c.Update(time.Second / 60)
		term.Draw()
		for _, n := range term.tree.Filter(view.KindHeart) {
			if _, cy := n.Bounds().Center(); cy > 80 {
				target = n
				break
			}
		}
	}
	require.Equal(t, view.KindHeart, target.Kind)

	cx, cy := term.toCell(target.Bounds().Center())
	assert.True(t, term.Click(cx, cy))
	assert.Equal(t, 1, c.Score())
}

func TestTerminal_Keys(t *testing.T) {
	term, c, _ := newTestTerminal(t)

	assert.True(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	require.Equal(t, flow.StageGame, c.CurrentStage())

	// 小游戏阶段 Enter 接住最早的爱心
	for i := 0; i < 600 && c.Score() < c.Goal(); i++ {
		c.Update(time.Second / 60)
		term.HandleEvent(key(' '))
	}
	require.Equal(t, c.Goal(), c.Score())
	c.Update(time.Second)
	require.Equal(t, flow.StageReasons, c.CurrentStage())

	for c.CurrentStage() == flow.StageReasons {
		term.HandleEvent(key(' '))
	}
	require.Equal(t, flow.StageQuestion, c.CurrentStage())

	term.HandleEvent(key('n'))
	term.HandleEvent(key('d'))
	assert.Equal(t, 2, c.NoIndex())
	assert.Equal(t, flow.StageQuestion, c.CurrentStage())

	term.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, flow.StageYes, c.CurrentStage())
}

func TestTerminal_QuitKeys(t *testing.T) {
	term, _, _ := newTestTerminal(t)

	assert.False(t, term.HandleEvent(key('q')))
	assert.False(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
	assert.True(t, term.HandleEvent(key('x')))
}

func TestTerminal_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	c := flow.NewController(mustContent(t), config.DefaultGameplay(), rand.New(rand.NewSource(1)), nil)
	defer c.Close()

	updates := make(chan *config.Content, 1)
	term := New(screen, c, view.DefaultLayout(config.DefaultGameplay()), updates, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	require.NoError(t, term.Run(ctx))
}

func mustContent(t *testing.T) *config.Content {
	t.Helper()
	content, err := config.LoadContent("../../data/content.yaml")
	require.NoError(t, err)
	return content
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "Start Game", 20, []string{"Start Game"}},
		{"words", "You make me feel calm.", 10, []string{"You make", "me feel", "calm."}},
		{"long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"empty", "   ", 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrap(tt.in, tt.width))
		})
	}
}

func TestBlend(t *testing.T) {
	got := blend(config.ColorOverlay, config.ColorBackground)
	assert.Equal(t, config.ColorBackground, got, "same hue blends to itself")
}
