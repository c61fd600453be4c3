// Package term 终端前端
//
// 与窗口版使用同一棵视图树：逻辑坐标 800x600 按比例映射到终端字符格，
// 鼠标点击映射回逻辑坐标后交给 Tree.HitTest。
//
// 按键：
//   - Enter / 空格: 主按钮；小游戏阶段接住最早出现的爱心
//   - n / d: 次按钮（拒绝）
//   - q / Esc / Ctrl-C: 退出
package term

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/flow"
	"github.com/decker502/valentine/pkg/logging"
	"github.com/decker502/valentine/pkg/view"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

// FrameInterval 终端刷新间隔
const FrameInterval = 16 * time.Millisecond

const (
	heartRune   = '♥'
	sparkleRune = '✦'
	minAlpha    = 0.3 // 低于此透明度的装饰不绘制
)

// Terminal 终端界面
type Terminal struct {
	screen     tcell.Screen
	controller *flow.Controller
	layout     view.Layout
	updates    <-chan *config.Content
	logger     *zap.Logger

	tree     view.Tree
	buttons  tcell.ButtonMask // 上一次鼠标事件的按键状态
	quitting bool
}

// New 创建终端界面
// updates 为文案热加载通道，可为 nil
func New(screen tcell.Screen, controller *flow.Controller, layout view.Layout, updates <-chan *config.Content, logger *zap.Logger) *Terminal {
	return &Terminal{
		screen:     screen,
		controller: controller,
		layout:     layout,
		updates:    updates,
		logger:     logging.OrNop(logger).Named("Terminal"),
	}
}

// Run 初始化屏幕并运行主循环，直到用户退出或 ctx 取消
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer func() {
		close(quit)
		t.screen.Fini()
		<-done
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	last := time.Now()

	t.logger.Info("终端界面已启动")
	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !t.HandleEvent(ev) {
				t.logger.Info("用户退出")
				return nil
			}

		case content := <-t.updates:
			t.controller.SetContent(content)

		case now := <-ticker.C:
			t.controller.Update(now.Sub(last))
			last = now
			t.Draw()
		}
	}
}

// HandleEvent 处理一个终端事件，返回 false 表示退出
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0
		t.buttons = ev.Buttons()
		if pressed {
			x, y := ev.Position()
			t.Click(x, y)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		t.confirm()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case ' ':
		t.confirm()
	case 'n', 'N', 'd', 'D':
		t.rebuild()
		if action, ok := t.tree.SecondaryAction(); ok {
			action.Apply(t.controller)
		}
	}
	return true
}

// confirm 主按钮；小游戏阶段接住最早的爱心
func (t *Terminal) confirm() {
	if t.controller.CurrentStage() == flow.StageGame {
		if hearts := t.controller.Hearts(); len(hearts) > 0 {
			t.controller.Catch(hearts[0].ID)
		}
		return
	}
	t.rebuild()
	if action, ok := t.tree.PrimaryAction(); ok {
		action.Apply(t.controller)
	}
}

// Click 处理字符格 (cx, cy) 上的点击
func (t *Terminal) Click(cx, cy int) bool {
	t.rebuild()
	x, y := t.toLogical(cx, cy)
	if action, ok := t.tree.HitTest(x, y); ok {
		return action.Apply(t.controller)
	}

	// 爱心在终端里只占一个字符格，按格子再找一次
	for i := len(t.tree.Nodes) - 1; i >= 0; i-- {
		n := t.tree.Nodes[i]
		if n.Blocks && n.Hit(x, y) {
			return false
		}
		if n.Kind != view.KindHeart {
			continue
		}
		hx, hy := n.Bounds().Center()
		if gx, gy := t.toCell(hx, hy); gx == cx && gy == cy {
			return n.Action.Apply(t.controller)
		}
	}
	return false
}

// Draw 绘制当前帧
func (t *Terminal) Draw() {
	t.rebuild()
	t.screen.Clear()
	for _, n := range t.tree.Nodes {
		t.drawNode(n)
	}
	t.screen.Show()
}

func (t *Terminal) rebuild() {
	t.tree = view.Build(t.controller.Snapshot(), t.controller.Content(), t.layout)
}

func (t *Terminal) drawNode(n view.Node) {
	b := n.Bounds()
	switch n.Kind {
	case view.KindBackdrop:
		t.fill(b, styleBg(config.ColorBackground))
	case view.KindCard:
		t.fill(b, styleBg(config.ColorCard))
	case view.KindPanel:
		t.fill(b, styleBg(config.ColorPanel))
	case view.KindOverlay:
		t.fill(b, styleBg(config.ColorOverlay))
	case view.KindButton:
		bg := config.ColorPrimary
		fg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		if n.Style == view.StyleSecondary {
			bg, fg = config.ColorSecondary, config.ColorEmphasis
		}
		style := styleBg(bg).Foreground(rgb(fg)).Bold(true)
		t.fill(b, style)
		t.drawText(b, "[ "+n.Text+" ]", view.AlignCenter, style)
	case view.KindText:
		if n.Alpha < minAlpha {
			return
		}
		fg := config.ColorBody
		switch n.Style {
		case view.StyleTitle, view.StyleHeading, view.StyleCounter, view.StyleOverlay:
			fg = config.ColorTitle
		case view.StyleEmphasis:
			fg = config.ColorEmphasis
		}
		style := tcell.StyleDefault.Foreground(rgb(fg)).Background(t.backgroundAt(b))
		if n.Style != view.StyleBody {
			style = style.Bold(true)
		}
		t.drawText(b, n.Text, n.Align, style)
	case view.KindHeart, view.KindGlyph:
		if n.Alpha < minAlpha {
			return
		}
		r, fg := heartRune, config.ColorHeart
		if n.Glyph == view.GlyphSparkle {
			r, fg = sparkleRune, config.ColorSparkle
		}
		cx, cy := t.toCell(b.Center())
		_, _, bgStyle, _ := t.screen.GetContent(cx, cy)
		_, bg, _ := bgStyle.Decompose()
		t.screen.SetContent(cx, cy, r, nil, tcell.StyleDefault.Foreground(rgb(fg)).Background(bg).Bold(n.Kind == view.KindHeart))
	}
}

// backgroundAt 返回矩形中心格子当前的背景色
func (t *Terminal) backgroundAt(b view.Rect) tcell.Color {
	cx, cy := t.toCell(b.Center())
	_, _, style, _ := t.screen.GetContent(cx, cy)
	_, bg, _ := style.Decompose()
	return bg
}

// fill 用样式填充矩形覆盖的格子
func (t *Terminal) fill(b view.Rect, style tcell.Style) {
	x0, y0, x1, y1 := t.cellRect(b)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText 在矩形内按词换行绘制文字，垂直居中
func (t *Terminal) drawText(b view.Rect, s string, align view.Align, style tcell.Style) {
	x0, y0, x1, y1 := t.cellRect(b)
	width := max(1, x1-x0)
	lines := wrap(s, width)

	top := y0 + (y1-y0-len(lines))/2
	for i, line := range lines {
		x := x0
		if align == view.AlignCenter {
			x = x0 + (width-runewidth.StringWidth(line))/2
		}
		for _, r := range line {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			t.screen.SetContent(x, top+i, r, nil, style)
			x += w
		}
	}
}

// wrap 按显示宽度换行，单词超长时硬切
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		for runewidth.StringWidth(word) > width {
			if cur.Len() > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				break
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		if word == "" {
			continue
		}
		if cur.Len() > 0 && runewidth.StringWidth(cur.String())+1+runewidth.StringWidth(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// cellSize 每个字符格对应的逻辑尺寸
func (t *Terminal) cellSize() (float64, float64) {
	cols, rows := t.screen.Size()
	cols, rows = max(cols, 1), max(rows, 1)
	return t.layout.Width / float64(cols), t.layout.Height / float64(rows)
}

// toLogical 字符格中心的逻辑坐标
func (t *Terminal) toLogical(cx, cy int) (float64, float64) {
	w, h := t.cellSize()
	return (float64(cx) + 0.5) * w, (float64(cy) + 0.5) * h
}

// toCell 逻辑坐标所在的字符格
func (t *Terminal) toCell(x, y float64) (int, int) {
	w, h := t.cellSize()
	return int(math.Floor(x / w)), int(math.Floor(y / h))
}

// cellRect 矩形覆盖的字符格范围 [x0, x1) x [y0, y1)
func (t *Terminal) cellRect(b view.Rect) (int, int, int, int) {
	w, h := t.cellSize()
	x0 := int(math.Round(b.X / w))
	y0 := int(math.Round(b.Y / h))
	x1 := int(math.Round((b.X + b.W) / w))
	y1 := int(math.Round((b.Y + b.H) / h))
	return x0, y0, max(x1, x0+1), max(y1, y0+1)
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// styleBg 半透明颜色按背景色混合后作为格子背景
func styleBg(c color.NRGBA) tcell.Style {
	if c.A < 255 {
		c = blend(c, config.ColorBackground)
	}
	return tcell.StyleDefault.Background(rgb(c))
}

func blend(c, under color.NRGBA) color.NRGBA {
	a := float64(c.A) / 255
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*a + float64(y)*(1-a)))
	}
	return color.NRGBA{R: mix(c.R, under.R), G: mix(c.G, under.G), B: mix(c.B, under.B), A: 255}
}
