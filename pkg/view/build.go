package view

import (
	"fmt"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/flow"
)

// Build 根据快照生成视图树
func Build(snap flow.Snapshot, content *config.Content, l Layout) Tree {
	b := &builder{layout: l, content: content, snap: snap}
	b.add(Node{Kind: KindBackdrop, Rect: Rect{W: l.Width, H: l.Height}})

	switch snap.Stage {
	case flow.StageWelcome:
		b.welcome()
	case flow.StageGame:
		b.game()
	case flow.StageReasons:
		b.reasons()
	case flow.StageQuestion:
		b.question()
	case flow.StageYes:
		b.yes()
	case flow.StageFinal:
		b.final()
	}

	return Tree{Stage: snap.Stage, Nodes: b.nodes}
}

type builder struct {
	layout  Layout
	content *config.Content
	snap    flow.Snapshot
	nodes   []Node
}

// add 追加静止节点（原始大小、不透明）
func (b *builder) add(n Node) {
	n.Scale, n.Alpha = 1, 1
	b.nodes = append(b.nodes, n)
}

// animate 追加带动画的节点，Scale/Alpha/OffsetY 由调用方给出
func (b *builder) animate(n Node) {
	if n.Scale == 0 {
		n.Scale = 1
	}
	b.nodes = append(b.nodes, n)
}

func (b *builder) text(r Rect, s string, style Style) {
	b.add(Node{Kind: KindText, Rect: r, Text: s, Style: style})
}

func (b *builder) button(r Rect, label string, style Style, event flow.Event) {
	b.add(Node{Kind: KindButton, Rect: r, Text: label, Style: style, Action: EventAction(event)})
}

func (b *builder) welcome() {
	l, g := b.layout, b.content.Greeting
	card := l.cardRect(240)
	b.add(Node{Kind: KindCard, Rect: card})

	y := card.Y + l.CardPadding
	b.text(l.textRow(card, y, 40), g.Headline, StyleTitle)
	y += 40 + 16
	b.text(l.textRow(card, y, l.LineHeight), g.Subtitle, StyleBody)
	y += l.LineHeight + 32
	b.button(l.centeredButton(card.X+card.W/2, y, g.StartButton), g.StartButton, StylePrimary, flow.EventStartGame)
}

func (b *builder) game() {
	l, snap := b.layout, b.snap

	for _, h := range snap.Hearts {
		pose := l.heartPose(h.Age)
		cx, cy := h.X/100*l.Width, h.Y/100*l.Height
		b.animate(Node{
			Kind:    KindHeart,
			Rect:    Rect{X: cx - h.Size/2, Y: cy - h.Size/2, W: h.Size, H: h.Size},
			Glyph:   GlyphHeart,
			Scale:   pose.Scale,
			Alpha:   pose.Alpha,
			OffsetY: pose.OffsetY,
			Action:  CatchAction(h.ID),
		})
	}

	// 计数器在爱心上层
	counter := Rect{X: (l.Width - l.CounterWidth) / 2, Y: 24, W: l.CounterWidth, H: l.CounterHeight}
	b.add(Node{Kind: KindPanel, Rect: counter, Blocks: true})
	b.text(counter, fmt.Sprintf("%s: %d/%d", b.content.Game.CounterLabel, snap.Score, snap.Goal), StyleCounter)

	if snap.GoalReached() {
		full := Rect{W: l.Width, H: l.Height}
		b.add(Node{Kind: KindOverlay, Rect: full, Blocks: true})
		b.text(full, b.content.Game.GoalReached, StyleOverlay)
	}
}

func (b *builder) reasons() {
	l, r, snap := b.layout, b.content.Reasons, b.snap
	lines := b.content.Reason(snap.ReasonIndex)

	const headingH, gap, titleH = 40.0, 20.0, 34.0
	cardH := 2*l.CardPadding + titleH + 12 + float64(len(lines))*l.LineHeight
	total := headingH + gap + cardH + 24 + l.ButtonHeight
	top := (l.Height - total) / 2

	b.text(Rect{X: 0, Y: top, W: l.Width, H: headingH},
		fmt.Sprintf("%d %s", b.content.ReasonCount(), r.Heading), StyleHeading)

	alpha, offset := l.reasonPose(snap.ReasonElapsed)
	card := Rect{X: (l.Width - l.CardWidth) / 2, Y: top + headingH + gap, W: l.CardWidth, H: cardH}
	b.animate(Node{Kind: KindCard, Rect: card, Alpha: alpha, OffsetY: offset})

	y := card.Y + l.CardPadding
	b.animate(Node{
		Kind: KindText, Rect: l.textRow(card, y, titleH), Style: StyleEmphasis, Align: AlignLeft,
		Text:  fmt.Sprintf("%d. %s", snap.ReasonIndex+1, r.Prefix),
		Alpha: alpha, OffsetY: offset,
	})
	y += titleH + 12
	for _, line := range lines {
		b.animate(Node{
			Kind: KindText, Rect: l.textRow(card, y, l.LineHeight), Style: StyleBody, Align: AlignLeft,
			Text:  line,
			Alpha: alpha, OffsetY: offset,
		})
		y += l.LineHeight
	}

	buttonY := card.Y + card.H + 24
	if snap.ReasonIndex < b.content.LastReasonIndex() {
		b.button(l.centeredButton(l.Width/2, buttonY, r.NextButton), r.NextButton, StylePrimary, flow.EventNextReason)
	} else {
		b.button(l.centeredButton(l.Width/2, buttonY, r.ContinueButton), r.ContinueButton, StylePrimary, flow.EventFinishReasons)
	}
}

func (b *builder) question() {
	l, q := b.layout, b.content.Question
	card := l.cardRect(230)
	b.add(Node{Kind: KindCard, Rect: card})

	y := card.Y + l.CardPadding
	b.text(l.textRow(card, y, 80), q.Prompt, StyleTitle)
	y += 80 + 40

	decline := b.content.DeclineLabel(b.snap.NoIndex)
	row := l.buttonRow(card.X+card.W/2, y, q.AcceptButton, decline)
	b.button(row[0], q.AcceptButton, StylePrimary, flow.EventAcceptProposal)
	b.button(row[1], decline, StyleSecondary, flow.EventDeclineProposal)
}

func (b *builder) yes() {
	l, c := b.layout, b.content.Celebration
	b.particles(l.celebration(b.snap.StageElapsed), 20)

	card := l.cardRect(310)
	b.add(Node{Kind: KindCard, Rect: card})

	y := card.Y + l.CardPadding
	b.text(l.textRow(card, y, 40), c.Headline, StyleHeading)
	y += 40 + 24

	panel := Rect{X: card.X + (card.W-400)/2, Y: y, W: 400, H: 108}
	b.add(Node{Kind: KindPanel, Rect: panel})
	row := Rect{X: panel.X + 24, Y: panel.Y + 24, W: panel.W - 48, H: l.LineHeight}
	b.add(Node{Kind: KindText, Rect: row, Text: c.VenueLabel + " " + c.Venue, Style: StyleBody, Align: AlignLeft})
	row.Y += l.LineHeight
	b.add(Node{Kind: KindText, Rect: row, Text: c.TimeLabel + " " + c.Time, Style: StyleBody, Align: AlignLeft})
	y += panel.H + 28

	b.button(l.centeredButton(card.X+card.W/2, y, c.ContinueButton), c.ContinueButton, StylePrimary, flow.EventContinueToDetails)
}

func (b *builder) final() {
	l, c := b.layout, b.content.Closing
	b.particles(l.closing(b.snap.StageElapsed), 24)

	card := l.cardRect(192)
	b.add(Node{Kind: KindCard, Rect: card})

	y := card.Y + l.CardPadding
	b.text(l.textRow(card, y, 50), c.Message, StyleTitle)
	y += 50 + 32
	b.button(l.centeredButton(card.X+card.W/2, y, c.RestartButton), c.RestartButton, StylePrimary, flow.EventRestart)
}

// particles 把装饰粒子加入树（位于卡片下层，不可点击）
func (b *builder) particles(ps []Particle, size float64) {
	for _, p := range ps {
		if p.Alpha <= 0 {
			continue
		}
		b.animate(Node{
			Kind:  KindGlyph,
			Rect:  Rect{X: p.X - size/2, Y: p.Y - size/2, W: size, H: size},
			Glyph: p.Glyph,
			Scale: p.Scale,
			Alpha: p.Alpha,
		})
	}
}
