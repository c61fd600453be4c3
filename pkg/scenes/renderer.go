package scenes

import (
	"image"
	"image/color"
	"math"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/utils"
	"github.com/decker502/valentine/pkg/view"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type colorNRGBA = color.NRGBA

const (
	cardRadius   = 24
	panelRadius  = 16
	borderWidth  = 1.5
	textLineGap  = 1.25 // 行距倍数
	sparkleWidth = 2
)

// Renderer 把视图树画到 ebiten 图像上
// 所有图形都用 vector 和 DrawTriangles 绘制，不依赖图片资源
type Renderer struct {
	fonts *Fonts
	white *ebiten.Image // DrawTriangles 使用的纯白纹理
}

// NewRenderer 创建渲染器
func NewRenderer(fonts *Fonts) *Renderer {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &Renderer{
		fonts: fonts,
		white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// Draw 绘制整棵树
// hoverX/hoverY 为指针位置，用于按钮悬停色；传入负数表示无悬停
func (r *Renderer) Draw(screen *ebiten.Image, tree view.Tree, hoverX, hoverY float64) {
	for _, n := range tree.Nodes {
		switch n.Kind {
		case view.KindBackdrop:
			screen.Fill(config.ColorBackground)
		case view.KindCard:
			r.drawCard(screen, n)
		case view.KindPanel:
			b := n.Bounds()
			r.roundRect(screen, b, min(panelRadius, b.H/2), fade(config.ColorPanel, n.Alpha))
		case view.KindOverlay:
			b := n.Bounds()
			vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fade(config.ColorOverlay, n.Alpha), false)
		case view.KindText:
			r.drawText(screen, n)
		case view.KindButton:
			r.drawButton(screen, n, n.Hit(hoverX, hoverY))
		case view.KindHeart:
			b := n.Bounds()
			cx, cy := b.Center()
			r.drawHeart(screen, cx, cy, b.W, fade(config.ColorHeart, n.Alpha))
		case view.KindGlyph:
			r.drawGlyph(screen, n)
		}
	}
}

func (r *Renderer) drawCard(screen *ebiten.Image, n view.Node) {
	b := n.Bounds()
	// 边框：先画略大的底色，再画卡片
	outer := view.Rect{X: b.X - borderWidth, Y: b.Y - borderWidth, W: b.W + 2*borderWidth, H: b.H + 2*borderWidth}
	r.roundRect(screen, outer, cardRadius+borderWidth, fade(config.ColorCardBorder, n.Alpha))
	r.roundRect(screen, b, cardRadius, fade(config.ColorCard, n.Alpha))
}

func (r *Renderer) drawButton(screen *ebiten.Image, n view.Node, hovered bool) {
	b := n.Bounds()
	fill := config.ColorPrimary
	if n.Style == view.StyleSecondary {
		fill = config.ColorSecondary
	} else if hovered {
		fill = config.ColorPrimaryHover
	}
	r.roundRect(screen, b, b.H/2, fade(fill, n.Alpha))
	r.drawText(screen, n)
}

// drawText 在节点矩形内绘制文字，超宽时自动换行
func (r *Renderer) drawText(screen *ebiten.Image, n view.Node) {
	s := utils.StripEmoji(n.Text)
	if s == "" {
		return
	}

	face := r.fonts.Face(n.Style)
	b := n.Bounds()
	lines := utils.WrapText(s, face, b.W-8)
	lineH := face.Size * textLineGap
	top := b.Y + (b.H-lineH*float64(len(lines)))/2

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		y := top + lineH*float64(i) + lineH/2
		if n.Align == view.AlignLeft {
			op.LayoutOptions.PrimaryAlign = text.AlignStart
			op.GeoM.Translate(b.X, y)
		} else {
			op.LayoutOptions.PrimaryAlign = text.AlignCenter
			op.GeoM.Translate(b.X+b.W/2, y)
		}
		op.ColorScale.ScaleWithColor(textColor(n.Style))
		op.ColorScale.ScaleAlpha(float32(n.Alpha))
		text.Draw(screen, line, face, op)
	}
}

func (r *Renderer) drawGlyph(screen *ebiten.Image, n view.Node) {
	b := n.Bounds()
	cx, cy := b.Center()
	switch n.Glyph {
	case view.GlyphSparkle:
		c := fade(config.ColorSparkle, n.Alpha)
		h := float32(b.W / 2)
		x, y := float32(cx), float32(cy)
		vector.StrokeLine(screen, x-h, y, x+h, y, sparkleWidth, c, true)
		vector.StrokeLine(screen, x, y-h, x, y+h, sparkleWidth, c, true)
		vector.StrokeLine(screen, x-h*0.6, y-h*0.6, x+h*0.6, y+h*0.6, sparkleWidth/2, c, true)
		vector.StrokeLine(screen, x-h*0.6, y+h*0.6, x+h*0.6, y-h*0.6, sparkleWidth/2, c, true)
	default:
		r.drawHeart(screen, cx, cy, b.W, fade(config.ColorHeart, n.Alpha))
	}
}

// drawHeart 以 (cx, cy) 为中心画一个宽 size 的心形
// 两个圆做上半部分，三角形做下半部分
func (r *Renderer) drawHeart(screen *ebiten.Image, cx, cy, size float64, c color.NRGBA) {
	if c.A == 0 || size <= 0 {
		return
	}
	q := size / 4
	lobeY := cy - q/2
	vector.DrawFilledCircle(screen, float32(cx-q), float32(lobeY), float32(q), c, true)
	vector.DrawFilledCircle(screen, float32(cx+q), float32(lobeY), float32(q), c, true)

	// 三角形两边与圆相切的近似点
	dx := q * (1 + math.Sqrt2/2)
	var path vector.Path
	path.MoveTo(float32(cx-dx), float32(lobeY+q*math.Sqrt2/2))
	path.LineTo(float32(cx+dx), float32(lobeY+q*math.Sqrt2/2))
	path.LineTo(float32(cx), float32(cy+size/2))
	path.Close()
	r.fillPath(screen, &path, c)
}

// roundRect 画圆角矩形
func (r *Renderer) roundRect(screen *ebiten.Image, b view.Rect, radius float64, c color.NRGBA) {
	if c.A == 0 || b.W <= 0 || b.H <= 0 {
		return
	}
	radius = min(radius, b.W/2, b.H/2)

	var path vector.Path
	x0, y0, x1, y1 := float32(b.X), float32(b.Y), float32(b.X+b.W), float32(b.Y+b.H)
	rad := float32(radius)
	path.MoveTo(x0+rad, y0)
	path.LineTo(x1-rad, y0)
	path.Arc(x1-rad, y0+rad, rad, -math.Pi/2, 0, vector.Clockwise)
	path.LineTo(x1, y1-rad)
	path.Arc(x1-rad, y1-rad, rad, 0, math.Pi/2, vector.Clockwise)
	path.LineTo(x0+rad, y1)
	path.Arc(x0+rad, y1-rad, rad, math.Pi/2, math.Pi, vector.Clockwise)
	path.LineTo(x0, y0+rad)
	path.Arc(x0+rad, y0+rad, rad, math.Pi, 3*math.Pi/2, vector.Clockwise)
	path.Close()
	r.fillPath(screen, &path, c)
}

// fillPath 用纯色填充路径
func (r *Renderer) fillPath(screen *ebiten.Image, path *vector.Path, c color.NRGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := premultiplied(c)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = cr, cg, cb, ca
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, r.white, op)
}

// fade 按 alpha 调整颜色透明度
func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * utils.Clamp01(alpha)))
	return c
}

// premultiplied 返回预乘 alpha 的 [0, 1] 分量
func premultiplied(c color.NRGBA) (r, g, b, a float32) {
	a = float32(c.A) / 255
	return float32(c.R) / 255 * a, float32(c.G) / 255 * a, float32(c.B) / 255 * a, a
}
