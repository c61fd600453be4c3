package config

import "image/color"

// 游戏窗口逻辑尺寸（所有视图坐标都基于这个尺寸）
const (
	GameWindowWidth  = 800
	GameWindowHeight = 600
)

// WindowTitle 窗口标题
const WindowTitle = "For Mwiza 💖"

// 调色板（玫瑰色系）
var (
	ColorBackground   = color.NRGBA{R: 255, G: 228, B: 230, A: 255} // rose-100
	ColorCard         = color.NRGBA{R: 255, G: 255, B: 255, A: 230} // white/90
	ColorCardBorder   = color.NRGBA{R: 254, G: 205, B: 211, A: 255} // rose-200
	ColorPanel        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorTitle        = color.NRGBA{R: 136, G: 19, B: 55, A: 255}   // rose-900
	ColorBody         = color.NRGBA{R: 190, G: 18, B: 60, A: 255}   // rose-700
	ColorEmphasis     = color.NRGBA{R: 159, G: 18, B: 57, A: 255}   // rose-800
	ColorPrimary      = color.NRGBA{R: 244, G: 63, B: 94, A: 255}   // rose-500
	ColorPrimaryHover = color.NRGBA{R: 225, G: 29, B: 72, A: 255}   // rose-600
	ColorSecondary    = color.NRGBA{R: 254, G: 205, B: 211, A: 255} // rose-200
	ColorOverlay      = color.NRGBA{R: 255, G: 228, B: 230, A: 178} // rose-100/70
	ColorHeart        = color.NRGBA{R: 236, G: 72, B: 153, A: 255}  // pink-500
	ColorSparkle      = color.NRGBA{R: 250, G: 204, B: 21, A: 255}  // yellow-400
)

// 字号（逻辑像素）
const (
	FontSizeTitle    = 30.0
	FontSizeHeading  = 26.0
	FontSizeBody     = 20.0
	FontSizeButton   = 18.0
	FontSizeOverlay  = 32.0
	FontSizeEmphasis = 21.0
)
