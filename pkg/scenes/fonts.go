package scenes

import (
	"bytes"
	"fmt"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/view"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts 按样式缓存字体
type Fonts struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	faces   map[view.Style]*text.GoTextFace
}

// LoadFonts 加载内置的 Go 字体
func LoadFonts() (*Fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create regular font source: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create bold font source: %w", err)
	}

	return &Fonts{
		regular: regular,
		bold:    bold,
		faces:   make(map[view.Style]*text.GoTextFace),
	}, nil
}

// Face 返回样式对应的字体
func (f *Fonts) Face(style view.Style) *text.GoTextFace {
	if face, ok := f.faces[style]; ok {
		return face
	}

	source, size := f.bold, config.FontSizeBody
	switch style {
	case view.StyleTitle:
		size = config.FontSizeTitle
	case view.StyleHeading:
		size = config.FontSizeHeading
	case view.StyleEmphasis:
		size = config.FontSizeEmphasis
	case view.StyleCounter, view.StylePrimary, view.StyleSecondary:
		size = config.FontSizeButton
	case view.StyleOverlay:
		size = config.FontSizeOverlay
	default:
		source = f.regular
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	f.faces[style] = face
	return face
}

// textColor 返回样式对应的文字颜色
func textColor(style view.Style) colorNRGBA {
	switch style {
	case view.StyleTitle, view.StyleHeading, view.StyleCounter, view.StyleOverlay:
		return config.ColorTitle
	case view.StyleEmphasis, view.StyleSecondary:
		return config.ColorEmphasis
	case view.StylePrimary:
		return colorNRGBA{R: 255, G: 255, B: 255, A: 255}
	default:
		return config.ColorBody
	}
}
