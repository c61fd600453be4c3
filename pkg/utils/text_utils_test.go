package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestFace(t *testing.T) *text.GoTextFace {
	t.Helper()
	faceSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("无法创建字体源: %v", err)
	}
	return &text.GoTextFace{Source: faceSource, Size: 20}
}

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font := newTestFace(t)

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{
			name:      "短文本不换行",
			input:     "Next",
			maxWidth:  1000,
			expectMin: 1,
		},
		{
			name:      "长文本自动换行",
			input:     "You understand me without me having to explain everything twice.",
			maxWidth:  200,
			expectMin: 2,
		},
		{
			name:      "空文本",
			input:     "",
			maxWidth:  100,
			expectMin: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)

			if len(lines) < tt.expectMin {
				t.Errorf("期望至少 %d 行，实际得到 %d 行", tt.expectMin, len(lines))
			}
			for i, line := range lines {
				if w := measureTextWidth(line, font); w > tt.maxWidth && strings.Contains(line, " ") {
					t.Errorf("第 %d 行 %q 宽度 %.1f 超过 %.0f", i+1, line, w, tt.maxWidth)
				}
			}
		})
	}
}

// TestWrapTextKeepsWords 测试按单词断行
func TestWrapTextKeepsWords(t *testing.T) {
	font := newTestFace(t)
	input := "Just okay being myself around you"

	lines := WrapText(input, font, 120)
	if len(lines) < 2 {
		t.Fatalf("期望换行，实际 %d 行", len(lines))
	}
	if got := strings.Join(lines, " "); got != input {
		t.Errorf("按单词断行后应能还原原文: got %q", got)
	}
}

// TestWrapTextLongWord 测试超长单词强制断行
func TestWrapTextLongWord(t *testing.T) {
	font := newTestFace(t)
	input := strings.Repeat("m", 60)

	lines := WrapText(input, font, 100)
	if len(lines) < 2 {
		t.Fatalf("期望超长单词被拆开，实际 %d 行", len(lines))
	}
	if got := strings.Join(lines, ""); got != input {
		t.Errorf("拆分后应能还原原文: got %q", got)
	}
}

// TestWrapTextEdgeCases 测试边界情况
func TestWrapTextEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		font     *text.GoTextFace
		maxWidth float64
		wantLen  int
	}{
		{"nil font", "hello", nil, 100, 1},
		{"zero maxWidth", "hello", &text.GoTextFace{Size: 22}, 0, 1},
		{"negative maxWidth", "hello", &text.GoTextFace{Size: 22}, -100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, tt.font, tt.maxWidth)
			if len(lines) != tt.wantLen {
				t.Errorf("期望 %d 行，实际得到 %d 行", tt.wantLen, len(lines))
			}
		})
	}
}

// TestStripEmoji 测试移除 emoji
func TestStripEmoji(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Yes 💗", "Yes"},
		{"Sweet! 💞", "Sweet!"},
		{"Are you sure? 🥺", "Are you sure?"},
		{"Yessss! 💞 See you soon mwiza 😍", "Yessss! See you soon mwiza"},
		{"Karyn… will you be my Valentine? 💘", "Karyn… will you be my Valentine?"},
		{"✨ sparkle ✨", "sparkle"},
		{"Venue: Silverback Hotel, Mbarara", "Venue: Silverback Hotel, Mbarara"},
		{"💖", ""},
	}

	for _, tt := range tests {
		if got := StripEmoji(tt.input); got != tt.expected {
			t.Errorf("StripEmoji(%q) = %q, 期望 %q", tt.input, got, tt.expected)
		}
	}
}
