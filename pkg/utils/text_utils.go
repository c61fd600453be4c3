package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 单词本身超过最大宽度时按字符强制断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	if measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(textStr) {
		candidate := word
		if currentLine != "" {
			candidate = currentLine + " " + word
		}
		if measureTextWidth(candidate, font) <= maxWidth {
			currentLine = candidate
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}

		// 单词太长，按字符拆开
		if measureTextWidth(word, font) > maxWidth {
			parts := breakWord(word, font, maxWidth)
			lines = append(lines, parts[:len(parts)-1]...)
			currentLine = parts[len(parts)-1]
			continue
		}
		currentLine = word
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// breakWord 按字符把超宽单词拆成多段，每段至少一个字符
func breakWord(word string, font *text.GoTextFace, maxWidth float64) []string {
	var parts []string
	current := ""
	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		word = word[size:]

		test := current + string(r)
		if current != "" && measureTextWidth(test, font) > maxWidth {
			parts = append(parts, current)
			current = string(r)
			continue
		}
		current = test
	}
	return append(parts, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	width, _ := text.Measure(textStr, font, 0)
	return width
}

// StripEmoji 移除字体无法显示的 emoji 及其修饰符，并整理多余空格
// 例如 "Yes 💗" -> "Yes"，"Sweet! 💞" -> "Sweet!"
func StripEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// isEmoji 判断 r 是否属于 emoji 或其修饰字符
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // 符号、表情、交通、补充符号
		return true
	case r >= 0x2600 && r <= 0x27BF: // 杂项符号、装饰符号（✨ 等）
		return true
	case r == 0x200D, r == 0xFE0F, r == 0xFE0E: // 零宽连接符、变体选择符
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF: // 肤色修饰
		return true
	}
	return unicode.Is(unicode.Co, r)
}
