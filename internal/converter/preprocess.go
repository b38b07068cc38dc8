package converter

import (
	"regexp"
	"strings"
)

// codeRegionRe 匹配代码块和行内代码
var codeRegionRe = regexp.MustCompile("(```[\\s\\S]*?```|`[^`\\n]+`)")

const (
	spoilerOpen  = "<tg-spoiler>"
	spoilerClose = "</tg-spoiler>"
)

// PreprocessSpoilers 将 ||spoiler|| 替换为 <tg-spoiler>spoiler</tg-spoiler>
// 跳过代码块和行内代码中的内容
func PreprocessSpoilers(text string) string {
	var result strings.Builder
	cursor := 0
	for _, loc := range codeRegionRe.FindAllStringIndex(text, -1) {
		result.WriteString(replaceSpoilerTags(text[cursor:loc[0]]))
		result.WriteString(text[loc[0]:loc[1]])
		cursor = loc[1]
	}
	result.WriteString(replaceSpoilerTags(text[cursor:]))
	return result.String()
}

// replaceSpoilerTags 将成对的 ||...|| 替换为 <tg-spoiler>...</tg-spoiler>
// 转义的 \|| 和没有配对的 || 保持原样
func replaceSpoilerTags(text string) string {
	var marks []int
	for i := 0; i+1 < len(text); i++ {
		if text[i] != '|' || text[i+1] != '|' {
			continue
		}
		if i > 0 && text[i-1] == '\\' {
			i++
			continue
		}
		marks = append(marks, i)
		i++
	}
	if len(marks) < 2 {
		return text
	}
	marks = marks[:len(marks)&^1]

	var result strings.Builder
	cursor := 0
	for n, m := range marks {
		result.WriteString(text[cursor:m])
		if n%2 == 0 {
			result.WriteString(spoilerOpen)
		} else {
			result.WriteString(spoilerClose)
		}
		cursor = m + 2
	}
	result.WriteString(text[cursor:])
	return result.String()
}

// validateTelegramEmoji 如果 URL 是 tg://emoji?id=<19位数字>，返回 id，否则返回空
func validateTelegramEmoji(url string) string {
	const prefix = "tg://emoji?id="
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	emojiID := strings.TrimPrefix(url, prefix)
	if len(emojiID) == 19 && isDigits(emojiID) {
		return emojiID
	}
	return ""
}

// isDigits 检查字符串是否全为数字
func isDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return len(s) > 0
}
