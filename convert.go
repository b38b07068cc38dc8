// Package tgcompose 组合 Telegram 消息的纯文本与 MessageEntity 列表
//
// Telegram Bot API 允许用 text + entities 代替 parse_mode 发送格式化消息。
// 这个包提供一种可组合的方式来构建这对数据，所有 offset/length 以
// Unicode code point 计数，换行统一为 "\r\n"。
//
// 核心功能：
//   - Entity(): 用一个实体包裹整段文本或已组合的片段
//   - BuildMessage(): 拼接文本与片段，并平移嵌入片段的实体
//   - Split(): 按长度拆分片段，实体跨越边界时被裁剪
//   - Convert(): 将 Markdown 转换为片段
//
// 示例：
//
//	world := tgcompose.BuildMessage([]string{"wor", ""},
//	    tgcompose.Entity(tgcompose.Plain("ld"), tgcompose.Italic{}))
//	msg := tgcompose.BuildMessage([]string{"Hello ", "!"},
//	    tgcompose.Entity(world, tgcompose.Bold{}))
//	// msg.Text == "Hello world!"
//	// msg.Entities == [{Italic, 9, 2}, {Bold, 6, 5}]
package tgcompose

import (
	"strings"

	"github.com/riverfjs/tgcompose/internal/converter"
	"github.com/riverfjs/tgcompose/internal/parser"
)

// Convert 将 Markdown 转换为 Fragment
//
// 参数:
//   - markdown: 原始 Markdown 文本
//   - opts: 转换选项，见 WithConfig、WithSpoilers
//
// 返回的 Fragment 满足所有实体都在文本范围内，且不含单独的 "\n"。
func Convert(markdown string, opts ...Option) Fragment {
	options := applyOptions(opts...)

	preprocessed := markdown
	if options.Spoilers {
		preprocessed = converter.PreprocessSpoilers(preprocessed)
	}

	res := parser.Parse(preprocessed, options.Config)
	if len(res.Unclosed) > 0 {
		Logger.Printf("dropped unclosed entities: %s", strings.Join(res.Unclosed, ", "))
	}

	spans := make([]Span, 0, len(res.Entities))
	for _, e := range res.Entities {
		s, err := SpanOf(e)
		if err != nil {
			Logger.Printf("dropped entity at offset %d: %v", e.Offset, err)
			continue
		}
		spans = append(spans, s)
	}
	return Fragment{Text: res.Text, Entities: spans}
}

// Messages 将 Markdown 转换为可以逐条发送的 Fragment 列表
//
// 每条消息不超过 MaxLength 个 code point（默认 4096），首尾换行被去除，空消息被丢弃。
func Messages(markdown string, opts ...Option) []Fragment {
	options := applyOptions(opts...)
	full := Convert(markdown, opts...)

	result := make([]Fragment, 0)
	for _, chunk := range Split(full, options.MaxLength) {
		chunk = TrimNewlines(chunk)
		if strings.TrimSpace(chunk.Text) == "" {
			continue
		}
		result = append(result, chunk)
	}
	return result
}
