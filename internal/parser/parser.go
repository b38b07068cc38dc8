package parser

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/tgcompose/internal/converter"
	"github.com/riverfjs/tgcompose/internal/types"
)

// StandardOptions goldmark 扩展配置
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM,            // GitHub Flavored Markdown (tables, strikethrough, tasklists, linkify)
		extension.DefinitionList, // 定义列表
		extension.Footnote,       // 脚注
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(), // 自动生成标题 ID
	),
}

// Result 是一次解析的输出
type Result struct {
	Text     string
	Entities []types.MessageEntity
	// Unclosed 列出遍历结束时仍未闭合的实体类型，这些实体已被丢弃
	Unclosed []string
}

// Parse 解析 Markdown 并遍历 AST 生成 (text, entities)
func Parse(markdown string, config *types.RenderConfig) Result {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	source := []byte(markdown)
	node := ParseAST(source)

	walker := converter.NewEventWalker(source, config)
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		return walker.Walk(n, entering)
	})

	txt, entities := walker.Result()
	return Result{Text: txt, Entities: entities, Unclosed: walker.Unclosed()}
}

// ParseAST 仅解析为 AST，不遍历
func ParseAST(source []byte) ast.Node {
	md := goldmark.New(StandardOptions...)
	return md.Parser().Parse(text.NewReader(source))
}
