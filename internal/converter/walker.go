package converter

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/tgcompose/internal/buffer"
	"github.com/riverfjs/tgcompose/internal/util"
)

// listState 记录一层列表；ordered 列表使用 next 作为下一个编号
type listState struct {
	ordered bool
	next    int
}

// EventWalker 遍历 goldmark AST 并生成 (text, entities)
//
// 所有 offset/length 以 code point 计数，换行统一为 "\r\n"。
type EventWalker struct {
	buf         *buffer.TextBuffer
	source      []byte
	entityStack []EntityScope
	entities    []MessageEntity
	config      *RenderConfig

	// Block-level state
	blockCount int // 用于段落间距
	listStack  []*listState
	itemIndent string // 当前 item 的缩进，用于 task list marker 替换

	// Table state
	tableAlignments []east.Alignment
	tableRows       [][]string
	currentRow      []string
	cellParts       []string
	inTableCell     bool

	// Heading state
	headingEntities []string

	// Blockquote state
	blockquoteScopes []EntityScope
}

// NewEventWalker 创建新的 EventWalker
func NewEventWalker(source []byte, config *RenderConfig) *EventWalker {
	return &EventWalker{
		buf:              buffer.New(),
		source:           source,
		entityStack:      make([]EntityScope, 0),
		entities:         make([]MessageEntity, 0),
		config:           config,
		listStack:        make([]*listState, 0),
		blockquoteScopes: make([]EntityScope, 0),
	}
}

// Walk 遍历 AST 节点
func (w *EventWalker) Walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	// --- Document ---
	case *ast.Document:
		if !entering {
			w.onEndDocument()
		}

	// --- Inline elements ---
	case *ast.Text:
		if entering {
			w.onText(n.Segment, n.SoftLineBreak(), n.HardLineBreak())
		}

	case *ast.String:
		if entering {
			w.onTextString(n.Value)
		}

	case *ast.CodeSpan:
		if entering {
			w.onInlineCode(n)
			// 跳过子节点，避免重复写入
			return ast.WalkSkipChildren, nil
		}

	case *ast.Emphasis:
		// Level 1 = italic, Level 2 = bold
		etype := "italic"
		if n.Level >= 2 {
			etype = "bold"
		}
		if entering {
			w.pushEntity(etype, "")
		} else {
			w.popEntity(etype)
		}

	case *east.Strikethrough:
		if entering {
			w.pushEntity("strikethrough", "")
		} else {
			w.popEntity("strikethrough")
		}

	// --- Links & Images ---
	case *ast.Link:
		if entering {
			w.onStartLink(n)
		} else {
			w.popEntityAny()
		}

	case *ast.Image:
		if entering {
			w.onStartImage(n)
		} else {
			w.popEntityAny()
		}

	case *ast.AutoLink:
		if entering {
			w.onAutoLink(n)
			return ast.WalkSkipChildren, nil
		}

	// --- Block elements ---
	case *ast.Paragraph:
		if entering {
			w.onStartParagraph()
		} else {
			w.onEndParagraph()
		}

	case *ast.Heading:
		if entering {
			w.onStartHeading(n)
		} else {
			w.onEndHeading()
		}

	case *ast.Blockquote:
		if entering {
			w.onStartBlockquote()
		} else {
			w.onEndBlockquote()
		}

	case *ast.List:
		if entering {
			w.onStartList(n)
		} else {
			w.onEndList()
		}

	case *ast.ListItem:
		if entering {
			w.onStartItem()
		} else {
			w.onEndItem()
		}

	case *east.TaskCheckBox:
		if entering {
			w.onTaskCheckBox(n.IsChecked)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.onCodeBlock(n)
			return ast.WalkSkipChildren, nil
		}

	case *ast.ThematicBreak:
		if entering {
			w.onRule()
		}

	case *ast.HTMLBlock:
		// Block HTML ignored
		return ast.WalkSkipChildren, nil

	case *ast.RawHTML:
		if entering {
			w.onInlineHTML(n)
		}

	// --- Table ---
	case *east.Table:
		if entering {
			w.onStartTable(n)
		} else {
			w.onEndTable()
		}

	case *east.TableHeader, *east.TableRow:
		if entering {
			w.currentRow = make([]string, 0)
		} else {
			w.onEndTableRow()
		}

	case *east.TableCell:
		if entering {
			w.cellParts = make([]string, 0)
			w.inTableCell = true
		} else {
			w.onEndTableCell()
		}
	}

	return ast.WalkContinue, nil
}

// Result 返回转换结果
func (w *EventWalker) Result() (string, []MessageEntity) {
	return w.buf.String(), w.entities
}

// Unclosed 返回遍历结束时仍未闭合的实体类型
func (w *EventWalker) Unclosed() []string {
	types := make([]string, 0, len(w.entityStack))
	for _, scope := range w.entityStack {
		types = append(types, scope.EntityType)
	}
	return types
}

func (w *EventWalker) onEndDocument() {
	// 长引用升级为可折叠引用
	if !w.config.CiteExpandable {
		return
	}
	for i := range w.entities {
		if w.entities[i].Type == "blockquote" && w.entities[i].Length > w.config.ExpandableThreshold {
			w.entities[i].Type = "expandable_blockquote"
		}
	}
}

// --- Text handling ---

func (w *EventWalker) onText(seg text.Segment, softBreak bool, hardBreak bool) {
	textContent := string(seg.Value(w.source))

	if w.inTableCell {
		// 表格单元格内软换行变为空格
		w.cellParts = append(w.cellParts, textContent)
		if softBreak || hardBreak {
			w.cellParts = append(w.cellParts, " ")
		}
		return
	}

	if softBreak || hardBreak {
		textContent += "\n"
	}
	w.buf.Write(textContent)
}

func (w *EventWalker) onTextString(value []byte) {
	textContent := string(value)
	if w.inTableCell {
		w.cellParts = append(w.cellParts, textContent)
		return
	}
	w.buf.Write(textContent)
}

func (w *EventWalker) onInlineCode(n *ast.CodeSpan) {
	code := extractCodeSpanText(n, w.source)
	if w.inTableCell {
		w.cellParts = append(w.cellParts, code)
		return
	}
	w.appendEntity("code", code, "")
}

func (w *EventWalker) onInlineHTML(n *ast.RawHTML) {
	html := string(n.Segments.Value(w.source))
	tag := strings.TrimSpace(strings.ToLower(html))

	switch tag {
	case spoilerOpen:
		w.pushEntity("spoiler", "")
	case spoilerClose:
		w.popEntity("spoiler")
	case "<u>", "<ins>":
		w.pushEntity("underline", "")
	case "</u>", "</ins>":
		w.popEntity("underline")
	}
	// Other inline HTML is ignored
}

func (w *EventWalker) onRule() {
	w.ensureBlockSpacing()
	w.buf.Write(w.config.MarkdownSymbol.Rule)
	w.blockCount++
}

// --- Paragraph ---

func (w *EventWalker) onStartParagraph() {
	if len(w.listStack) == 0 {
		w.ensureBlockSpacing()
	}
}

func (w *EventWalker) onEndParagraph() {
	if len(w.listStack) == 0 {
		w.blockCount++
	} else if w.buf.TrailingNewlineCount() == 0 {
		// loose list 中段落结束时写入换行，避免多段落粘连
		w.buf.Write("\n")
	}
}

// --- Heading ---

var headingEntitiesMap = map[int][]string{
	1: {"bold", "underline"},
	2: {"bold", "underline"},
	3: {"bold"},
	4: {"bold"},
	5: {"italic"},
	6: {"italic"},
}

func (w *EventWalker) headingSymbol(level int) string {
	s := w.config.MarkdownSymbol
	switch level {
	case 1:
		return s.HeadingLevel1
	case 2:
		return s.HeadingLevel2
	case 3:
		return s.HeadingLevel3
	case 4:
		return s.HeadingLevel4
	case 5:
		return s.HeadingLevel5
	case 6:
		return s.HeadingLevel6
	}
	return ""
}

func (w *EventWalker) onStartHeading(n *ast.Heading) {
	w.ensureBlockSpacing()

	if symbol := w.headingSymbol(n.Level); symbol != "" {
		w.buf.Write(symbol + " ")
	}

	w.headingEntities = headingEntitiesMap[n.Level]
	if w.headingEntities == nil {
		w.headingEntities = []string{"bold"}
	}
	for _, etype := range w.headingEntities {
		w.pushEntity(etype, "")
	}
}

func (w *EventWalker) onEndHeading() {
	// 反向弹出
	for i := len(w.headingEntities) - 1; i >= 0; i-- {
		w.popEntity(w.headingEntities[i])
	}
	w.headingEntities = nil
	w.blockCount++
}

// --- Code block ---

func (w *EventWalker) onCodeBlock(n ast.Node) {
	var lang string
	if fenced, ok := n.(*ast.FencedCodeBlock); ok {
		lang = string(fenced.Language(w.source))
	}
	lang = strings.TrimSpace(strings.Split(lang, ",")[0])

	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(w.source))
	}
	// Strip single trailing line break
	rawCode := strings.TrimSuffix(strings.TrimSuffix(code.String(), "\n"), "\r")

	w.ensureBlockSpacing()
	w.appendEntity("pre", rawCode, lang)
	w.blockCount++
}

// --- Blockquote ---

func (w *EventWalker) onStartBlockquote() {
	w.ensureBlockSpacing()
	w.blockquoteScopes = append(w.blockquoteScopes, EntityScope{
		EntityType:  "blockquote",
		StartOffset: w.buf.Offset(),
	})
}

func (w *EventWalker) onEndBlockquote() {
	if len(w.blockquoteScopes) > 0 {
		scope := w.blockquoteScopes[len(w.blockquoteScopes)-1]
		w.blockquoteScopes = w.blockquoteScopes[:len(w.blockquoteScopes)-1]
		// Telegram 不支持嵌套引用，只保留最外层
		if len(w.blockquoteScopes) == 0 {
			w.finalizeEntity(scope)
		}
	}
	w.blockCount++
}

// --- Links & Images ---

func (w *EventWalker) onStartLink(n *ast.Link) {
	destURL := string(n.Destination)

	if emojiID := validateTelegramEmoji(destURL); emojiID != "" {
		w.pushEntity("custom_emoji", emojiID)
	} else if destURL != "" {
		w.pushEntity("text_link", destURL)
	} else {
		// Empty URL links are rendered as plain text (no entity)
		w.pushEntity("", "")
	}
}

func (w *EventWalker) onStartImage(n *ast.Image) {
	destURL := string(n.Destination)

	if emojiID := validateTelegramEmoji(destURL); emojiID != "" {
		w.pushEntity("custom_emoji", emojiID)
		return
	}
	w.buf.Write(w.config.MarkdownSymbol.Image)
	w.pushEntity("text_link", destURL)
}

func (w *EventWalker) onAutoLink(n *ast.AutoLink) {
	label := string(n.Label(w.source))
	if w.inTableCell {
		w.cellParts = append(w.cellParts, label)
		return
	}
	if n.AutoLinkType == ast.AutoLinkEmail {
		w.appendEntity("email", label, "")
		return
	}
	w.appendEntity("url", label, "")
}

// --- Lists ---

func (w *EventWalker) onStartList(n *ast.List) {
	if len(w.listStack) == 0 {
		w.ensureBlockSpacing()
	}
	w.listStack = append(w.listStack, &listState{ordered: n.IsOrdered(), next: n.Start})
}

func (w *EventWalker) onStartItem() {
	depth := len(w.listStack)
	indent := strings.Repeat("  ", max(depth-1, 0))

	// 嵌套列表：父项文本后没有换行时，插入换行确保子项独占一行
	if w.buf.ByteOffset() > 0 && w.buf.TrailingNewlineCount() == 0 {
		w.buf.Write("\n")
	}
	w.itemIndent = indent

	if depth == 0 {
		return
	}
	current := w.listStack[depth-1]
	if current.ordered {
		w.buf.Write(fmt.Sprintf("%s%d. ", indent, current.next))
		current.next++
	} else {
		// 先写 bullet，如果后面遇到 TaskCheckBox 会被替换
		w.buf.Write(fmt.Sprintf("%s%s ", indent, w.config.MarkdownSymbol.Bullet))
	}
}

func (w *EventWalker) onEndItem() {
	if w.buf.TrailingNewlineCount() == 0 {
		w.buf.Write("\n")
	}
}

// onTaskCheckBox 处理任务列表复选框
func (w *EventWalker) onTaskCheckBox(checked bool) {
	// 移除 onStartItem 刚写入的 bullet 前缀
	w.buf.PopLast()

	symbol := w.config.MarkdownSymbol.TaskUncompleted
	if checked {
		symbol = w.config.MarkdownSymbol.TaskCompleted
	}
	w.buf.Write(fmt.Sprintf("%s%s ", w.itemIndent, symbol))
}

func (w *EventWalker) onEndList() {
	if len(w.listStack) > 0 {
		w.listStack = w.listStack[:len(w.listStack)-1]
	}
	if len(w.listStack) == 0 {
		w.blockCount++
	}
}

// --- Tables ---

func (w *EventWalker) onStartTable(n *east.Table) {
	w.ensureBlockSpacing()
	w.tableAlignments = n.Alignments
	w.tableRows = make([][]string, 0)
}

func (w *EventWalker) onEndTableCell() {
	w.currentRow = append(w.currentRow, strings.TrimSpace(strings.Join(w.cellParts, "")))
	w.cellParts = nil
	w.inTableCell = false
}

func (w *EventWalker) onEndTableRow() {
	w.tableRows = append(w.tableRows, w.currentRow)
	w.currentRow = nil
}

func (w *EventWalker) onEndTable() {
	w.appendEntity("pre", formatTable(w.tableRows, w.tableAlignments), "")
	w.tableRows = nil
	w.tableAlignments = nil
	w.blockCount++
}

// formatTable 将表格渲染为等宽文本，列宽以 code point 计
func formatTable(rows [][]string, alignments []east.Alignment) string {
	if len(rows) == 0 {
		return ""
	}

	numCols := 0
	for _, row := range rows {
		numCols = max(numCols, len(row))
	}
	colWidths := make([]int, numCols)
	for _, row := range rows {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], util.RuneLen(cell))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	for rowIdx, row := range rows {
		cells := make([]string, numCols)
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			align := east.AlignNone
			if i < len(alignments) {
				align = alignments[i]
			}
			cells[i] = pad(cell, colWidths[i], align)
		}
		lines = append(lines, strings.Join(cells, " | "))

		// Add separator after header
		if rowIdx == 0 && len(rows) > 1 {
			sepCells := make([]string, numCols)
			for i := 0; i < numCols; i++ {
				sepCells[i] = strings.Repeat("-", colWidths[i])
			}
			lines = append(lines, strings.Join(sepCells, "-+-"))
		}
	}

	return strings.Join(lines, "\n")
}

func pad(cell string, width int, align east.Alignment) string {
	gap := width - util.RuneLen(cell)
	if gap <= 0 {
		return cell
	}
	switch align {
	case east.AlignRight:
		return strings.Repeat(" ", gap) + cell
	case east.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	}
	return cell + strings.Repeat(" ", gap)
}

// --- Entity helpers ---

// appendEntity 写入 content 并为其记录一个完整覆盖的实体
func (w *EventWalker) appendEntity(entityType string, content string, language string) {
	scope := EntityScope{
		EntityType:  entityType,
		StartOffset: w.buf.Offset(),
		Language:    language,
	}
	w.buf.Write(content)
	w.finalizeEntity(scope)
}

func (w *EventWalker) pushEntity(entityType string, urlOrEmojiID string) {
	scope := EntityScope{
		EntityType:  entityType,
		StartOffset: w.buf.Offset(),
	}

	switch entityType {
	case "text_link":
		scope.URL = urlOrEmojiID
	case "custom_emoji":
		scope.CustomEmojiID = urlOrEmojiID
	}

	w.entityStack = append(w.entityStack, scope)
}

func (w *EventWalker) popEntity(entityType string) {
	// Find the matching scope (search from top)
	for i := len(w.entityStack) - 1; i >= 0; i-- {
		if w.entityStack[i].EntityType == entityType {
			scope := w.entityStack[i]
			w.entityStack = append(w.entityStack[:i], w.entityStack[i+1:]...)
			w.finalizeEntity(scope)
			return
		}
	}
}

func (w *EventWalker) popEntityAny() {
	if len(w.entityStack) > 0 {
		scope := w.entityStack[len(w.entityStack)-1]
		w.entityStack = w.entityStack[:len(w.entityStack)-1]
		w.finalizeEntity(scope)
	}
}

func (w *EventWalker) finalizeEntity(scope EntityScope) {
	length := w.buf.Offset() - scope.StartOffset
	if length <= 0 || scope.EntityType == "" {
		return
	}

	w.entities = append(w.entities, MessageEntity{
		Type:          scope.EntityType,
		Offset:        scope.StartOffset,
		Length:        length,
		URL:           scope.URL,
		Language:      scope.Language,
		CustomEmojiID: scope.CustomEmojiID,
	})
}

func (w *EventWalker) ensureBlockSpacing() {
	// Ensure a blank line between blocks, avoiding excess newlines
	if w.blockCount > 0 {
		if needed := 2 - w.buf.TrailingNewlineCount(); needed > 0 {
			w.buf.Write(strings.Repeat("\n", needed))
		}
	}
}

// --- Utilities ---

func extractCodeSpanText(n *ast.CodeSpan, source []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		}
	}
	return buf.String()
}
