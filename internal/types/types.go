package types

// MessageEntity 表示 Telegram 消息实体的线上格式
//
// Offset 和 Length 以 Unicode code point 计数。
type MessageEntity struct {
	Type          string `json:"type"`
	Offset        int    `json:"offset"`
	Length        int    `json:"length"`
	URL           string `json:"url,omitempty"`
	User          *User  `json:"user,omitempty"`
	Language      string `json:"language,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

// User 是 text_mention 实体引用的 Telegram 用户
type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Symbol 定义 Markdown 元素的显示符号
type Symbol struct {
	HeadingLevel1   string
	HeadingLevel2   string
	HeadingLevel3   string
	HeadingLevel4   string
	HeadingLevel5   string
	HeadingLevel6   string
	Quote           string
	Image           string
	Bullet          string
	Rule            string
	TaskCompleted   string
	TaskUncompleted string
}

// DefaultSymbol 返回默认符号配置
func DefaultSymbol() *Symbol {
	return &Symbol{
		HeadingLevel1:   "📌",
		HeadingLevel2:   "📝",
		HeadingLevel3:   "📋",
		HeadingLevel4:   "📄",
		HeadingLevel5:   "📃",
		HeadingLevel6:   "🔖",
		Quote:           "💬",
		Image:           "🖼",
		Bullet:          "⦁",
		Rule:            "————————",
		TaskCompleted:   "✅",
		TaskUncompleted: "☑️",
	}
}

// RenderConfig 渲染配置
type RenderConfig struct {
	MarkdownSymbol *Symbol
	// CiteExpandable 将超过 ExpandableThreshold 个 code point 的引用升级为 expandable_blockquote
	CiteExpandable      bool
	ExpandableThreshold int
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		MarkdownSymbol:      DefaultSymbol(),
		CiteExpandable:      true,
		ExpandableThreshold: 200,
	}
}
