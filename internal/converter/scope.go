package converter

import "github.com/riverfjs/tgcompose/internal/types"

// 类型别名，避免 converter 与 types 之间来回转换
type (
	MessageEntity = types.MessageEntity
	RenderConfig  = types.RenderConfig
)

// EntityScope 用于跟踪未闭合的实体
type EntityScope struct {
	EntityType    string
	StartOffset   int
	URL           string
	Language      string
	CustomEmojiID string
}
