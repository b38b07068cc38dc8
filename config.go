package tgcompose

import (
	"sync"

	"github.com/riverfjs/tgcompose/internal/types"
)

// 导出类型别名
type (
	Symbol       = types.Symbol
	RenderConfig = types.RenderConfig
)

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
//
// The returned value is shared; copy it before changing fields.
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}

// NewConfig returns a fresh render configuration with default values.
func NewConfig() *RenderConfig {
	return types.DefaultRenderConfig()
}
