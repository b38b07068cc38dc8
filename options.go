package tgcompose

// ConvertOptions holds options for markdown conversion.
type ConvertOptions struct {
	Spoilers  bool
	MaxLength int
	Config    *RenderConfig
}

// Option is a function that configures ConvertOptions.
type Option func(*ConvertOptions)

// WithSpoilers sets whether ||text|| is turned into a spoiler.
func WithSpoilers(enable bool) Option {
	return func(opts *ConvertOptions) {
		opts.Spoilers = enable
	}
}

// WithMaxLength sets the chunk size, in code points, used by Messages.
func WithMaxLength(n int) Option {
	return func(opts *ConvertOptions) {
		opts.MaxLength = n
	}
}

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *ConvertOptions) {
		opts.Config = config
	}
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		Spoilers:  true,
		MaxLength: MaxMessageLength,
		Config:    DefaultConfig(),
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *ConvertOptions {
	options := defaultConvertOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Config == nil {
		options.Config = DefaultConfig()
	}
	return options
}
