// Command tgcompose converts Markdown into Telegram text + entities and
// inspects fragments in the {"text", "entities"} wire shape.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/riverfjs/tgcompose"
)

const version = "0.2.0"

// CLI defines the command-line interface for tgcompose.
var CLI struct {
	Verbose bool `short:"v" help:"Log split and conversion warnings to stderr"`

	Convert ConvertCmd `cmd:"" help:"Convert Markdown to a fragment (or chunks with --max)"`
	Show    ShowCmd    `cmd:"" help:"Print a fragment with every entity highlighted"`
	Check   CheckCmd   `cmd:"" help:"Verify that every entity of a fragment is in range"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ConvertCmd reads Markdown and writes fragment JSON.
type ConvertCmd struct {
	Path       string `arg:"" optional:"" default:"-" help:"Markdown file, - for stdin"`
	Max        int    `help:"Split into chunks of at most N code points" default:"0"`
	NoSpoilers bool   `name:"no-spoilers" help:"Keep ||text|| literally"`
	Indent     bool   `short:"i" help:"Indent JSON output"`
}

func (c *ConvertCmd) Run() error {
	data, err := readInput(c.Path)
	if err != nil {
		return err
	}

	opts := []tgcompose.Option{tgcompose.WithSpoilers(!c.NoSpoilers)}
	var out any
	if c.Max > 0 {
		opts = append(opts, tgcompose.WithMaxLength(c.Max))
		out = tgcompose.Messages(string(data), opts...)
	} else {
		out = tgcompose.Convert(string(data), opts...)
	}
	return writeJSON(os.Stdout, out, c.Indent)
}

// ShowCmd renders fragment JSON on the terminal.
type ShowCmd struct {
	Path string `arg:"" optional:"" default:"-" help:"Fragment JSON file, - for stdin"`
}

func (c *ShowCmd) Run() error {
	f, err := readFragment(c.Path)
	if err != nil {
		return err
	}

	fmt.Println(highlight(f))
	fmt.Println()
	for i, s := range f.Entities {
		e := s.Entity()
		line := fmt.Sprintf("%3d. %-22s offset=%-5d length=%-5d %q", i+1, e.Type, e.Offset, e.Length,
			strings.ReplaceAll(f.Covered(s), "\r\n", "\n"))
		switch {
		case e.URL != "":
			line += " url=" + e.URL
		case e.Language != "":
			line += " lang=" + e.Language
		case e.CustomEmojiID != "":
			line += " emoji=" + e.CustomEmojiID
		case e.User != nil:
			line += fmt.Sprintf(" user=%d", e.User.ID)
		}
		styleFor(s.Kind).Println(line)
	}
	return nil
}

// CheckCmd validates fragment JSON.
type CheckCmd struct {
	Path string `arg:"" optional:"" default:"-" help:"Fragment JSON file, - for stdin"`
}

func (c *CheckCmd) Run() error {
	f, err := readFragment(c.Path)
	if err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}
	fmt.Printf("ok: %d code points, %d entities\n", f.Len(), len(f.Entities))
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("tgcompose version %s\n", version)
	return nil
}

// Helper functions

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func readFragment(path string) (tgcompose.Fragment, error) {
	var f tgcompose.Fragment
	data, err := readInput(path)
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("invalid fragment JSON: %w", err)
	}
	return f, nil
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func styleFor(k tgcompose.Kind) *color.Color {
	switch k.(type) {
	case tgcompose.Bold:
		return color.New(color.Bold)
	case tgcompose.Italic:
		return color.New(color.Italic)
	case tgcompose.Underline:
		return color.New(color.Underline)
	case tgcompose.Strikethrough:
		return color.New(color.CrossedOut)
	case tgcompose.Spoiler:
		return color.New(color.BgHiBlack)
	case tgcompose.Code, tgcompose.Pre:
		return color.New(color.FgGreen)
	case tgcompose.TextLink, tgcompose.URL, tgcompose.Email:
		return color.New(color.FgBlue, color.Underline)
	case tgcompose.Blockquote, tgcompose.ExpandableBlockquote:
		return color.New(color.FgYellow)
	case tgcompose.Mention, tgcompose.TextMention, tgcompose.Hashtag, tgcompose.Cashtag, tgcompose.BotCommand:
		return color.New(color.FgMagenta)
	}
	return color.New(color.FgCyan)
}

// highlight colors each code point with the style of the last entity covering it.
func highlight(f tgcompose.Fragment) string {
	runes := []rune(f.Text)
	owner := make([]int, len(runes))
	for i := range owner {
		owner[i] = -1
	}
	for i, s := range f.Entities {
		for p := max(s.Offset, 0); p < s.End() && p < len(runes); p++ {
			owner[p] = i
		}
	}

	var b strings.Builder
	for start := 0; start < len(runes); {
		end := start + 1
		for end < len(runes) && owner[end] == owner[start] {
			end++
		}
		part := strings.ReplaceAll(string(runes[start:end]), "\r\n", "\n")
		if owner[start] < 0 {
			b.WriteString(part)
		} else {
			b.WriteString(styleFor(f.Entities[owner[start]].Kind).Sprint(part))
		}
		start = end
	}
	return b.String()
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tgcompose"),
		kong.Description("Compose Telegram message text and entities"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if CLI.Verbose {
		tgcompose.SetLogger(log.New(os.Stderr, "[tgcompose] ", log.LstdFlags))
	} else {
		tgcompose.SetLogger(nil)
	}
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
