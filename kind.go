package tgcompose

import (
	"errors"
	"fmt"

	"github.com/riverfjs/tgcompose/internal/types"
)

// ErrUnknownEntityType is returned when a wire entity carries a type with no Kind.
var ErrUnknownEntityType = errors.New("tgcompose: unknown entity type")

// User is the Telegram user referenced by a TextMention.
type User = types.User

// Kind is the formatting category of a Span together with the fields that
// category requires. The set of kinds is closed: only the variants declared
// in this package implement Kind.
type Kind interface {
	// Type returns the Bot API entity type, e.g. "bold" or "text_link".
	Type() string
	apply(e *types.MessageEntity)
}

type (
	Mention              struct{}
	Hashtag              struct{}
	Cashtag              struct{}
	BotCommand           struct{}
	URL                  struct{}
	Email                struct{}
	PhoneNumber          struct{}
	Bold                 struct{}
	Italic               struct{}
	Underline            struct{}
	Strikethrough        struct{}
	Spoiler              struct{}
	Blockquote           struct{}
	ExpandableBlockquote struct{}
	Code                 struct{}
)

// Pre is a monospace block, optionally tagged with a programming language.
type Pre struct {
	Language string
}

// TextLink makes the covered text a clickable link to URL.
type TextLink struct {
	URL string
}

// TextMention mentions a user who has no username.
type TextMention struct {
	User User
}

// CustomEmoji renders the covered text as the custom emoji with the given id.
type CustomEmoji struct {
	CustomEmojiID string
}

func (Mention) Type() string              { return "mention" }
func (Hashtag) Type() string              { return "hashtag" }
func (Cashtag) Type() string              { return "cashtag" }
func (BotCommand) Type() string           { return "bot_command" }
func (URL) Type() string                  { return "url" }
func (Email) Type() string                { return "email" }
func (PhoneNumber) Type() string          { return "phone_number" }
func (Bold) Type() string                 { return "bold" }
func (Italic) Type() string               { return "italic" }
func (Underline) Type() string            { return "underline" }
func (Strikethrough) Type() string        { return "strikethrough" }
func (Spoiler) Type() string              { return "spoiler" }
func (Blockquote) Type() string           { return "blockquote" }
func (ExpandableBlockquote) Type() string { return "expandable_blockquote" }
func (Code) Type() string                 { return "code" }
func (Pre) Type() string                  { return "pre" }
func (TextLink) Type() string             { return "text_link" }
func (TextMention) Type() string          { return "text_mention" }
func (CustomEmoji) Type() string          { return "custom_emoji" }

func (Mention) apply(*types.MessageEntity)              {}
func (Hashtag) apply(*types.MessageEntity)              {}
func (Cashtag) apply(*types.MessageEntity)              {}
func (BotCommand) apply(*types.MessageEntity)           {}
func (URL) apply(*types.MessageEntity)                  {}
func (Email) apply(*types.MessageEntity)                {}
func (PhoneNumber) apply(*types.MessageEntity)          {}
func (Bold) apply(*types.MessageEntity)                 {}
func (Italic) apply(*types.MessageEntity)               {}
func (Underline) apply(*types.MessageEntity)            {}
func (Strikethrough) apply(*types.MessageEntity)        {}
func (Spoiler) apply(*types.MessageEntity)              {}
func (Blockquote) apply(*types.MessageEntity)           {}
func (ExpandableBlockquote) apply(*types.MessageEntity) {}
func (Code) apply(*types.MessageEntity)                 {}

func (k Pre) apply(e *types.MessageEntity)         { e.Language = k.Language }
func (k TextLink) apply(e *types.MessageEntity)    { e.URL = k.URL }
func (k CustomEmoji) apply(e *types.MessageEntity) { e.CustomEmojiID = k.CustomEmojiID }

func (k TextMention) apply(e *types.MessageEntity) {
	u := k.User
	e.User = &u
}

// KindOf maps a wire entity to its Kind. Offset and length are ignored.
func KindOf(e types.MessageEntity) (Kind, error) {
	switch e.Type {
	case "mention":
		return Mention{}, nil
	case "hashtag":
		return Hashtag{}, nil
	case "cashtag":
		return Cashtag{}, nil
	case "bot_command":
		return BotCommand{}, nil
	case "url":
		return URL{}, nil
	case "email":
		return Email{}, nil
	case "phone_number":
		return PhoneNumber{}, nil
	case "bold":
		return Bold{}, nil
	case "italic":
		return Italic{}, nil
	case "underline":
		return Underline{}, nil
	case "strikethrough":
		return Strikethrough{}, nil
	case "spoiler":
		return Spoiler{}, nil
	case "blockquote":
		return Blockquote{}, nil
	case "expandable_blockquote":
		return ExpandableBlockquote{}, nil
	case "code":
		return Code{}, nil
	case "pre":
		return Pre{Language: e.Language}, nil
	case "text_link":
		return TextLink{URL: e.URL}, nil
	case "text_mention":
		var u User
		if e.User != nil {
			u = *e.User
		}
		return TextMention{User: u}, nil
	case "custom_emoji":
		return CustomEmoji{CustomEmojiID: e.CustomEmojiID}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, e.Type)
}
