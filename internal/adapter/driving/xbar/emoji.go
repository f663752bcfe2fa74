package xbar

import "github.com/ericfisherdev/xbar-pr-status/internal/domain/model"

// DefaultEmoji is the built-in glyph for each display kind.
var DefaultEmoji = map[model.DisplayKind]string{
	model.DisplaySuccessAndApproved:      "🚀",
	model.DisplaySuccessAwaitingApproval: "👀",
	model.DisplayDraft:                   "📝",
	model.DisplaySuccess:                 "✅",
	model.DisplayPending:                 "⏳",
	model.DisplayFailure:                 "❌",
	model.DisplayUnknown:                 "❓",
	model.DisplayNeedsAttention:          "🔔",
	model.DisplayError:                   "💥",
	model.DisplayQueued:                  "🚂",
}

// Emoji is a GlyphSet backed by DefaultEmoji plus overrides.
type Emoji map[model.DisplayKind]string

// Compile-time interface satisfaction check.
var _ GlyphSet = Emoji(nil)

// NewEmoji returns DefaultEmoji with overrides applied. Empty overrides are ignored.
func NewEmoji(overrides map[model.DisplayKind]string) Emoji {
	e := make(Emoji, len(DefaultEmoji))
	for kind, glyph := range DefaultEmoji {
		e[kind] = glyph
	}
	for kind, glyph := range overrides {
		if glyph != "" {
			e[kind] = glyph
		}
	}
	return e
}

// For returns the glyph for kind, falling back to the default set.
func (e Emoji) For(kind model.DisplayKind) string {
	if glyph, ok := e[kind]; ok {
		return glyph
	}
	return DefaultEmoji[kind]
}
