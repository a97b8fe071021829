package help

import (
	"fmt"
	"regexp"
	"strings"
)

// customEmoji matches :name:id, <:name:id> and <a:name:id>
var customEmoji = regexp.MustCompile(`^<?a?:([a-zA-Z0-9_]+):([0-9]+)>?$`)

// Navigation holds the reaction glyphs of an EmojiMenu
type Navigation struct {
	PageLeft  string
	PageRight string
	Remove    string
}

// DefaultNavigation is ◀ ▶ ❌
var DefaultNavigation = Navigation{
	PageLeft:  "◀",
	PageRight: "▶",
	Remove:    "❌",
}

// normalizeGlyph turns a configured glyph into the form the reaction API
// expects: unicode emoji as is, custom emoji as name:id
func normalizeGlyph(glyph string) string {
	glyph = strings.TrimSpace(glyph)
	if m := customEmoji.FindStringSubmatch(glyph); m != nil {
		return m[1] + ":" + m[2]
	}
	return glyph
}

// normalize validates the glyphs and returns them in API form
func (n Navigation) normalize() (Navigation, error) {
	out := Navigation{
		PageLeft:  normalizeGlyph(n.PageLeft),
		PageRight: normalizeGlyph(n.PageRight),
		Remove:    normalizeGlyph(n.Remove),
	}

	seen := make(map[string]string, 3)
	for _, g := range []struct{ name, glyph string }{
		{"page left", out.PageLeft},
		{"page right", out.PageRight},
		{"remove", out.Remove},
	} {
		if g.glyph == "" {
			return Navigation{}, fmt.Errorf("%w: %s glyph is empty", ErrInvalidOptions, g.name)
		}
		if other, dup := seen[g.glyph]; dup {
			return Navigation{}, fmt.Errorf("%w: %s and %s glyphs are both %q", ErrInvalidOptions, other, g.name, g.glyph)
		}
		seen[g.glyph] = g.name
	}
	return out, nil
}

// Action maps a reaction, in API form, to the action it stands for
func (n Navigation) Action(apiName string) Action {
	switch apiName {
	case n.PageLeft:
		return ActionPrev
	case n.PageRight:
		return ActionNext
	case n.Remove:
		return ActionClose
	default:
		return ActionNone
	}
}

// Glyphs returns the glyphs in the order they are added to a message
func (n Navigation) Glyphs() []string {
	return []string{n.PageLeft, n.PageRight, n.Remove}
}
