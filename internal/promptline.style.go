package internal

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ansiRenderer renders with a fixed TrueColor profile. The prompt is always
// written into a shell's prompt-capture pipe, never a tty, so profile
// auto-detection would strip every color.
var ansiRenderer = lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.TrueColor))

// lipgloss only honors an explicit profile set on the renderer itself;
// the termenv option above is ignored by Renderer.ColorProfile().
func init() {
	ansiRenderer.SetColorProfile(termenv.TrueColor)
}

// Style describes how a segment is colored and decorated. The zero value is
// an unstyled segment.
type Style struct {
	Foreground    string // lipgloss color value; empty = terminal default
	Background    string
	Bold          bool
	Italic        bool
	Underline     bool
	Dimmed        bool
	Inverted      bool
	Blink         bool
	Strikethrough bool
}

// IsPlain reports whether the style changes nothing
func (s *Style) IsPlain() bool {
	return s == nil || *s == Style{}
}

// Render applies the style to text using ANSI escape sequences
func (s *Style) Render(text string) string {
	if s.IsPlain() || text == "" {
		return text
	}
	return s.lipgloss().Render(text)
}

// lipgloss translates the style into a lipgloss.Style on the fixed renderer
func (s *Style) lipgloss() lipgloss.Style {
	style := ansiRenderer.NewStyle()
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	if s.Dimmed {
		style = style.Faint(true)
	}
	if s.Inverted {
		style = style.Reverse(true)
	}
	if s.Blink {
		style = style.Blink(true)
	}
	if s.Strikethrough {
		style = style.Strikethrough(true)
	}
	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		style = style.Background(lipgloss.Color(s.Background))
	}
	return style
}

// ansiColorNames maps the classic color names to their ANSI palette index
var ansiColorNames = map[string]int{
	"black":  0,
	"red":    1,
	"green":  2,
	"yellow": 3,
	"blue":   4,
	"purple": 5,
	"cyan":   6,
	"white":  7,
}

// ParseStyle parses a style descriptor string such as "bold green",
// "fg:#ff8800 bg:blue underline" or "dimmed". Recognized attribute tokens
// are bold, italic, underline, dimmed, inverted, blink, strikethrough and
// none; color tokens are the eight ANSI names plus their bright- variants,
// #rrggbb hex values and 0-255 palette indexes, optionally prefixed with
// fg: or bg:. A "none" token wins over everything else. Unrecognized tokens
// make the whole descriptor invalid, in which case ok is false.
func ParseStyle(descriptor string) (*Style, bool) {
	style := &Style{}
	for _, token := range strings.Fields(strings.ToLower(descriptor)) {
		switch token {
		case "bold":
			style.Bold = true
		case "italic":
			style.Italic = true
		case "underline":
			style.Underline = true
		case "dimmed":
			style.Dimmed = true
		case "inverted":
			style.Inverted = true
		case "blink":
			style.Blink = true
		case "strikethrough":
			style.Strikethrough = true
		case "none":
			return nil, true
		default:
			background := false
			colorToken := token
			if strings.HasPrefix(token, "fg:") {
				colorToken = token[3:]
			} else if strings.HasPrefix(token, "bg:") {
				colorToken = token[3:]
				background = true
			}
			color, ok := parseColorToken(colorToken)
			if !ok {
				return nil, false
			}
			if background {
				style.Background = color
			} else {
				style.Foreground = color
			}
		}
	}
	return style, true
}

// parseColorToken resolves one color token to a lipgloss color value
func parseColorToken(token string) (string, bool) {
	if idx, ok := ansiColorNames[token]; ok {
		return strconv.Itoa(idx), true
	}
	if name, ok := strings.CutPrefix(token, "bright-"); ok {
		if idx, found := ansiColorNames[name]; found {
			return strconv.Itoa(idx + 8), true
		}
		return "", false
	}
	if strings.HasPrefix(token, "#") && len(token) == 7 {
		for _, ch := range token[1:] {
			if !isHexRune(ch) {
				return "", false
			}
		}
		return token, true
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 0 && n <= 255 {
		return token, true
	}
	return "", false
}

func isHexRune(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// MustParseStyle parses a descriptor that is known valid at compile time.
// It is used for builtin module defaults.
func MustParseStyle(descriptor string) *Style {
	style, ok := ParseStyle(descriptor)
	if !ok {
		panic("invalid builtin style descriptor: " + descriptor)
	}
	return style
}

// StyleOrDefault parses a configured descriptor, falling back to def when
// the descriptor is empty or invalid.
func StyleOrDefault(descriptor string, def *Style) *Style {
	if descriptor == "" {
		return def
	}
	style, ok := ParseStyle(descriptor)
	if !ok {
		return def
	}
	return style
}
