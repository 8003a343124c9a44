package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Parse error message constants
const (
	ErrMsgUnbalancedBracket = "unbalanced ']'"
	ErrMsgUnclosedGroup     = "group is missing its closing ']'"
	ErrMsgUnclosedStyle     = "style is missing its closing ')'"
	ErrMsgDanglingEscape    = "'\\' at end of format string"
	ErrMsgNestingTooDeep    = "format nesting too deep"
)

// ParseError represents a format string parse error with position
type ParseError struct {
	Message  string
	Position Position
}

func (e *ParseError) Error() string {
	return e.Message + " at " + e.Position.String()
}

// FormatParser parses a prompt format string into a FormatAST.
//
// The grammar is small: literal text, `\` escapes, `$name` variable
// references, and `[content](style)` groups where content is itself a
// format string and the optional style is either a literal style descriptor
// or a `$variable`. Parsing is single-pass recursive descent over a byte
// cursor.
type FormatParser struct {
	source   string
	pos      int
	line     int
	column   int
	maxDepth int
	logger   *zap.Logger
}

// NewFormatParser creates a parser for the given format source
func NewFormatParser(source string, logger *zap.Logger) *FormatParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormatParser{
		source:   source,
		pos:      0,
		line:     1,
		column:   1,
		maxDepth: DefaultParseDepth,
		logger:   logger,
	}
}

// ParseFormat is a convenience wrapper around NewFormatParser().Parse()
func ParseFormat(source string, logger *zap.Logger) (*FormatAST, error) {
	return NewFormatParser(source, logger).Parse()
}

// Parse consumes the whole source and returns the AST
func (p *FormatParser) Parse() (*FormatAST, error) {
	p.logger.Debug("parsing format", zap.Int("len", len(p.source)))

	children, err := p.parseNodes(0, false)
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		// parseNodes only stops early on ']', which is unbalanced here
		return nil, p.errorAt(ErrMsgUnbalancedBracket)
	}
	return &FormatAST{Children: children, source: p.source}, nil
}

// parseNodes parses a node sequence. Inside a group it stops at the closing
// ']' without consuming it; at the top level a ']' is an error.
func (p *FormatParser) parseNodes(depth int, inGroup bool) ([]Node, error) {
	if depth > p.maxDepth {
		return nil, p.errorAt(ErrMsgNestingTooDeep)
	}

	var nodes []Node
	var text strings.Builder
	textPos := p.currentPosition()

	flushText := func() {
		if text.Len() > 0 {
			nodes = append(nodes, NewTextNode(text.String(), textPos))
			text.Reset()
		}
	}

	for !p.isAtEnd() {
		switch p.peek() {
		case '\\':
			p.advance()
			if p.isAtEnd() {
				return nil, p.errorAt(ErrMsgDanglingEscape)
			}
			if text.Len() == 0 {
				textPos = p.currentPosition()
			}
			text.WriteByte(p.advance())

		case '$':
			pos := p.currentPosition()
			p.advance()
			name := p.scanIdentifier()
			if name == "" {
				// A bare '$' carries no reference; keep it literal
				if text.Len() == 0 {
					textPos = pos
				}
				text.WriteByte('$')
				continue
			}
			flushText()
			nodes = append(nodes, NewVariableNode(name, pos))

		case '[':
			flushText()
			group, err := p.parseGroup(depth)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, group)
			textPos = p.currentPosition()

		case ']':
			if inGroup {
				flushText()
				return nodes, nil
			}
			return nil, p.errorAt(ErrMsgUnbalancedBracket)

		default:
			if text.Len() == 0 {
				textPos = p.currentPosition()
			}
			text.WriteByte(p.advance())
		}
	}

	flushText()
	return nodes, nil
}

// parseGroup parses "[content]" plus the optional "(style)" tail. The
// cursor is on the opening '['.
func (p *FormatParser) parseGroup(depth int) (*GroupNode, error) {
	pos := p.currentPosition()
	p.advance() // consume '['

	children, err := p.parseNodes(depth+1, true)
	if err != nil {
		return nil, err
	}
	if p.isAtEnd() || p.peek() != ']' {
		return nil, p.errorAtPos(ErrMsgUnclosedGroup, pos)
	}
	p.advance() // consume ']'

	var style StyleRef
	if !p.isAtEnd() && p.peek() == '(' {
		stylePos := p.currentPosition()
		p.advance() // consume '('
		var sb strings.Builder
		for !p.isAtEnd() && p.peek() != ')' {
			sb.WriteByte(p.advance())
		}
		if p.isAtEnd() {
			return nil, p.errorAtPos(ErrMsgUnclosedStyle, stylePos)
		}
		p.advance() // consume ')'

		raw := strings.TrimSpace(sb.String())
		if strings.HasPrefix(raw, "$") {
			style.Variable = raw[1:]
		} else {
			style.Literal = raw
		}
	}

	return NewGroupNode(children, style, pos), nil
}

// scanIdentifier consumes an identifier (letters, digits, underscore, plus
// '.' so that custom.name references parse as one variable).
func (p *FormatParser) scanIdentifier() string {
	start := p.pos
	for !p.isAtEnd() {
		ch := p.peek()
		if isIdentByte(ch) {
			p.advance()
			continue
		}
		// A dot joins parts of a custom.name reference; a trailing dot is
		// ordinary text.
		if ch == '.' && p.pos > start && p.pos+1 < len(p.source) && isIdentByte(p.source[p.pos+1]) {
			p.advance()
			continue
		}
		break
	}
	return p.source[start:p.pos]
}

func isIdentByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') || ch == '_'
}

// Cursor helpers

// currentPosition returns the current position
func (p *FormatParser) currentPosition() Position {
	return Position{Offset: p.pos, Line: p.line, Column: p.column}
}

// isAtEnd returns true if we've reached the end of source
func (p *FormatParser) isAtEnd() bool {
	return p.pos >= len(p.source)
}

// peek returns the current character without advancing
func (p *FormatParser) peek() byte {
	if p.isAtEnd() {
		return 0
	}
	return p.source[p.pos]
}

// advance consumes and returns the current character
func (p *FormatParser) advance() byte {
	if p.isAtEnd() {
		return 0
	}
	ch := p.source[p.pos]
	p.pos++
	if ch == '\n' {
		p.line++
		p.column = 1
	} else {
		p.column++
	}
	return ch
}

func (p *FormatParser) errorAt(msg string) error {
	return p.errorAtPos(msg, p.currentPosition())
}

func (p *FormatParser) errorAtPos(msg string, pos Position) error {
	return &ParseError{Message: msg, Position: pos}
}
