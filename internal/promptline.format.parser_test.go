package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatParser_Literals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain text", input: "hello world", want: "hello world"},
		{name: "multiline", input: "line one\nline two", want: "line one\nline two"},
		{name: "escaped dollar", input: `\$not_a_variable`, want: "$not_a_variable"},
		{name: "escaped bracket", input: `\[literal\]`, want: "[literal]"},
		{name: "escaped backslash", input: `a\\b`, want: `a\b`},
		{name: "bare dollar", input: "cost: $ 5", want: "cost: $ 5"},
		{name: "stray close paren", input: "a)b", want: "a)b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast, err := ParseFormat(tt.input, nil)
			require.NoError(t, err)

			segments := NewEvaluator(NewBindings(), nil).Render(ast)
			assert.Equal(t, tt.want, SegmentsPlainText(segments))
		})
	}
}

func TestFormatParser_Variables(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single", input: "$directory", want: []string{"directory"}},
		{name: "several", input: "$a $b $c", want: []string{"a", "b", "c"}},
		{name: "deduplicated", input: "$a $b $a", want: []string{"a", "b"}},
		{name: "delimited by text", input: "x$foo-y", want: []string{"foo"}},
		{name: "custom dotted", input: "$custom.foo$custom", want: []string{"custom.foo", "custom"}},
		{name: "trailing dot is text", input: "$foo.", want: []string{"foo"}},
		{name: "inside group", input: "[$a]", want: []string{"a"}},
		{name: "style variable included", input: "[x]($style_var)", want: []string{"style_var"}},
		{name: "none", input: "plain", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast, err := ParseFormat(tt.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ast.Variables())
		})
	}
}

func TestFormatParser_Groups(t *testing.T) {
	t.Run("bare group has no style", func(t *testing.T) {
		ast, err := ParseFormat("[hello]", nil)
		require.NoError(t, err)
		require.Len(t, ast.Children, 1)

		group, ok := ast.Children[0].(*GroupNode)
		require.True(t, ok)
		assert.True(t, group.Style.IsZero())
		require.Len(t, group.Children, 1)
	})

	t.Run("literal style", func(t *testing.T) {
		ast, err := ParseFormat("[hi](bold green)", nil)
		require.NoError(t, err)

		group := ast.Children[0].(*GroupNode)
		assert.Equal(t, "bold green", group.Style.Literal)
		assert.Empty(t, group.Style.Variable)
	})

	t.Run("style variable", func(t *testing.T) {
		ast, err := ParseFormat("[hi]($style)", nil)
		require.NoError(t, err)

		group := ast.Children[0].(*GroupNode)
		assert.Equal(t, "style", group.Style.Variable)
		assert.Empty(t, group.Style.Literal)
	})

	t.Run("nested groups", func(t *testing.T) {
		ast, err := ParseFormat("[a[b[c]]]", nil)
		require.NoError(t, err)

		outer := ast.Children[0].(*GroupNode)
		require.Len(t, outer.Children, 2)
		middle := outer.Children[1].(*GroupNode)
		require.Len(t, middle.Children, 2)
		_, ok := middle.Children[1].(*GroupNode)
		assert.True(t, ok)
	})

	t.Run("group followed by text paren", func(t *testing.T) {
		// The '(' only binds a style directly after ']'
		ast, err := ParseFormat("[x] (note)", nil)
		require.NoError(t, err)

		group := ast.Children[0].(*GroupNode)
		assert.True(t, group.Style.IsZero())
		segments := NewEvaluator(NewBindings(), nil).Render(ast)
		assert.Equal(t, "x (note)", SegmentsPlainText(segments))
	})
}

func TestFormatParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "unbalanced close bracket", input: "a]b", wantMsg: ErrMsgUnbalancedBracket},
		{name: "unclosed group", input: "[abc", wantMsg: ErrMsgUnclosedGroup},
		{name: "unclosed nested group", input: "[a[b]", wantMsg: ErrMsgUnclosedGroup},
		{name: "unclosed style", input: "[a](bold", wantMsg: ErrMsgUnclosedStyle},
		{name: "dangling escape", input: `abc\`, wantMsg: ErrMsgDanglingEscape},
		{name: "nesting too deep", input: strings.Repeat("[", 80) + strings.Repeat("]", 80), wantMsg: ErrMsgNestingTooDeep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFormat(tt.input, nil)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantMsg, parseErr.Message)
		})
	}
}

func TestFormatParser_PositionTracking(t *testing.T) {
	_, err := ParseFormat("ab\ncd[", nil)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Position.Line)
	assert.Equal(t, 3, parseErr.Position.Column)
}
