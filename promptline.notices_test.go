package promptline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itsatony/go-promptline/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotices_SeenTracking(t *testing.T) {
	notices := &Notices{}

	assert.False(t, notices.HasSeen("x"))
	notices.MarkSeen("x")
	notices.MarkSeen("x")
	assert.True(t, notices.HasSeen("x"))
	assert.Equal(t, []string{"x"}, notices.Seen)

	var nilNotices *Notices
	assert.False(t, nilNotices.HasSeen("x"))
	nilNotices.MarkSeen("x") // must not panic
}

func TestNotices_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "notices.json")

	notices := &Notices{}
	notices.MarkSeen("a")
	notices.MarkSeen("b")
	require.NoError(t, notices.Save(path))

	loaded := LoadNotices(path)
	assert.Equal(t, []string{"a", "b"}, loaded.Seen)
}

func TestLoadNotices_MissingOrBrokenFile(t *testing.T) {
	loaded := LoadNotices(filepath.Join(t.TempDir(), "absent.json"))
	require.NotNil(t, loaded)
	assert.Empty(t, loaded.Seen)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, writeFile(path, "not json"))
	loaded = LoadNotices(path)
	require.NotNil(t, loaded)
	assert.Empty(t, loaded.Seen)
}

func TestPromptWithNotices_LegacyConfigKeys(t *testing.T) {
	cfg, err := internal.ParseConfig([]byte("prompt_order = [\"directory\"]\nformat = \"$character\"\n"), internal.ConfigTOML)
	require.NoError(t, err)
	engine := New(WithConfig(cfg))
	in := bareInput(t.TempDir())

	notices := &Notices{}
	first := engine.PromptWithNotices(context.Background(), in, notices)
	assert.Contains(t, first, "prompt_order")
	assert.Contains(t, first, "superseded by `format`")
	assert.True(t, notices.HasSeen("legacy-config-keys"))

	// The message shows once
	second := engine.PromptWithNotices(context.Background(), in, notices)
	assert.NotContains(t, second, "prompt_order")
	assert.True(t, strings.HasSuffix(first, second))

	// A nil state suppresses notices entirely
	bare := engine.PromptWithNotices(context.Background(), in, nil)
	assert.NotContains(t, bare, "prompt_order")
}

func TestPromptWithNotices_NoLegacyKeys(t *testing.T) {
	engine := New(WithConfig(DefaultConfig()))
	notices := &Notices{}

	out := engine.PromptWithNotices(context.Background(), bareInput(t.TempDir()), notices)
	assert.NotContains(t, out, "superseded")
	assert.Empty(t, notices.Seen)
}
