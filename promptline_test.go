package promptline

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/itsatony/go-promptline/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configFromTOML(t *testing.T, src string) *Config {
	t.Helper()
	cfg, err := internal.ParseConfig([]byte(src), internal.ConfigTOML)
	require.NoError(t, err)
	return cfg
}

func bareInput(dir string) Input {
	return Input{Dir: dir, Environ: []string{}}
}

func TestNew(t *testing.T) {
	t.Run("defaults without any configuration", func(t *testing.T) {
		t.Setenv(internal.EnvConfig, filepath.Join(t.TempDir(), "absent.toml"))

		engine := New()
		require.NotNil(t, engine)
		out := engine.Prompt(context.Background(), bareInput(t.TempDir()))
		assert.NotEmpty(t, out)
	})

	t.Run("broken configuration file still renders", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "promptline.toml")
		require.NoError(t, writeFile(path, "format = ["))

		engine := New(WithConfigFile(path))
		out := engine.Prompt(context.Background(), bareInput(t.TempDir()))
		assert.NotEmpty(t, out)
	})
}

func TestEngine_Prompt(t *testing.T) {
	t.Run("renders the configured format", func(t *testing.T) {
		cfg := configFromTOML(t, `format = "$directory$character"`)
		engine := New(WithConfig(cfg))

		out := engine.Prompt(context.Background(), bareInput("/tmp"))
		assert.Contains(t, out, "in ")
		assert.Contains(t, out, "/tmp")
		assert.Contains(t, out, "❯")
	})

	t.Run("unparsable format falls back to a bare prompt", func(t *testing.T) {
		cfg := configFromTOML(t, `format = "[unclosed"`)
		engine := New(WithConfig(cfg))

		assert.Equal(t, ">", engine.Prompt(context.Background(), bareInput(t.TempDir())))
	})

	t.Run("fish prompts clear the rest of the screen first", func(t *testing.T) {
		cfg := configFromTOML(t, `format = "$character"`)
		engine := New(WithConfig(cfg))

		in := bareInput(t.TempDir())
		in.Shell = "fish"
		out := engine.Prompt(context.Background(), in)
		assert.True(t, strings.HasPrefix(out, "\x1b[J"))
	})

	t.Run("default format begins with a blank line", func(t *testing.T) {
		engine := New(WithConfig(DefaultConfig()))

		out := engine.Prompt(context.Background(), bareInput(t.TempDir()))
		assert.True(t, strings.HasPrefix(out, "\n"))
	})

	t.Run("repeated renders agree", func(t *testing.T) {
		cfg := configFromTOML(t, `format = "$directory$character"`)
		engine := New(WithConfig(cfg))

		in := bareInput("/tmp")
		first := engine.Prompt(context.Background(), in)
		second := engine.Prompt(context.Background(), in)
		assert.Equal(t, first, second)
	})
}

func TestEngine_Prompt_CustomModules(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	t.Run("custom module output appears in the prompt", func(t *testing.T) {
		cfg := configFromTOML(t, `
format = "$custom"

[custom.greeting]
command = "echo hi-there"
when = "true"
style = "none"
`)
		engine := New(WithConfig(cfg))

		out := engine.Prompt(context.Background(), bareInput(t.TempDir()))
		assert.Equal(t, "hi-there", out)
	})

	t.Run("explicit placement suppresses the wildcard copy", func(t *testing.T) {
		cfg := configFromTOML(t, `
format = "$custom|$custom.alpha"

[custom.alpha]
command = "echo a"
when = "true"
style = "none"

[custom.bravo]
command = "echo b"
when = "true"
style = "none"
`)
		engine := New(WithConfig(cfg))

		out := engine.Prompt(context.Background(), bareInput(t.TempDir()))
		assert.Equal(t, "b|a", out)
	})

	t.Run("empty output drops the enclosing group", func(t *testing.T) {
		cfg := configFromTOML(t, `
format = "a[-$custom.quiet-]z"

[custom.quiet]
command = "echo ''"
when = "true"
`)
		engine := New(WithConfig(cfg))

		out := engine.Prompt(context.Background(), bareInput(t.TempDir()))
		assert.Equal(t, "az", out)
	})
}

func TestEngine_Module(t *testing.T) {
	engine := New(WithConfig(DefaultConfig()))

	t.Run("builtin renders", func(t *testing.T) {
		out, err := engine.Module(context.Background(), "directory", bareInput("/tmp"))
		require.NoError(t, err)
		assert.Contains(t, out, "/tmp")
	})

	t.Run("non-applying builtin renders empty", func(t *testing.T) {
		out, err := engine.Module(context.Background(), "cmd_duration", bareInput(t.TempDir()))
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("unknown name errors", func(t *testing.T) {
		_, err := engine.Module(context.Background(), "no_such_module", bareInput(t.TempDir()))
		assert.Error(t, err)
	})
}

func TestEngine_Explain(t *testing.T) {
	cfg := configFromTOML(t, `format = "$directory$character"`)
	engine := New(WithConfig(cfg))

	infos := engine.Explain(context.Background(), bareInput("/tmp"))
	require.Len(t, infos, 1)
	assert.Equal(t, "directory", infos[0].Name)
	assert.Contains(t, infos[0].Text, "/tmp")
	assert.NotEmpty(t, infos[0].Description)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat("$directory [$git_branch](bold)"))
	assert.Error(t, CheckFormat("[unclosed"))
	assert.Error(t, CheckFormat(`trailing\`))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
