package internal

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Shell identifies the interactive shell the prompt is rendered for
type Shell int

const (
	ShellUnknown Shell = iota
	ShellBash
	ShellZsh
	ShellFish
	ShellPowerShell
	ShellIon
)

// ParseShell maps a shell name (as passed by the init scripts) to its kind
func ParseShell(name string) Shell {
	switch strings.ToLower(name) {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	case "powershell", "pwsh":
		return ShellPowerShell
	case "ion":
		return ShellIon
	default:
		return ShellUnknown
	}
}

// String returns the shell's name
func (s Shell) String() string {
	switch s {
	case ShellBash:
		return "bash"
	case ShellZsh:
		return "zsh"
	case ShellFish:
		return "fish"
	case ShellPowerShell:
		return "powershell"
	case ShellIon:
		return "ion"
	default:
		return "unknown"
	}
}

// ContextInput carries the per-invocation facts the shell hands over
type ContextInput struct {
	Dir         string        // working directory; defaults to os.Getwd
	Shell       string        // shell name as reported by the init script
	Status      int           // exit status of the last command
	CmdDuration time.Duration // duration of the last command, 0 if unknown
	Environ     []string      // environment in "KEY=value" form; defaults to os.Environ
	Logger      *zap.Logger
}

// Context is the read-only snapshot one render works against: working
// directory, shell kind, parsed configuration and environment. It also owns
// the lazily-populated directory listing shared by every scan of the render.
type Context struct {
	Dir         string
	Shell       Shell
	Config      *Config
	Status      int
	CmdDuration time.Duration

	ctx    context.Context
	env    map[string]string
	logger *zap.Logger

	scanOnce    sync.Once
	scanEntries []scanEntry
}

// NewContext builds the render context. It never fails: a missing working
// directory or environment degrades to empty values, since the prompt must
// always render something.
func NewContext(ctx context.Context, cfg *Config, in ContextInput) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := in.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := in.Dir
	if dir == "" {
		dir, _ = os.Getwd()
	}

	environ := in.Environ
	if environ == nil {
		environ = os.Environ()
	}
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		if key, value, ok := strings.Cut(entry, "="); ok {
			env[key] = value
		}
	}

	return &Context{
		Dir:         dir,
		Shell:       ParseShell(in.Shell),
		Config:      cfg,
		Status:      in.Status,
		CmdDuration: in.CmdDuration,
		ctx:         ctx,
		env:         env,
		logger:      logger,
	}
}

// Ctx returns the cancellation context for blocking work (subprocesses)
func (c *Context) Ctx() context.Context { return c.ctx }

// Logger returns the context's logger
func (c *Context) Logger() *zap.Logger { return c.logger }

// Getenv reads a variable from the environment snapshot
func (c *Context) Getenv(key string) string { return c.env[key] }

// LookupEnv reads a variable and reports whether it was set
func (c *Context) LookupEnv(key string) (string, bool) {
	value, ok := c.env[key]
	return value, ok
}
