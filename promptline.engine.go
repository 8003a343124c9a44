// Package promptline renders a shell prompt line from a configurable format
// string. Template variables resolve to prompt modules — builtin detectors
// for things like the working directory or the git branch, and user-defined
// custom modules driven by shell commands — and the resolved segments are
// assembled into one styled output line.
package promptline

import (
	"context"
	"strings"
	"time"

	"github.com/itsatony/go-promptline/internal"
	"go.uber.org/zap"
)

// Config is the parsed promptline configuration
type Config = internal.Config

// CustomConfig is the configuration of one user-defined module
type CustomConfig = internal.CustomConfig

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config { return internal.DefaultConfig() }

// FindConfigFile resolves the configuration file location; see the
// internal documentation for the lookup order.
func FindConfigFile(explicit string) string { return internal.FindConfigFile(explicit) }

// Engine is the entry point for prompt rendering. It holds the parsed
// configuration and logger; per-invocation facts arrive via Input.
type Engine struct {
	logger     *zap.Logger
	config     *Config
	configPath string
	loadConfig bool
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine's logger. Logs go to the logger only; stdout
// belongs to the prompt.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithConfig supplies an already-parsed configuration
func WithConfig(cfg *Config) Option {
	return func(e *Engine) {
		e.config = cfg
		e.loadConfig = false
	}
}

// WithConfigFile makes the engine load its configuration from path
func WithConfigFile(path string) Option {
	return func(e *Engine) {
		e.configPath = path
		e.loadConfig = true
	}
}

// New creates an Engine. Construction never fails: a missing or broken
// configuration file is logged and replaced by the defaults, because the
// prompt must always render.
func New(opts ...Option) *Engine {
	e := &Engine{loadConfig: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.loadConfig {
		path := FindConfigFile(e.configPath)
		cfg, err := internal.LoadConfig(path, e.logger)
		if err != nil {
			e.logger.Warn("falling back to default configuration",
				zap.String("path", path),
				zap.Error(NewConfigLoadError(path, err)))
		}
		e.config = cfg
	}
	if e.config == nil {
		e.config = DefaultConfig()
	}
	return e
}

// Input carries the per-invocation facts the shell integration hands over
type Input struct {
	Dir         string        // working directory; defaults to the process's
	Shell       string        // shell name, e.g. "bash", "zsh", "fish"
	Status      int           // exit status of the last command
	CmdDuration time.Duration // duration of the last command, 0 if unknown
	Environ     []string      // environment override, mainly for tests
}

func (e *Engine) newContext(ctx context.Context, in Input) *internal.Context {
	return internal.NewContext(ctx, e.config, internal.ContextInput{
		Dir:         in.Dir,
		Shell:       in.Shell,
		Status:      in.Status,
		CmdDuration: in.CmdDuration,
		Environ:     in.Environ,
		Logger:      e.logger,
	})
}

// Prompt renders the full prompt line for one shell invocation
func (e *Engine) Prompt(ctx context.Context, in Input) string {
	return e.PromptWithNotices(ctx, in, nil)
}

// PromptWithNotices renders the prompt and prepends any one-time notices
// not yet recorded in notices, marking them seen. The caller owns
// persisting the updated state; the render pipeline itself keeps no
// mutable state between invocations.
func (e *Engine) PromptWithNotices(ctx context.Context, in Input, notices *Notices) string {
	rctx := e.newContext(ctx, in)

	var buf strings.Builder

	// Fish redraws the prompt on resize without clearing first
	if rctx.Shell == internal.ShellFish {
		buf.WriteString(internal.FishClearScreen)
	}

	for _, notice := range pendingNotices(e.config, notices) {
		buf.WriteString(notice.text)
		buf.WriteString("\n")
	}

	ast, err := internal.ParseFormat(e.config.Format, e.logger)
	if err != nil {
		e.logger.Error("error parsing `format`",
			zap.Error(NewFormatParseError(e.config.Format, err)))
		buf.WriteString(internal.FallbackPrompt)
		return buf.String()
	}

	variables := ast.Variables()
	bindings := internal.ResolveBindings(variables, rctx)
	segments := internal.NewEvaluator(bindings, e.logger).Render(ast)

	buf.WriteString(internal.SegmentsAnsiString(segments, rctx.Shell))
	return buf.String()
}

// Module renders a single module by its variable name ("directory",
// "custom.foo", ...). An empty string with a nil error means the module
// does not apply to the current context.
func (e *Engine) Module(ctx context.Context, name string, in Input) (string, error) {
	rctx := e.newContext(ctx, in)

	if kind, _ := internal.ClassifyVariable(name); kind == internal.KindUnknown {
		return "", NewUnknownModuleError(name)
	}

	var buf strings.Builder
	for _, module := range internal.HandleVariable(name, rctx, []string{name}) {
		buf.WriteString(module.AnsiString(rctx.Shell))
	}
	return buf.String(), nil
}

// ModuleInfo describes one rendered module for Explain
type ModuleInfo struct {
	Name        string
	Value       string // styled value
	Text        string // unstyled value, for width accounting
	Description string
}

// Explain resolves every module the configured format references and
// reports what each one rendered, for the "explain" CLI command.
func (e *Engine) Explain(ctx context.Context, in Input) []ModuleInfo {
	rctx := e.newContext(ctx, in)

	ast, err := internal.ParseFormat(e.config.Format, e.logger)
	if err != nil {
		e.logger.Error("error parsing `format`",
			zap.Error(NewFormatParseError(e.config.Format, err)))
		return nil
	}

	var variables []string
	for _, variable := range ast.Variables() {
		if variable == "all" {
			variables = append(variables, internal.PromptOrder...)
			continue
		}
		variables = append(variables, variable)
	}

	var infos []ModuleInfo
	for _, variable := range variables {
		// The prompt character explains nothing about the environment
		if variable == "character" || variable == internal.LineBreakSentinel {
			continue
		}
		for _, module := range internal.HandleVariable(variable, rctx, variables) {
			infos = append(infos, ModuleInfo{
				Name:        module.Name,
				Value:       module.AnsiString(internal.ShellUnknown),
				Text:        module.PlainText(),
				Description: module.Description,
			})
		}
	}
	return infos
}
