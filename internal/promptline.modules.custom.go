package internal

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// defaultCustomStyle is applied to custom module output when the user does
// not configure one.
var defaultCustomStyle = MustParseStyle("bold green")

// CustomModule evaluates one user-defined module against the context.
// Returns nil when the module does not apply: no structural match and no
// succeeding gating command, or a command that fails or prints nothing.
func CustomModule(name string, ctx *Context) *Module {
	cfg := ctx.Config.CustomModule(name)
	if cfg == nil {
		ctx.Logger().Debug("custom module has no configuration", zap.String(LogFieldModule, name))
		return nil
	}

	scan := ctx.BeginScan()
	if len(cfg.Files) > 0 {
		scan.SetFiles(cfg.Files...)
	}
	if len(cfg.Extensions) > 0 {
		scan.SetExtensions(cfg.Extensions...)
	}
	if len(cfg.Directories) > 0 {
		scan.SetFolders(cfg.Directories...)
	}

	isMatch := scan.IsMatch()
	if !isMatch && cfg.When != "" {
		isMatch = execWhen(ctx, cfg.When, cfg.Shell)
	}
	if !isMatch {
		return nil
	}

	module := NewModule(name, cfg.Description, ctx.Config.ModuleTable(VarCustomWildcard))
	style := StyleOrDefault(cfg.Style, defaultCustomStyle)

	if cfg.Prefix != "" {
		module.SetPrefix(cfg.Prefix)
	}
	if cfg.Suffix != "" {
		module.SetSuffix(cfg.Suffix)
	}
	if cfg.Symbol != "" {
		module.CreateSegment(SegmentNameSymbol, cfg.Symbol, nil)
	}

	output, ok := execCommand(ctx, cfg.Command, cfg.Shell)
	if !ok {
		return nil
	}
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		// An empty module must not render; it would leave stray separators
		return nil
	}
	module.CreateSegment(SegmentNameOutput, trimmed, style)

	return module
}

// resolveShell picks the shell for custom module commands: the module's
// configured shell, then the PROMPTLINE_SHELL environment variable, then
// the platform default.
func resolveShell(ctx *Context, override string) string {
	if override != "" {
		return override
	}
	if env := ctx.Getenv(EnvShell); env != "" {
		return env
	}
	if runtime.GOOS == "windows" {
		return "cmd.exe"
	}
	return "sh"
}

// commandResult captures one shell command invocation
type commandResult struct {
	stdout   string
	stderr   string
	exitCode int
}

// shellCommand runs cmd through the resolved shell, delivering the command
// text on stdin and capturing stdout and stderr separately. When the
// primary shell cannot be spawned it retries once with a minimal portable
// invocation before giving up.
func shellCommand(ctx *Context, cmd, shellOverride string) (*commandResult, bool) {
	shell := resolveShell(ctx, shellOverride)
	logger := ctx.Logger()

	runCtx := ctx.Ctx()
	timeout := ctx.Config.ScanTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}

	primary := exec.CommandContext(runCtx, shell)
	primary.Stdin = strings.NewReader(cmd)
	// Without a WaitDelay, Wait blocks on the output pipes until every
	// grandchild inheriting them exits, even after the shell is killed at
	// the deadline.
	primary.WaitDelay = timeout
	result, err := runThroughShell(primary)
	if err == nil {
		return result, true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The shell ran; a non-zero exit is a result, not a spawn failure
		return &commandResult{
			stdout:   result.stdout,
			stderr:   result.stderr,
			exitCode: exitErr.ExitCode(),
		}, true
	}

	logger.Debug("could not launch shell, retrying with fallback",
		zap.String(LogFieldShell, shell), zap.Error(err))

	var fallback *exec.Cmd
	if runtime.GOOS == "windows" {
		fallback = exec.CommandContext(runCtx, "cmd.exe", "/C", cmd)
	} else {
		fallback = exec.CommandContext(runCtx, "/bin/env", "sh")
		fallback.Stdin = strings.NewReader(cmd)
	}
	fallback.WaitDelay = timeout
	result, err = runThroughShell(fallback)
	if err == nil {
		return result, true
	}
	if errors.As(err, &exitErr) {
		return &commandResult{
			stdout:   result.stdout,
			stderr:   result.stderr,
			exitCode: exitErr.ExitCode(),
		}, true
	}
	logger.Debug("could not launch fallback shell", zap.Error(err))
	return nil, false
}

// runThroughShell runs a prepared shell invocation, capturing stdout and
// stderr separately.
func runThroughShell(shellCmd *exec.Cmd) (*commandResult, error) {
	var stdout, stderr bytes.Buffer
	shellCmd.Stdout = &stdout
	shellCmd.Stderr = &stderr

	err := shellCmd.Run()
	result := &commandResult{stdout: stdout.String(), stderr: stderr.String()}
	if err != nil {
		return result, err
	}
	return result, nil
}

// execWhen runs a gating command and reports whether it exited zero. Any
// other outcome, spawn failure included, is no match.
func execWhen(ctx *Context, cmd, shellOverride string) bool {
	logger := ctx.Logger()
	logger.Debug("running gating command", zap.String(LogFieldCommand, cmd))

	result, ok := shellCommand(ctx, cmd, shellOverride)
	if !ok {
		return false
	}
	if result.exitCode != 0 {
		logger.Debug("gating command declined",
			zap.Int("exit_code", result.exitCode),
			zap.String("stderr", result.stderr))
	}
	return result.exitCode == 0
}

// execCommand runs an output command and returns its stdout on success.
// Non-zero exits and spawn failures both suppress the module; stderr is
// kept for diagnostics only.
func execCommand(ctx *Context, cmd, shellOverride string) (string, bool) {
	logger := ctx.Logger()
	logger.Debug("running output command", zap.String(LogFieldCommand, cmd))

	result, ok := shellCommand(ctx, cmd, shellOverride)
	if !ok {
		return "", false
	}
	if result.exitCode != 0 {
		logger.Debug("output command failed",
			zap.Int("exit_code", result.exitCode),
			zap.String("stderr", result.stderr))
		return "", false
	}
	return result.stdout, true
}
