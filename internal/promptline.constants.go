package internal

import "time"

// Default root configuration values
const (
	// DefaultFormat is the root prompt format used when no configuration is present
	DefaultFormat = "\n$all"
	// DefaultScanTimeout bounds directory scans and custom module commands.
	// It is a hard deadline: a hung command suppresses its module instead
	// of stalling the prompt.
	DefaultScanTimeout = 500 * time.Millisecond
	// DefaultParseDepth caps format string nesting to keep adversarial
	// configuration from exhausting the call stack
	DefaultParseDepth = 64
)

// Environment variable names
const (
	// EnvShell overrides the shell used for custom module commands
	EnvShell = "PROMPTLINE_SHELL"
	// EnvConfig overrides the configuration file location
	EnvConfig = "PROMPTLINE_CONFIG"
)

// Variable names with special meaning in the root format
const (
	// VarAll expands to the default prompt order
	VarAll = "all"
	// VarCustomWildcard expands every custom module not placed explicitly
	VarCustomWildcard = "custom"
	// CustomPrefix marks an explicit reference to one custom module
	CustomPrefix = "custom."
)

// Segment names used for diagnostics
const (
	SegmentNameText      = "text"
	SegmentNameSymbol    = "symbol"
	SegmentNameOutput    = "output"
	SegmentNameLineBreak = "line_break"
)

// FallbackPrompt is emitted when the root format cannot be parsed
const FallbackPrompt = ">"

// FishClearScreen is prepended for fish shells; fish redraws the prompt on
// window resize and needs the remainder of the screen cleared first.
const FishClearScreen = "\x1b[J"

// Log field names
const (
	LogFieldModule   = "module"
	LogFieldVariable = "variable"
	LogFieldCommand  = "command"
	LogFieldShell    = "shell"
	LogFieldDir      = "dir"
	LogFieldFormat   = "format"
)
