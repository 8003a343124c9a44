package main

import (
	"fmt"
	"os"

	"github.com/itsatony/go-promptline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version information, set at build time via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbosity  int
	configPath string

	rootCmd = &cobra.Command{
		Use:   "promptline",
		Short: "A fast, configurable shell prompt",
		Long: `promptline renders your shell prompt from a format string: template
variables resolve to prompt modules (directory, git branch, custom
shell-command modules and more) and the result is printed as one styled
line. All diagnostics go to stderr; stdout carries only the prompt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Configuration file (default is $XDG_CONFIG_HOME/promptline/promptline.toml)")

	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(moduleCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("promptline version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

// newLogger builds the CLI logger. It writes to stderr only; stdout is
// reserved for the rendered prompt.
func newLogger() *zap.Logger {
	level := zapcore.WarnLevel
	switch {
	case verbosity == 1:
		level = zapcore.InfoLevel
	case verbosity >= 2:
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

// newEngine builds the engine shared by all render commands
func newEngine() *promptline.Engine {
	return promptline.New(
		promptline.WithLogger(newLogger()),
		promptline.WithConfigFile(configPath),
	)
}
