package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/itsatony/go-promptline"
	"github.com/spf13/cobra"
)

// noticesFile is where the one-time notice state lives, under the XDG
// state directory.
const noticesFile = "promptline/notices.json"

var (
	flagPath        string
	flagShell       string
	flagStatus      int
	flagCmdDuration int64
)

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagPath, "path", "", "Render for this directory instead of the current one")
	cmd.Flags().StringVar(&flagShell, "shell", "", "The shell the prompt is rendered for (bash, zsh, fish, ...)")
	cmd.Flags().IntVar(&flagStatus, "status", 0, "Exit status of the last command")
	cmd.Flags().Int64Var(&flagCmdDuration, "cmd-duration", 0, "How long the last command took, in milliseconds")
}

func renderInput() promptline.Input {
	return promptline.Input{
		Dir:         flagPath,
		Shell:       flagShell,
		Status:      flagStatus,
		CmdDuration: time.Duration(flagCmdDuration) * time.Millisecond,
	}
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt for the current state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newEngine()

		noticesPath, err := xdg.StateFile(noticesFile)
		var notices *promptline.Notices
		if err == nil {
			notices = promptline.LoadNotices(noticesPath)
		}

		output := engine.PromptWithNotices(cmd.Context(), renderInput(), notices)
		fmt.Fprint(os.Stdout, output)

		if notices != nil {
			// Best effort; a read-only state dir must not break the prompt
			_ = notices.Save(noticesPath)
		}
		return nil
	},
}

var moduleCmd = &cobra.Command{
	Use:   "module <name>",
	Short: "Print one module by name",
	Long: `Print a single module by its variable name, for example "directory"
or "custom.mymodule". Prints nothing when the module does not apply to the
current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newEngine()
		output, err := engine.Module(cmd.Context(), args[0], renderInput())
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, output)
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain what each part of the prompt is showing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newEngine()
		infos := engine.Explain(cmd.Context(), renderInput())

		fmt.Println("\n Here's a breakdown of your prompt:")
		width := 0
		for _, info := range infos {
			if n := len([]rune(info.Text)); n > width {
				width = n
			}
		}
		for _, info := range infos {
			padding := strings.Repeat(" ", width-len([]rune(info.Text)))
			fmt.Printf(" %s%s  -  %s\n", info.Value, padding, info.Description)
		}
		return nil
	},
}

func init() {
	addRenderFlags(promptCmd)
	addRenderFlags(moduleCmd)
	addRenderFlags(explainCmd)
}
