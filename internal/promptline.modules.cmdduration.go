package internal

import (
	"fmt"
	"strings"
	"time"
)

var defaultCmdDurationStyle = MustParseStyle("bold yellow")

// cmdDurationModule renders how long the last command took, once it took
// longer than the configured minimum.
func cmdDurationModule(ctx *Context) *Module {
	table := ctx.Config.ModuleTable("cmd_duration")

	minTime := time.Duration(cfgInt(table, "min_time", 2000)) * time.Millisecond
	if ctx.CmdDuration <= 0 || ctx.CmdDuration < minTime {
		return nil
	}

	style := StyleOrDefault(cfgString(table, "style", ""), defaultCmdDurationStyle)

	module := NewModule("cmd_duration", "How long the last command took to execute", table)
	module.SetPrefix(cfgString(table, "prefix", "took "))
	module.SetSuffix(cfgString(table, "suffix", " "))
	module.CreateSegment("duration", renderDuration(ctx.CmdDuration), style)
	return module
}

// renderDuration formats a duration the way humans read it: "4s", "2m30s",
// "1h2m3s", "1d4h". Sub-second durations render in milliseconds.
func renderDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	total := int64(d.Seconds())
	days := total / 86_400
	hours := (total % 86_400) / 3_600
	minutes := (total % 3_600) / 60
	seconds := total % 60

	var sb strings.Builder
	if days > 0 {
		fmt.Fprintf(&sb, "%dd", days)
	}
	if hours > 0 {
		fmt.Fprintf(&sb, "%dh", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&sb, "%dm", minutes)
	}
	if seconds > 0 || sb.Len() == 0 {
		fmt.Fprintf(&sb, "%ds", seconds)
	}
	return sb.String()
}
