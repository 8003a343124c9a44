package internal

import (
	"os"
	"strings"
)

var defaultHostnameStyle = MustParseStyle("bold dimmed green")

// hostnameModule renders the machine's hostname, by default only on SSH
// sessions.
func hostnameModule(ctx *Context) *Module {
	table := ctx.Config.ModuleTable("hostname")

	_, isSSH := ctx.LookupEnv("SSH_CONNECTION")
	if cfgBool(table, "ssh_only", true) && !isSSH {
		return nil
	}

	host, err := os.Hostname()
	if err != nil || host == "" {
		return nil
	}
	// trim_at cuts the hostname at the first occurrence of the marker;
	// "." keeps the short name, "" keeps everything.
	if trimAt := cfgString(table, "trim_at", "."); trimAt != "" {
		if idx := strings.Index(host, trimAt); idx >= 0 {
			host = host[:idx]
		}
	}

	style := StyleOrDefault(cfgString(table, "style", ""), defaultHostnameStyle)

	module := NewModule("hostname", "The system hostname", table)
	module.SetPrefix(cfgString(table, "prefix", "on "))
	module.SetSuffix(cfgString(table, "suffix", " "))
	module.CreateSegment("hostname", host, style)
	return module
}
