package internal

import "time"

var defaultTimeStyle = MustParseStyle("bold yellow")

// timeModule renders the wall clock. Disabled by default.
func timeModule(ctx *Context) *Module {
	table := ctx.Config.ModuleTable("time")

	layout := cfgString(table, "time_format", "15:04:05")
	style := StyleOrDefault(cfgString(table, "style", ""), defaultTimeStyle)

	module := NewModule("time", "The current local time", table)
	module.SetPrefix(cfgString(table, "prefix", "at "))
	module.SetSuffix(cfgString(table, "suffix", " "))
	module.CreateSegment("time", time.Now().Format(layout), style)
	return module
}
