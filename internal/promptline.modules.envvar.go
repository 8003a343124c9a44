package internal

var defaultEnvVarStyle = MustParseStyle("black bold dimmed")

// envVarModule renders the value of a configured environment variable.
// Without a `variable` key the module has nothing to show.
func envVarModule(ctx *Context) *Module {
	table := ctx.Config.ModuleTable("env_var")

	variable := cfgString(table, "variable", "")
	if variable == "" {
		return nil
	}

	value, ok := ctx.LookupEnv(variable)
	if !ok || value == "" {
		value = cfgString(table, "default", "")
	}
	if value == "" {
		return nil
	}

	style := StyleOrDefault(cfgString(table, "style", ""), defaultEnvVarStyle)

	module := NewModule("env_var", "A configured environment variable's value", table)
	module.SetPrefix(cfgString(table, "prefix", "with "))
	module.SetSuffix(cfgString(table, "suffix", " "))
	if symbol := cfgString(table, "symbol", ""); symbol != "" {
		module.CreateSegment(SegmentNameSymbol, symbol, style)
	}
	module.CreateSegment("value", value, style)
	return module
}
