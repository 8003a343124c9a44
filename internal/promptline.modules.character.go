package internal

var (
	defaultCharacterStyleSuccess = MustParseStyle("bold green")
	defaultCharacterStyleFailure = MustParseStyle("bold red")
)

// characterModule renders the prompt character, colored by the exit status
// of the last command.
func characterModule(ctx *Context) *Module {
	table := ctx.Config.ModuleTable("character")
	symbol := cfgString(table, "symbol", "❯")
	errorSymbol := cfgString(table, "error_symbol", symbol)

	style := StyleOrDefault(cfgString(table, "style_success", ""), defaultCharacterStyleSuccess)
	if ctx.Status != 0 {
		symbol = errorSymbol
		style = StyleOrDefault(cfgString(table, "style_failure", ""), defaultCharacterStyleFailure)
	}

	module := NewModule("character", "A character (usually an arrow) beside where the text is entered", table)
	module.SetSuffix(" ")
	module.CreateSegment(SegmentNameSymbol, symbol, style)
	return module
}
