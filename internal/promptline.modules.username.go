package internal

var (
	defaultUsernameStyle     = MustParseStyle("bold yellow")
	defaultUsernameRootStyle = MustParseStyle("bold red")
)

// usernameModule renders the current user. It only shows when the session
// is remote, the user is root, or the configuration forces it; on a local
// single-user machine the name is noise.
func usernameModule(ctx *Context) *Module {
	table := ctx.Config.ModuleTable("username")

	user := ctx.Getenv("USER")
	if user == "" {
		user = ctx.Getenv("LOGNAME")
	}
	if user == "" {
		return nil
	}

	isRoot := user == "root"
	_, isSSH := ctx.LookupEnv("SSH_CONNECTION")
	showAlways := cfgBool(table, "show_always", false)
	if !isRoot && !isSSH && !showAlways {
		return nil
	}

	style := StyleOrDefault(cfgString(table, "style_user", ""), defaultUsernameStyle)
	if isRoot {
		style = StyleOrDefault(cfgString(table, "style_root", ""), defaultUsernameRootStyle)
	}

	module := NewModule("username", "The active user's username", table)
	module.SetSuffix(" ")
	module.CreateSegment("username", user, style)
	return module
}
