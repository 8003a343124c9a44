package internal

import (
	"path/filepath"
	"strings"
)

var defaultDirectoryStyle = MustParseStyle("bold cyan")

// directoryModule renders the working directory, contracted to ~ inside the
// home directory and truncated to the trailing path components.
func directoryModule(ctx *Context) *Module {
	table := ctx.Config.ModuleTable("directory")
	truncationLength := int(cfgInt(table, "truncation_length", 3))
	style := StyleOrDefault(cfgString(table, "style", ""), defaultDirectoryStyle)

	display := contractHome(ctx.Dir, ctx.Getenv("HOME"))
	display = truncatePath(display, truncationLength)
	if display == "" {
		return nil
	}

	module := NewModule("directory", "The current working directory", table)
	module.SetPrefix(cfgString(table, "prefix", "in "))
	module.SetSuffix(cfgString(table, "suffix", " "))
	module.CreateSegment("dir", display, style)
	return module
}

// contractHome replaces a home directory prefix with ~
func contractHome(dir, home string) string {
	if home == "" || dir == "" {
		return dir
	}
	if dir == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(dir, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return dir
}

// truncatePath keeps the trailing length components of a path. The ~ of a
// contracted home counts as a component.
func truncatePath(path string, length int) string {
	if length <= 0 {
		return path
	}
	separator := string(filepath.Separator)
	components := strings.Split(path, separator)
	// A leading separator yields an empty first component; keep it so that
	// short absolute paths render unchanged.
	if len(components) > 0 && components[0] == "" {
		components[0] = separator
	}
	if len(components) <= length {
		return path
	}
	return strings.Join(components[len(components)-length:], separator)
}
