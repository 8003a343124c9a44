package internal

import (
	"os"
	"path/filepath"
	"strings"
)

var defaultHgBranchStyle = MustParseStyle("bold purple")

// hgBranchModule renders the Mercurial bookmark or branch of the current
// directory. Disabled by default; hg repositories are rare enough that the
// extra stat calls are not worth it unless asked for.
func hgBranchModule(ctx *Context) *Module {
	isHgRepo := ctx.BeginScan().SetFolders(".hg").IsMatch()
	if !isHgRepo {
		return nil
	}

	branch := readHgBookmark(ctx.Dir)
	if branch == "" {
		branch = readHgBranch(ctx.Dir)
	}

	table := ctx.Config.ModuleTable("hg_branch")
	truncationLength := int(cfgInt(table, "truncation_length", 0))
	truncationSymbol := cfgString(table, "truncation_symbol", "…")
	branch = truncateGraphemes(branch, truncationLength, truncationSymbol)

	style := StyleOrDefault(cfgString(table, "style", ""), defaultHgBranchStyle)

	module := NewModule("hg_branch", "The active bookmark or branch of the hg repo in your current directory", table)
	module.SetPrefix(cfgString(table, "prefix", "on "))
	module.SetSuffix(cfgString(table, "suffix", " "))
	if symbol := cfgString(table, "symbol", " "); symbol != "" {
		module.CreateSegment(SegmentNameSymbol, symbol, style)
	}
	module.CreateSegment("branch", branch, style)
	return module
}

// readHgBookmark returns the active bookmark, "" when none is current
func readHgBookmark(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, ".hg", "bookmarks.current"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readHgBranch returns the named branch, falling back to hg's default
func readHgBranch(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, ".hg", "branch"))
	if err != nil {
		return "default"
	}
	branch := strings.TrimSpace(string(data))
	if branch == "" {
		return "default"
	}
	return branch
}
