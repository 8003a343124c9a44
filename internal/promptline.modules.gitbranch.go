package internal

import (
	"os"
	"path/filepath"
	"strings"
)

var defaultGitBranchStyle = MustParseStyle("bold purple")

// gitBranchModule renders the checked-out git branch. It reads .git/HEAD
// directly (following a worktree's gitdir redirect) instead of shelling out
// to git, which is too slow for a prompt.
func gitBranchModule(ctx *Context) *Module {
	isRepo := ctx.BeginScan().SetFolders(".git").SetFiles(".git").IsMatch()
	if !isRepo {
		return nil
	}

	branch := readGitBranch(ctx.Dir)
	if branch == "" {
		return nil
	}

	table := ctx.Config.ModuleTable("git_branch")
	truncationLength := int(cfgInt(table, "truncation_length", 0))
	truncationSymbol := cfgString(table, "truncation_symbol", "…")
	branch = truncateGraphemes(branch, truncationLength, truncationSymbol)

	style := StyleOrDefault(cfgString(table, "style", ""), defaultGitBranchStyle)

	module := NewModule("git_branch", "The active branch of the repo in your current directory", table)
	module.SetPrefix(cfgString(table, "prefix", "on "))
	module.SetSuffix(cfgString(table, "suffix", " "))
	if symbol := cfgString(table, "symbol", " "); symbol != "" {
		module.CreateSegment(SegmentNameSymbol, symbol, style)
	}
	module.CreateSegment("branch", branch, style)
	return module
}

// readGitBranch resolves the branch name from .git/HEAD, or a short commit
// hash when the head is detached. Empty on any read failure.
func readGitBranch(dir string) string {
	gitDir := filepath.Join(dir, ".git")

	// A .git file points a worktree or submodule at its real git directory
	if info, err := os.Stat(gitDir); err == nil && !info.IsDir() {
		data, err := os.ReadFile(gitDir)
		if err != nil {
			return ""
		}
		target := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(data)), "gitdir:"))
		if target == "" {
			return ""
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		gitDir = target
	}

	data, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return ""
	}
	head := strings.TrimSpace(string(data))
	if branch, ok := strings.CutPrefix(head, "ref: refs/heads/"); ok {
		return branch
	}
	// Detached head: show a short hash
	if len(head) >= 7 {
		return head[:7]
	}
	return ""
}
