package internal

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// scanEntry is one immediate entry of the working directory
type scanEntry struct {
	name string
	ext  string // extension without the leading dot, "" if none
	dir  bool
}

// BeginScan starts a scan of the working directory's immediate entries.
// The listing is read at most once per Context and shared read-only by all
// sessions; a listing failure degrades to an empty directory, so modules
// that depend on scanning simply never match.
func (c *Context) BeginScan() *ScanSession {
	c.scanOnce.Do(func() {
		entries, err := os.ReadDir(c.Dir)
		if err != nil {
			c.logger.Debug("directory scan failed",
				zap.String(LogFieldDir, c.Dir), zap.Error(err))
			return
		}
		c.scanEntries = make([]scanEntry, 0, len(entries))
		for _, entry := range entries {
			name := entry.Name()
			c.scanEntries = append(c.scanEntries, scanEntry{
				name: name,
				ext:  strings.TrimPrefix(filepath.Ext(name), "."),
				dir:  entry.IsDir(),
			})
		}
	})
	return &ScanSession{entries: c.scanEntries}
}

// ScanSession matches a set of criteria against one directory listing.
// Criteria are additive builder calls; IsMatch answers whether any of them
// is satisfied. Empty criteria never force a match.
type ScanSession struct {
	entries []scanEntry
	files   []string
	exts    []string
	folders []string
}

// SetFiles adds full file names to look for
func (s *ScanSession) SetFiles(names ...string) *ScanSession {
	s.files = append(s.files, names...)
	return s
}

// SetExtensions adds file extensions (without the dot) to look for
func (s *ScanSession) SetExtensions(exts ...string) *ScanSession {
	s.exts = append(s.exts, exts...)
	return s
}

// SetFolders adds subfolder names to look for
func (s *ScanSession) SetFolders(names ...string) *ScanSession {
	s.folders = append(s.folders, names...)
	return s
}

// IsMatch reports whether any requested file name, extension or subfolder
// is present in the directory.
func (s *ScanSession) IsMatch() bool {
	for _, entry := range s.entries {
		if entry.dir {
			if containsString(s.folders, entry.name) {
				return true
			}
			continue
		}
		if containsString(s.files, entry.name) {
			return true
		}
		if entry.ext != "" && containsString(s.exts, entry.ext) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}
