package promptline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Notices is the persisted record of one-time messages the user has
// already seen. The caller passes it into a render and persists whatever
// comes back; the render pipeline keeps no global state of its own.
type Notices struct {
	Seen []string `json:"seen"`
}

// HasSeen reports whether a notice id was already shown
func (n *Notices) HasSeen(id string) bool {
	if n == nil {
		return false
	}
	for _, seen := range n.Seen {
		if seen == id {
			return true
		}
	}
	return false
}

// MarkSeen records a notice id as shown
func (n *Notices) MarkSeen(id string) {
	if n == nil || n.HasSeen(id) {
		return
	}
	n.Seen = append(n.Seen, id)
}

// LoadNotices reads persisted notice state; a missing or unreadable file
// is an empty state.
func LoadNotices(path string) *Notices {
	notices := &Notices{}
	data, err := os.ReadFile(path)
	if err != nil {
		return notices
	}
	_ = json.Unmarshal(data, notices)
	return notices
}

// Save persists the notice state, creating parent directories as needed
func (n *Notices) Save(path string) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// notice is one pending message
type notice struct {
	id   string
	text string
}

const noticeLegacyConfigKeys = "legacy-config-keys"

// pendingNotices collects the notices the configuration warrants that the
// user has not seen yet, marking them seen as a side effect. A nil state
// suppresses notices entirely (library callers usually want the bare
// prompt).
func pendingNotices(cfg *Config, notices *Notices) []notice {
	if notices == nil {
		return nil
	}
	var pending []notice
	if keys := cfg.LegacyKeys(); len(keys) > 0 && !notices.HasSeen(noticeLegacyConfigKeys) {
		notices.MarkSeen(noticeLegacyConfigKeys)
		pending = append(pending, notice{
			id: noticeLegacyConfigKeys,
			text: "[promptline] `" + strings.Join(keys, "`, `") +
				"` in the configuration are superseded by `format`.",
		})
	}
	return pending
}
