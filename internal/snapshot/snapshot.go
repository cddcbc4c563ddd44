// Package snapshot tracks the version-gated transcript view for the
// selected agent.
package snapshot

import "github.com/agusx1211/agentwatch/internal/api"

// Tracker holds the last applied snapshot id and text for the current agent
// selection. Switching agents discards it via Reset.
type Tracker struct {
	lastID int64
	text   string
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{}
}

// Apply considers a fetched snapshot and reports whether the displayed text
// changed. A nil snapshot or one whose id equals the last applied id is a
// no-op; otherwise the text is replaced wholesale with the transcript
// (preview as fallback) and the id recorded. A zero snapshot id applies the
// text but leaves the gate unchanged, matching the backend's convention of
// id 0 meaning "unversioned".
func (t *Tracker) Apply(snap *api.Snapshot) bool {
	if snap == nil {
		return false
	}
	if snap.ID != 0 && snap.ID == t.lastID {
		return false
	}
	text := snap.Transcript
	if text == "" {
		text = snap.Preview
	}
	t.text = text
	if snap.ID != 0 {
		t.lastID = snap.ID
	}
	return true
}

// Reset clears the applied id and text, for agent switches and filter
// toggles that must force a refetch.
func (t *Tracker) Reset() {
	t.lastID = 0
	t.text = ""
}

// Text returns the currently displayed transcript ("" when none).
func (t *Tracker) Text() string {
	return t.text
}

// LastID returns the last applied snapshot id.
func (t *Tracker) LastID() int64 {
	return t.lastID
}
