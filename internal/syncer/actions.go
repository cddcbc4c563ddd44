package syncer

import "github.com/agusx1211/agentwatch/internal/eventlog"

// Actions sent from the UI. Each runs to completion on the sync goroutine
// before the next action or tick is considered, so a mutation's reload
// chain can never tear against an in-flight tick.

// SelectAgent switches the agent selection, resetting the snapshot gate and
// the event view.
type SelectAgent struct {
	ID string
}

// ToggleExpand flips a tree node's expansion.
type ToggleExpand struct {
	ID string
}

// SetShowSystem toggles system-message inclusion for the transcript and
// forces a context reload.
type SetShowSystem struct {
	On bool
}

// SetDebugEvents toggles debug-event inclusion, resetting the event view
// and polling immediately.
type SetDebugEvents struct {
	On bool
}

// SelectEvent remembers an event key and requests its detail text.
// An empty key clears the selection.
type SelectEvent struct {
	Key eventlog.Key
}

// SendMessage submits a chat message. Rejected without a request while the
// session is busy or the message is empty.
type SendMessage struct {
	Text string
}

// StopRun interrupts the in-progress chat turn. Only permitted while busy.
type StopRun struct{}
