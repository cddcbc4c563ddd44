package syncer

import (
	"github.com/agusx1211/agentwatch/internal/agenttree"
	"github.com/agusx1211/agentwatch/internal/api"
	"github.com/agusx1211/agentwatch/internal/eventlog"
)

// Messages emitted to the UI. The TUI receives them over the updates
// channel and applies them to its view state; it never reaches back into
// syncer state directly.

// AgentsUpdated carries the flattened, expansion-filtered agent rows and
// the current selection.
type AgentsUpdated struct {
	Rows     []agenttree.Row
	Selected string
}

// ContextUpdated replaces the transcript view wholesale.
type ContextUpdated struct {
	Text        string
	ForceScroll bool
}

// ContextEmpty signals that the selected agent has no snapshot yet.
type ContextEmpty struct{}

// EventLine is one rendered log line plus its lookup key.
type EventLine struct {
	Key  eventlog.Key
	Text string
}

// EventsAppended carries newly appended log lines. Existing lines are never
// reordered or removed outside a reset.
type EventsAppended struct {
	Lines []EventLine
}

// EventsReset clears the rendered event log, its selection highlight, and
// the detail panel.
type EventsReset struct{}

// EventDetail replaces the detail panel. Key is the remembered selection;
// an empty Text with a non-empty Key means the key no longer resolves.
type EventDetail struct {
	Key     eventlog.Key
	Text    string
	Payload string
	Event   *api.Event
}

// ChatUpdated re-renders the conversation.
type ChatUpdated struct {
	Messages    []api.ChatMessage
	ForceScroll bool
}

// BusyChanged reflects the session busy flag; the UI derives control
// enablement and the "Running.../Ready" status line from it.
type BusyChanged struct {
	Busy bool
}

// ChatStatus shows a message on the chat status line. Errors persist until
// the next busy/ready transition or another error.
type ChatStatus struct {
	Text    string
	IsError bool
}

// ChatAccepted signals that a send was acknowledged; the UI clears its
// input optimistically on receipt, before the reply is processed.
type ChatAccepted struct{}

// BootstrapFailed reports that the initial chat/agent load failed; the
// recurring loop will not start.
type BootstrapFailed struct {
	Err error
}
