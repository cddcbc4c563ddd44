package watchtui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// waitForUpdate returns a Cmd that waits for the next message from the sync
// goroutine. Each handled message re-arms the wait, so the channel drains
// one message per Update cycle.
func waitForUpdate(ch <-chan any) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return syncClosedMsg{}
		}
		return tea.Msg(msg)
	}
}

// syncClosedMsg signals that the sync goroutine exited and closed its
// updates channel.
type syncClosedMsg struct{}

// statusSlot names one of the transient status lines. Each slot keeps its
// own generation counter so a stale expiry never clears a newer message.
type statusSlot int

const (
	slotExport statusSlot = iota
	slotPreview
	slotCopy
)

// statusExpiredMsg fires when a transient status should clear, carrying the
// generation it was armed for.
type statusExpiredMsg struct {
	slot statusSlot
	gen  int
}

const statusTTL = 1500 * time.Millisecond

func expireStatus(slot statusSlot, gen int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{slot: slot, gen: gen}
	})
}

// exportDoneMsg reports the outcome of a log download.
type exportDoneMsg struct {
	path string
	err  error
}

// previewDoneMsg carries the export preview text, shown in place of the
// transcript until dismissed.
type previewDoneMsg struct {
	text string
	err  error
}

// copyDoneMsg reports the outcome of saving the transcript to a file.
type copyDoneMsg struct {
	path string
	err  error
}
