package watchtui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Geometry. Sizes are terminal cells; the body is everything between the
// header row and the status bar.

func (m Model) compact() bool {
	return m.width < compactWidth
}

func (m Model) bodyHeight() int {
	h := m.height - 2
	if h < 0 {
		return 0
	}
	return h
}

func (m Model) chatCols() int {
	if m.compact() {
		return m.width
	}
	return m.mainSplit.Primary(m.width)
}

func (m Model) obsCols() int {
	return m.mainSplit.Secondary(m.width)
}

func (m Model) contextCols() int {
	if m.compact() {
		return m.width
	}
	return m.obsSplit.Primary(m.obsCols())
}

func (m Model) sideCols() int {
	return m.obsSplit.Secondary(m.obsCols())
}

func (m Model) agentsRows() int {
	return m.stackSplit.Primary(m.bodyHeight())
}

func (m Model) eventsRows() int {
	return m.stackSplit.Secondary(m.bodyHeight())
}

// Compact mode stacks the chat column on top of the transcript and drops
// the side panes; the split is fixed, not draggable.
func (m Model) compactChatRows() int {
	return m.bodyHeight() * 3 / 5
}

// View heights: rows available for scrollable content inside each pane,
// after the pane title and any fixed chrome.

func (m Model) chatViewHeight() int {
	rows := m.bodyHeight()
	if m.compact() {
		rows = m.compactChatRows()
	}
	// Title, status line, input line.
	h := rows - 3
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) contextViewHeight() int {
	rows := m.bodyHeight()
	if m.compact() {
		rows = m.bodyHeight() - m.compactChatRows()
	}
	h := rows - 1
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) agentsViewHeight() int {
	h := m.agentsRows() - 1
	if h < 1 {
		return 1
	}
	return h
}

// eventsSplit divides the events pane content area between the log and the
// detail panel. Without a selection the log takes everything.
func (m Model) eventsSplit() (logH, detailH int) {
	area := m.eventsRows() - 1
	if area < 1 {
		area = 1
	}
	if m.selectedKey == "" {
		return area, 0
	}
	logH = (area - 1) / 2
	if logH < 1 {
		logH = 1
	}
	detailH = area - 1 - logH
	if detailH < 0 {
		detailH = 0
	}
	return logH, detailH
}

func (m Model) eventsLogViewHeight() int {
	logH, _ := m.eventsSplit()
	return logH
}

// --- Scroll math ---

func maxScroll(total, viewH int) int {
	if total <= viewH {
		return 0
	}
	return total - viewH
}

func clampScroll(pos, total, viewH int) int {
	max := maxScroll(total, viewH)
	if pos > max {
		pos = max
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// nearBottom reports whether a view scrolled to pos is within the follow
// threshold of the content end, so appended lines keep it pinned.
func (m Model) nearBottom(pos, viewH, total int) bool {
	return pos+viewH+nearBottomLines >= total
}

// ensureVisible shifts scroll so the cursor row stays inside the viewport.
func ensureVisible(cursor, scroll, viewH int) int {
	if cursor < scroll {
		return cursor
	}
	if cursor >= scroll+viewH {
		return cursor - viewH + 1
	}
	return scroll
}

func (m *Model) clampScrolls() {
	m.contextScroll = clampScroll(m.contextScroll, len(m.contextLines()), m.contextViewHeight())
	m.previewScroll = clampScroll(m.previewScroll, len(m.previewLines()), m.contextViewHeight())
	m.chatScroll = clampScroll(m.chatScroll, len(m.chatLines()), m.chatViewHeight())
	m.agentScroll = clampScroll(m.agentScroll, len(m.rows), m.agentsViewHeight())
	m.eventsScroll = clampScroll(m.eventsScroll, len(m.eventLines), m.eventsLogViewHeight())
	_, detailH := m.eventsSplit()
	m.detailScroll = clampScroll(m.detailScroll, len(m.detailLines()), detailH)
}

// --- Content lines ---

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func (m Model) contextLines() []string {
	return splitLines(m.contextText)
}

func (m Model) previewLines() []string {
	return splitLines(m.previewText)
}

func (m Model) detailLines() []string {
	return splitLines(m.detailText)
}

// chatLines renders the conversation into scrollable lines: a role header,
// the wrapped body, and a blank separator per message.
func (m Model) chatLines() []string {
	width := m.chatCols() - 2
	if width < 10 {
		width = 10
	}
	var lines []string
	for _, msg := range m.messages {
		lines = append(lines, chatRoleStyle(msg.role).Render(roleLabel(msg.role)))
		wrapped := ansi.Wrap(msg.content, width, "")
		lines = append(lines, strings.Split(wrapped, "\n")...)
		lines = append(lines, "")
	}
	return lines
}

func roleLabel(role string) string {
	switch role {
	case "user":
		return "You"
	case "assistant":
		return "Supervisor"
	case "":
		return "?"
	default:
		return role
	}
}
