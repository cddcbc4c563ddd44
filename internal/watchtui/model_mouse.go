package watchtui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agusx1211/agentwatch/internal/syncer"
)

// The terminal reports a single pointer, so every splitter interaction uses
// pointer id 0. The controllers track ids so a captured drag ignores input
// attributed to anything else.
const mousePointerID = 0

const wheelStep = 3

func (m Model) handleMouse(ev tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		return m.scrollRegionAt(ev.X, ev.Y, -wheelStep), nil
	case tea.MouseButtonWheelDown:
		return m.scrollRegionAt(ev.X, ev.Y, wheelStep), nil
	}

	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.mousePress(ev)
	case tea.MouseActionMotion:
		return m.mouseMotion(ev), nil
	case tea.MouseActionRelease:
		m.mainSplit.Stop()
		m.obsSplit.Stop()
		m.stackSplit.Stop()
		return m, nil
	}
	return m, nil
}

func (m Model) mousePress(ev tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.compact() {
		// Splitters are inert in compact mode; clicks only move focus.
		if ev.Y < 1+m.compactChatRows() {
			m.focus = focusInput
		} else {
			m.focus = focusContext
		}
		m.syncInputFocus()
		return m, nil
	}

	bodyTop := 1
	bodyBottom := m.height - 2
	if ev.Y < bodyTop || ev.Y > bodyBottom {
		return m, nil
	}

	mainX := m.chatCols()
	obsX := mainX + 1 + m.contextCols()
	stackY := bodyTop + m.agentsRows()

	switch {
	case ev.X == mainX:
		m.mainSplit.PointerDown(mousePointerID, ev.X, m.width, false)
	case ev.X == obsX:
		m.obsSplit.PointerDown(mousePointerID, ev.X-(mainX+1), m.obsCols(), false)
	case ev.X > obsX && ev.Y == stackY:
		m.stackSplit.PointerDown(mousePointerID, ev.Y-bodyTop, m.bodyHeight(), false)
	case ev.X < mainX:
		m.focus = focusInput
	case ev.X < obsX:
		m.focus = focusContext
	case ev.Y < stackY:
		// Agent tree: a click both moves the cursor and selects the row.
		m.focus = focusAgents
		row := ev.Y - (bodyTop + 1) + m.agentScroll
		if row >= 0 && row < len(m.rows) {
			m.agentCursor = row
			m.previewVisible = false
			m.previewText = ""
			m.sync.Do(syncer.SelectAgent{ID: m.rows[row].Node.Agent.ID})
		}
	default:
		m.focus = focusEvents
		row := ev.Y - (stackY + 2) + m.eventsScroll
		if row >= 0 && row < len(m.eventLines) && row-m.eventsScroll < m.eventsLogViewHeight() {
			m.eventCursor = row
			m.sync.Do(syncer.SelectEvent{Key: m.eventLines[row].Key})
		}
	}
	m.syncInputFocus()
	return m, nil
}

func (m Model) mouseMotion(ev tea.MouseMsg) Model {
	if m.mainSplit.Dragging() {
		m.mainSplit.PointerMove(mousePointerID, ev.X, m.width)
	}
	if m.obsSplit.Dragging() {
		m.obsSplit.PointerMove(mousePointerID, ev.X-(m.chatCols()+1), m.obsCols())
	}
	if m.stackSplit.Dragging() {
		m.stackSplit.PointerMove(mousePointerID, ev.Y-1, m.bodyHeight())
	}
	return m
}

// scrollRegionAt wheels the pane under the pointer.
func (m Model) scrollRegionAt(x, y, delta int) Model {
	if m.compact() {
		if y < 1+m.compactChatRows() {
			m.chatScroll = clampScroll(m.chatScroll+delta, len(m.chatLines()), m.chatViewHeight())
		} else {
			m.contextScroll = clampScroll(m.contextScroll+delta, len(m.contextLines()), m.contextViewHeight())
		}
		return m
	}

	mainX := m.chatCols()
	obsX := mainX + 1 + m.contextCols()
	stackY := 1 + m.agentsRows()

	switch {
	case x < mainX:
		m.chatScroll = clampScroll(m.chatScroll+delta, len(m.chatLines()), m.chatViewHeight())
	case x < obsX:
		if m.previewVisible {
			m.previewScroll = clampScroll(m.previewScroll+delta, len(m.previewLines()), m.contextViewHeight())
		} else {
			m.contextScroll = clampScroll(m.contextScroll+delta, len(m.contextLines()), m.contextViewHeight())
		}
	case y < stackY:
		m.agentScroll = clampScroll(m.agentScroll+delta, len(m.rows), m.agentsViewHeight())
	default:
		m.eventsScroll = clampScroll(m.eventsScroll+delta, len(m.eventLines), m.eventsLogViewHeight())
	}
	return m
}
