package watchtui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/agusx1211/agentwatch/internal/theme"
)

func (m Model) View() string {
	if m.width == 0 || m.height < 4 {
		return ""
	}
	var body string
	if m.compact() {
		body = m.renderCompactBody()
	} else {
		body = m.renderBody()
	}
	return m.renderHeader() + "\n" + body + "\n" + m.renderStatusBar()
}

func (m Model) renderHeader() string {
	left := headerStyle.Render("agentwatch")
	right := dimStyle.Render(" " + m.serverURL)
	return padLine(left+right, m.width)
}

func (m Model) renderBody() string {
	bodyH := m.bodyHeight()
	chat := m.renderChatPane(m.chatCols(), bodyH)
	ctx := m.renderContextPane(m.contextCols(), bodyH)
	side := m.renderSidePane(m.sideCols())

	mainSep := m.renderVSplitter(bodyH, m.mainSplit.Dragging())
	obsSep := m.renderVSplitter(bodyH, m.obsSplit.Dragging())

	return lipgloss.JoinHorizontal(lipgloss.Top, chat, mainSep, ctx, obsSep, side)
}

func (m Model) renderCompactBody() string {
	chat := m.renderChatPane(m.width, m.compactChatRows())
	ctx := m.renderContextPane(m.width, m.bodyHeight()-m.compactChatRows())
	return chat + "\n" + ctx
}

// --- Chat column ---

func (m Model) renderChatPane(width, height int) string {
	title := "Chat"
	if m.busy {
		title += " " + m.spin.View()
	}
	lines := []string{m.paneTitle(title, m.focus == focusInput, width)}

	viewH := height - 3
	if viewH < 1 {
		viewH = 1
	}
	for _, line := range windowOf(m.chatLines(), m.chatScroll, viewH) {
		lines = append(lines, padLine(line, width))
	}
	for len(lines) < height-2 {
		lines = append(lines, strings.Repeat(" ", width))
	}

	status := m.statusText
	style := dimStyle
	if m.statusErr {
		style = errorStyle
	} else if status == "Ready" {
		style = okStyle
	}
	lines = append(lines, padLine(style.Render(status), width))
	lines = append(lines, padLine(m.input.View(), width))

	return strings.Join(lines[:height], "\n")
}

// --- Transcript / preview column ---

func (m Model) renderContextPane(width, height int) string {
	title := "Context"
	content := m.contextLines()
	pos := m.contextScroll
	if m.previewVisible {
		title = "Export Preview (esc to close)"
		content = m.previewLines()
		pos = m.previewScroll
	} else if m.showSystem {
		title += " [system]"
	}

	lines := []string{m.paneTitle(title, m.focus == focusContext, width)}
	if len(content) == 0 && !m.previewVisible {
		lines = append(lines, padLine(dimStyle.Render("No context yet."), width))
	}
	viewH := height - 1
	for _, line := range windowOf(content, pos, viewH) {
		lines = append(lines, padLine(line, width))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines[:height], "\n")
}

// --- Side column: agent tree over event log ---

func (m Model) renderSidePane(width int) string {
	agents := m.renderAgentsPane(width, m.agentsRows())
	events := m.renderEventsPane(width, m.eventsRows())

	sep := strings.Repeat("─", width)
	sepStyle := splitterStyle
	if m.stackSplit.Dragging() {
		sepStyle = splitterActiveStyle
	}
	return agents + "\n" + sepStyle.Render(sep) + "\n" + events
}

func (m Model) renderAgentsPane(width, height int) string {
	lines := []string{m.paneTitle("Agents", m.focus == focusAgents, width)}

	viewH := height - 1
	start := m.agentScroll
	for i := start; i < len(m.rows) && i < start+viewH; i++ {
		row := m.rows[i]
		marker := "  "
		if len(row.Node.Children) > 0 {
			if m.rowExpanded(i) {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		label := strings.Repeat("  ", row.Depth) + marker + row.Path + " " + row.Node.Agent.ID

		style := agentLineStyle
		if row.Node.Agent.ID == m.selectedAgent {
			style = agentActiveStyle
		}
		if i == m.agentCursor && m.focus == focusAgents {
			style = agentCursorStyle
		}
		text := style.Render(ansi.Truncate(label, width-8, "…"))
		if st := row.Node.Agent.Status; st != "" {
			text += " " + theme.AgentStatusStyle(st).Render(st)
		}
		lines = append(lines, padLine(text, width))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines[:height], "\n")
}

// rowExpanded infers expansion from the flattened listing: a parent with
// children is collapsed exactly when no deeper row follows it.
func (m Model) rowExpanded(i int) bool {
	if i+1 >= len(m.rows) {
		return false
	}
	return m.rows[i+1].Depth > m.rows[i].Depth
}

func (m Model) renderEventsPane(width, height int) string {
	title := "Events"
	if m.debugEvents {
		title += " [debug]"
	}
	lines := []string{m.paneTitle(title, m.focus == focusEvents, width)}

	logH, detailH := m.eventsSplit()
	start := m.eventsScroll
	for i := start; i < len(m.eventLines) && i < start+logH; i++ {
		el := m.eventLines[i]
		style := eventLineStyle
		if el.Key == m.selectedKey {
			style = eventActiveStyle
		}
		prefix := "  "
		if i == m.eventCursor && m.focus == focusEvents {
			prefix = "> "
		}
		lines = append(lines, padLine(style.Render(prefix+ansi.Truncate(el.Text, width-2, "…")), width))
	}
	for len(lines) < 1+logH {
		lines = append(lines, strings.Repeat(" ", width))
	}

	if detailH > 0 {
		lines = append(lines, padLine(dimStyle.Render(strings.Repeat("·", width)), width))
		detail := m.detailLines()
		if len(detail) == 0 {
			detail = []string{dimStyle.Render("(event no longer available)")}
		}
		for _, line := range windowOf(detail, m.detailScroll, detailH) {
			lines = append(lines, padLine(line, width))
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines[:height], "\n")
}

// --- Chrome ---

func (m Model) renderVSplitter(height int, active bool) string {
	style := splitterStyle
	if active {
		style = splitterActiveStyle
	}
	col := make([]string, height)
	for i := range col {
		col[i] = style.Render("│")
	}
	return strings.Join(col, "\n")
}

func (m Model) renderStatusBar() string {
	var parts []string
	for _, ts := range []transientStatus{m.exportStatus, m.previewStatus, m.copyStatus} {
		if ts.text == "" {
			continue
		}
		if ts.isErr {
			parts = append(parts, errorStyle.Render(ts.text))
		} else {
			parts = append(parts, okStyle.Render(ts.text))
		}
	}
	if m.bootstrapFailed {
		parts = append(parts, errorStyle.Render("bootstrap failed; polling disabled"))
	}
	if len(parts) == 0 {
		hints := []string{
			"tab", "focus", "enter", "send/select", "space", "expand",
			"^s", "system", "^g", "debug", "^x", "stop",
			"^p", "preview", "^o", "save logs", "^y", "save ctx", "^c", "quit",
		}
		var b strings.Builder
		for i := 0; i+1 < len(hints); i += 2 {
			if i > 0 {
				b.WriteString(statusValueStyle.Render("  "))
			}
			b.WriteString(statusKeyStyle.Render(hints[i]))
			b.WriteString(statusValueStyle.Render(" " + hints[i+1]))
		}
		parts = append(parts, b.String())
	}
	return statusBarStyle.Width(m.width).Render(padLine(strings.Join(parts, "  "), m.width-2))
}

func (m Model) paneTitle(title string, focused bool, width int) string {
	style := paneTitleStyle
	if focused {
		style = paneTitleFocusedStyle
	}
	return padLine(style.Render(ansi.Truncate(title, width, "…")), width)
}

// --- Helpers ---

// windowOf returns the viewH-sized slice of lines starting at pos, clamped.
func windowOf(lines []string, pos, viewH int) []string {
	pos = clampScroll(pos, len(lines), viewH)
	end := pos + viewH
	if end > len(lines) {
		end = len(lines)
	}
	if pos >= end {
		return nil
	}
	return lines[pos:end]
}

// padLine truncates to width and pads with spaces so horizontal joins stay
// rectangular.
func padLine(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
