// Package watchtui implements the interactive supervision TUI: a chat
// column beside an observability column (context transcript, agent tree,
// event log) with draggable splitters, fed exclusively by messages from the
// sync goroutine.
package watchtui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agusx1211/agentwatch/internal/agenttree"
	"github.com/agusx1211/agentwatch/internal/api"
	"github.com/agusx1211/agentwatch/internal/eventlog"
	"github.com/agusx1211/agentwatch/internal/export"
	"github.com/agusx1211/agentwatch/internal/panes"
	"github.com/agusx1211/agentwatch/internal/syncer"
	"github.com/agusx1211/agentwatch/internal/theme"
)

const (
	// Below this width the layout stacks vertically and splitters are
	// inert.
	compactWidth = 98
	// Views this close to the bottom follow appended content.
	nearBottomLines = 4

	requestTimeout = 30 * time.Second
)

type focusZone int

const (
	focusInput focusZone = iota
	focusAgents
	focusEvents
	focusContext
	focusZoneCount
)

type transientStatus struct {
	text  string
	isErr bool
	gen   int
}

type chatMessage struct {
	role    string
	content string
}

// Model is the bubbletea model for the watch TUI.
type Model struct {
	width  int
	height int

	client      *api.Client
	sync        *syncer.Syncer
	updates     <-chan any
	serverURL   string
	downloadDir string

	mainSplit  *panes.Controller
	obsSplit   *panes.Controller
	stackSplit *panes.Controller

	focus focusZone

	// Agent tree.
	rows          []agenttree.Row
	selectedAgent string
	agentCursor   int
	agentScroll   int

	// Context transcript.
	contextText   string
	contextEmpty  bool
	contextScroll int

	// Event log and detail.
	eventLines   []syncer.EventLine
	eventCursor  int
	eventsScroll int
	selectedKey  eventlog.Key
	detailText   string
	detailScroll int

	// Chat.
	messages   []chatMessage
	chatScroll int
	busy       bool
	statusText string
	statusErr  bool

	input textinput.Model
	spin  spinner.Model

	showSystem  bool
	debugEvents bool

	// Export preview, shown in place of the transcript.
	previewVisible bool
	previewText    string
	previewScroll  int

	exportStatus  transientStatus
	previewStatus transientStatus
	copyStatus    transientStatus

	bootstrapFailed bool
	syncDone        bool
}

// New builds the initial model. The syncer must already be running and
// feeding the updates channel.
func New(client *api.Client, sync *syncer.Syncer, updates <-chan any, serverURL, downloadDir string) Model {
	ti := textinput.New()
	ti.Placeholder = "Message the supervisor..."
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorYellow)

	return Model{
		client:      client,
		sync:        sync,
		updates:     updates,
		serverURL:   serverURL,
		downloadDir: downloadDir,
		statusText:  "Connecting...",
		input:       ti,
		spin:        sp,
		mainSplit: panes.New(panes.Config{
			Axis:           panes.Horizontal,
			MinPrimary:     32,
			MinSecondary:   42,
			Thickness:      1,
			DefaultPrimary: 40,
		}),
		obsSplit: panes.New(panes.Config{
			Axis:           panes.Horizontal,
			MinPrimary:     32,
			MinSecondary:   22,
			Thickness:      1,
			DefaultPrimary: 60,
		}),
		stackSplit: panes.New(panes.Config{
			Axis:           panes.Vertical,
			MinPrimary:     7,
			MinSecondary:   7,
			Thickness:      1,
			DefaultPrimary: 10,
		}),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForUpdate(m.updates),
		textinput.Blink,
		m.spin.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		compact := m.compact()
		m.mainSplit.Resize(m.width, compact)
		m.obsSplit.Resize(m.obsCols(), compact)
		m.stackSplit.Resize(m.bodyHeight(), compact)
		m.input.Width = m.chatCols() - 4
		m.clampScrolls()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case statusExpiredMsg:
		switch msg.slot {
		case slotExport:
			if msg.gen == m.exportStatus.gen {
				m.exportStatus.text = ""
			}
		case slotPreview:
			if msg.gen == m.previewStatus.gen {
				m.previewStatus.text = ""
			}
		case slotCopy:
			if msg.gen == m.copyStatus.gen {
				m.copyStatus.text = ""
			}
		}
		return m, nil

	case exportDoneMsg:
		m.exportStatus.gen++
		if msg.err != nil {
			m.exportStatus = transientStatus{text: msg.err.Error(), isErr: true, gen: m.exportStatus.gen}
		} else {
			m.exportStatus = transientStatus{text: "Saved " + msg.path, gen: m.exportStatus.gen}
		}
		return m, expireStatus(slotExport, m.exportStatus.gen)

	case previewDoneMsg:
		if msg.err != nil {
			m.previewStatus.gen++
			m.previewStatus = transientStatus{text: msg.err.Error(), isErr: true, gen: m.previewStatus.gen}
			return m, expireStatus(slotPreview, m.previewStatus.gen)
		}
		m.previewVisible = true
		m.previewText = msg.text
		m.previewScroll = 0
		return m, nil

	case copyDoneMsg:
		m.copyStatus.gen++
		if msg.err != nil {
			m.copyStatus = transientStatus{text: msg.err.Error(), isErr: true, gen: m.copyStatus.gen}
		} else {
			m.copyStatus = transientStatus{text: "Context saved to " + msg.path, gen: m.copyStatus.gen}
		}
		return m, expireStatus(slotCopy, m.copyStatus.gen)

	case syncClosedMsg:
		m.syncDone = true
		return m, nil
	}

	if next, cmd, handled := m.applySync(msg); handled {
		return next, tea.Batch(cmd, waitForUpdate(next.updates))
	}
	return m, nil
}

// applySync folds one sync goroutine message into the view state. The third
// return value reports whether the message was one of ours.
func (m Model) applySync(msg tea.Msg) (Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case syncer.AgentsUpdated:
		m.rows = msg.Rows
		m.selectedAgent = msg.Selected
		if m.agentCursor >= len(m.rows) {
			m.agentCursor = len(m.rows) - 1
		}
		if m.agentCursor < 0 {
			m.agentCursor = 0
		}
		m.clampScrolls()
		return m, nil, true

	case syncer.ContextUpdated:
		wasNear := m.nearBottom(m.contextScroll, m.contextViewHeight(), len(m.contextLines()))
		m.contextText = msg.Text
		m.contextEmpty = false
		if msg.ForceScroll || wasNear {
			m.contextScroll = maxScroll(len(m.contextLines()), m.contextViewHeight())
		}
		return m, nil, true

	case syncer.ContextEmpty:
		m.contextText = ""
		m.contextEmpty = true
		m.contextScroll = 0
		return m, nil, true

	case syncer.EventsAppended:
		wasNear := m.nearBottom(m.eventsScroll, m.eventsLogViewHeight(), len(m.eventLines))
		m.eventLines = append(m.eventLines, msg.Lines...)
		if wasNear {
			m.eventsScroll = maxScroll(len(m.eventLines), m.eventsLogViewHeight())
		}
		return m, nil, true

	case syncer.EventsReset:
		m.eventLines = nil
		m.eventCursor = 0
		m.eventsScroll = 0
		m.selectedKey = ""
		m.detailText = ""
		m.detailScroll = 0
		return m, nil, true

	case syncer.EventDetail:
		m.selectedKey = msg.Key
		m.detailScroll = 0
		if msg.Key == "" || msg.Event == nil {
			m.detailText = ""
			return m, nil, true
		}
		m.detailText = eventlog.DetailHeader(*msg.Event) +
			"\n\npayload:\n" + highlightJSON(msg.Payload)
		return m, nil, true

	case syncer.ChatUpdated:
		wasNear := m.nearBottom(m.chatScroll, m.chatViewHeight(), len(m.chatLines()))
		m.messages = m.messages[:0]
		for _, cm := range msg.Messages {
			m.messages = append(m.messages, chatMessage{role: cm.Role, content: cm.Content})
		}
		if msg.ForceScroll || wasNear {
			m.chatScroll = maxScroll(len(m.chatLines()), m.chatViewHeight())
		}
		return m, nil, true

	case syncer.BusyChanged:
		wasBusy := m.busy
		m.busy = msg.Busy
		if m.busy {
			m.statusText = "Running..."
		} else {
			m.statusText = "Ready"
		}
		m.statusErr = false
		if m.busy && !wasBusy {
			return m, m.spin.Tick, true
		}
		return m, nil, true

	case syncer.ChatStatus:
		m.statusText = msg.Text
		m.statusErr = msg.IsError
		return m, nil, true

	case syncer.ChatAccepted:
		m.input.SetValue("")
		return m, nil, true

	case syncer.BootstrapFailed:
		m.bootstrapFailed = true
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % focusZoneCount
		m.syncInputFocus()
		return m, nil

	case "shift+tab":
		m.focus = (m.focus + focusZoneCount - 1) % focusZoneCount
		m.syncInputFocus()
		return m, nil

	case "esc":
		if m.previewVisible {
			m.previewVisible = false
			m.previewText = ""
		}
		return m, nil

	case "ctrl+s":
		m.showSystem = !m.showSystem
		m.sync.Do(syncer.SetShowSystem{On: m.showSystem})
		return m, nil

	case "ctrl+g":
		m.debugEvents = !m.debugEvents
		m.sync.Do(syncer.SetDebugEvents{On: m.debugEvents})
		return m, nil

	case "ctrl+x":
		if m.busy {
			m.sync.Do(syncer.StopRun{})
		}
		return m, nil

	case "ctrl+p":
		if m.previewVisible {
			m.previewVisible = false
			m.previewText = ""
			return m, nil
		}
		return m, m.previewCmd()

	case "ctrl+o":
		return m, m.downloadCmd()

	case "ctrl+y":
		return m, m.copyContextCmd()
	}

	switch m.focus {
	case focusInput:
		return m.handleInputKey(msg)
	case focusAgents:
		return m.handleAgentsKey(msg)
	case focusEvents:
		return m.handleEventsKey(msg)
	case focusContext:
		return m.handleContextKey(msg)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := strings.TrimSpace(m.input.Value())
		if text != "" && !m.busy {
			m.sync.Do(syncer.SendMessage{Text: text})
		}
		return m, nil
	}
	// Typing stays allowed while a turn runs; only submission is gated.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleAgentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.agentCursor > 0 {
			m.agentCursor--
		}
	case "down", "j":
		if m.agentCursor < len(m.rows)-1 {
			m.agentCursor++
		}
	case "enter":
		if m.agentCursor < len(m.rows) {
			m.previewVisible = false
			m.previewText = ""
			m.sync.Do(syncer.SelectAgent{ID: m.rows[m.agentCursor].Node.Agent.ID})
		}
	case " ":
		if m.agentCursor < len(m.rows) {
			m.sync.Do(syncer.ToggleExpand{ID: m.rows[m.agentCursor].Node.Agent.ID})
		}
	}
	m.agentScroll = ensureVisible(m.agentCursor, m.agentScroll, m.agentsViewHeight())
	return m, nil
}

func (m Model) handleEventsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.eventCursor > 0 {
			m.eventCursor--
		}
	case "down", "j":
		if m.eventCursor < len(m.eventLines)-1 {
			m.eventCursor++
		}
	case "enter", " ":
		if m.eventCursor < len(m.eventLines) {
			m.sync.Do(syncer.SelectEvent{Key: m.eventLines[m.eventCursor].Key})
		}
	}
	m.eventsScroll = ensureVisible(m.eventCursor, m.eventsScroll, m.eventsLogViewHeight())
	return m, nil
}

func (m Model) handleContextKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := len(m.contextLines())
	pos := &m.contextScroll
	if m.previewVisible {
		total = len(m.previewLines())
		pos = &m.previewScroll
	}
	viewH := m.contextViewHeight()
	switch msg.String() {
	case "up", "k":
		*pos -= 1
	case "down", "j":
		*pos += 1
	case "pgup":
		*pos -= viewH
	case "pgdown":
		*pos += viewH
	case "g":
		*pos = 0
	case "G":
		*pos = maxScroll(total, viewH)
	}
	*pos = clampScroll(*pos, total, viewH)
	return m, nil
}

func (m *Model) syncInputFocus() {
	if m.focus == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// --- Background commands ---

func (m Model) previewCmd() tea.Cmd {
	client := m.client
	opts := export.Options{IncludeSystem: m.showSystem, DebugEvents: m.debugEvents}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		text, err := export.Preview(ctx, client, opts)
		return previewDoneMsg{text: text, err: err}
	}
}

func (m Model) downloadCmd() tea.Cmd {
	client := m.client
	dir := m.downloadDir
	opts := export.Options{IncludeSystem: m.showSystem, DebugEvents: m.debugEvents}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		path, err := export.Download(ctx, client, dir, opts)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) copyContextCmd() tea.Cmd {
	text := m.contextText
	dir := m.downloadDir
	agentID := m.selectedAgent
	return func() tea.Msg {
		if text == "" {
			return copyDoneMsg{err: fmt.Errorf("no context to save")}
		}
		name := "context"
		if agentID != "" {
			name += "_" + agentID
		}
		name += "_" + time.Now().UTC().Format("2006-01-02T15-04-05") + ".txt"
		path := filepath.Join(dir, filepath.Base(name))
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return copyDoneMsg{err: err}
		}
		return copyDoneMsg{path: path}
	}
}
