// Package syncer drives the incremental synchronization engine: one
// goroutine owns every piece of sync state (agent listing, expansion set,
// selection, event cursor and map, snapshot gate, chat cursor) and
// sequences the four backend fetches on a fixed cadence plus the ad hoc
// reload chains triggered by user mutations.
//
// Because ticks and actions are both handled inline on the same goroutine,
// the "races" between a scheduled poll and a user mutation reduce to plain
// interleavings resolved by the idempotence rules of the state packages
// (same-id skip, render gates, cursor monotonicity). No locking anywhere.
package syncer

import (
	"context"
	"time"

	"github.com/agusx1211/agentwatch/internal/agenttree"
	"github.com/agusx1211/agentwatch/internal/api"
	"github.com/agusx1211/agentwatch/internal/chat"
	"github.com/agusx1211/agentwatch/internal/debug"
	"github.com/agusx1211/agentwatch/internal/eventlog"
	"github.com/agusx1211/agentwatch/internal/snapshot"
)

// Syncer owns the sync state and the polling loop.
type Syncer struct {
	client   *api.Client
	interval time.Duration

	actions chan any
	updates chan<- any

	agents    []api.Agent
	selected  string
	expansion *agenttree.Expansion
	events    *eventlog.Log
	context   *snapshot.Tracker
	session   *chat.Session

	showSystem  bool
	debugEvents bool
}

// New returns a Syncer that reports view updates on the given channel.
// Call Run to start it.
func New(client *api.Client, interval time.Duration, updates chan<- any) *Syncer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Syncer{
		client:    client,
		interval:  interval,
		actions:   make(chan any, 16),
		updates:   updates,
		expansion: agenttree.NewExpansion(),
		events:    eventlog.New(),
		context:   snapshot.New(),
		session:   chat.New(),
	}
}

// Do queues a user action for the sync goroutine.
func (s *Syncer) Do(action any) {
	s.actions <- action
}

// Run executes the bootstrap sequence and then the recurring loop until the
// context is cancelled. The bootstrap fetches chat and agents; if either
// fails the recurring loop never starts, but actions keep being served so
// the user still sees a responsive (if empty) UI.
func (s *Syncer) Run(ctx context.Context) {
	defer close(s.updates)

	bootstrapOK := true
	if err := s.loadChat(ctx, true); err != nil {
		s.emit(BootstrapFailed{Err: err})
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
		bootstrapOK = false
	} else if err := s.loadAgents(ctx); err != nil {
		s.emit(BootstrapFailed{Err: err})
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
		bootstrapOK = false
	}
	if bootstrapOK {
		if err := s.loadContext(ctx, true); err != nil {
			s.emit(ChatStatus{Text: err.Error(), IsError: true})
		}
	}

	if !bootstrapOK {
		for {
			select {
			case <-ctx.Done():
				return
			case action := <-s.actions:
				s.handle(ctx, action)
			}
		}
	}

	// The next tick is scheduled a full interval after the previous
	// sequence settles, so ticks never overlap.
	timer := time.NewTimer(s.interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case action := <-s.actions:
			s.handle(ctx, action)
		case <-timer.C:
			s.tick(ctx)
			timer.Reset(s.interval)
		}
	}
}

// tick runs the fixed per-cycle sequence. Step failures surface as status
// and never stop future ticks.
func (s *Syncer) tick(ctx context.Context) {
	if err := s.loadAgents(ctx); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
	if err := s.loadContext(ctx, false); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
	if err := s.pollEvents(ctx); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
	if err := s.loadChat(ctx, false); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
}

func (s *Syncer) handle(ctx context.Context, action any) {
	switch a := action.(type) {
	case SelectAgent:
		if a.ID == "" || a.ID == s.selected {
			return
		}
		s.selected = a.ID
		s.context.Reset()
		s.resetEvents()
		if err := s.loadContext(ctx, true); err != nil {
			s.emit(ChatStatus{Text: err.Error(), IsError: true})
		}
		s.emitAgents()

	case ToggleExpand:
		s.expansion.Toggle(a.ID)
		s.emitAgents()

	case SetShowSystem:
		s.showSystem = a.On
		s.context.Reset()
		if err := s.loadContext(ctx, true); err != nil {
			s.emit(ChatStatus{Text: err.Error(), IsError: true})
		}

	case SetDebugEvents:
		s.debugEvents = a.On
		s.resetEvents()
		if err := s.pollEvents(ctx); err != nil {
			s.emit(ChatStatus{Text: err.Error(), IsError: true})
		}

	case SelectEvent:
		s.events.Select(a.Key)
		s.emitDetail()

	case SendMessage:
		s.sendMessage(ctx, a.Text)

	case StopRun:
		s.stopRun(ctx)
	}
}

// --- Fetch steps ---

func (s *Syncer) loadAgents(ctx context.Context) error {
	next, err := s.client.Agents(ctx)
	if err != nil {
		return err
	}
	// Seeding must see the previous listing's id set, so it runs before
	// the commit below.
	s.expansion.Seed(s.agents, next)
	s.agents = next

	if s.selected == "" {
		if sid := s.session.SessionID(); sid != "" {
			s.selected = sid
			s.expansion.Add(sid)
		} else if len(s.agents) > 0 {
			s.selected = s.agents[len(s.agents)-1].ID
			s.expansion.Add(s.selected)
		}
	}

	s.emitAgents()
	return nil
}

func (s *Syncer) loadContext(ctx context.Context, forced bool) error {
	if s.selected == "" {
		return nil
	}
	snap, err := s.client.Context(ctx, s.selected, s.showSystem)
	if err != nil {
		return err
	}
	if snap == nil {
		s.emit(ContextEmpty{})
		return nil
	}
	if s.context.Apply(snap) {
		s.emit(ContextUpdated{Text: s.context.Text(), ForceScroll: forced})
	}
	return nil
}

func (s *Syncer) pollEvents(ctx context.Context) error {
	if s.selected == "" {
		return nil
	}
	ts, id := s.events.Cursor()
	batch, err := s.client.Events(ctx, api.EventQuery{
		SinceTS: ts,
		SinceID: id,
		AgentID: s.selected,
		Debug:   s.debugEvents,
	})
	if err != nil {
		return err
	}
	appended := s.events.Apply(batch)
	if len(appended) == 0 {
		return nil
	}

	lines := make([]EventLine, 0, len(appended))
	for _, key := range appended {
		evt, ok := s.events.Lookup(key)
		if !ok {
			continue
		}
		lines = append(lines, EventLine{Key: key, Text: eventlog.Line(evt)})
	}
	s.emit(EventsAppended{Lines: lines})

	// Reassert the selection so the rebuilt log restores its highlight
	// and detail panel.
	if s.events.Selected() != "" {
		s.emitDetail()
	}
	debug.LogKV("syncer", "events appended", "count", len(lines))
	return nil
}

func (s *Syncer) loadChat(ctx context.Context, forced bool) error {
	state, err := s.client.Chat(ctx)
	if err != nil {
		return err
	}
	render := s.session.Observe(state, forced)

	// The supervising session doubles as the default agent selection when
	// nothing else has been chosen yet.
	if s.selected == "" && s.session.SessionID() != "" {
		s.selected = s.session.SessionID()
		s.expansion.Add(s.selected)
	}

	if render {
		s.emit(ChatUpdated{Messages: state.Messages, ForceScroll: forced})
	}
	s.emit(BusyChanged{Busy: s.session.Busy()})
	return nil
}

// --- Mutations ---

func (s *Syncer) sendMessage(ctx context.Context, text string) {
	if !s.session.CanSend(text) {
		return
	}
	s.session.SetBusy(true)
	s.emit(BusyChanged{Busy: true})

	if err := s.client.SendMessage(ctx, text); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
		s.session.SetBusy(false)
		s.emit(BusyChanged{Busy: false})
		return
	}
	// Acknowledged: the input clears now, not after the reply lands.
	s.emit(ChatAccepted{})

	if err := s.loadChat(ctx, true); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
	if err := s.loadAgents(ctx); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
	if err := s.loadContext(ctx, true); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
	if err := s.pollEvents(ctx); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
}

func (s *Syncer) stopRun(ctx context.Context) {
	if !s.session.CanStop() {
		return
	}
	if err := s.client.StopRun(ctx); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
		return
	}
	if err := s.loadChat(ctx, true); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
	if err := s.loadContext(ctx, true); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
	if err := s.pollEvents(ctx); err != nil {
		s.emit(ChatStatus{Text: err.Error(), IsError: true})
	}
}

// --- Emission helpers ---

func (s *Syncer) resetEvents() {
	s.events.Reset()
	s.emit(EventsReset{})
}

func (s *Syncer) emitAgents() {
	rows := agenttree.Flatten(agenttree.Build(s.agents), s.expansion)
	s.emit(AgentsUpdated{Rows: rows, Selected: s.selected})
}

func (s *Syncer) emitDetail() {
	key := s.events.Selected()
	if key == "" {
		s.emit(EventDetail{})
		return
	}
	evt, ok := s.events.SelectedEvent()
	if !ok {
		// Key no longer resolves: detail clears, the remembered key
		// stays put.
		s.emit(EventDetail{Key: key})
		return
	}
	s.emit(EventDetail{
		Key:     key,
		Text:    eventlog.FormatDetails(evt),
		Payload: eventlog.PayloadJSON(evt.Payload),
		Event:   &evt,
	})
}

func (s *Syncer) emit(msg any) {
	s.updates <- msg
}
