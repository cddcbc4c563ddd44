// Package chat holds the client-side state of the supervising chat session:
// the learned session id, the busy flag, and the message-id render gate.
package chat

import "github.com/agusx1211/agentwatch/internal/api"

// Session is the chat sync state. All access happens on the sync goroutine.
type Session struct {
	sessionID     string
	busy          bool
	lastMessageID int64
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// SessionID returns the session id learned from the backend ("" until the
// first successful chat poll that carries one).
func (s *Session) SessionID() string {
	return s.sessionID
}

// Busy reports whether a chat turn is in progress. Busy gates the input and
// send controls and enables stop.
func (s *Session) Busy() bool {
	return s.busy
}

// LastMessageID returns the render-gate cursor.
func (s *Session) LastMessageID() int64 {
	return s.lastMessageID
}

// SetBusy overrides the busy flag ahead of the next poll, for optimistic
// gating right after a send is submitted.
func (s *Session) SetBusy(busy bool) {
	s.busy = busy
}

// Observe ingests a chat poll response and reports whether the message log
// should re-render: always when forced, otherwise only when the last
// message id moved. The session id sticks once learned; a poll without one
// does not unlearn it.
func (s *Session) Observe(state *api.ChatState, forced bool) (render bool) {
	if state.SessionID != "" {
		s.sessionID = state.SessionID
	}

	var lastID int64
	if n := len(state.Messages); n > 0 {
		lastID = state.Messages[n-1].ID
	}
	render = forced || lastID != s.lastMessageID
	s.lastMessageID = lastID
	s.busy = state.Busy
	return render
}

// CanSend reports whether a user message may be submitted right now.
func (s *Session) CanSend(message string) bool {
	return !s.busy && message != ""
}

// CanStop reports whether a stop request is permitted (only while busy).
func (s *Session) CanStop() bool {
	return s.busy
}
