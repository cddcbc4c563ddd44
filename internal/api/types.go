package api

// Agent is one supervised unit of work as reported by the backend listing.
// ParentID is empty for roots; a non-empty ParentID that does not resolve
// within the same listing is treated by consumers as a root, not an error.
type Agent struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id"`
	Status   string `json:"status"`
}

// Event is one lifecycle/debug record. ID is nil when the backend did not
// assign one; consumers then fall back to a ts:type key for dedup.
type Event struct {
	ID      *int64         `json:"id"`
	TS      int64          `json:"ts"`
	Type    string         `json:"type"`
	AgentID string         `json:"agent_id"`
	Payload map[string]any `json:"payload"`
}

// Snapshot is a versioned full transcript for an agent's context. The ID is
// monotonic per agent; Preview is a fallback when Transcript is empty.
type Snapshot struct {
	ID         int64  `json:"id"`
	Transcript string `json:"transcript"`
	Preview    string `json:"preview"`
}

// ChatMessage is one message in the supervising session's conversation.
type ChatMessage struct {
	ID      int64  `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatState is the full chat poll response: the session identity, the
// complete current message list, and the busy flag gating input.
type ChatState struct {
	SessionID string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages"`
	Busy      bool          `json:"busy"`
}

// EventQuery scopes an event fetch to everything after the cursor for one
// agent, optionally including debug events.
type EventQuery struct {
	SinceTS int64
	SinceID int64
	AgentID string
	Debug   bool
}
