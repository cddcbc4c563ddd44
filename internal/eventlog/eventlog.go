// Package eventlog maintains the incremental event view for the selected
// agent: a monotonic fetch cursor, a keyed record map for detail lookup, and
// the append-only rendered line order.
package eventlog

import (
	"fmt"
	"time"

	"github.com/agusx1211/agentwatch/internal/api"
)

// Key identifies one event for dedup and detail lookup. It is the event id
// when present, else "ts:type". The fallback is not collision-free (two
// same-type events on the same timestamp collide); this is a known
// limitation carried over deliberately rather than papered over.
type Key string

// EventKey derives the dedup/lookup key for an event.
func EventKey(evt api.Event) Key {
	if evt.ID != nil {
		return Key(fmt.Sprintf("%d", *evt.ID))
	}
	return Key(fmt.Sprintf("%d:%s", evt.TS, evt.Type))
}

// Log is the event state for one agent selection. All access happens on the
// sync goroutine; no locking.
type Log struct {
	cursorTS int64
	cursorID int64

	byKey    map[Key]api.Event
	order    []Key
	selected Key
}

// New returns an empty log with the cursor at (0,0).
func New() *Log {
	return &Log{byKey: make(map[Key]api.Event)}
}

// Cursor returns the last observed (ts, id) pair.
func (l *Log) Cursor() (ts, id int64) {
	return l.cursorTS, l.cursorID
}

// Apply ingests a fetched batch, assumed already ascending by (ts, id), and
// returns the keys newly appended to the rendered order. Re-arrival of a
// known key overwrites the stored record without duplicating its line. On a
// non-empty batch the cursor advances to the last item's position; zero
// fields leave the corresponding cursor half unchanged.
func (l *Log) Apply(batch []api.Event) []Key {
	var appended []Key
	for _, evt := range batch {
		key := EventKey(evt)
		if _, seen := l.byKey[key]; !seen {
			l.order = append(l.order, key)
			appended = append(appended, key)
		}
		l.byKey[key] = evt
	}
	if len(batch) > 0 {
		last := batch[len(batch)-1]
		if last.TS != 0 {
			l.cursorTS = last.TS
		}
		if last.ID != nil && *last.ID != 0 {
			l.cursorID = *last.ID
		}
	}
	return appended
}

// Reset clears the cursor, the record map, the rendered order, and the
// selection. Used on agent switch and debug-flag toggle.
func (l *Log) Reset() {
	l.cursorTS = 0
	l.cursorID = 0
	l.byKey = make(map[Key]api.Event)
	l.order = nil
	l.selected = ""
}

// Keys returns the rendered line order.
func (l *Log) Keys() []Key {
	return l.order
}

// Len returns the number of rendered lines.
func (l *Log) Len() int {
	return len(l.order)
}

// Lookup returns the stored record for a key.
func (l *Log) Lookup(key Key) (api.Event, bool) {
	evt, ok := l.byKey[key]
	return evt, ok
}

// Select remembers a key as the selected event. Selecting "" clears the
// selection.
func (l *Log) Select(key Key) {
	l.selected = key
}

// Selected returns the remembered selection key ("" when none).
func (l *Log) Selected() Key {
	return l.selected
}

// SelectedEvent resolves the remembered key. A selection that no longer
// resolves yields ok=false; the remembered key itself stays put so a later
// re-arrival restores the detail view.
func (l *Log) SelectedEvent() (api.Event, bool) {
	if l.selected == "" {
		return api.Event{}, false
	}
	return l.Lookup(l.selected)
}

// Line renders the one-line log entry for an event: local time, type, and
// the duration suffix when the payload carries one.
func Line(evt api.Event) string {
	detail := ""
	if d, ok := evt.Payload["duration_ms"]; ok && d != nil {
		detail = fmt.Sprintf(" (%vms)", d)
	}
	stamp := time.UnixMilli(evt.TS).Format("15:04:05")
	return fmt.Sprintf("[%s] %s%s", stamp, evt.Type, detail)
}
