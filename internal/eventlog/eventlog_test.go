package eventlog

import (
	"strings"
	"testing"

	"github.com/agusx1211/agentwatch/internal/api"
)

func id(v int64) *int64 { return &v }

func TestEventKeyPrefersID(t *testing.T) {
	key := EventKey(api.Event{ID: id(42), TS: 100, Type: "eval"})
	if key != "42" {
		t.Errorf("key = %q, want %q", key, "42")
	}
}

func TestEventKeyFallsBackToTSAndType(t *testing.T) {
	key := EventKey(api.Event{TS: 100, Type: "eval"})
	if key != "100:eval" {
		t.Errorf("key = %q, want %q", key, "100:eval")
	}
}

func TestApplyAppendsInOrder(t *testing.T) {
	l := New()
	appended := l.Apply([]api.Event{
		{ID: id(1), TS: 10, Type: "a"},
		{ID: id(2), TS: 20, Type: "b"},
	})
	if len(appended) != 2 {
		t.Fatalf("len(appended) = %d, want 2", len(appended))
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
	ts, cid := l.Cursor()
	if ts != 20 || cid != 2 {
		t.Errorf("cursor = (%d, %d), want (20, 2)", ts, cid)
	}
}

func TestApplyDedupsKnownKeys(t *testing.T) {
	l := New()
	l.Apply([]api.Event{{ID: id(1), TS: 10, Type: "a"}})
	appended := l.Apply([]api.Event{
		{ID: id(1), TS: 10, Type: "a", Payload: map[string]any{"status": "done"}},
		{ID: id(2), TS: 20, Type: "b"},
	})
	if len(appended) != 1 || appended[0] != "2" {
		t.Fatalf("appended = %v, want [2]", appended)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
	// Re-arrival refreshed the stored record.
	evt, ok := l.Lookup("1")
	if !ok || evt.Payload["status"] != "done" {
		t.Errorf("record not overwritten on re-arrival: %v", evt.Payload)
	}
}

func TestApplyCursorZeroFieldsLeaveHalvesUnchanged(t *testing.T) {
	l := New()
	l.Apply([]api.Event{{ID: id(5), TS: 50, Type: "a"}})

	// Last item has no id: only the ts half advances.
	l.Apply([]api.Event{{TS: 60, Type: "b"}})
	ts, cid := l.Cursor()
	if ts != 60 || cid != 5 {
		t.Errorf("cursor = (%d, %d), want (60, 5)", ts, cid)
	}

	// Last item has a zero ts: only the id half advances.
	l.Apply([]api.Event{{ID: id(7), Type: "c"}})
	ts, cid = l.Cursor()
	if ts != 60 || cid != 7 {
		t.Errorf("cursor = (%d, %d), want (60, 7)", ts, cid)
	}
}

func TestApplyEmptyBatchKeepsCursor(t *testing.T) {
	l := New()
	l.Apply([]api.Event{{ID: id(3), TS: 30, Type: "a"}})
	if appended := l.Apply(nil); appended != nil {
		t.Errorf("appended = %v, want nil", appended)
	}
	ts, cid := l.Cursor()
	if ts != 30 || cid != 3 {
		t.Errorf("cursor = (%d, %d), want (30, 3)", ts, cid)
	}
}

func TestResetClearsEverything(t *testing.T) {
	l := New()
	l.Apply([]api.Event{{ID: id(1), TS: 10, Type: "a"}})
	l.Select("1")
	l.Reset()

	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	ts, cid := l.Cursor()
	if ts != 0 || cid != 0 {
		t.Errorf("cursor = (%d, %d), want (0, 0)", ts, cid)
	}
	if l.Selected() != "" {
		t.Errorf("Selected() = %q, want empty", l.Selected())
	}
}

func TestSelectionSurvivesUnresolvableKey(t *testing.T) {
	l := New()
	l.Select("99")
	if _, ok := l.SelectedEvent(); ok {
		t.Fatalf("SelectedEvent resolved a missing key")
	}
	if l.Selected() != "99" {
		t.Errorf("Selected() = %q, want %q", l.Selected(), "99")
	}
	l.Apply([]api.Event{{ID: id(99), TS: 10, Type: "late"}})
	if evt, ok := l.SelectedEvent(); !ok || evt.Type != "late" {
		t.Errorf("selection did not recover after re-arrival")
	}
}

func TestLineIncludesDuration(t *testing.T) {
	line := Line(api.Event{TS: 1700000000000, Type: "eval", Payload: map[string]any{"duration_ms": float64(12)}})
	if !strings.Contains(line, "eval (12ms)") {
		t.Errorf("line = %q, want duration suffix", line)
	}
}

func TestLineWithoutDuration(t *testing.T) {
	line := Line(api.Event{TS: 1700000000000, Type: "llm"})
	if !strings.HasSuffix(line, "] llm") {
		t.Errorf("line = %q, want bare type suffix", line)
	}
}

func TestFormatDetailsHeaderFields(t *testing.T) {
	text := FormatDetails(api.Event{
		ID:      id(7),
		TS:      1700000000000,
		Type:    "eval",
		AgentID: "a1",
		Payload: map[string]any{"iteration": float64(3), "status": "ok"},
	})
	for _, want := range []string{
		"Event: eval",
		"Agent: a1",
		"Time: 2023-11-14T22:13:20.000Z",
		"ID: 7",
		"Evaluation",
		"iteration: 3",
		"status: ok",
		"payload:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("details missing %q in:\n%s", want, text)
		}
	}
}

func TestFormatDetailsUnknownFieldsDefault(t *testing.T) {
	text := FormatDetails(api.Event{})
	if !strings.Contains(text, "Event: unknown") {
		t.Errorf("missing unknown type marker:\n%s", text)
	}
	if !strings.Contains(text, "Agent: unknown") {
		t.Errorf("missing unknown agent marker:\n%s", text)
	}
	if !strings.Contains(text, "Time: unknown") {
		t.Errorf("missing unknown time marker:\n%s", text)
	}
}

func TestFormatDetailsRequestTailNotCaptured(t *testing.T) {
	text := FormatDetails(api.Event{TS: 1, Type: "llm"})
	if !strings.Contains(text, "(not captured)") {
		t.Errorf("missing not-captured marker:\n%s", text)
	}
}

func TestFormatDetailsRequestTailEntries(t *testing.T) {
	text := FormatDetails(api.Event{TS: 1, Type: "llm", Payload: map[string]any{
		"request_tail": []any{
			map[string]any{"role": "user", "chars": float64(5), "preview": "hello"},
		},
	}})
	if !strings.Contains(text, "[user] (5 chars)") {
		t.Errorf("missing tail entry header:\n%s", text)
	}
	if !strings.Contains(text, "hello") {
		t.Errorf("missing tail preview:\n%s", text)
	}
}

func TestPayloadJSONDeterministic(t *testing.T) {
	payload := map[string]any{"b": float64(2), "a": float64(1)}
	first := PayloadJSON(payload)
	for i := 0; i < 5; i++ {
		if got := PayloadJSON(payload); got != first {
			t.Fatalf("PayloadJSON not deterministic: %q vs %q", got, first)
		}
	}
	if !strings.Contains(first, "\"a\": 1") {
		t.Errorf("payload dump = %q", first)
	}
}
