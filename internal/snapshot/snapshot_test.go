package snapshot

import (
	"testing"

	"github.com/agusx1211/agentwatch/internal/api"
)

func TestApplyFirstSnapshotRenders(t *testing.T) {
	tr := New()
	if !tr.Apply(&api.Snapshot{ID: 1, Transcript: "hello"}) {
		t.Fatalf("Apply() = false, want true")
	}
	if tr.Text() != "hello" {
		t.Errorf("Text() = %q, want %q", tr.Text(), "hello")
	}
}

func TestApplySameIDSkips(t *testing.T) {
	tr := New()
	tr.Apply(&api.Snapshot{ID: 5, Transcript: "v1"})
	if tr.Apply(&api.Snapshot{ID: 5, Transcript: "v2"}) {
		t.Fatalf("Apply() with repeated id = true, want false")
	}
	if tr.Text() != "v1" {
		t.Errorf("Text() = %q, want unchanged %q", tr.Text(), "v1")
	}
}

func TestApplyNewIDRenders(t *testing.T) {
	tr := New()
	tr.Apply(&api.Snapshot{ID: 5, Transcript: "v1"})
	if !tr.Apply(&api.Snapshot{ID: 6, Transcript: "v2"}) {
		t.Fatalf("Apply() with new id = false, want true")
	}
	if tr.Text() != "v2" {
		t.Errorf("Text() = %q, want %q", tr.Text(), "v2")
	}
}

func TestApplyZeroIDAlwaysRenders(t *testing.T) {
	tr := New()
	if !tr.Apply(&api.Snapshot{Transcript: "a"}) {
		t.Fatalf("first zero-id Apply() = false, want true")
	}
	if !tr.Apply(&api.Snapshot{Transcript: "b"}) {
		t.Fatalf("second zero-id Apply() = false, want true")
	}
}

func TestApplyNilIsNoop(t *testing.T) {
	tr := New()
	tr.Apply(&api.Snapshot{ID: 2, Transcript: "kept"})
	if tr.Apply(nil) {
		t.Fatalf("Apply(nil) = true, want false")
	}
	if tr.Text() != "kept" {
		t.Errorf("Text() = %q, want %q", tr.Text(), "kept")
	}
}

func TestApplyPreviewFallback(t *testing.T) {
	tr := New()
	tr.Apply(&api.Snapshot{ID: 1, Preview: "short form"})
	if tr.Text() != "short form" {
		t.Errorf("Text() = %q, want preview fallback", tr.Text())
	}
}

func TestResetForgetsLastID(t *testing.T) {
	tr := New()
	tr.Apply(&api.Snapshot{ID: 9, Transcript: "v1"})
	tr.Reset()
	if tr.Text() != "" {
		t.Errorf("Text() after Reset = %q, want empty", tr.Text())
	}
	// The same id renders again after a reset (agent switch).
	if !tr.Apply(&api.Snapshot{ID: 9, Transcript: "v1 again"}) {
		t.Errorf("Apply() after Reset = false, want true")
	}
}
