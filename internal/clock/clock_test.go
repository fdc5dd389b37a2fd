package clock

import (
	"testing"
	"time"
)

// fakeSync реализует SyncState для тестов.
type fakeSync struct {
	last time.Time
	ok   bool
}

func (f *fakeSync) LastConfirmed() (time.Time, bool) { return f.last, f.ok }

func TestStatusString(t *testing.T) {
	tests := []struct {
		st   Status
		want string
	}{
		{StatusNotSet, "not_set"},
		{StatusNeedsSync, "needs_sync"},
		{StatusSet, "set"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.st, got, tt.want)
		}
	}
}

func TestStatusIsSet(t *testing.T) {
	if !StatusSet.IsSet() || !StatusNeedsSync.IsSet() {
		t.Error("Set и NeedsSync должны кодировать дату")
	}
	if StatusNotSet.IsSet() {
		t.Error("NotSet не должен кодировать дату")
	}
}

func TestSystemStatus(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no tracker means set", func(t *testing.T) {
		s := NewSystem(time.UTC, nil, 0)
		if got := s.Status(); got != StatusSet {
			t.Errorf("Status() = %v, want set", got)
		}
	})

	t.Run("never confirmed", func(t *testing.T) {
		s := NewSystem(time.UTC, &fakeSync{ok: false}, 0)
		s.now = func() time.Time { return base }
		if got := s.Status(); got != StatusNotSet {
			t.Errorf("Status() = %v, want not_set", got)
		}
	})

	t.Run("recently confirmed", func(t *testing.T) {
		s := NewSystem(time.UTC, &fakeSync{last: base.Add(-time.Hour), ok: true}, 0)
		s.now = func() time.Time { return base }
		if got := s.Status(); got != StatusSet {
			t.Errorf("Status() = %v, want set", got)
		}
	})

	t.Run("confirmation expired", func(t *testing.T) {
		s := NewSystem(time.UTC, &fakeSync{last: base.Add(-13 * time.Hour), ok: true}, 0)
		s.now = func() time.Time { return base }
		if got := s.Status(); got != StatusNeedsSync {
			t.Errorf("Status() = %v, want needs_sync", got)
		}
	})

	t.Run("custom stale_after", func(t *testing.T) {
		s := NewSystem(time.UTC, &fakeSync{last: base.Add(-2 * time.Minute), ok: true}, time.Minute)
		s.now = func() time.Time { return base }
		if got := s.Status(); got != StatusNeedsSync {
			t.Errorf("Status() = %v, want needs_sync", got)
		}
	})
}

func TestSystemToLocal(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	s := NewSystem(loc, nil, 0)
	utc := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	got := s.ToLocal(utc)
	if got.Hour() != 13 {
		t.Errorf("ToLocal: hour = %d, want 13", got.Hour())
	}
	if !got.Equal(utc) {
		t.Error("ToLocal должен менять только представление, не момент времени")
	}
}

func TestWaitSecondBoundary(t *testing.T) {
	if testing.Short() {
		t.Skip("ожидание границы секунды — до 1 секунды реального времени")
	}
	s := NewSystem(time.UTC, nil, 0)
	s.WaitSecondBoundary()
	now := time.Now()
	off := now.Sub(now.Truncate(time.Second))
	// сразу после возврата мы в начале секунды
	if off > 20*time.Millisecond {
		t.Errorf("после WaitSecondBoundary смещение от границы %v", off)
	}
}
