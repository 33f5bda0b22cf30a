package mouse

import (
	"testing"
	"time"

	"github.com/dshills/caret/internal/input/key"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "none"},
		{ActionPress, "press"},
		{ActionRelease, "release"},
		{ActionMove, "move"},
		{ActionDrag, "drag"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.action.String(); got != tt.expected {
				t.Errorf("Action.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 10, Y: 20}
	q := Point{X: 2.5, Y: 5}

	if got := p.Add(q); got != (Point{X: 12.5, Y: 25}) {
		t.Errorf("Add = %v", got)
	}
	if got := p.Sub(q); got != (Point{X: 7.5, Y: 15}) {
		t.Errorf("Sub = %v", got)
	}
}

func TestEventExtend(t *testing.T) {
	if (Event{Modifiers: key.ModShift}).Extend() != true {
		t.Error("Shift press should extend")
	}
	if (Event{Modifiers: key.ModCtrl}).Extend() {
		t.Error("Ctrl press should not extend")
	}
}

func TestClickTrackerSequence(t *testing.T) {
	tracker := NewClickTracker(300 * time.Millisecond)
	now := time.Now()

	want := []int{1, 2, 3}
	for i, w := range want {
		got := tracker.Record(now.Add(time.Duration(i) * 100 * time.Millisecond))
		if got != w {
			t.Fatalf("click %d count = %d, want %d", i+1, got, w)
		}
	}
}

func TestClickTrackerQuadClickWraps(t *testing.T) {
	tracker := NewClickTracker(300 * time.Millisecond)
	now := time.Now()

	tracker.Record(now)
	tracker.Record(now.Add(100 * time.Millisecond))
	tracker.Record(now.Add(200 * time.Millisecond))
	count := tracker.Record(now.Add(300 * time.Millisecond))

	// A fourth rapid click restarts the cycle rather than escalating.
	if count != 1 {
		t.Errorf("Quad click count = %d, want 1 (wrapped)", count)
	}

	if got := tracker.Record(now.Add(400 * time.Millisecond)); got != 2 {
		t.Errorf("Fifth click count = %d, want 2", got)
	}
}

func TestClickTrackerCountStaysInRange(t *testing.T) {
	tracker := NewClickTracker(300 * time.Millisecond)
	now := time.Now()

	gaps := []time.Duration{0, 50, 120, 301, 10, 10, 10, 10, 299, 300, 500, 1, 1}
	for i, gap := range gaps {
		now = now.Add(gap * time.Millisecond)
		count := tracker.Record(now)
		if count < 1 || count > 3 {
			t.Fatalf("press %d: count %d outside {1,2,3}", i, count)
		}
	}
}

func TestClickTrackerTimeoutResets(t *testing.T) {
	tests := []struct {
		name  string
		prior int
	}{
		{"after single", 1},
		{"after double", 2},
		{"after triple", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewClickTracker(300 * time.Millisecond)
			now := time.Now()
			for i := 0; i < tt.prior; i++ {
				now = now.Add(50 * time.Millisecond)
				tracker.Record(now)
			}
			if got := tracker.Record(now.Add(301 * time.Millisecond)); got != 1 {
				t.Errorf("click after 301ms = %d, want 1", got)
			}
		})
	}
}

func TestClickTrackerBoundaryIsInclusive(t *testing.T) {
	tracker := NewClickTracker(300 * time.Millisecond)
	now := time.Now()

	tracker.Record(now)
	if got := tracker.Record(now.Add(300 * time.Millisecond)); got != 2 {
		t.Errorf("click exactly 300ms later = %d, want 2", got)
	}
}

func TestClickTrackerClockSkew(t *testing.T) {
	tracker := NewClickTracker(300 * time.Millisecond)
	now := time.Now()

	tracker.Record(now)
	if got := tracker.Record(now.Add(-10 * time.Millisecond)); got != 1 {
		t.Errorf("click before previous = %d, want 1", got)
	}
}

func TestClickTrackerZeroTimestamp(t *testing.T) {
	tracker := NewClickTracker(0)

	if got := tracker.Record(time.Time{}); got != 1 {
		t.Errorf("first click with zero timestamp = %d, want 1", got)
	}
}

func TestClickTrackerReset(t *testing.T) {
	tracker := NewClickTracker(300 * time.Millisecond)
	now := time.Now()

	tracker.Record(now)
	tracker.Record(now.Add(10 * time.Millisecond))
	tracker.Reset()

	if tracker.Count() != 0 {
		t.Errorf("Count() after Reset = %d, want 0", tracker.Count())
	}
	if got := tracker.Record(now.Add(20 * time.Millisecond)); got != 1 {
		t.Errorf("click after Reset = %d, want 1", got)
	}
}

func TestClassify(t *testing.T) {
	tracker := NewClickTracker(300 * time.Millisecond)
	now := time.Now()

	want := []Granularity{GranularityChar, GranularityWord, GranularityLine, GranularityChar}
	for i, w := range want {
		if got := tracker.Classify(now.Add(time.Duration(i) * time.Millisecond)); got != w {
			t.Errorf("press %d granularity = %v, want %v", i+1, got, w)
		}
	}
}

func TestGranularityString(t *testing.T) {
	tests := []struct {
		g    Granularity
		want string
	}{
		{GranularityChar, "char"},
		{GranularityWord, "word"},
		{GranularityLine, "line"},
		{Granularity(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.g.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestClickTrackerSetMaxTime(t *testing.T) {
	ct := NewClickTracker(0)
	if ct.MaxTime() != DefaultDoubleClickTime {
		t.Fatalf("MaxTime = %v", ct.MaxTime())
	}
	ct.SetMaxTime(500 * time.Millisecond)
	ct.SetMaxTime(-1)
	if ct.MaxTime() != 500*time.Millisecond {
		t.Fatalf("MaxTime = %v, want 500ms", ct.MaxTime())
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ct.Record(base)
	if got := ct.Record(base.Add(450 * time.Millisecond)); got != 2 {
		t.Errorf("count = %d, want 2 inside widened window", got)
	}
}
