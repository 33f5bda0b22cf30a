package mouse

import "time"

// DefaultDoubleClickTime is the maximum gap between presses of one sequence.
const DefaultDoubleClickTime = 300 * time.Millisecond

// Granularity is the unit a click gesture selects.
type Granularity uint8

const (
	// GranularityChar places the cursor (single click).
	GranularityChar Granularity = 1
	// GranularityWord selects a word (double click).
	GranularityWord Granularity = 2
	// GranularityLine selects a line (triple click).
	GranularityLine Granularity = 3
)

// String returns a string representation of the granularity.
func (g Granularity) String() string {
	switch g {
	case GranularityChar:
		return "char"
	case GranularityWord:
		return "word"
	case GranularityLine:
		return "line"
	default:
		return "unknown"
	}
}

// ClickTracker tracks press timing for double/triple click detection.
// The zero value is not usable; create trackers with NewClickTracker.
type ClickTracker struct {
	maxTime time.Duration

	lastTime  time.Time
	lastCount int
}

// NewClickTracker creates a click tracker with the given double-click window.
// A non-positive window falls back to DefaultDoubleClickTime.
func NewClickTracker(maxTime time.Duration) *ClickTracker {
	if maxTime <= 0 {
		maxTime = DefaultDoubleClickTime
	}
	return &ClickTracker{maxTime: maxTime}
}

// Record records a press at the given time and returns the click count
// (1, 2, or 3). The count wraps back to 1 after 3: a fourth rapid press
// restarts the cycle.
func (t *ClickTracker) Record(now time.Time) int {
	if now.IsZero() {
		now = time.Now()
	}

	if t.isPartOfSequence(now) {
		t.lastCount++
		if t.lastCount > 3 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}

	t.lastTime = now
	return t.lastCount
}

// Classify records a press and returns its selection granularity.
func (t *ClickTracker) Classify(now time.Time) Granularity {
	return Granularity(t.Record(now))
}

// isPartOfSequence checks if a press continues the current sequence.
func (t *ClickTracker) isPartOfSequence(now time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}

	// Clock skew: a press timestamped before the previous one starts over.
	elapsed := now.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}
	return true
}

// Count returns the last recorded click count, or 0 before any press.
func (t *ClickTracker) Count() int {
	return t.lastCount
}

// Reset clears the click tracking state.
func (t *ClickTracker) Reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
}

// MaxTime returns the double-click window.
func (t *ClickTracker) MaxTime() time.Duration {
	return t.maxTime
}

// SetMaxTime changes the double-click window. Non-positive values are ignored.
func (t *ClickTracker) SetMaxTime(d time.Duration) {
	if d > 0 {
		t.maxTime = d
	}
}
