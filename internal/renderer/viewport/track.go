package viewport

import "sync"

// Track is an in-memory Bar with a settable overflow.
type Track struct {
	mu       sync.Mutex
	target   float32
	overflow float32
	pushes   int
	onScroll func(target float32)
}

// NewTrack creates a Track with the given overflow.
func NewTrack(overflow float32) *Track {
	t := &Track{}
	t.SetOverflow(overflow)
	return t
}

// OnScroll sets a callback invoked after the target changes.
func (t *Track) OnScroll(fn func(target float32)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onScroll = fn
}

// Target implements Bar.
func (t *Track) Target() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target
}

// Overflow implements Bar.
func (t *Track) Overflow() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.overflow
}

// SetOverflow changes the overflow, clamping the current target into range.
func (t *Track) SetOverflow(overflow float32) {
	if overflow < 0 || overflow != overflow {
		overflow = 0
	}
	t.mu.Lock()
	t.overflow = overflow
	t.target = clamp(t.target, 0, overflow)
	t.mu.Unlock()
}

// ScrollBy implements Bar.
func (t *Track) ScrollBy(delta float32) {
	t.mu.Lock()
	target := t.target + delta
	t.mu.Unlock()
	t.ScrollTo(target)
}

// ScrollTo implements Bar.
func (t *Track) ScrollTo(target float32) {
	t.mu.Lock()
	t.target = clamp(target, 0, t.overflow)
	t.pushes++
	fn := t.onScroll
	v := t.target
	t.mu.Unlock()

	if fn != nil {
		fn(v)
	}
}

// Pushes returns how many times the target was set.
func (t *Track) Pushes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pushes
}
