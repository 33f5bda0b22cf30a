package viewport

// DefaultMargin is the breathing room kept between cursor and window edge.
const DefaultMargin float32 = 8

// Bar is one axis's scroll state.
type Bar interface {
	// Target is the scroll offset the bar is heading to.
	Target() float32
	// Overflow is the largest meaningful offset.
	Overflow() float32
	ScrollBy(delta float32)
	ScrollTo(target float32)
}

// Input is one reconciliation request.
type Input struct {
	// Bounds is the cursor's box in layout space.
	Bounds Rect
	// Frame is the visible window.
	Frame Frame
	// Horizontal and Vertical are the axis bars. A nil bar skips its axis.
	Horizontal Bar
	Vertical   Bar
}

// AxisResult reports what happened on one axis.
type AxisResult struct {
	// Current is the bar's target before reconciliation.
	Current float32
	// Target is the clamped target that would bring the cursor into view.
	// It equals Current when no scroll was needed.
	Target float32
	// Needed is true when the cursor was clipped on this axis.
	Needed bool
	// Pushed is true when Target was sent to the bar.
	Pushed bool
}

// Result reports both axes.
type Result struct {
	Horizontal AxisResult
	Vertical   AxisResult
}

// Pushed returns true if either axis scrolled.
func (r Result) Pushed() bool {
	return r.Horizontal.Pushed || r.Vertical.Pushed
}

// Reconciler computes scroll targets that bring the cursor into view.
type Reconciler struct {
	// Margin is the space kept between cursor and window edge. Negative
	// values are treated as zero.
	Margin float32
	// Tolerance is the ULP distance under which targets count as equal.
	Tolerance uint32
}

// NewReconciler returns a Reconciler with the default margin and tolerance.
func NewReconciler() Reconciler {
	return Reconciler{Margin: DefaultMargin, Tolerance: DefaultTolerance}
}

// Reconcile scrolls each axis at most once.
func (r Reconciler) Reconcile(in Input) Result {
	local := in.Frame.Local(in.Bounds)
	return Result{
		Horizontal: r.axis(local.Left, local.Right, in.Frame.Width, in.Horizontal),
		Vertical:   r.axis(local.Top, local.Bottom, in.Frame.Height, in.Vertical),
	}
}

func (r Reconciler) axis(lead, trail, size float32, bar Bar) AxisResult {
	if bar == nil {
		return AxisResult{}
	}

	current := bar.Target()
	res := AxisResult{Current: current, Target: current}
	margin := r.margin(size, trail-lead)

	var target float32
	switch {
	case lead-current-margin < 0:
		target = lead - margin
	case trail-current+margin > size:
		// A cursor taller than the window keeps its leading edge visible.
		target = min(trail+margin-size, lead-margin)
	default:
		return res
	}

	res.Needed = true
	res.Target = clamp(target, 0, bar.Overflow())
	if NearlyEqual(res.Target, current, r.Tolerance) {
		return res
	}
	bar.ScrollTo(res.Target)
	res.Pushed = true
	return res
}

// margin returns the configured margin, shrunk to split the leftover space
// evenly when the window cannot hold the cursor plus a margin on each side.
func (r Reconciler) margin(size, extent float32) float32 {
	m := max(r.Margin, 0)
	if 2*m+extent > size {
		m = max((size-extent)/2, 0)
	}
	return m
}

func clamp(v, lo, hi float32) float32 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
