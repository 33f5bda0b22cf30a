// Package viewport keeps the text cursor inside the visible window.
//
// The Reconciler compares the cursor's laid-out bounds against the visible
// frame and, per axis, computes a new scroll target that brings the cursor
// back inside with a margin of breathing room. Targets are clamped to the
// axis overflow and pushed to the axis Bar only when they differ from the
// current target by more than a few float32 steps, so a redundant push
// never invalidates layout again.
//
// Track is an in-memory Bar used by the terminal demo and by tests.
package viewport
