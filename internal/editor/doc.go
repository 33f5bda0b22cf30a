// Package editor implements the interaction controller for one editable
// text region.
//
// An Editor turns pointer, keyboard and character events into cursor
// movement, selection, clipboard operations and scrolling. It owns no text:
// content, cursor and selection live in a Buffer, scroll state in two
// viewport.Bar values, and visible geometry comes from a Geometry.
//
// Every handler runs under one mutex. Scrolling the cursor into view must
// wait for layout, so handlers queue a one-shot callback with
// Buffer.OnNextLayout. If that callback fires while a handler is running,
// whether synchronously from the same call path or from another goroutine,
// it is deferred and executed by the running handler before the lock is
// released.
//
// Change notifications are delivered after the lock is released. A
// notification triggered from inside an observer is dropped.
package editor
