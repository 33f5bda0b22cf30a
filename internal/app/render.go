package app

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/cursor"
	rcursor "github.com/dshills/caret/internal/renderer/cursor"
	"github.com/dshills/caret/internal/renderer/backend"
	"github.com/dshills/caret/internal/renderer/style"
)

// updateOverflow sizes the scroll bars to the content. The horizontal
// overflow leaves one column for a cursor after the longest line.
func (app *Application) updateOverflow() {
	w, h := app.buf.Extent()
	f := app.frame()
	app.hbar.SetOverflow(w + 1 - f.Width)
	app.vbar.SetOverflow(h - f.Height)
}

// redraw paints the buffer, the cursor and the status row. It runs on the
// event loop goroutine. The bars are sized before the layout pass so that
// scrolling the cursor into view clamps against the current content.
func (app *Application) redraw() {
	app.redrawPending.Store(false)
	app.updateOverflow()
	app.buf.Layout()

	app.mu.Lock()
	width, height, theme := app.width, app.height, app.theme
	app.mu.Unlock()
	editH := max(height-statusRows, 0)

	be := app.backend
	be.Clear()

	// Scroll offsets are fractional; whole cells are shown.
	ox, oy := int(app.hbar.Target()), int(app.vbar.Target())
	sel, hasSel := app.editor.Selection()

	for row := 0; row < editH; row++ {
		for _, g := range app.buf.LineGlyphs(oy + row) {
			st := theme.Resolve(hasSel && sel.Contains(g.Offset), false)
			app.drawGlyph(g, int(g.X)-ox, row, width, st)
		}
	}

	app.drawCursor(ox, oy, width, editH, theme, sel, hasSel)
	app.drawStatus(editH, width, theme)
	be.Show()
}

// drawGlyph draws one cluster at column x. Tabs fill their advance with
// spaces; a wide cluster occupies its first cell.
func (app *Application) drawGlyph(g buffer.Glyph, x, y, width int, st style.Style) {
	if g.Text == "\t" {
		for i := 0; i < int(g.Advance); i++ {
			if cx := x + i; cx >= 0 && cx < width {
				app.backend.SetCell(cx, y, backend.Cell{Rune: ' ', Style: st})
			}
		}
		return
	}
	if x < 0 || x >= width {
		return
	}
	r := []rune(g.Text)
	if len(r) == 0 {
		return
	}
	app.backend.SetCell(x, y, backend.Cell{Rune: r[0], Style: st})
}

// drawCursor places the terminal cursor. A block cursor is also painted
// into the cell so it stays visible while the terminal cursor blinks off.
func (app *Application) drawCursor(ox, oy, width, editH int, theme style.Theme, sel cursor.Selection, hasSel bool) {
	be := app.backend
	cur := app.editor.Cursor()
	r, ok := app.buf.Bounds(cur)
	if !ok || !app.editor.CursorVisible() {
		be.HideCursor()
		return
	}
	x, y := int(r.Left)-ox, int(r.Top)-oy
	if x < 0 || x >= width || y < 0 || y >= editH {
		be.HideCursor()
		return
	}
	be.ShowCursor(x, y)

	if app.editor.Config().Cursor.Style != rcursor.StyleBlock {
		return
	}
	off, _ := cur.Offset()
	ch := ' '
	for _, g := range app.buf.LineGlyphs(oy + y) {
		if g.Offset == off && g.Text != "\t" && g.Text != "\n" {
			ch = []rune(g.Text)[0]
		}
	}
	be.SetCell(x, y, backend.Cell{Rune: ch, Style: theme.Resolve(hasSel && sel.Contains(off), true)})
}

// drawStatus renders "name  line:col  [sel n]  [clip n]  message" into
// the status row, truncated to the screen width.
func (app *Application) drawStatus(row, width int, theme style.Theme) {
	if row < 0 || width <= 0 {
		return
	}
	parts := []string{app.fileName()}
	if cur := app.editor.Cursor(); cur.Kind() != cursor.KindAbsent {
		off, _ := cur.Offset()
		parts = append(parts, app.buf.OffsetToPoint(off).String())
	}
	if sel, ok := app.editor.Selection(); ok && !sel.IsEmpty() {
		parts = append(parts, fmt.Sprintf("sel %d", sel.Len()))
	}
	if clip := app.editor.Clipboard(); clip != "" {
		parts = append(parts, fmt.Sprintf("clip %d", uniseg.GraphemeClusterCount(clip)))
	}
	if msg := app.Status(); msg != "" {
		parts = append(parts, msg)
	}
	text := strings.Join(parts, "  ")

	x := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() && x < width {
		rs := gr.Runes()
		app.backend.SetCell(x, row, backend.Cell{Rune: rs[0], Style: theme.Gutter})
		x += max(gr.Width(), 1)
	}
	for ; x < width; x++ {
		app.backend.SetCell(x, row, backend.Cell{Rune: ' ', Style: theme.Gutter})
	}
}
