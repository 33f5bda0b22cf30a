package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/input/key"
)

// Editor is the command surface scripts drive.
type Editor interface {
	Copy()
	Cut()
	Paste()
	SelectAll()

	MoveLeft(extend bool)
	MoveRight(extend bool)
	MoveUp(extend bool)
	MoveDown(extend bool)
	MoveHome(extend bool)
	MoveEnd(extend bool)

	OnNavigationKey(ev key.Event) bool
	OnNavigationKeyUp(ev key.Event)
	OnCharacter(ev key.CharEvent)
	InsertText(s string)

	Text() string
	SetText(s string) bool
	Clipboard() string
	SetClipboard(s string)
	Cursor() cursor.Cursor
	Selection() (cursor.Selection, bool)
}

// BindEditor installs the global "editor" table.
func BindEditor(s *State, ed Editor) {
	move := func(fn func(bool)) lua.LGFunction {
		return func(L *lua.LState) int {
			fn(L.OptBool(1, false))
			return 0
		}
	}
	do := func(fn func()) lua.LGFunction {
		return func(L *lua.LState) int {
			fn()
			return 0
		}
	}

	s.RegisterModule("editor", map[string]lua.LGFunction{
		"copy":       do(ed.Copy),
		"cut":        do(ed.Cut),
		"paste":      do(ed.Paste),
		"select_all": do(ed.SelectAll),

		"move_left":  move(ed.MoveLeft),
		"move_right": move(ed.MoveRight),
		"move_up":    move(ed.MoveUp),
		"move_down":  move(ed.MoveDown),
		"line_start": move(ed.MoveHome),
		"line_end":   move(ed.MoveEnd),

		"insert": func(L *lua.LState) int {
			ed.InsertText(L.CheckString(1))
			return 0
		},
		"type": func(L *lua.LState) int {
			for _, r := range L.CheckString(1) {
				ed.OnCharacter(key.Char(r))
			}
			return 0
		},
		"press": func(L *lua.LState) int {
			L.Push(lua.LBool(press(ed, L.CheckString(1), L.OptString(2, ""))))
			return 1
		},

		"text": func(L *lua.LState) int {
			L.Push(lua.LString(ed.Text()))
			return 1
		},
		"set_text": func(L *lua.LState) int {
			L.Push(lua.LBool(ed.SetText(L.CheckString(1))))
			return 1
		},
		"clipboard": func(L *lua.LState) int {
			L.Push(lua.LString(ed.Clipboard()))
			return 1
		},
		"set_clipboard": func(L *lua.LState) int {
			ed.SetClipboard(L.CheckString(1))
			return 0
		},
		"cursor": func(L *lua.LState) int {
			c := ed.Cursor()
			if off, ok := c.Offset(); ok {
				L.Push(lua.LNumber(off))
			} else if c.Kind() == cursor.KindEmpty {
				L.Push(lua.LNumber(0))
			} else {
				L.Push(lua.LNil)
			}
			return 1
		},
		"selection": func(L *lua.LState) int {
			sel, ok := ed.Selection()
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(lua.LNumber(sel.Start))
			L.Push(lua.LNumber(sel.End))
			return 2
		},
	})
}

// press sends a named key. mods is a list such as "shift" or "ctrl+shift".
// Navigation keys are pressed and released at once so no repeat starts.
func press(ed Editor, name, mods string) bool {
	ev := key.Event{Key: key.FromName(name), Modifiers: parseModifiers(mods)}
	if ev.Key == key.KeyNone {
		return false
	}
	if ev.Key.IsNavigation() {
		ed.OnNavigationKey(ev)
		ed.OnNavigationKeyUp(ev)
		return true
	}
	ce, ok := key.FromEvent(ev)
	if !ok {
		return false
	}
	ed.OnCharacter(ce)
	return true
}

func parseModifiers(s string) key.Modifier {
	var m key.Modifier
	for _, part := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '+' || r == '-' || r == ' ' || r == ','
	}) {
		switch part {
		case "shift":
			m |= key.ModShift
		case "ctrl", "control":
			m |= key.ModCtrl
		case "alt", "option":
			m |= key.ModAlt
		case "meta", "cmd", "super":
			m |= key.ModMeta
		}
	}
	return m
}
