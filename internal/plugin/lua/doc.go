// Package lua runs Lua scripts against an editor.
//
// A State is a gopher-lua runtime with only the base, table, string and
// math libraries opened. Each execution runs under a deadline. BindEditor
// installs an "editor" table of commands:
//
//	editor.select_all()
//	editor.copy()
//	editor.move_left(true)   -- extend the selection
//	editor.press("end", "shift")
//	editor.insert("text")
//	local start, stop = editor.selection()
//
// State is not safe for use from multiple goroutines at once; its methods
// serialise on an internal mutex.
package lua
