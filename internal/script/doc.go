// Package script drives a console from Lua automation scripts.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. The runner adds these globals:
//
//	type(text)          type each character as make/break scancodes
//	key(name)           press a named key: "enter", "backspace", "ctrl+l", ...
//	scancode(b, ...)    feed raw scancode bytes
//	row(n)              text of display row n (0-based), trailing blanks trimmed
//	cursor()            display cursor column and row
//	line()              the pending input line
//	screen()            the whole display, one line per row
//	expect_row(n, s)    fail the script unless row(n) == s
//	expect_line(s)      fail the script unless line() == s
//	wait(ms)            pause, honoring cancellation
//
// print output goes to the runner's logger.
package script
