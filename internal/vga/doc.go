// Package vga implements the console's display surface: a fixed grid of
// character cells in VGA text-mode layout with a single write cursor.
//
// The Surface is the only component that mutates the grid. It renders
// through a Target, which is either the in-memory Buffer (tests, hosted
// simulator) or the memory-mapped text buffer on bare metal.
//
// Usage:
//
//	buf := vga.NewBuffer(vga.DefaultColumns, vga.DefaultRows)
//	s := vga.NewSurface(buf)
//	s.WriteString("hello\n")
//	s.EraseLast()
//	s.Clear()
package vga
