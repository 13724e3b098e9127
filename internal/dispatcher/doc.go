// Package dispatcher maps a submitted command line to one of a fixed set
// of built-in commands and runs it against the display.
//
// A line is split once on whitespace: the first token names the command
// and everything after the separating whitespace is passed verbatim as
// the argument text. Lookup is an exact, case-sensitive match against a
// Table that is populated when it is constructed and never changes.
//
// # Built-in commands
//
//	echo <text>   print text and a newline; nothing when text is empty
//	clear         clear the display
//	help          list the commands
//	about         print the system name and version
//
// An unknown name prints a one-line notice. An empty line prints nothing.
// Handlers are total; a panicking handler is recovered and reported on
// the display so the console stays responsive.
package dispatcher
