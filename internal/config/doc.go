// Package config loads settings for the hosted console simulator.
//
// Settings come from three places, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. OXCONSOLE_* environment variables
//
// The result is validated before use. The console core itself takes no
// configuration file; everything here maps onto constructor options.
//
// Example file:
//
//	[display]
//	columns = 80
//	rows = 25
//	foreground = "lightgrey"
//	background = "black"
//
//	[console]
//	prompt = "> "
//	banner = "OxOS Command Line"
//	max_line = 0
//
//	[log]
//	level = "info"
//	file = ""
package config
