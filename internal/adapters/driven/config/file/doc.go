// Package file stores membridge settings in a TOML file, by default
// ~/.membridge/config.toml. Keys such as "archive.root" map to tables:
//
//	[archive]
//	root = "~/memory"
package file
