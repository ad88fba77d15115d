// Package file provides file-based implementations of driven ports.
//
// ConfigStore reads and writes config.toml in the data directory using
// github.com/pelletier/go-toml/v2. Nested tables are exposed as dotted
// keys, so
//
//	[index]
//	backend = "bleve"
//
// is read as "index.backend".
package file
