package config

import "os"

// ExpandEnv expands ${VAR} and $VAR references in raw YAML bytes using the
// standard library's shell-style expansion, before the content ever reaches
// the YAML parser. Missing variables expand to empty string; validation
// catches any required field that ends up empty.
func ExpandEnv(data []byte) []byte {
	return []byte(os.ExpandEnv(string(data)))
}
