// Package config is the daemon's ambient configuration layer: where annad
// reads its socket/listen address, the LLM host addresses, and the on-disk
// paths for the policy document, change log, and decision journal. It is
// deliberately separate from pkg/policy (the operator-tunable rule/weights
// document) — this package is infrastructure wiring, not product behavior.
//
// Shaped after tarsy's pkg/config/loader.go: a single YAML file, environment
// variable expansion, defaults merged in with dario.cat/mergo, and hard
// validation before the daemon starts serving.
package config

// Config is the top-level daemon configuration, loaded from one YAML file.
type Config struct {
	Daemon  DaemonConfig  `yaml:"daemon"`
	LLM     LLMConfig     `yaml:"llm"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
}

// DaemonConfig controls how annad exposes itself to annactl.
type DaemonConfig struct {
	SocketPath        string `yaml:"socket_path"`
	ListenAddr        string `yaml:"listen_addr"`
	MaxIterations     int    `yaml:"max_iterations"`
	ShutdownTimeoutMs int    `yaml:"shutdown_timeout_ms"`
}

// LLMConfig addresses the local model host both the Junior and Senior roles
// call; the wire contract carries the role in the request body (spec.md
// §6), so one base URL serves both.
type LLMConfig struct {
	BaseURL    string `yaml:"base_url"`
	MaxRetries int    `yaml:"max_retries"`
}

// PathsConfig is where the daemon keeps its on-disk state.
type PathsConfig struct {
	PolicyFile      string `yaml:"policy_file"`
	ChangeLogDB     string `yaml:"change_log_db"`
	DecisionJournal string `yaml:"decision_journal"`
}

// LoggingConfig controls the slog handler the daemon builds at startup.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}
