package config

// Default returns the configuration annad runs with when no config file is
// present or when a loaded file leaves fields unset.
func Default() *Config {
	return &Config{
		Daemon: DaemonConfig{
			SocketPath:        "/run/anna/annad.sock",
			ListenAddr:        "127.0.0.1:8787",
			MaxIterations:     8,
			ShutdownTimeoutMs: 5000,
		},
		LLM: LLMConfig{
			BaseURL:    "http://127.0.0.1:11434",
			MaxRetries: 2,
		},
		Paths: PathsConfig{
			PolicyFile:      "/etc/anna/policy.toml",
			ChangeLogDB:     "/var/lib/anna/changelog.sqlite",
			DecisionJournal: "/var/lib/anna/decisions.jsonl",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
