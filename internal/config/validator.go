package config

import "fmt"

// Validate checks a fully-defaulted Config for fields that must never be
// empty once loading is done. Called by Load immediately after merging
// defaults, never deferred to first use.
func Validate(cfg *Config) error {
	if cfg.Daemon.SocketPath == "" {
		return &ValidationError{Field: "daemon.socket_path", Err: ErrMissingRequiredField}
	}
	if cfg.LLM.BaseURL == "" {
		return &ValidationError{Field: "llm.base_url", Err: ErrMissingRequiredField}
	}
	if cfg.LLM.MaxRetries < 0 {
		return &ValidationError{Field: "llm.max_retries", Err: fmt.Errorf("must be >= 0, got %d", cfg.LLM.MaxRetries)}
	}
	if cfg.Paths.PolicyFile == "" {
		return &ValidationError{Field: "paths.policy_file", Err: ErrMissingRequiredField}
	}
	if cfg.Paths.ChangeLogDB == "" {
		return &ValidationError{Field: "paths.change_log_db", Err: ErrMissingRequiredField}
	}
	if cfg.Paths.DecisionJournal == "" {
		return &ValidationError{Field: "paths.decision_journal", Err: ErrMissingRequiredField}
	}
	if cfg.Daemon.MaxIterations <= 0 {
		return &ValidationError{Field: "daemon.max_iterations", Err: fmt.Errorf("must be > 0, got %d", cfg.Daemon.MaxIterations)}
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "logging.level", Err: fmt.Errorf("unknown level %q", cfg.Logging.Level)}
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return &ValidationError{Field: "logging.format", Err: fmt.Errorf("unknown format %q", cfg.Logging.Format)}
	}
	return nil
}
