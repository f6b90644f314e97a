// Package masking redacts secrets and PII from probe stderr/stdout before it
// is stored on an evidence item or written to the decision journal.
package masking

import "regexp"

// Pattern is an unresolved masking rule: a regex plus its replacement text.
type Pattern struct {
	Name        string
	Regex       string
	Replacement string
	Description string
}

// compiledPattern is a Pattern with its regex pre-compiled.
type compiledPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// builtinPatterns mirrors the secret shapes most likely to leak through a
// shell command's stderr on an Arch host: package manager auth tokens,
// environment variable dumps, SSH/TLS material, cloud credentials that ended
// up in a config file a probe cat'd.
func builtinPatterns() []Pattern {
	return []Pattern{
		{
			Name:        "api_key",
			Regex:       `(?i)(?:api[_-]?key|apikey)["']?\s*[:=]\s*["']?([A-Za-z0-9_\-]{20,})["']?`,
			Replacement: `api_key=[MASKED_API_KEY]`,
			Description: "API keys",
		},
		{
			Name:        "password",
			Regex:       `(?i)(?:password|pwd|passwd)["']?\s*[:=]\s*["']?([^"'\s\n]{6,})["']?`,
			Replacement: `password=[MASKED_PASSWORD]`,
			Description: "Passwords",
		},
		{
			Name:        "token",
			Regex:       `(?i)(?:token|bearer|jwt)["']?\s*[:=]\s*["']?([A-Za-z0-9_\-.]{20,})["']?`,
			Replacement: `token=[MASKED_TOKEN]`,
			Description: "Access tokens",
		},
		{
			Name:        "private_key",
			Regex:       `(?s)-----BEGIN [A-Z ]+PRIVATE KEY-----.*?-----END [A-Z ]+PRIVATE KEY-----`,
			Replacement: `[MASKED_PRIVATE_KEY]`,
			Description: "PEM private key blocks",
		},
		{
			Name:        "ssh_key",
			Regex:       `ssh-(?:rsa|dss|ed25519|ecdsa)\s+[A-Za-z0-9+/=]+`,
			Replacement: `[MASKED_SSH_KEY]`,
			Description: "SSH public keys",
		},
		{
			Name:        "aws_access_key",
			Regex:       `AKIA[A-Z0-9]{16}`,
			Replacement: `[MASKED_AWS_KEY]`,
			Description: "AWS access key ids",
		},
		{
			Name:        "github_token",
			Regex:       `gh[ps]_[A-Za-z0-9_]{36,255}`,
			Replacement: `[MASKED_GITHUB_TOKEN]`,
			Description: "GitHub personal access tokens",
		},
		{
			Name:        "email",
			Regex:       `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9]+(?:[.-][A-Za-z0-9]+)*\.[A-Za-z]{2,63}\b`,
			Replacement: `[MASKED_EMAIL]`,
			Description: "Email addresses",
		},
	}
}
