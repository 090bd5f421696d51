// Package auth provides authentication via magic link email, cookie
// sessions and API keys.
package auth

// Config holds authentication configuration. It is filled in by the config
// package at startup.
type Config struct {
	AdminEmail string
	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	SMTPFrom   string
	DevMode    bool
	BaseURL    string // e.g. http://localhost:8080
}

// MailConfigured reports whether an SMTP host is set.
func (c Config) MailConfigured() bool {
	return c.SMTPHost != ""
}
