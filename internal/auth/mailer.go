package auth

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Sender delivers a login link to an email address.
type Sender interface {
	SendMagicLink(email, token string) (string, error)
	SendCLIMagicLink(email, token string) (string, error)
}

// Mailer sends magic link emails over SMTP.
type Mailer struct {
	config   Config
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a mailer with the given config.
func NewMailer(config Config) *Mailer {
	return &Mailer{config: config, sendMail: smtp.SendMail}
}

// SendMagicLink sends a web login link, or logs it in dev mode.
// Returns the link URL.
func (m *Mailer) SendMagicLink(email, token string) (string, error) {
	return m.send(email, "/auth/verify", token,
		"Gardet: enlace de acceso",
		"Haz clic en el enlace para entrar en Gardet:",
	)
}

// SendCLIMagicLink sends a link that finishes at /cli/auth/verify.
func (m *Mailer) SendCLIMagicLink(email, token string) (string, error) {
	return m.send(email, "/cli/auth/verify", token,
		"Gardet: acceso desde la terminal",
		"Haz clic en el enlace para autorizar la terminal de Gardet:",
	)
}

func (m *Mailer) send(email, path, token, subject, intro string) (string, error) {
	link := fmt.Sprintf("%s%s?token=%s", strings.TrimRight(m.config.BaseURL, "/"), path, token)

	if m.config.DevMode || !m.config.MailConfigured() {
		slog.Info("magic link", "email", email, "link", link)
		return link, nil
	}

	body := fmt.Sprintf(
		"%s\n\n%s\n\nEl enlace caduca en 15 minutos y solo se puede usar una vez.",
		intro, link,
	)

	msg := buildEmail(m.config.SMTPFrom, email, subject, body)
	addr := fmt.Sprintf("%s:%s", m.config.SMTPHost, m.config.SMTPPort)
	auth := smtp.PlainAuth("", m.config.SMTPUser, m.config.SMTPPass, m.config.SMTPHost)

	if err := m.sendMail(addr, auth, m.config.SMTPFrom, []string{email}, msg); err != nil {
		return "", fmt.Errorf("sending email: %w", err)
	}

	return link, nil
}

func buildEmail(from, to, subject, body string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
