// Package mail delivers contact form notifications to the site owner.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gcbaptista/go-portfolio/model"
	"github.com/gcbaptista/go-portfolio/services"
)

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // defaults to Username
	To       string
}

// Enabled reports whether enough is configured to send mail.
func (c Config) Enabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != "" && c.To != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends one plain-text e-mail per contact message.
type SMTPNotifier struct {
	cfg    Config
	send   sendFunc
	logger *zap.Logger
}

// NewSMTPNotifier creates a notifier using net/smtp.
func NewSMTPNotifier(cfg Config, logger *zap.Logger) *SMTPNotifier {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail, logger: logger.Named("mail")}
}

// NotifyContact e-mails msg to the configured recipient with Reply-To set to the sender.
func (n *SMTPNotifier) NotifyContact(ctx context.Context, msg model.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(n.cfg.Host, fmt.Sprint(n.cfg.Port))
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	body := ComposeMessage(n.cfg.From, n.cfg.To, msg)

	if err := n.send(addr, auth, n.cfg.From, []string{n.cfg.To}, body); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	n.logger.Info("Contact notification sent", zap.String("message_id", msg.ID))
	return nil
}

// ComposeMessage builds the RFC 5322 message for a contact submission.
func ComposeMessage(from, to string, msg model.ContactMessage) []byte {
	subject := "Portfolio Contact: " + sanitizeHeader(msg.Name)
	if msg.Subject != "" {
		subject += " - " + sanitizeHeader(msg.Subject)
	}

	var b strings.Builder
	b.WriteString("To: " + sanitizeHeader(to) + "\r\n")
	b.WriteString("From: " + sanitizeHeader(from) + "\r\n")
	b.WriteString("Reply-To: " + sanitizeHeader(msg.Email) + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + msg.CreatedAt.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("New contact form submission from your portfolio:\r\n\r\n")
	b.WriteString("Name: " + msg.Name + "\r\n")
	b.WriteString("Email: " + msg.Email + "\r\n")
	if msg.Subject != "" {
		b.WriteString("Subject: " + msg.Subject + "\r\n")
	}
	b.WriteString("Message:\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Message, "\r\n", "\n"), "\n", "\r\n"))
	b.WriteString("\r\n\r\n---\r\nSent from your portfolio contact form\r\n")
	return []byte(b.String())
}

// sanitizeHeader strips line breaks so user input cannot inject headers.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

// LogNotifier only logs contact messages. It is used when SMTP is not configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a logging notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("mail")}
}

// NotifyContact logs the message metadata.
func (n *LogNotifier) NotifyContact(_ context.Context, msg model.ContactMessage) error {
	n.logger.Info("SMTP not configured, contact message stored only",
		zap.String("message_id", msg.ID),
		zap.Int("length", len(msg.Message)))
	return nil
}

// New picks the SMTP notifier when configured and the logging one otherwise.
func New(cfg Config, logger *zap.Logger) services.Notifier {
	if cfg.Enabled() {
		return NewSMTPNotifier(cfg, logger)
	}
	return NewLogNotifier(logger)
}
