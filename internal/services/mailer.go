package services

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}

// LogMailer writes recovery links to the process log. Used when SMTP is not
// configured.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(_ context.Context, to, link string) error {
	log.Printf("mail: password reset for %s: %s", to, link)
	return nil
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, buildResetMessage(m.from, to, link)); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

func buildResetMessage(from, to, link string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: Redefinir senha - PulseOn\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("Recebemos um pedido para redefinir a sua senha.\r\n\r\n")
	b.WriteString("Use o link abaixo para escolher uma nova senha:\r\n")
	b.WriteString(link + "\r\n\r\n")
	b.WriteString("Se você não fez este pedido, ignore este email.\r\n")
	return []byte(b.String())
}
