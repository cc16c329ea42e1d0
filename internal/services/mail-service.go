package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const (
	smtpDialTimeout = 8 * time.Second
	smtpDeadline    = 15 * time.Second
)

// MailService submits the verification code over authenticated SMTP
// with STARTTLS. The send is synchronous in the request path; the
// connection deadline bounds how long a slow server can hold it.
type MailService struct {
	host     string
	port     string
	user     string
	pass     string
	fromName string
}

func NewMailService(host, port, user, pass, fromName string) *MailService {
	return &MailService{
		host:     host,
		port:     port,
		user:     user,
		pass:     pass,
		fromName: fromName,
	}
}

func (s *MailService) SendCode(ctx context.Context, to string, name string, code string) error {
	if s.user == "" || s.pass == "" {
		return ErrMailNotConfigured
	}

	if name == "" {
		name = defaultDisplayName
	}

	subject := "StarK - registration code"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour StarK verification code:\n\n%s\n\nIt is valid for %d minutes.\n\nIf you did not request this, please ignore it.\n- %s",
		name, code, int(CodeTTL.Minutes()), s.fromName,
	)

	fromHeader := fmt.Sprintf("%s <%s>", s.fromName, s.user)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	log.Printf("[MAIL] smtp sending to=%s via=%s", to, net.JoinHostPort(s.host, s.port))

	if err := s.sendSMTPWithTimeout(ctx, to, []byte(msg)); err != nil {
		return err
	}

	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (s *MailService) sendSMTPWithTimeout(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.host, s.port)

	conn, err := net.DialTimeout("tcp", addr, smtpDialTimeout)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(smtpDeadline)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(s.user); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
