// Package mail sends verification and welcome notifications over SMTP.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Config captures the SMTP settings plus the public base URL used to build
// verification links.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
	Sender   string
	AppURL   string
}

// SMTPMailer delivers mail synchronously through a gomail dialer. Callers
// treat every send as best-effort.
type SMTPMailer struct {
	cfg    Config
	dialer *gomail.Dialer
	logger zerolog.Logger
}

func NewSMTPMailer(cfg Config, logger zerolog.Logger) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.UseTLS && cfg.Port == 465
	return &SMTPMailer{cfg: cfg, dialer: d, logger: logger}
}

const verificationBody = `<h2>Welcome to AltarMaker!</h2>
<p>Thank you for registering. Please click the button below to verify your email address:</p>
<p><a href="%[1]s" style="background-color:#4CAF50;color:white;padding:10px 20px;text-align:center;text-decoration:none;display:inline-block;border-radius:4px;">Verify Email</a></p>
<p>Or copy and paste this link into your browser:<br>%[1]s</p>
<p>This link will expire in 24 hours.</p>
<p>If you didn't create an account, please ignore this email.</p>`

const welcomeBody = `<h1>Welcome to AltarMaker, %s!</h1>
<p>Your email has been verified and your account is ready.</p>
<p>With AltarMaker you can design and customize altars, drag and resize every
element, and save your creations anytime.</p>
<p><a href="%s">Start creating</a></p>
<p>Happy creating,<br>The AltarMaker Team</p>`

func (m *SMTPMailer) SendVerification(ctx context.Context, recipient, token string) error {
	if m.cfg.Host == "" || m.cfg.AppURL == "" {
		return fmt.Errorf("mail configuration incomplete")
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", m.cfg.AppURL, token)
	msg := m.newMessage(recipient, "Verify Your Email Address", fmt.Sprintf(verificationBody, link))

	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	m.logger.Info().Str("recipient", recipient).Msg("verification mail sent")
	return nil
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, recipient, username string) error {
	msg := m.newMessage(recipient, "Welcome to AltarMaker!", fmt.Sprintf(welcomeBody, username, m.cfg.AppURL))
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	m.logger.Info().Str("recipient", recipient).Msg("welcome mail sent")
	return nil
}

func (m *SMTPMailer) newMessage(recipient, subject, body string) *gomail.Message {
	sender := m.cfg.Sender
	if sender == "" {
		sender = m.cfg.Username
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return msg
}

// send honours context cancellation around the blocking dial-and-send.
func (m *SMTPMailer) send(ctx context.Context, msg *gomail.Message) error {
	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
