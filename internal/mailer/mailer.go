package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends vendor-facing notification emails. Implementations must be
// safe for concurrent use.
type Mailer interface {
	SendListingCreated(toEmail, businessName string) error
}

type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	SenderEmail string
}

type smtpMailer struct {
	cfg Config
}

func New(cfg Config) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendListingCreated(toEmail, businessName string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SenderEmail)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Your listing is live")
	msg.SetBody("text/plain", fmt.Sprintf("Your listing %q has been created successfully.", businessName))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send listing created email: %w", err)
	}
	return nil
}
