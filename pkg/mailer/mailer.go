// Package mailer delivers digest emails over SMTP.
package mailer

import (
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/mubarak-24/football-matches/internal/utils"
)

// Mailer sends plain-text digests. With incomplete credentials it degrades
// to printing the digest to the log, which keeps local development and dry
// runs working without a mail account.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	To       string
}

// Configured reports whether enough settings are present to actually send.
func (m *Mailer) Configured() bool {
	return m.Host != "" && m.Username != "" && m.Password != "" && m.To != ""
}

// Send delivers one digest email, or logs it when SMTP is not configured.
func (m *Mailer) Send(subject, body string) error {
	if !m.Configured() {
		utils.Log.Warn("SMTP not configured; printing digest instead")
		fmt.Println("SUBJECT:", subject)
		fmt.Println(body)
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.Username); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(m.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.Username),
		gomail.WithPassword(m.Password),
	}
	// Gmail-style SMTPS uses implicit TLS on 465; anything else gets STARTTLS.
	if m.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(m.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	utils.Log.Infof("Email sent to %s", m.To)
	return nil
}
