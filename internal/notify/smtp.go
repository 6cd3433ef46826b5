package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/medtrack/medminder/internal/domain/contract"
)

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates a Sender backed by an SMTP endpoint. The dialer
// upgrades to STARTTLS when the server offers it.
func NewSMTPSender(host string, port int, username, password, from string) contract.Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *smtpSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}
