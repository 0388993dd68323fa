package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOpsAlert(subject, body string) error
	SendSLABreachAlert(protocol, priority string, deadline time.Time) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	opsEmail    string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName, opsEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
		opsEmail:    opsEmail,
	}
}

// SendOpsAlert mails the operations inbox. A missing ops address makes this a
// no-op so local setups run without SMTP.
func (s *emailService) SendOpsAlert(subject, body string) error {
	if s.opsEmail == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", s.opsEmail)
	m.SetHeader("Subject", "[SupportCore] "+subject)

	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Operational Alert</h2>
			<p>%s</p>
			<p style="color: #888; font-size: 12px;">Sent %s</p>
		</div>
	`, body, time.Now().Format(time.RFC3339))

	m.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send ops alert: %v\n", err)
		return err
	}
	return nil
}

func (s *emailService) SendSLABreachAlert(protocol, priority string, deadline time.Time) error {
	body := fmt.Sprintf(
		"Ticket <strong>%s</strong> (priority %s) missed its SLA deadline of %s.",
		protocol, priority, deadline.Format(time.RFC3339),
	)
	return s.SendOpsAlert("SLA breach: "+protocol, body)
}
