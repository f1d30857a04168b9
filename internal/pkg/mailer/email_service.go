package mailer

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendAgentEscalation(toEmail, sessionId, visitorName, lastMessage string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string // Added to construct deep links into the agent console
}

func NewEmailService(host string, port int, username, password, senderEmail, frontendURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendAgentEscalation(toEmail, sessionId, visitorName, lastMessage string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "A visitor is waiting for a live agent")

	// Construct the clickable link pointing to the agent console
	sessionLink := fmt.Sprintf("%s/agent/sessions/%s", s.frontendURL, sessionId)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Live Agent Requested</h2>
			<p><strong>%s</strong> asked to speak with a human agent.</p>
			<p>Their last message:</p>
			<blockquote style="border-left: 4px solid #007BFF; padding-left: 10px; color: #555;">%s</blockquote>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open Session</a>
			<p>Or copy this link:</p>
			<p>%s</p>
		</div>
	`, html.EscapeString(visitorName), html.EscapeString(lastMessage), sessionLink, sessionLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation for session %s: %v\n", sessionId, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation sent to %s for session %s\n", toEmail, sessionId)
	return nil
}
