package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

var assignedTmpl = template.Must(template.New("assigned").Parse(
	`<p>Hi {{.AgentName}},</p>
<p>The lead <strong>{{.LeadName}}</strong> has been assigned to you. It is waiting in your pipeline.</p>`))

var cancelledTmpl = template.Must(template.New("cancelled").Parse(
	`<p>The reserved lead <strong>{{.LeadName}}</strong> was cancelled.</p>
<p>Reason: {{.Reason}}</p>`))

func (s *EmailSender) NotifyLeadAssigned(to, agentName, leadName string) error {
	body, err := render(assignedTmpl, map[string]string{
		"AgentName": agentName,
		"LeadName":  leadName,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("New lead assigned: %s", leadName)
	return s.send(to, subject, body)
}

func (s *EmailSender) NotifyLeadCancelled(to, leadName, reason string) error {
	body, err := render(cancelledTmpl, map[string]string{
		"LeadName": leadName,
		"Reason":   reason,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Lead cancelled: %s", leadName)
	return s.send(to, subject, body)
}

func render(t *template.Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render mail template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
