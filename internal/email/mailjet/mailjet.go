package mailjet

import (
	"fmt"

	. "github.com/mailjet/mailjet-apiv3-go"
)

type Mailjet struct {
	Client *Client
	Email  string
	Name   string
}

func New(key, secret, fromEmail, fromName string) *Mailjet {
	client := NewMailjetClient(key, secret)
	return &Mailjet{
		Client: client,
		Email:  fromEmail,
		Name:   fromName,
	}
}

func (m *Mailjet) Send(subject, text, html string, sendTo []string) error {
	email := &InfoSendMail{
		FromEmail:  m.Email,
		FromName:   m.Name,
		Subject:    subject,
		TextPart:   text,
		HTMLPart:   html,
		Recipients: recipients(sendTo),
	}
	if _, err := m.Client.SendMail(email); err != nil {
		return fmt.Errorf("mailjet: %w", err)
	}
	return nil
}

func recipients(sendTo []string) []Recipient {
	out := make([]Recipient, 0, len(sendTo))
	for _, addr := range sendTo {
		if addr == "" {
			continue
		}
		out = append(out, Recipient{Email: addr})
	}
	return out
}
