// Package mail is the outbound email collaborator. Signup is the only
// caller today; delivery failure there fails the request.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers through a single SMTP relay.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: from}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm := gomail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := mm.To(msg.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
