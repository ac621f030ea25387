package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTP sends mail through a relay, authenticating when a username is set.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTP) Notify(ctx context.Context, to, subject, body string) error {
	msg, err := s.message(to, subject, body)
	if err != nil {
		return err
	}

	client, err := s.client()
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp %s: %w", s.Host, err)
	}
	return nil
}

func (s *SMTP) message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.From); err != nil {
		return nil, fmt.Errorf("bad from address %q: %w", s.From, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("bad recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (s *SMTP) client() (*mail.Client, error) {
	if s.Host == "" {
		return nil, errors.New("no smtp host")
	}
	opts := []mail.Option{
		mail.WithPort(s.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.Username),
			mail.WithPassword(s.Password))
	}
	return mail.NewClient(s.Host, opts...)
}
