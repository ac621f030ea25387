package notify

import (
	"context"
	"fmt"

	"github.com/spencer-p/watering/pkg/config"
)

// Notifier delivers a message to a recipient.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

// FromConfig builds the notifier selected by cfg.Mailer.
func FromConfig(cfg *config.Config) (Notifier, error) {
	switch cfg.Mailer {
	case config.MailerCommand:
		return NewCommand(cfg.MailCommand)
	case config.MailerSMTP:
		return &SMTP{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, nil
	default:
		return nil, fmt.Errorf("unknown mailer %q", cfg.Mailer)
	}
}
