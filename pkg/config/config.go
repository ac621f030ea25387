package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. WATERING_EMAIL.
const Prefix = "WATERING"

// ErrMissing is returned when a required option has no value.
var ErrMissing = errors.New("missing required option")

// Mailers understood by Config.Mailer.
const (
	MailerCommand = "command"
	MailerSMTP    = "smtp"
)

type Config struct {
	Email      string `envconfig:"EMAIL"`
	LocationID string `split_words:"true"`
	Token      string
	Debug      bool

	HowOftenDays int           `split_words:"true" default:"5"`
	APIURL       string        `envconfig:"API_URL" default:"https://www.ncdc.noaa.gov/cdo-web/api/v2/data"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	Mailer      string `default:"command"`
	MailCommand string `split_words:"true" default:"mail"`
	SMTP        SMTP

	// Pushgateway, if set, receives the run's metrics.
	Pushgateway string
}

type SMTP struct {
	Host     string
	Port     int `default:"587"`
	Username string
	Password string
	From     string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BindFlags registers command line flags that override values already loaded
// from the environment.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Email, "email", c.Email, "address to send the reminder to")
	fs.StringVar(&c.LocationID, "location-id", c.LocationID, `NOAA location, e.g. "CITY:US270013"`)
	fs.StringVar(&c.Token, "token", c.Token, "NOAA CDO API token")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "print diagnostic output")
	fs.IntVar(&c.HowOftenDays, "how-often", c.HowOftenDays, "remind every this many dry days")
}

// Validate reports every missing or invalid option at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.LocationID == "" {
		missing = append(missing, "location-id")
	}
	if c.Token == "" {
		missing = append(missing, "token")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}

	if c.HowOftenDays <= 0 {
		return fmt.Errorf("how-often must be positive, got %d", c.HowOftenDays)
	}

	switch c.Mailer {
	case MailerCommand:
		if c.MailCommand == "" {
			return fmt.Errorf("%w: mail command", ErrMissing)
		}
	case MailerSMTP:
		if c.SMTP.Host == "" || c.SMTP.From == "" {
			return fmt.Errorf("%w: smtp host and from address", ErrMissing)
		}
	default:
		return fmt.Errorf("unknown mailer %q (allowed: %s, %s)", c.Mailer, MailerCommand, MailerSMTP)
	}
	return nil
}
