// Package notify delivers watering reminders by email, either by handing them
// to the local mail(1) command or by talking to an SMTP relay.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Command sends mail by running a mail(1) compatible program as
//
//	<Name> <Args...> -s <subject> <to>
//
// with the body on standard input.
type Command struct {
	Name string
	Args []string
}

// NewCommand splits a command line such as "mailx -r garden@example.com" into
// a Command.
func NewCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("empty mail command")
	}
	return &Command{Name: fields[0], Args: fields[1:]}, nil
}

func (c *Command) Notify(ctx context.Context, to, subject, body string) error {
	args := append(append([]string{}, c.Args...), "-s", subject, to)
	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Stdin = strings.NewReader(body)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", c.Name, err, msg)
		}
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}
