package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// UseSSL selects implicit TLS; otherwise STARTTLS is used when offered.
	UseSSL  bool
	Timeout time.Duration
}

// SMTPSender delivers mail through an SMTP relay behind a circuit breaker.
// A client is dialed per message.
type SMTPSender struct {
	cfg     SMTPConfig
	breaker *gobreaker.CircuitBreaker
	now     func() time.Time
}

var _ ports.Mailer = (*SMTPSender)(nil)

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &SMTPSender{cfg: cfg, breaker: breaker, now: time.Now}
}

func (s *SMTPSender) Send(ctx context.Context, email domain.Email) error {
	if len(email.To) == 0 {
		return errors.New("mail: no recipients")
	}

	message, err := newMessage(email, s.now())
	if err != nil {
		return fmt.Errorf("mail: build message: %w", err)
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		client, err := s.newClient()
		if err != nil {
			return nil, err
		}
		return nil, client.DialAndSendWithContext(ctx, message)
	})
	if err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

func (s *SMTPSender) newClient() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.UseSSL {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	return gomail.NewClient(s.cfg.Host, opts...)
}
