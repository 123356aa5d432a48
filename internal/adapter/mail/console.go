package mail

import (
	"context"

	"go.uber.org/zap"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

// ConsoleSender logs messages instead of sending them.
type ConsoleSender struct {
	logger *zap.Logger
}

var _ ports.Mailer = (*ConsoleSender)(nil)

func NewConsoleSender(logger *zap.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (s *ConsoleSender) Send(_ context.Context, email domain.Email) error {
	names := make([]string, 0, len(email.Attachments))
	for _, attachment := range email.Attachments {
		names = append(names, attachment.Filename)
	}

	s.logger.Info("email",
		zap.String("from", email.From),
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("body", email.Body),
		zap.Strings("attachments", names),
	)
	return nil
}
