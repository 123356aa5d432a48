package ports

import (
	"context"

	"cmms/internal/core/domain"
)

// Mailer delivers one message to all of its recipients.
type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

// BlobStore holds attachment file contents addressed by a stable name.
type BlobStore interface {
	Save(ctx context.Context, filename string, content []byte) (string, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}
