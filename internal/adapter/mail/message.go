package mail

import (
	"bytes"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"cmms/internal/core/domain"
)

// newMessage renders email as a plain text message with one part per
// attachment.
func newMessage(email domain.Email, now time.Time) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return nil, fmt.Errorf("sender %q: %w", email.From, err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("recipients: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetDateWithValue(now)
	msg.SetMessageID()
	msg.SetBodyString(gomail.TypeTextPlain, email.Body)

	for _, attachment := range email.Attachments {
		var opts []gomail.FileOption
		if attachment.MimeType != "" {
			opts = append(opts, gomail.WithFileContentType(gomail.ContentType(attachment.MimeType)))
		}
		if err := msg.AttachReader(attachment.Filename, bytes.NewReader(attachment.Content), opts...); err != nil {
			return nil, fmt.Errorf("attach %s: %w", attachment.Filename, err)
		}
	}
	return msg, nil
}
