package domain

type Email struct {
	Subject     string
	Body        string
	From        string
	To          []string
	Attachments []EmailAttachment
}

type EmailAttachment struct {
	Filename string
	Content  []byte
	MimeType string
}
