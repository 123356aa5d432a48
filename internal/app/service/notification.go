package service

import (
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

const (
	deadlineLayout  = "2006-01-02 15:04"
	noComments      = "Brak"
	defaultMimeType = "application/octet-stream"
)

// NotificationService composes task notices and hands them to the mailer.
// Failures never propagate; they end up in the audit log and in zap.
type NotificationService struct {
	mailer ports.Mailer
	blobs  ports.BlobStore
	audit  ports.AuditLog
	from   string
}

func NewNotificationService(mailer ports.Mailer, blobs ports.BlobStore, audit ports.AuditLog, from string) *NotificationService {
	return &NotificationService{mailer: mailer, blobs: blobs, audit: audit, from: from}
}

type bodyOptions struct {
	header         string
	assigneesLabel string
	withStatus     bool
	withComments   bool
}

func (n *NotificationService) TaskCreated(ctx context.Context, actor *domain.Actor, task domain.Task) {
	body := renderTaskBody(task, bodyOptions{header: "Zostało ci przydzielone nowe zadanie:"})
	n.send(ctx, actor, "Nowe zadanie: "+task.Title, body, task.AssigneeEmails(), task.Attachments)
}

func (n *NotificationService) TaskChanged(ctx context.Context, actor *domain.Actor, task domain.Task) {
	body := renderTaskBody(task, bodyOptions{
		header:       "Zostało zmienione zadanie:",
		withStatus:   true,
		withComments: true,
	})
	n.send(ctx, actor, "Zmiana zadania: "+task.Title, body, task.AssigneeEmails(), task.Attachments)
}

func (n *NotificationService) EmployeeStatusChanged(ctx context.Context, actor *domain.Actor, task domain.Task) {
	header := "Osoba odpowiedzialna za zadanie oznaczyła je jako wykonano:"
	if task.Status == domain.TaskStatusOpen {
		header = "Osoba odpowiedzialna za zadanie cofnęła wykonanie zadania!"
	}
	body := renderTaskBody(task, bodyOptions{header: header, withStatus: true, withComments: true})

	n.send(ctx, actor, "Aktualizacja statusu: "+task.Title, body, othersInvolved(actor, task), task.Attachments)
}

func (n *NotificationService) ManagerStatusChanged(ctx context.Context, actor *domain.Actor, task domain.Task) {
	header := "Wykonanie zadania nie potwierdzone."
	if task.Status == domain.TaskStatusAccepted {
		header = "Wykonanie zadania potwierdzone."
	}
	body := renderTaskBody(task, bodyOptions{header: header, withStatus: true, withComments: true})
	n.send(ctx, actor, "Aktualizacja statusu: "+task.Title, body, task.AssigneeEmails(), task.Attachments)
}

// CommentAdded notifies the creator and the assignees, except the commenter.
func (n *NotificationService) CommentAdded(ctx context.Context, actor *domain.Actor, task domain.Task) {
	author := ""
	if actor != nil && actor.User != nil {
		author = actor.User.FullName()
	}
	body := renderTaskBody(task, bodyOptions{
		header:         fmt.Sprintf("Użytkownik %s dodał komentarz do zadania:", author),
		assigneesLabel: "Przypisane osoby:",
		withStatus:     true,
		withComments:   true,
	})

	n.send(ctx, actor, "Dodanie komentarza do zadania: "+task.Title, body, othersInvolved(actor, task), nil)
}

// othersInvolved is the creator plus the assignees, minus the actor.
func othersInvolved(actor *domain.Actor, task domain.Task) []string {
	recipients := make([]string, 0, len(task.Assignees)+1)
	if task.CreatedBy != nil && task.CreatedBy.ID != actor.UserID() {
		recipients = append(recipients, task.CreatedBy.Email)
	}
	for _, assignee := range task.Assignees {
		if assignee.ID != actor.UserID() {
			recipients = append(recipients, assignee.Email)
		}
	}
	return recipients
}

func (n *NotificationService) TaskDeleted(ctx context.Context, actor *domain.Actor, title string, emails []string) {
	body := fmt.Sprintf("Zadanie %s zostało usunięte.", title)
	n.send(ctx, actor, "Usunięcie zadania: "+title, body, emails, nil)
}

func (n *NotificationService) send(ctx context.Context, actor *domain.Actor, subject, body string, recipients []string, attachments []domain.Attachment) {
	emails := uniqueEmails(recipients)
	if len(emails) == 0 {
		return
	}
	description := fmt.Sprintf("%s -> %s", subject, strings.Join(emails, ", "))

	files, err := n.loadAttachments(ctx, attachments)
	if err != nil {
		n.fail(ctx, actor, description, err)
		return
	}

	email := domain.Email{
		Subject:     subject,
		Body:        body,
		From:        n.from,
		To:          emails,
		Attachments: files,
	}
	if err := n.mailer.Send(ctx, email); err != nil {
		n.fail(ctx, actor, description, err)
		return
	}

	n.audit.LogAction(ctx, domain.AuditEmailSent, actor, description)
}

func (n *NotificationService) fail(ctx context.Context, actor *domain.Actor, description string, err error) {
	zap.L().Error("failed to send notification", zap.String("notification", description), zap.Error(err))
	n.audit.LogAction(ctx, domain.AuditEmailFailed, actor, fmt.Sprintf("%s: %v", description, err))
}

func (n *NotificationService) loadAttachments(ctx context.Context, attachments []domain.Attachment) ([]domain.EmailAttachment, error) {
	files := make([]domain.EmailAttachment, 0, len(attachments))
	for _, attachment := range attachments {
		content, err := n.blobs.Read(ctx, attachment.File)
		if err != nil {
			return nil, fmt.Errorf("read attachment %s: %w", attachment.File, err)
		}
		filename := path.Base(attachment.File)
		files = append(files, domain.EmailAttachment{
			Filename: filename,
			Content:  content,
			MimeType: mimeTypeOf(filename),
		})
	}
	return files, nil
}

func mimeTypeOf(filename string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	if mimeType == "" {
		return defaultMimeType
	}
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mediaType
	}
	return mimeType
}

// uniqueEmails drops blanks and duplicates, keeping first-seen order.
func uniqueEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		key := strings.ToLower(email)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, email)
	}
	return out
}

func renderTaskBody(task domain.Task, opts bodyOptions) string {
	assigneesLabel := opts.assigneesLabel
	if assigneesLabel == "" {
		assigneesLabel = "Przypisana osoba:"
	}

	names := make([]string, 0, len(task.Assignees))
	for _, assignee := range task.Assignees {
		names = append(names, assignee.FullName())
	}
	buildings := make([]string, 0, len(task.Buildings))
	for _, building := range task.Buildings {
		buildings = append(buildings, building.Display())
	}

	var b strings.Builder
	b.WriteString(opts.header + "\n\n")
	fmt.Fprintf(&b, "Nazwa: %s\n", task.Title)
	fmt.Fprintf(&b, "%s %s\n", assigneesLabel, strings.Join(names, ", "))
	if opts.withStatus {
		fmt.Fprintf(&b, "Status: %s\n", task.Status.Label())
	}
	fmt.Fprintf(&b, "Termin: %s\n", task.Deadline.UTC().Format(deadlineLayout))
	fmt.Fprintf(&b, "Kategoria: %s\n", task.Category.Label())
	fmt.Fprintf(&b, "Priorytet: %s\n", task.Priority.Label())
	fmt.Fprintf(&b, "Budynek: %s\n", strings.Join(buildings, ", "))
	fmt.Fprintf(&b, "Opis: %s\n", task.Description)
	if opts.withComments {
		fmt.Fprintf(&b, "Komentarze: %s\n", renderComments(task.Comments))
	}
	return b.String()
}

// renderComments expects comments newest first.
func renderComments(comments []domain.TaskComment) string {
	if len(comments) == 0 {
		return noComments
	}
	lines := make([]string, 0, len(comments))
	for _, comment := range comments {
		author := "-"
		if comment.User != nil {
			author = comment.User.FullName()
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", author, comment.Text))
	}
	return strings.Join(lines, "\n")
}
