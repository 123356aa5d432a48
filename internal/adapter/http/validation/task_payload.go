package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"cmms/internal/adapter/http/dto"
	"cmms/internal/core/domain"
)

// Form field names shared with the task forms.
const (
	FieldDeleteAttachments = "delete_attachments"
	FieldCommentText       = "comment_text"
)

var deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"}

// Binding tag to field error code; unlisted tags map to FieldInvalid.
var tagCodes = map[string]string{
	"required": domain.FieldRequired,
	"min":      domain.FieldRequired,
	"max":      domain.FieldTooLong,
	"oneof":    domain.FieldInvalidChoice,
	"gt":       domain.FieldInvalidChoice,
	"deadline": domain.FieldInvalid,
}

func init() {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = engine.RegisterValidation("deadline", func(fl validator.FieldLevel) bool {
			_, ok := ParseDeadline(fl.Field().String())
			return ok
		})
	}
}

// BindForm binds the request into obj. Rule violations are returned as
// field errors keyed by form name; a body that cannot be decoded is an error.
func BindForm(c *gin.Context, obj any) (domain.FieldErrors, error) {
	errs := domain.FieldErrors{}
	err := c.ShouldBind(obj)
	if err == nil {
		return errs, nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return errs, err
	}

	objType := reflect.TypeOf(obj).Elem()
	for _, violation := range violations {
		code, ok := tagCodes[violation.Tag()]
		if !ok {
			code = domain.FieldInvalid
		}
		errs.Add(formName(objType, violation.StructField()), code)
	}
	return errs, nil
}

// BuildTaskInput maps a bound form to the domain input and reads uploads.
func BuildTaskInput(form dto.TaskForm) (domain.TaskInput, error) {
	input := domain.TaskInput{
		Title:       form.Title,
		Description: form.Description,
		Category:    domain.TaskCategory(form.Category),
		Priority:    domain.TaskPriority(form.Priority),
		AssigneeIDs: form.AssigneeIDs,
		BuildingIDs: form.BuildingIDs,
	}
	if deadline, ok := ParseDeadline(form.Deadline); ok {
		input.Deadline = &deadline
	}

	uploads := make([]domain.Upload, 0, len(form.Attachments))
	for _, header := range form.Attachments {
		content, err := readFile(header)
		if err != nil {
			return domain.TaskInput{}, err
		}
		uploads = append(uploads, domain.Upload{Filename: header.Filename, Content: content})
	}
	input.Attachments = uploads

	return input, nil
}

func BuildTaskUpdateInput(form dto.TaskUpdateForm) (domain.TaskUpdateInput, domain.FieldErrors, error) {
	errs := domain.FieldErrors{}
	input, err := BuildTaskInput(form.TaskForm)
	if err != nil {
		return domain.TaskUpdateInput{}, errs, err
	}

	var remove []uint64
	for _, value := range form.DeleteAttachments {
		for _, raw := range strings.Split(value, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				errs.Add(FieldDeleteAttachments, domain.FieldInvalid)
				return domain.TaskUpdateInput{}, errs, nil
			}
			remove = append(remove, id)
		}
	}

	return domain.TaskUpdateInput{TaskInput: input, RemoveAttachmentIDs: remove}, errs, nil
}

func ParseDeadline(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range deadlineLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// formName resolves a struct field, possibly "Field[2]" for slice elements,
// to its form tag.
func formName(objType reflect.Type, structField string) string {
	if i := strings.IndexByte(structField, '['); i >= 0 {
		structField = structField[:i]
	}
	field, ok := objType.FieldByName(structField)
	if !ok {
		return structField
	}
	if name := strings.Split(field.Tag.Get("form"), ",")[0]; name != "" {
		return name
	}
	return structField
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer file.Close()
	return io.ReadAll(file)
}
