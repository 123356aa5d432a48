package validation_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmms/internal/adapter/http/dto"
	"cmms/internal/adapter/http/validation"
	"cmms/internal/core/domain"
)

func newContext(req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validForm() url.Values {
	return url.Values{
		"title":           {"T1"},
		"description":     {"Opis"},
		"category":        {"planned"},
		"priority":        {"high"},
		"deadline":        {"2024-03-08 14:00"},
		"assigned_person": {"2"},
		"building":        {"1"},
	}
}

func TestBindForm_MultipartTask(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, values := range validForm() {
		for _, value := range values {
			require.NoError(t, writer.WriteField(key, value))
		}
	}
	require.NoError(t, writer.WriteField("assigned_person", "3"))
	part, err := writer.CreateFormFile("attachments", "f1.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("one"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var form dto.TaskForm
	errs, err := validation.BindForm(newContext(req), &form)
	require.NoError(t, err)
	assert.True(t, errs.Empty(), "%v", errs)

	input, err := validation.BuildTaskInput(form)
	require.NoError(t, err)
	assert.Equal(t, "T1", input.Title)
	assert.Equal(t, domain.TaskCategoryPlanned, input.Category)
	assert.Equal(t, domain.TaskPriorityHigh, input.Priority)
	require.NotNil(t, input.Deadline)
	assert.True(t, input.Deadline.Equal(time.Date(2024, 3, 8, 14, 0, 0, 0, time.UTC)))
	assert.Equal(t, []uint64{2, 3}, input.AssigneeIDs)
	assert.Equal(t, []uint64{1}, input.BuildingIDs)
	require.Len(t, input.Attachments, 1)
	assert.Equal(t, "f1.txt", input.Attachments[0].Filename)
	assert.Equal(t, []byte("one"), input.Attachments[0].Content)
}

func TestBindForm_RuleViolations(t *testing.T) {
	tests := []struct {
		name   string
		modify func(url.Values)
		want   domain.FieldErrors
	}{
		{
			name: "missing fields",
			modify: func(form url.Values) {
				form.Del("title")
				form.Del("assigned_person")
				form.Del("building")
			},
			want: domain.FieldErrors{
				"title":           {domain.FieldRequired},
				"assigned_person": {domain.FieldRequired},
				"building":        {domain.FieldRequired},
			},
		},
		{
			name:   "unknown category",
			modify: func(form url.Values) { form.Set("category", "weekly") },
			want:   domain.FieldErrors{"category": {domain.FieldInvalidChoice}},
		},
		{
			name:   "malformed deadline",
			modify: func(form url.Values) { form.Set("deadline", "jutro") },
			want:   domain.FieldErrors{"deadline": {domain.FieldInvalid}},
		},
		{
			name:   "zero assignee id",
			modify: func(form url.Values) { form.Set("assigned_person", "0") },
			want:   domain.FieldErrors{"assigned_person": {domain.FieldInvalidChoice}},
		},
		{
			name:   "title too long",
			modify: func(form url.Values) { form.Set("title", strings.Repeat("ż", 256)) },
			want:   domain.FieldErrors{"title": {domain.FieldTooLong}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.modify(form)

			var bound dto.TaskForm
			errs, err := validation.BindForm(newContext(formRequest(http.MethodPost, "/api/tasks", form)), &bound)
			require.NoError(t, err)
			assert.Equal(t, tt.want, errs)
		})
	}
}

func TestBindForm_UndecodableIDIsAnError(t *testing.T) {
	form := validForm()
	form.Set("building", "abc")

	var bound dto.TaskForm
	_, err := validation.BindForm(newContext(formRequest(http.MethodPost, "/api/tasks", form)), &bound)

	require.Error(t, err)
}

func TestBuildTaskUpdateInput_RemovedAttachments(t *testing.T) {
	form := validForm()
	form["delete_attachments"] = []string{"4,5", "6"}

	var bound dto.TaskUpdateForm
	errs, err := validation.BindForm(newContext(formRequest(http.MethodPut, "/api/tasks/1", form)), &bound)
	require.NoError(t, err)
	require.True(t, errs.Empty(), "%v", errs)

	input, errs, err := validation.BuildTaskUpdateInput(bound)
	require.NoError(t, err)
	assert.True(t, errs.Empty())
	assert.Equal(t, "T1", input.Title)
	assert.Equal(t, []uint64{4, 5, 6}, input.RemoveAttachmentIDs)
	assert.Empty(t, input.Attachments)
}

func TestBuildTaskUpdateInput_MalformedRemovedAttachment(t *testing.T) {
	_, errs, err := validation.BuildTaskUpdateInput(dto.TaskUpdateForm{DeleteAttachments: []string{"4,x"}})

	require.NoError(t, err)
	assert.Equal(t, []string{domain.FieldInvalid}, errs["delete_attachments"])
}

func TestParseDeadline(t *testing.T) {
	want := time.Date(2024, 3, 8, 14, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2024-03-08T14:00:00Z", "2024-03-08T16:00:00+02:00", "2024-03-08T14:00", " 2024-03-08 14:00 "} {
		parsed, ok := validation.ParseDeadline(raw)
		require.True(t, ok, raw)
		assert.True(t, parsed.Equal(want), raw)
	}

	_, ok := validation.ParseDeadline("08.03.2024")
	assert.False(t, ok)
}
