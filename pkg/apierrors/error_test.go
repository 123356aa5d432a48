package apierrors_test

import (
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"cmms/pkg/apierrors"
	"cmms/pkg/translator"
)

func TestMain(m *testing.M) {
	// Initialize minimal translator for tests
	translator.Translator = i18n.NewBundle(language.Polish)
	err := translator.Translator.AddMessages(language.English, &i18n.Message{
		ID:    "test_key",
		Other: "Test message",
	})
	if err != nil {
		return
	}
	err = translator.Translator.AddMessages(language.Polish,
		&i18n.Message{ID: "test_key", Other: "Wiadomość testowa"},
		&i18n.Message{ID: "field_required", Other: "To pole jest wymagane."},
	)
	if err != nil {
		return
	}
	m.Run()
}

func TestCreateError_ReturnsJsonErr(t *testing.T) {
	err := apierrors.CreateError(400, "test_key", "en")
	assert.Equal(t, 400, err.ErrDetails.Code)
	assert.Equal(t, "Test message", err.ErrDetails.Message)
}

func TestGetTransErrorMsg_ReturnsTranslation(t *testing.T) {
	assert.Equal(t, "Wiadomość testowa", apierrors.GetTransErrorMsg("test_key", "pl"))
}

func TestGetTransErrorMsg_FallbackToKey(t *testing.T) {
	msg := apierrors.GetTransErrorMsg("unknown_key", "en")
	assert.Equal(t, "unknown_key", msg)
}

func TestJsonErr_ErrorMethod(t *testing.T) {
	err := apierrors.CreateError(500, "test_key", "en")
	assert.Equal(t, "Code: 500, Message: Test message", err.Error())
}

func TestTranslateFields(t *testing.T) {
	fields := apierrors.TranslateFields(map[string][]string{"title": {"required"}}, "pl")
	assert.Equal(t, map[string][]string{"title": {"To pole jest wymagane."}}, fields)
}
