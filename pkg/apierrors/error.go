package apierrors

import (
	"fmt"

	"cmms/pkg/translator"
)

// JsonErr represents the JSON structure for apierrors.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err represents the error with a code and message.
type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	message := GetTransErrorMsg(msgKey, lang)
	return JsonErr{ErrDetails: Err{code, message}}
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	return translator.Localize(msgKey, lang, nil)
}

// TranslateFields turns field error codes into localized messages.
func TranslateFields(fields map[string][]string, lang string) map[string][]string {
	out := make(map[string][]string, len(fields))
	for field, codes := range fields {
		messages := make([]string, 0, len(codes))
		for _, code := range codes {
			messages = append(messages, translator.Localize(FieldMsgPrefix+code, lang, nil))
		}
		out[field] = messages
	}
	return out
}
