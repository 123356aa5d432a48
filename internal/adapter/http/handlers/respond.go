package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cmms/internal/adapter/http/dto"
	"cmms/internal/adapter/http/middleware"
	"cmms/internal/core/domain"
	"cmms/pkg/apierrors"
	"cmms/pkg/translator"
)

const (
	requestedWithHeader = "X-Requested-With"
	xmlHTTPRequest      = "XMLHttpRequest"
	tasksPath           = "/api/tasks"
	buildingsPath       = "/api/buildings"
)

// isProgrammatic reports whether the caller asked for a structured reply
// instead of a redirect.
func isProgrammatic(c *gin.Context) bool {
	return c.GetHeader(requestedWithHeader) == xmlHTTPRequest
}

// respondSuccess answers a mutating request: a JSON payload for
// programmatic callers, a redirect otherwise.
func respondSuccess(c *gin.Context, status int, redirect string, payload dto.ActionResponse) {
	if isProgrammatic(c) {
		payload.Success = true
		c.JSON(status, payload)
		return
	}
	c.Redirect(http.StatusSeeOther, redirect)
}

// respondError maps err to a status and a localized message. Internal
// details never reach the caller.
func respondError(c *gin.Context, err error, logMsg string) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		respondFieldErrors(c, validationErr.Fields)
		return
	}

	lang := middleware.GetLang(c)
	status, msgKey := classify(err)

	if status >= http.StatusInternalServerError {
		zap.L().Error(logMsg, zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
	}

	if isProgrammatic(c) {
		c.JSON(status, dto.ActionResponse{Success: false, Message: translator.Localize(msgKey, lang, nil)})
		return
	}
	c.JSON(status, apierrors.CreateError(status, msgKey, lang))
}

func respondFieldErrors(c *gin.Context, fields domain.FieldErrors) {
	lang := middleware.GetLang(c)
	if isProgrammatic(c) {
		c.JSON(http.StatusBadRequest, dto.ActionResponse{
			Success: false,
			Message: translator.Localize(apierrors.MsgFormErrors, lang, nil),
			Errors:  apierrors.TranslateFields(fields, lang),
		})
		return
	}
	c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgFormErrors, lang))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, apierrors.MsgTaskNotFound
	case errors.Is(err, domain.ErrBuildingNotFound):
		return http.StatusNotFound, apierrors.MsgBuildingNotFound
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, apierrors.MsgUserNotFound
	case errors.Is(err, domain.ErrPageNotFound):
		return http.StatusNotFound, apierrors.MsgPageNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, apierrors.MsgForbidden
	case errors.Is(err, domain.ErrTaskClosed):
		return http.StatusConflict, apierrors.MsgTaskClosed
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, apierrors.MsgInvalidStatus
	default:
		return http.StatusInternalServerError, apierrors.MsgGenericError
	}
}

// parseID reads a positive numeric path parameter, answering 400 itself.
func parseID(c *gin.Context, name, msgKey string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		lang := middleware.GetLang(c)
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, msgKey, lang))
		return 0, false
	}
	return id, true
}

func localize(c *gin.Context, msgKey string, data map[string]any) string {
	return translator.Localize(msgKey, middleware.GetLang(c), data)
}
