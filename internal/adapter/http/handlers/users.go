package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cmms/internal/adapter/http/mapper"
	"cmms/internal/adapter/http/middleware"
	"cmms/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondError(c, err, "failed to list users")
		return
	}
	c.JSON(http.StatusOK, mapper.ToUserItems(users))
}
