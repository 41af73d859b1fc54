package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler(protected *gin.RouterGroup) {
	handler := &AuthHandler{}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

// Me godoc
// @Summary      Current principal
// @Description  Returns the authenticated identity with its role and profiles
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Principal}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Principal resolved", p)
}
