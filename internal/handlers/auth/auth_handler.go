// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"llamacrm-service/internal/middleware"
	"llamacrm-service/internal/pkg/response"
	authsvc "llamacrm-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *authsvc.AuthService
}

func NewAuthHandler(authService *authsvc.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login exchanges the dashboard password for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	response.Success(c, http.StatusOK, "login successful", gin.H{"token": token})
}

// Logout invalidates the current session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, ok := middleware.GetJTI(c)
	if !ok {
		response.Unauthorized(c, "no active session")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), jti); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to log out", err)
		return
	}

	response.Success(c, http.StatusOK, "logged out", nil)
}
