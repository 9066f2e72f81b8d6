package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/avalder/go-bookstore-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/avalder/go-bookstore-api/internal/domains/users/ports"
)

// AuthAPI handles credential exchange for bearer tokens.
type AuthAPI struct {
	service userports.Service
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service userports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /api/auth
// Login returns the signed token as the response body and mirrors it in the
// x-auth-token header for clients that read it from there.
func (api *AuthAPI) Login(c *gin.Context) {
	var payload userhttpmapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.service.Authenticate(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("x-auth-token", result.Token)
	c.String(http.StatusOK, result.Token)
}
