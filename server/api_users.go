package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/avalder/go-bookstore-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/avalder/go-bookstore-api/internal/domains/users/ports"
)

// UsersAPI wires HTTP transport with the users bounded context service.
type UsersAPI struct {
	service userports.Service
}

// NewUsersAPI creates a UsersAPI backed by the provided service.
func NewUsersAPI(service userports.Service) UsersAPI {
	return UsersAPI{service: service}
}

// Post /api/users
func (api *UsersAPI) Register(c *gin.Context) {
	var payload userhttpmapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), userhttpmapper.ToRegisterInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// Get /api/users/me
func (api *UsersAPI) Me(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	user, err := api.service.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}
