package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

// statusFor maps an error kind to its HTTP status. Out-of-stock keeps the
// 404 the API has always returned for it.
func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindInvalidArgument:
		return http.StatusBadRequest
	case apperror.KindNotFound, apperror.KindOutOfStock:
		return http.StatusNotFound
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes the error message verbatim as a plain-text body
// with the status derived from the error kind. Internal causes are not leaked.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		c.String(http.StatusInternalServerError, "Something failed.")
		return
	}
	c.String(statusFor(kind), apperror.MessageOf(err))
}

// respondBadRequest covers malformed JSON payloads before they reach a service.
func respondBadRequest(c *gin.Context, err error) {
	if err == nil {
		return
	}
	c.String(http.StatusBadRequest, err.Error())
}
