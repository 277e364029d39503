package httputil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/workforce-ledger/backend/internal/models"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the total allocation of E1 is 110%, it must not exceed 100%"`
	Kind  string `json:"kind" example:"validation"` // One of validation, not_found, conflict, forbidden, internal
}

// Status returns the appropriate HTTP status for an error
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	}

	return http.StatusInternalServerError
}

// ErrorResponse aborts the request with the status and body for err.
//
// Errors of unknown kind are logged and replaced with a general message
// containing the request ID.
func ErrorResponse(c *gin.Context, err error) {
	status := Status(err)
	kind := models.Kind(err)
	message := err.Error()

	if kind == "internal" {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		message = fmt.Sprintf("an error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c))
	}

	c.AbortWithStatusJSON(status, HTTPError{Error: message, Kind: kind})
}
