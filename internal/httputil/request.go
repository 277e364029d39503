package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/workforce-ledger/backend/internal/models"
)

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			texts := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				texts = append(texts, ValidationErrorToText(e))
			}
			return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(texts, ", "))
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return fmt.Errorf("%w: %s must be of type %s", models.ErrValidation, jsonUnmarshalTypeError.Field, jsonUnmarshalTypeError.Type)
		}

		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return fmt.Errorf("%w: %s", ErrInvalidBody, err)
	}

	return nil
}

// ValidationErrorToText returns a human readable message for a validation error.
func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "dive":
		return fmt.Sprintf("%s contains invalid entries", e.Field())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}

// ParseID parses a positive integer ID from a path parameter.
func ParseID(c *gin.Context, param string) (uint, error) {
	parsed, err := strconv.ParseUint(c.Param(param), 10, 0)
	if err != nil || parsed == 0 {
		return 0, ErrInvalidID
	}

	return uint(parsed), nil
}
