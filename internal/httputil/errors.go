package httputil

import (
	"fmt"

	"github.com/workforce-ledger/backend/internal/models"
)

var (
	ErrInvalidBody      = fmt.Errorf("%w: the body of your request contains invalid or un-parseable data. Please check and try again", models.ErrValidation)
	ErrRequestBodyEmpty = fmt.Errorf("%w: the request body must not be empty", models.ErrValidation)
	ErrInvalidID        = fmt.Errorf("%w: the specified resource ID is not a valid positive integer", models.ErrValidation)
	ErrInvalidQuery     = fmt.Errorf("%w: the query string contains unparseable data. Please check the values", models.ErrValidation)
)
