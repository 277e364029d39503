// Package healthz reports whether the backend can serve requests.
package healthz

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workforce-ledger/backend/internal/httputil"
	"github.com/workforce-ledger/backend/internal/models"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	r.OPTIONS("", Options)
	r.GET("", Get(db))
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the application health
//
//	@Summary		Get health
//	@Description	Returns the application health and, if not healthy, an error
//	@Tags			General
//	@Produce		json
//	@Success		204
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/healthz [get]
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			httputil.ErrorResponse(c, fmt.Errorf("%w: %w", models.ErrGeneral, err))
			return
		}

		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			httputil.ErrorResponse(c, fmt.Errorf("%w: %w", models.ErrGeneral, err))
			return
		}

		c.Status(http.StatusNoContent)
	}
}
