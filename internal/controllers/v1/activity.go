package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workforce-ledger/backend/internal/httputil"
	"github.com/workforce-ledger/backend/internal/models"
)

const defaultActivityLimit = 50

type ActivityQueryFilter struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"` // Maximum number of entries
}

type ActivityListResponse struct {
	Data []models.ActivityLog `json:"data"` // Latest activities first
}

// RegisterActivityRoutes registers the routes for the activity log with
// the RouterGroup that is passed.
func (co Controller) RegisterActivityRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsActivityList)
	r.GET("", co.GetActivities)
}

// OptionsActivityList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Activities
//	@Success		204
//	@Router			/v1/activities [options]
func OptionsActivityList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetActivities returns the most recent activities
//
//	@Summary		Recent activity
//	@Description	Returns the most recent changes to allocations, projects and rates
//	@Tags			Activities
//	@Produce		json
//	@Success		200		{object}	ActivityListResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			limit	query		int	false	"Maximum number of entries, 50 by default"
//	@Router			/v1/activities [get]
func (co Controller) GetActivities(c *gin.Context) {
	var filter ActivityQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.ErrorResponse(c, httputil.ErrInvalidQuery)
		return
	}

	if filter.Limit == 0 {
		filter.Limit = defaultActivityLimit
	}

	activities, err := models.RecentActivities(co.DB.WithContext(c.Request.Context()), filter.Limit)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, ActivityListResponse{Data: activities})
}
