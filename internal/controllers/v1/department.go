package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workforce-ledger/backend/internal/httputil"
	"github.com/workforce-ledger/backend/internal/reports"
)

type DepartmentTotalsResponse struct {
	Data reports.DepartmentTotals `json:"data"` // Totals of the departments and their projects
}

// RegisterDepartmentRoutes registers the routes for departments with
// the RouterGroup that is passed.
func (co Controller) RegisterDepartmentRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id/totals", OptionsDepartmentTotals)
	r.GET("/:id/totals", co.GetDepartmentTotals)
}

// RegisterManagerRoutes registers the routes for department managers with
// the RouterGroup that is passed.
func (co Controller) RegisterManagerRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:eid/totals", OptionsManagerTotals)
	r.GET("/:eid/totals", co.GetManagerTotals)
}

// OptionsDepartmentTotals returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Departments
//	@Success		204
//	@Param			id	path	uint	true	"ID of the department"
//	@Router			/v1/departments/{id}/totals [options]
func OptionsDepartmentTotals(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsManagerTotals returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Departments
//	@Success		204
//	@Param			eid	path	string	true	"Employee ID of the manager"
//	@Router			/v1/managers/{eid}/totals [options]
func OptionsManagerTotals(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetDepartmentTotals returns the totals of a department
//
//	@Summary		Department totals
//	@Description	Sums revenue, cost and margin over all projects of the department
//	@Tags			Departments
//	@Produce		json
//	@Success		200	{object}	DepartmentTotalsResponse
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		uint	true	"ID of the department"
//	@Router			/v1/departments/{id}/totals [get]
func (co Controller) GetDepartmentTotals(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	totals, err := co.Reports.DepartmentTotals(c.Request.Context(), reports.DepartmentScope{DepartmentID: id})
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, DepartmentTotalsResponse{Data: totals})
}

// GetManagerTotals returns the totals of all departments a person manages
//
//	@Summary		Manager totals
//	@Description	Sums revenue, cost and margin over all projects of the departments the person manages. A person managing no department has zero totals.
//	@Tags			Departments
//	@Produce		json
//	@Success		200	{object}	DepartmentTotalsResponse
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			eid	path		string	true	"Employee ID of the manager"
//	@Router			/v1/managers/{eid}/totals [get]
func (co Controller) GetManagerTotals(c *gin.Context) {
	totals, err := co.Reports.DepartmentTotals(c.Request.Context(), reports.DepartmentScope{ManagerEID: c.Param("eid")})
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, DepartmentTotalsResponse{Data: totals})
}
