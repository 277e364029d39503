package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workforce-ledger/backend/internal/httputil"
	"github.com/workforce-ledger/backend/internal/models"
	"github.com/workforce-ledger/backend/internal/reports"
)

// AssigneeCreate is the request body for adding a person to a project.
type AssigneeCreate struct {
	EID  string `json:"eid" binding:"required" example:"E1001"`
	Role string `json:"role" example:"Developer"`
}

// AssigneeEditable is the request body for changing a person's role on a project.
type AssigneeEditable struct {
	Role string `json:"role" binding:"required" example:"Project Manager"`
}

type AssigneeListResponse struct {
	Data []models.Assignee `json:"data"` // People on the project with their role and allocation
}

type MembershipResponse struct {
	Data models.Membership `json:"data"` // The membership
}

type ProjectResponse struct {
	Data models.Project `json:"data"` // The deleted project
}

type ProjectTotalsResponse struct {
	Data reports.ProjectTotals `json:"data"` // Totals of the project
}

// RegisterProjectRoutes registers the routes for projects with
// the RouterGroup that is passed.
func (co Controller) RegisterProjectRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", OptionsProjectDetail)
	r.DELETE("/:id", co.DeleteProject)

	r.OPTIONS("/:id/totals", OptionsProjectTotals)
	r.GET("/:id/totals", co.GetProjectTotals)

	r.OPTIONS("/:id/assignees", OptionsProjectAssignees)
	r.GET("/:id/assignees", co.GetProjectAssignees)
	r.POST("/:id/assignees", co.CreateProjectAssignee)

	r.OPTIONS("/:id/assignees/:eid", OptionsProjectAssigneeDetail)
	r.PATCH("/:id/assignees/:eid", co.UpdateProjectAssignee)
	r.DELETE("/:id/assignees/:eid", co.DeleteProjectAssignee)
}

// OptionsProjectDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Projects
//	@Success		204
//	@Param			id	path	uint	true	"ID of the project"
//	@Router			/v1/projects/{id} [options]
func OptionsProjectDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// OptionsProjectTotals returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Projects
//	@Success		204
//	@Param			id	path	uint	true	"ID of the project"
//	@Router			/v1/projects/{id}/totals [options]
func OptionsProjectTotals(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsProjectAssignees returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Projects
//	@Success		204
//	@Param			id	path	uint	true	"ID of the project"
//	@Router			/v1/projects/{id}/assignees [options]
func OptionsProjectAssignees(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsProjectAssigneeDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Projects
//	@Success		204
//	@Param			id	path	uint	true	"ID of the project"
//	@Param			eid	path	string	true	"Employee ID"
//	@Router			/v1/projects/{id}/assignees/{eid} [options]
func OptionsProjectAssigneeDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// DeleteProject deletes a project with all its memberships and allocations
//
//	@Summary		Delete project
//	@Description	Deletes a project together with its memberships and allocations
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{object}	ProjectResponse
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		uint	true	"ID of the project"
//	@Router			/v1/projects/{id} [delete]
func (co Controller) DeleteProject(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	project, err := models.DeleteProject(co.DB.WithContext(c.Request.Context()), id)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	co.invalidateReports(c)
	c.JSON(http.StatusOK, ProjectResponse{Data: project})
}

// GetProjectTotals returns the revenue, cost and margin of a project
//
//	@Summary		Project totals
//	@Description	Sums the billable and actual cost of all allocations of the project
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{object}	ProjectTotalsResponse
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		uint	true	"ID of the project"
//	@Router			/v1/projects/{id}/totals [get]
func (co Controller) GetProjectTotals(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	totals, err := co.Reports.ProjectTotals(c.Request.Context(), id)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, ProjectTotalsResponse{Data: totals})
}

// GetProjectAssignees returns the people on a project
//
//	@Summary		List assignees
//	@Description	Returns every member of the project with their role and allocation, if any
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{object}	AssigneeListResponse
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		uint	true	"ID of the project"
//	@Router			/v1/projects/{id}/assignees [get]
func (co Controller) GetProjectAssignees(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	assignees, err := models.ProjectAssignees(co.DB.WithContext(c.Request.Context()), id)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, AssigneeListResponse{Data: assignees})
}

// CreateProjectAssignee adds a person to a project
//
//	@Summary		Add assignee
//	@Description	Adds a person to the project. A project has at most one Project Manager.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	MembershipResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		409			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			id			path		uint			true	"ID of the project"
//	@Param			assignee	body		AssigneeCreate	true	"Assignee"
//	@Router			/v1/projects/{id}/assignees [post]
func (co Controller) CreateProjectAssignee(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	var data AssigneeCreate
	if err := httputil.BindData(c, &data); err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	membership, err := models.AddMembership(co.DB.WithContext(c.Request.Context()), id, data.EID, data.Role)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, MembershipResponse{Data: membership})
}

// UpdateProjectAssignee changes the role of a person on a project
//
//	@Summary		Change role
//	@Description	Changes the role of a project member. A project has at most one Project Manager.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	MembershipResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		409			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			id			path		uint				true	"ID of the project"
//	@Param			eid			path		string				true	"Employee ID"
//	@Param			assignee	body		AssigneeEditable	true	"Role"
//	@Router			/v1/projects/{id}/assignees/{eid} [patch]
func (co Controller) UpdateProjectAssignee(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	var data AssigneeEditable
	if err := httputil.BindData(c, &data); err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	membership, err := models.ChangeMembershipRole(co.DB.WithContext(c.Request.Context()), id, c.Param("eid"), data.Role)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, MembershipResponse{Data: membership})
}

// DeleteProjectAssignee removes a person and their allocation from a project
//
//	@Summary		Remove assignee
//	@Description	Removes the allocation and membership of a person. The Project Manager cannot be removed.
//	@Tags			Projects
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		uint	true	"ID of the project"
//	@Param			eid	path		string	true	"Employee ID"
//	@Router			/v1/projects/{id}/assignees/{eid} [delete]
func (co Controller) DeleteProjectAssignee(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	if err := models.RemoveAssignment(co.DB.WithContext(c.Request.Context()), id, c.Param("eid")); err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	co.invalidateReports(c)
	c.Status(http.StatusNoContent)
}
