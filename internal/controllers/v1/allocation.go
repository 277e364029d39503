package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workforce-ledger/backend/internal/allocation"
	"github.com/workforce-ledger/backend/internal/httputil"
	"github.com/workforce-ledger/backend/internal/models"
)

// AllocationBatch is the request body for submitting the allocations of a project.
type AllocationBatch struct {
	ProjectID   uint                    `json:"projectId" binding:"required" example:"1"`
	Assignments []allocation.Assignment `json:"assignments" binding:"required"`
}

type AllocationBatchResponse struct {
	Data allocation.Result `json:"data"` // The stored allocations and the sum of the submitted percentages
}

type AllocationListResponse struct {
	Data []models.Allocation `json:"data"` // List of allocations
}

type AllocationQueryFilter struct {
	ProjectID uint   `form:"project"` // Filter by project ID
	PersonEID string `form:"person"`  // Filter by employee ID
}

// RegisterAllocationRoutes registers the routes for allocations with
// the RouterGroup that is passed.
func (co Controller) RegisterAllocationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAllocationList)
	r.GET("", co.GetAllocations)
	r.POST("", co.CreateAllocations)
}

// OptionsAllocationList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Allocations
//	@Success		204
//	@Router			/v1/allocations [options]
func OptionsAllocationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// CreateAllocations submits a batch of allocations for one project
//
//	@Summary		Submit allocations
//	@Description	Validates and stores the allocations of a project. The whole batch is rejected if any assignment is invalid or a person's percentages add up to more than 100.
//	@Tags			Allocations
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	AllocationBatchResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		409		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			batch	body		AllocationBatch	true	"Allocations"
//	@Router			/v1/allocations [post]
func (co Controller) CreateAllocations(c *gin.Context) {
	var batch AllocationBatch
	if err := httputil.BindData(c, &batch); err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	result, err := allocation.Submit(co.DB.WithContext(c.Request.Context()), allocation.Batch{
		ProjectID:   batch.ProjectID,
		Assignments: batch.Assignments,
	})
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	co.invalidateReports(c)
	c.JSON(http.StatusCreated, AllocationBatchResponse{Data: result})
}

// GetAllocations returns the stored allocations
//
//	@Summary		List allocations
//	@Description	Returns the stored allocations, optionally filtered by project and person
//	@Tags			Allocations
//	@Produce		json
//	@Success		200		{object}	AllocationListResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			project	query		uint	false	"Filter by project ID"
//	@Param			person	query		string	false	"Filter by employee ID"
//	@Router			/v1/allocations [get]
func (co Controller) GetAllocations(c *gin.Context) {
	var filter AllocationQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.ErrorResponse(c, httputil.ErrInvalidQuery)
		return
	}

	allocations, err := models.Allocations(co.DB.WithContext(c.Request.Context()), models.AllocationFilter{
		ProjectID: filter.ProjectID,
		PersonEID: filter.PersonEID,
	})
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, AllocationListResponse{Data: allocations})
}
