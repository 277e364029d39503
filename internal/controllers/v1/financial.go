package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/workforce-ledger/backend/internal/httputil"
	"github.com/workforce-ledger/backend/internal/models"
)

// FinancialYearCreate is the request body for registering a financial year.
type FinancialYearCreate struct {
	StartYear int `json:"startYear" binding:"required" example:"2024"` // Calendar year the financial year starts in
}

// FinancialRateEditable is the request body for setting a person's rate.
type FinancialRateEditable struct {
	FinancialYear  string              `json:"financialYear" binding:"required" example:"2024-2025"`
	Salary         decimal.NullDecimal `json:"salary" swaggertype:"number" example:"7000"`
	Infrastructure decimal.NullDecimal `json:"infrastructure" swaggertype:"number" example:"40"`
}

type FinancialRateQueryFilter struct {
	Year string `form:"year" binding:"required"` // Financial year label
}

type FinancialYearResponse struct {
	Data models.FinancialYear `json:"data"` // The financial year
}

type FinancialYearListResponse struct {
	Data []models.FinancialYear `json:"data"` // Registered financial years, latest first
}

type FinancialRateResponse struct {
	Data models.FinancialRate `json:"data"` // The stored rate
}

type FinancialRateListResponse struct {
	Data []models.PersonFinancials `json:"data"` // Every person with their rate
}

// RegisterFinancialYearRoutes registers the routes for financial years with
// the RouterGroup that is passed.
func (co Controller) RegisterFinancialYearRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsFinancialYearList)
	r.GET("", co.GetFinancialYears)
	r.POST("", co.CreateFinancialYear)

	r.OPTIONS("/:id", OptionsFinancialYearDetail)
	r.DELETE("/:id", co.DeleteFinancialYear)
}

// RegisterFinancialRateRoutes registers the routes for financial rates with
// the RouterGroup that is passed.
func (co Controller) RegisterFinancialRateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsFinancialRateList)
	r.GET("", co.GetFinancialRates)

	r.OPTIONS("/:eid", OptionsFinancialRateDetail)
	r.POST("/:eid", co.SetFinancialRate)
}

// OptionsFinancialYearList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Financials
//	@Success		204
//	@Router			/v1/financial-years [options]
func OptionsFinancialYearList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsFinancialYearDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Financials
//	@Success		204
//	@Param			id	path	uint	true	"ID of the financial year"
//	@Router			/v1/financial-years/{id} [options]
func OptionsFinancialYearDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// OptionsFinancialRateList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Financials
//	@Success		204
//	@Router			/v1/financial-rates [options]
func OptionsFinancialRateList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsFinancialRateDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Financials
//	@Success		204
//	@Param			eid	path	string	true	"Employee ID"
//	@Router			/v1/financial-rates/{eid} [options]
func OptionsFinancialRateDetail(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GetFinancialYears returns all registered financial years
//
//	@Summary		List financial years
//	@Description	Returns all registered financial years, latest first
//	@Tags			Financials
//	@Produce		json
//	@Success		200	{object}	FinancialYearListResponse
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/financial-years [get]
func (co Controller) GetFinancialYears(c *gin.Context) {
	years, err := models.FinancialYears(co.DB.WithContext(c.Request.Context()))
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, FinancialYearListResponse{Data: years})
}

// CreateFinancialYear registers a financial year
//
//	@Summary		Create financial year
//	@Description	Registers the financial year running from April 1 of the start year to March 31 of the following year
//	@Tags			Financials
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	FinancialYearResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		409		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			year	body		FinancialYearCreate	true	"Financial year"
//	@Router			/v1/financial-years [post]
func (co Controller) CreateFinancialYear(c *gin.Context) {
	var data FinancialYearCreate
	if err := httputil.BindData(c, &data); err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	year, err := models.CreateFinancialYear(co.DB.WithContext(c.Request.Context()), data.StartYear)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, FinancialYearResponse{Data: year})
}

// DeleteFinancialYear removes a financial year from the registry
//
//	@Summary		Delete financial year
//	@Description	Removes a financial year. Rates stored for it are kept.
//	@Tags			Financials
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		uint	true	"ID of the financial year"
//	@Router			/v1/financial-years/{id} [delete]
func (co Controller) DeleteFinancialYear(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	if err := models.DeleteFinancialYear(co.DB.WithContext(c.Request.Context()), id); err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetFinancialRates returns every person with their rate for a financial year
//
//	@Summary		List financial rates
//	@Description	Returns every person with salary, infrastructure cost and hourly cost for the financial year. Figures are null when no rate is stored.
//	@Tags			Financials
//	@Produce		json
//	@Success		200		{object}	FinancialRateListResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			year	query		string	true	"Financial year label, e.g. 2024-2025"
//	@Router			/v1/financial-rates [get]
func (co Controller) GetFinancialRates(c *gin.Context) {
	var filter FinancialRateQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.ErrorResponse(c, httputil.ErrInvalidQuery)
		return
	}

	rates, err := models.FinancialRates(co.DB.WithContext(c.Request.Context()), filter.Year)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, FinancialRateListResponse{Data: rates})
}

// SetFinancialRate creates or updates the rate of a person
//
//	@Summary		Set financial rate
//	@Description	Stores the monthly salary and infrastructure cost of a person for a financial year. The hourly cost is derived from both.
//	@Tags			Financials
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	FinancialRateResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			eid		path		string					true	"Employee ID"
//	@Param			rate	body		FinancialRateEditable	true	"Rate"
//	@Router			/v1/financial-rates/{eid} [post]
func (co Controller) SetFinancialRate(c *gin.Context) {
	var data FinancialRateEditable
	if err := httputil.BindData(c, &data); err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	rate, err := models.SetFinancialRate(co.DB.WithContext(c.Request.Context()), c.Param("eid"), data.FinancialYear, data.Salary, data.Infrastructure)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, FinancialRateResponse{Data: rate})
}
