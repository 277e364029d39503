package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workforce-ledger/backend/internal/httputil"
	"github.com/workforce-ledger/backend/internal/models"
	"github.com/workforce-ledger/backend/internal/reports"
	"github.com/workforce-ledger/backend/internal/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var errWindowMissing = fmt.Errorf("%w: either the year or both start and end must be set", models.ErrValidation)

type FinancialYearReportQuery struct {
	Year  string     `form:"year" example:"2024-2025"` // Financial year label
	Start types.Date `form:"start"`                    // First day of a custom window
	End   types.Date `form:"end"`                      // Last day of a custom window
	Name  string     `form:"name" example:"Apollo*"`   // Glob pattern for project names
}

// window resolves the report window from the query. The year takes
// precedence over start and end.
func (q FinancialYearReportQuery) window() (types.Window, error) {
	if q.Year != "" {
		year, err := types.ParseFinancialYear(q.Year)
		if err != nil {
			return types.Window{}, fmt.Errorf("%w: %w", models.ErrValidation, err)
		}
		return year.Window(), nil
	}

	if q.Start.IsZero() || q.End.IsZero() {
		return types.Window{}, errWindowMissing
	}

	window, err := types.NewWindow(q.Start, q.End)
	if err != nil {
		return types.Window{}, fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	return window, nil
}

type MonthwiseReportQuery struct {
	View string `form:"view" example:"department"` // One of org, department, project
	ID   uint   `form:"id" example:"1"`            // Department or project ID
	Year string `form:"year" example:"2024-2025"`  // Financial year of the allocations
	Name string `form:"name" example:"Apollo*"`    // Glob pattern for project names
}

func (q MonthwiseReportQuery) query() (reports.MonthwiseQuery, error) {
	scope, err := reports.ParseScope(q.View)
	if err != nil {
		return reports.MonthwiseQuery{}, err
	}

	if q.Year != "" {
		if _, err := types.ParseFinancialYear(q.Year); err != nil {
			return reports.MonthwiseQuery{}, fmt.Errorf("%w: %w", models.ErrValidation, err)
		}
	}

	return reports.MonthwiseQuery{
		Scope:         scope,
		ID:            q.ID,
		FinancialYear: q.Year,
		NamePattern:   q.Name,
	}, nil
}

type FinancialYearReportResponse struct {
	Data reports.FinancialYearReport `json:"data"` // Report of all projects in the window
}

type MonthwiseReportResponse struct {
	Data reports.MonthwiseReport `json:"data"` // Month-wise report
}

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/financial-year", OptionsReport)
	r.GET("/financial-year", co.GetFinancialYearReport)

	r.OPTIONS("/monthwise", OptionsReport)
	r.GET("/monthwise", co.GetMonthwiseReport)

	r.OPTIONS("/monthwise.xlsx", OptionsReport)
	r.GET("/monthwise.xlsx", co.GetMonthwiseSpreadsheet)
}

// OptionsReport returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Reports
//	@Success		204
//	@Router			/v1/reports/financial-year [options]
//	@Router			/v1/reports/monthwise [options]
//	@Router			/v1/reports/monthwise.xlsx [options]
func OptionsReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetFinancialYearReport returns the totals of all projects in a financial year
//
//	@Summary		Financial year report
//	@Description	Lists every project whose date range overlaps the window with its totals, the department roll-up and the grand total
//	@Tags			Reports
//	@Produce		json
//	@Success		200		{object}	FinancialYearReportResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			year	query		string	false	"Financial year label, e.g. 2024-2025"
//	@Param			start	query		string	false	"First day of the window, YYYY-MM-DD"
//	@Param			end		query		string	false	"Last day of the window, YYYY-MM-DD"
//	@Param			name	query		string	false	"Glob pattern for project names"
//	@Router			/v1/reports/financial-year [get]
func (co Controller) GetFinancialYearReport(c *gin.Context) {
	var q FinancialYearReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httputil.ErrorResponse(c, httputil.ErrInvalidQuery)
		return
	}

	window, err := q.window()
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	report, err := co.Reports.FinancialYearReport(c.Request.Context(), reports.FinancialYearQuery{
		Window:      window,
		NamePattern: q.Name,
	})
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, FinancialYearReportResponse{Data: report})
}

func (co Controller) monthwise(c *gin.Context) (reports.MonthwiseReport, error) {
	var q MonthwiseReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return reports.MonthwiseReport{}, httputil.ErrInvalidQuery
	}

	query, err := q.query()
	if err != nil {
		return reports.MonthwiseReport{}, err
	}

	return co.Reports.Monthwise(c.Request.Context(), query)
}

// GetMonthwiseReport returns revenue, cost and margin per calendar month
//
//	@Summary		Month-wise report
//	@Description	Buckets every allocation by the month of its start date for the organisation, a department or a project
//	@Tags			Reports
//	@Produce		json
//	@Success		200		{object}	MonthwiseReportResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			view	query		string	false	"One of org, department, project"
//	@Param			id		query		uint	false	"Department or project ID"
//	@Param			year	query		string	false	"Financial year of the allocations, e.g. 2024-2025"
//	@Param			name	query		string	false	"Glob pattern for project names"
//	@Router			/v1/reports/monthwise [get]
func (co Controller) GetMonthwiseReport(c *gin.Context) {
	report, err := co.monthwise(c)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthwiseReportResponse{Data: report})
}

// GetMonthwiseSpreadsheet exports the month-wise report as a spreadsheet
//
//	@Summary		Month-wise spreadsheet
//	@Description	Returns the month-wise report as an Office Open XML workbook
//	@Tags			Reports
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success		200
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			view	query		string	false	"One of org, department, project"
//	@Param			id		query		uint	false	"Department or project ID"
//	@Param			year	query		string	false	"Financial year of the allocations, e.g. 2024-2025"
//	@Param			name	query		string	false	"Glob pattern for project names"
//	@Router			/v1/reports/monthwise.xlsx [get]
func (co Controller) GetMonthwiseSpreadsheet(c *gin.Context) {
	report, err := co.monthwise(c)
	if err != nil {
		httputil.ErrorResponse(c, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteMonthwiseXLSX(&buf, report, co.CurrencySymbol); err != nil {
		httputil.ErrorResponse(c, errors.Join(models.ErrGeneral, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="monthwise-%s.xlsx"`, report.Scope))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
