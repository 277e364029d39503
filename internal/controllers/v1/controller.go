// Package v1 implements the HTTP handlers of the v1 API.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/workforce-ledger/backend/internal/reports"
	"gorm.io/gorm"
)

// Controller holds the dependencies of all handlers.
type Controller struct {
	DB      *gorm.DB
	Reports *reports.Engine

	// CurrencySymbol is used for money cells in spreadsheet exports
	CurrencySymbol string
}

// invalidateReports discards cached reports after a mutation.
func (co Controller) invalidateReports(c *gin.Context) {
	co.Reports.Invalidate(c.Request.Context())
}

// RegisterRoutes registers all v1 resources with the group.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterAllocationRoutes(r.Group("/allocations"))
	co.RegisterProjectRoutes(r.Group("/projects"))
	co.RegisterDepartmentRoutes(r.Group("/departments"))
	co.RegisterManagerRoutes(r.Group("/managers"))
	co.RegisterReportRoutes(r.Group("/reports"))
	co.RegisterFinancialYearRoutes(r.Group("/financial-years"))
	co.RegisterFinancialRateRoutes(r.Group("/financial-rates"))
	co.RegisterActivityRoutes(r.Group("/activities"))
}
