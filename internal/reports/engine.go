// Package reports aggregates stored allocations into revenue, cost and
// margin figures.
package reports

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"github.com/workforce-ledger/backend/internal/models"
	"gorm.io/gorm"
)

// Totals are the aggregated figures of a set of allocations.
// Revenue is the billable cost, cost the actual cost.
type Totals struct {
	Revenue decimal.Decimal `json:"revenue" swaggertype:"number" example:"1200.00"`
	Cost    decimal.Decimal `json:"cost" swaggertype:"number" example:"480.00"`
	Margin  decimal.Decimal `json:"margin" swaggertype:"number" example:"720.00"`
}

// Add returns the totals with the allocation added.
func (t Totals) Add(a models.Allocation) Totals {
	return Totals{
		Revenue: t.Revenue.Add(a.BillableCost),
		Cost:    t.Cost.Add(a.ActualCost),
		Margin:  t.Margin.Add(a.Margin()),
	}
}

// Merge returns the sum of both totals.
func (t Totals) Merge(o Totals) Totals {
	return Totals{
		Revenue: t.Revenue.Add(o.Revenue),
		Cost:    t.Cost.Add(o.Cost),
		Margin:  t.Margin.Add(o.Margin),
	}
}

// Engine computes reports from the database.
type Engine struct {
	db    *gorm.DB
	cache Cache
}

// NewEngine returns an engine reading from db. A nil cache disables caching.
func NewEngine(db *gorm.DB, cache Cache) *Engine {
	if cache == nil {
		cache = NoCache{}
	}

	return &Engine{db: db, cache: cache}
}

// Invalidate discards all cached reports. It must be called after every
// mutation of allocations, projects or rates.
func (e *Engine) Invalidate(ctx context.Context) {
	if err := e.cache.Invalidate(ctx); err != nil {
		log.Error().Err(err).Msg("could not invalidate report cache")
	}
}

// cached returns the cached value for key or computes and stores it.
// Cache failures are logged and the report is computed from the database.
func cached[T any](ctx context.Context, e *Engine, key string, compute func(db *gorm.DB) (T, error)) (T, error) {
	var value T

	generation, err := e.cache.Generation(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("report cache unavailable")
		return compute(e.db.WithContext(ctx))
	}

	hit, err := e.cache.Get(ctx, generation, key, &value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report cache read failed")
	}
	if hit && err == nil {
		return value, nil
	}

	value, err = compute(e.db.WithContext(ctx))
	if err != nil {
		return value, err
	}

	if err := e.cache.Set(ctx, generation, key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}

	return value, nil
}

// matchesName reports whether the project name matches the glob pattern.
// An empty pattern matches everything.
func matchesName(pattern, name string) bool {
	return pattern == "" || glob.Glob(pattern, name)
}

// allocationsByProject loads the allocations of the given projects.
func allocationsByProject(db *gorm.DB, projectIDs []uint) (map[uint][]models.Allocation, error) {
	result := make(map[uint][]models.Allocation, len(projectIDs))
	if len(projectIDs) == 0 {
		return result, nil
	}

	var allocations []models.Allocation
	err := db.Where("project_id IN ?", projectIDs).Order("project_id, person_eid").Find(&allocations).Error
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}

	for _, a := range allocations {
		result[a.ProjectID] = append(result[a.ProjectID], a)
	}

	return result, nil
}

func projectIDs(projects []models.Project) []uint {
	ids := make([]uint, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}

// departmentNames maps department IDs to their names.
func departmentNames(db *gorm.DB) (map[uint]string, error) {
	var departments []models.Department
	if err := db.Find(&departments).Error; err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	return names, nil
}
