package allocation

import (
	"strings"

	"github.com/workforce-ledger/backend/internal/models"
	"gorm.io/gorm"
)

// Submit validates a batch against the project and person directories,
// calculates it and stores the allocations with their memberships.
//
// Validation happens before any write. Nothing is stored unless the whole
// batch is valid.
func Submit(db *gorm.DB, batch Batch) (Result, error) {
	if _, err := models.GetProject(db, batch.ProjectID); err != nil {
		return Result{}, err
	}

	roles := make(map[string]string)
	for _, a := range batch.Assignments {
		if strings.TrimSpace(a.PersonEID) == "" {
			continue
		}

		if _, err := models.GetPerson(db, a.PersonEID); err != nil {
			return Result{}, err
		}

		if role := strings.TrimSpace(a.Role); role != "" {
			roles[a.PersonEID] = role
		}
	}

	result, err := Calculate(batch, models.RateResolver{DB: db})
	if err != nil {
		return Result{}, err
	}

	saved, err := models.SaveAllocations(db, batch.ProjectID, result.Allocations, roles)
	if err != nil {
		return Result{}, err
	}

	result.Allocations = saved
	return result, nil
}
