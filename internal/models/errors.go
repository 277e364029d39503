package models

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrValidation       = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrForbidden        = errors.New("forbidden")
)

var (
	ErrAlreadyAssigned           = fmt.Errorf("%w: the person is already assigned to this project", ErrConflict)
	ErrProjectManagerExists      = fmt.Errorf("%w: this project already has a Project Manager", ErrConflict)
	ErrProjectManagerRemoval     = fmt.Errorf("%w: a Project Manager cannot be removed from a project, assign the role to someone else first", ErrForbidden)
	ErrProjectManagerDemotion    = fmt.Errorf("%w: the role of a Project Manager cannot be changed with an allocation, update the assignee instead", ErrForbidden)
	ErrFinancialYearExists       = fmt.Errorf("%w: this financial year already exists", ErrConflict)
	ErrReferenceNotFound         = fmt.Errorf("%w: a resource ID you specified does not identify an existing resource", ErrValidation)
	ErrHourlyCostNotSet          = fmt.Errorf("%w: the hourly cost is not set, salary and infrastructure are both required", ErrValidation)
	ErrPersonRoleInvalid         = fmt.Errorf("%w: the person role is not one of employee, department_manager, project_manager, admin, financial_analyst", ErrValidation)
	ErrMembershipRoleEmpty       = fmt.Errorf("%w: the role must not be empty", ErrValidation)
	ErrFinancialYearStartInvalid = fmt.Errorf("%w: the start year must be between 1900 and 9998", ErrValidation)
)

// Kind returns a machine readable name for the kind of err.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrResourceNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "internal"
	}
}
