package dashboarding

import (
	"errors"
	"fmt"
)

var (
	ErrSessionRequired   = errors.New("session is required")
	ErrDateRangeRequired = errors.New("date range is required")
	ErrSettingsStore     = errors.New("error accessing settings store")
)

// DashboardError é um erro com o código de API correspondente
type DashboardError struct {
	Err     error
	Code    string
	Details string
}

func (e *DashboardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DashboardError) Unwrap() error {
	return e.Err
}

func NewDashboardError(err error, code string, details string) *DashboardError {
	return &DashboardError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
