package types

import (
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/samber/lo"
)

// MaintenanceStatus tracks the lifecycle of a maintenance request.
type MaintenanceStatus string

const (
	MaintenanceStatusOpen       MaintenanceStatus = "open"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusResolved   MaintenanceStatus = "resolved"
)

func (s MaintenanceStatus) Validate() error {
	allowed := []MaintenanceStatus{
		MaintenanceStatusOpen,
		MaintenanceStatusInProgress,
		MaintenanceStatusResolved,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewErrorf("invalid maintenance status: %s", s).
			WithHint("Status must be one of open, in_progress, resolved").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CanTransitionTo enforces the open -> in_progress -> resolved flow, allowing
// requests to be resolved directly from open.
func (s MaintenanceStatus) CanTransitionTo(next MaintenanceStatus) bool {
	switch s {
	case MaintenanceStatusOpen:
		return next == MaintenanceStatusInProgress || next == MaintenanceStatusResolved
	case MaintenanceStatusInProgress:
		return next == MaintenanceStatusResolved
	default:
		return false
	}
}
