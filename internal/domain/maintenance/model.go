// Package maintenance provides the domain model for room maintenance requests.
package maintenance

import (
	"context"
	"time"

	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// Request is a reported maintenance issue for a room.
type Request struct {
	ID     string `json:"id"`
	RoomID string `json:"room_id"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	RequestStatus types.MaintenanceStatus `json:"request_status"`

	// ResolvedAt is stamped when the request transitions to resolved.
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	types.BaseModel
}

// New creates an open maintenance request.
func New(ctx context.Context, roomID, title, description string) *Request {
	return &Request{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MAINTENANCE),
		RoomID:        roomID,
		Title:         title,
		Description:   description,
		RequestStatus: types.MaintenanceStatusOpen,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

func (r *Request) Validate() error {
	if r.RoomID == "" {
		return ierr.NewError("room_id is required").
			WithHint("Room ID is required").
			Mark(ierr.ErrValidation)
	}
	if r.Title == "" {
		return ierr.NewError("title is required").
			WithHint("Request title is required").
			Mark(ierr.ErrValidation)
	}
	return r.RequestStatus.Validate()
}

// Transition moves the request to the next status, enforcing the allowed
// flow and stamping the resolution time.
func (r *Request) Transition(next types.MaintenanceStatus, at time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !r.RequestStatus.CanTransitionTo(next) {
		return ierr.NewErrorf("cannot transition request from %s to %s", r.RequestStatus, next).
			WithHint("Invalid status transition").
			WithReportableDetails(map[string]any{
				"from": r.RequestStatus,
				"to":   next,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	r.RequestStatus = next
	if next == types.MaintenanceStatusResolved {
		at = at.UTC()
		r.ResolvedAt = &at
	}
	return nil
}

// Repository defines the interface for maintenance request persistence operations
type Repository interface {
	Create(ctx context.Context, request *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter *Filter) ([]*Request, error)
	Update(ctx context.Context, request *Request) error
}

// Filter defines query parameters for listing maintenance requests.
type Filter struct {
	RoomID        string                  `form:"room_id"`
	RequestStatus types.MaintenanceStatus `form:"status"`
	Limit         int                     `form:"limit"`
	Offset        int                     `form:"offset"`
}
