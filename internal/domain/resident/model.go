// Package resident provides the domain model for people renting rooms.
package resident

import (
	"context"
	"time"

	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// Resident is a person occupying a room under a rental agreement.
type Resident struct {
	ID     string `json:"id"`
	RoomID string `json:"room_id"`

	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`

	RentalType types.RentalType `json:"rental_type"`

	// RentDueDay is the day of month rent is due, for monthly rentals
	// with a late policy.
	RentDueDay *int `json:"rent_due_day,omitempty"`

	CheckInDate time.Time `json:"check_in_date"`

	// CheckOutDate is set when the resident leaves; nil while active.
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`

	types.BaseModel
}

// New creates a resident with base model fields populated from context.
func New(ctx context.Context, roomID, fullName string, rentalType types.RentalType, checkIn time.Time) *Resident {
	return &Resident{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RESIDENT),
		RoomID:      roomID,
		FullName:    fullName,
		RentalType:  rentalType,
		CheckInDate: checkIn.UTC(),
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

// IsActive reports whether the resident currently occupies the room.
func (r *Resident) IsActive() bool {
	return r.CheckOutDate == nil
}

func (r *Resident) Validate() error {
	if r.RoomID == "" {
		return ierr.NewError("room_id is required").
			WithHint("Room ID is required").
			Mark(ierr.ErrValidation)
	}
	if r.FullName == "" {
		return ierr.NewError("full_name is required").
			WithHint("Resident name is required").
			Mark(ierr.ErrValidation)
	}
	if err := r.RentalType.Validate(); err != nil {
		return err
	}
	if r.RentDueDay != nil && (*r.RentDueDay < 1 || *r.RentDueDay > 31) {
		return ierr.NewErrorf("rent due day %d is out of range", *r.RentDueDay).
			WithHint("Rent due day must be between 1 and 31").
			Mark(ierr.ErrValidation)
	}
	if r.CheckInDate.IsZero() {
		return ierr.NewError("check_in_date is required").
			WithHint("Check-in date is required").
			Mark(ierr.ErrValidation)
	}
	if r.CheckOutDate != nil && r.CheckOutDate.Before(r.CheckInDate) {
		return ierr.NewError("check_out_date precedes check_in_date").
			WithHint("Check-out must not be before check-in").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Repository defines the interface for resident persistence operations
type Repository interface {
	Create(ctx context.Context, resident *Resident) error
	Get(ctx context.Context, id string) (*Resident, error)
	// GetActiveByRoom returns the resident currently occupying a room.
	GetActiveByRoom(ctx context.Context, roomID string) (*Resident, error)
	List(ctx context.Context, filter *Filter) ([]*Resident, error)
	Update(ctx context.Context, resident *Resident) error
}

// Filter defines query parameters for listing residents.
type Filter struct {
	RoomID     string `form:"room_id"`
	ActiveOnly bool   `form:"active_only"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}
