package dto

import (
	"context"
	"time"

	"github.com/roomledger/roomledger/internal/domain/resident"
	"github.com/roomledger/roomledger/internal/types"
	"github.com/roomledger/roomledger/internal/validator"
)

type CheckInResidentRequest struct {
	RoomID   string `json:"room_id" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`

	RentalType types.RentalType `json:"rental_type" validate:"required"`

	RentDueDay *int `json:"rent_due_day,omitempty" validate:"omitempty,min=1,max=31"`

	CheckInDate time.Time `json:"check_in_date" validate:"required"`
}

func (r *CheckInResidentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.RentalType.Validate()
}

func (r *CheckInResidentRequest) ToResident(ctx context.Context) *resident.Resident {
	res := resident.New(ctx, r.RoomID, r.FullName, r.RentalType, r.CheckInDate)
	res.Phone = r.Phone
	res.Email = r.Email
	res.RentDueDay = r.RentDueDay
	return res
}

type CheckOutResidentRequest struct {
	CheckOutDate time.Time `json:"check_out_date" validate:"required"`
}

func (r *CheckOutResidentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ResidentResponse struct {
	*resident.Resident
}

// ListResidentsResponse represents the response for listing residents
type ListResidentsResponse = types.ListResponse[*ResidentResponse]
