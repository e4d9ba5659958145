package dto

import (
	"context"

	"github.com/roomledger/roomledger/internal/domain/maintenance"
	"github.com/roomledger/roomledger/internal/types"
	"github.com/roomledger/roomledger/internal/validator"
)

type CreateMaintenanceRequest struct {
	RoomID      string `json:"room_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

func (r *CreateMaintenanceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateMaintenanceRequest) ToRequest(ctx context.Context) *maintenance.Request {
	return maintenance.New(ctx, r.RoomID, r.Title, r.Description)
}

type UpdateMaintenanceStatusRequest struct {
	Status types.MaintenanceStatus `json:"status" validate:"required"`
}

func (r *UpdateMaintenanceStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Status.Validate()
}

type MaintenanceResponse struct {
	*maintenance.Request
}

// ListMaintenanceResponse represents the response for listing maintenance requests
type ListMaintenanceResponse = types.ListResponse[*MaintenanceResponse]
