package billing

import (
	"context"
	"time"

	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// Bill is a persisted calculation result for a room and billing period. The
// summary is stored verbatim as produced by the engine; persistence never
// recomputes or adjusts it.
type Bill struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	ResidentID string `json:"resident_id,omitempty"`

	PayDate time.Time `json:"pay_date"`

	Summary *BillSummary `json:"summary"`

	types.BaseModel
}

// NewBill wraps an engine result for persistence.
func NewBill(ctx context.Context, roomID, residentID string, payDate time.Time, summary *BillSummary) *Bill {
	return &Bill{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BILL),
		RoomID:     roomID,
		ResidentID: residentID,
		PayDate:    payDate.UTC(),
		Summary:    summary,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

func (b *Bill) Validate() error {
	if b.RoomID == "" {
		return ierr.NewError("room_id is required").
			WithHint("Room ID is required").
			Mark(ierr.ErrValidation)
	}
	if b.Summary == nil {
		return ierr.NewError("bill summary is required").
			WithHint("Bill summary is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Repository defines the interface for bill persistence operations
type Repository interface {
	Create(ctx context.Context, bill *Bill) error
	Get(ctx context.Context, id string) (*Bill, error)
	List(ctx context.Context, filter *Filter) ([]*Bill, error)
}

// Filter defines query parameters for listing bills. Results are ordered by
// period end, newest first.
type Filter struct {
	RoomID     string     `form:"room_id"`
	ResidentID string     `form:"resident_id"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
}
