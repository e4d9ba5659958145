package reading

import (
	"context"
	"time"
)

// Repository defines the interface for meter reading persistence operations
type Repository interface {
	Create(ctx context.Context, reading *MeterReading) error
	Get(ctx context.Context, id string) (*MeterReading, error)
	// GetLatestByRoom returns the most recent reading for a room, or a not
	// found error when the room has no readings yet.
	GetLatestByRoom(ctx context.Context, roomID string) (*MeterReading, error)
	List(ctx context.Context, filter *Filter) ([]*MeterReading, error)
}

// Filter defines query parameters for listing readings. Results are ordered
// by reading date, newest first.
type Filter struct {
	RoomID    string     `form:"room_id"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Limit     int        `form:"limit"`
	Offset    int        `form:"offset"`
}
