package room

import (
	"context"

	"github.com/roomledger/roomledger/internal/types"
)

// Repository defines the interface for room persistence operations
type Repository interface {
	Create(ctx context.Context, room *Room) error
	Get(ctx context.Context, id string) (*Room, error)
	GetByNumber(ctx context.Context, roomNumber string) (*Room, error)
	List(ctx context.Context, filter *Filter) ([]*Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
}

// Filter defines query parameters for listing rooms.
type Filter struct {
	RoomIDs  []string     `form:"room_ids"`
	RoomType string       `form:"room_type"`
	Status   types.Status `form:"status"`
	Limit    int          `form:"limit"`
	Offset   int          `form:"offset"`
}
