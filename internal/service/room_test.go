package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/room"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/testutil"
)

type RoomServiceSuite struct {
	testutil.BaseServiceTestSuite
	service RoomService
	params  ServiceParams
}

func TestRoomService(t *testing.T) {
	suite.Run(t, new(RoomServiceSuite))
}

func (s *RoomServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		RoomRepo:     s.GetStores().RoomRepo,
		ResidentRepo: s.GetStores().ResidentRepo,
	}
	s.service = NewRoomService(s.params)
}

func (s *RoomServiceSuite) TestCreateRoom() {
	s.Run("valid room", func() {
		resp, err := s.service.CreateRoom(s.GetContext(), dto.CreateRoomRequest{
			RoomNumber:   "201",
			RoomType:     "double",
			RateMonthly:  decimal.NewFromInt(4500),
			RateDaily:    decimal.NewFromInt(250),
			WaterRate:    decimal.NewFromInt(15),
			ElectricRate: decimal.NewFromInt(8),
		})
		s.NoError(err)
		s.NotNil(resp)
		s.Equal("201", resp.Room.RoomNumber)
		s.NotEmpty(resp.Room.ID)
	})

	s.Run("duplicate room number", func() {
		_, err := s.service.CreateRoom(s.GetContext(), dto.CreateRoomRequest{
			RoomNumber: "201",
		})
		s.Error(err)
		s.True(ierr.IsAlreadyExists(err))
	})

	s.Run("missing room number", func() {
		_, err := s.service.CreateRoom(s.GetContext(), dto.CreateRoomRequest{})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	})

	s.Run("negative rate", func() {
		_, err := s.service.CreateRoom(s.GetContext(), dto.CreateRoomRequest{
			RoomNumber:  "202",
			RateMonthly: decimal.NewFromInt(-1),
		})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	})
}

func (s *RoomServiceSuite) TestUpdateRoom() {
	created, err := s.service.CreateRoom(s.GetContext(), dto.CreateRoomRequest{
		RoomNumber:  "301",
		RateMonthly: decimal.NewFromInt(3000),
	})
	s.NoError(err)

	updated, err := s.service.UpdateRoom(s.GetContext(), created.Room.ID, dto.UpdateRoomRequest{
		RateMonthly: lo.ToPtr(decimal.NewFromInt(3200)),
		RoomType:    lo.ToPtr("suite"),
	})
	s.NoError(err)
	s.True(updated.Room.RateMonthly.Equal(decimal.NewFromInt(3200)))
	s.Equal("suite", updated.Room.RoomType)
	s.Equal("301", updated.Room.RoomNumber)
}

func (s *RoomServiceSuite) TestDeleteRoom() {
	created, err := s.service.CreateRoom(s.GetContext(), dto.CreateRoomRequest{
		RoomNumber: "401",
	})
	s.NoError(err)

	s.NoError(s.service.DeleteRoom(s.GetContext(), created.Room.ID))

	_, err = s.service.GetRoom(s.GetContext(), created.Room.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *RoomServiceSuite) TestListRooms() {
	for _, number := range []string{"103", "101", "102"} {
		_, err := s.service.CreateRoom(s.GetContext(), dto.CreateRoomRequest{RoomNumber: number})
		s.NoError(err)
	}

	resp, err := s.service.ListRooms(s.GetContext(), &room.Filter{})
	s.NoError(err)
	s.Len(resp.Items, 3)
	s.Equal("101", resp.Items[0].Room.RoomNumber)
	s.Equal("103", resp.Items[2].Room.RoomNumber)
}
