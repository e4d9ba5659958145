package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/resident"
	"github.com/roomledger/roomledger/internal/domain/room"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/testutil"
	"github.com/roomledger/roomledger/internal/types"
)

type ResidentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ResidentService
	params  ServiceParams

	testRoom *room.Room
}

func TestResidentService(t *testing.T) {
	suite.Run(t, new(ResidentServiceSuite))
}

func (s *ResidentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		RoomRepo:     s.GetStores().RoomRepo,
		ResidentRepo: s.GetStores().ResidentRepo,
	}
	s.service = NewResidentService(s.params)

	s.testRoom = room.New(s.GetContext(), "101", "single")
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), s.testRoom))
}

func (s *ResidentServiceSuite) checkIn(name string) *resident.Resident {
	resp, err := s.service.CheckIn(s.GetContext(), dto.CheckInResidentRequest{
		RoomID:      s.testRoom.ID,
		FullName:    name,
		RentalType:  types.RentalTypeMonthly,
		RentDueDay:  lo.ToPtr(5),
		CheckInDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	return resp.Resident
}

func (s *ResidentServiceSuite) TestCheckIn() {
	res := s.checkIn("First Resident")
	s.Equal(s.testRoom.ID, res.RoomID)
	s.True(res.IsActive())

	s.Run("occupied room rejects a second check-in", func() {
		_, err := s.service.CheckIn(s.GetContext(), dto.CheckInResidentRequest{
			RoomID:      s.testRoom.ID,
			FullName:    "Second Resident",
			RentalType:  types.RentalTypeMonthly,
			CheckInDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		})
		s.Error(err)
		s.True(ierr.IsInvalidOperation(err))
	})

	s.Run("unknown room", func() {
		_, err := s.service.CheckIn(s.GetContext(), dto.CheckInResidentRequest{
			RoomID:      "room_missing",
			FullName:    "Nobody",
			RentalType:  types.RentalTypeDaily,
			CheckInDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		})
		s.Error(err)
		s.True(ierr.IsNotFound(err))
	})
}

func (s *ResidentServiceSuite) TestCheckOut() {
	res := s.checkIn("Leaving Resident")

	resp, err := s.service.CheckOut(s.GetContext(), res.ID, dto.CheckOutResidentRequest{
		CheckOutDate: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.False(resp.Resident.IsActive())

	s.Run("double check-out", func() {
		_, err := s.service.CheckOut(s.GetContext(), res.ID, dto.CheckOutResidentRequest{
			CheckOutDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		})
		s.Error(err)
		s.True(ierr.IsInvalidOperation(err))
	})

	s.Run("room is free again", func() {
		next := s.checkIn("Next Resident")
		s.True(next.IsActive())
	})
}

func (s *ResidentServiceSuite) TestCheckOutBeforeCheckIn() {
	res := s.checkIn("Resident")

	_, err := s.service.CheckOut(s.GetContext(), res.ID, dto.CheckOutResidentRequest{
		CheckOutDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ResidentServiceSuite) TestListResidentsActiveOnly() {
	first := s.checkIn("First")
	_, err := s.service.CheckOut(s.GetContext(), first.ID, dto.CheckOutResidentRequest{
		CheckOutDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.checkIn("Second")

	all, err := s.service.ListResidents(s.GetContext(), &resident.Filter{RoomID: s.testRoom.ID})
	s.NoError(err)
	s.Len(all.Items, 2)

	active, err := s.service.ListResidents(s.GetContext(), &resident.Filter{RoomID: s.testRoom.ID, ActiveOnly: true})
	s.NoError(err)
	s.Len(active.Items, 1)
	s.Equal("Second", active.Items[0].Resident.FullName)
}
