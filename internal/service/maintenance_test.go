package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/domain/maintenance"
	"github.com/roomledger/roomledger/internal/domain/room"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/testutil"
	"github.com/roomledger/roomledger/internal/types"
)

type MaintenanceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service MaintenanceService
	params  ServiceParams

	testRoom *room.Room
}

func TestMaintenanceService(t *testing.T) {
	suite.Run(t, new(MaintenanceServiceSuite))
}

func (s *MaintenanceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		RoomRepo:        s.GetStores().RoomRepo,
		MaintenanceRepo: s.GetStores().MaintenanceRepo,
	}
	s.service = NewMaintenanceService(s.params)

	s.testRoom = room.New(s.GetContext(), "101", "single")
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), s.testRoom))
}

func (s *MaintenanceServiceSuite) TestRequestLifecycle() {
	created, err := s.service.CreateRequest(s.GetContext(), dto.CreateMaintenanceRequest{
		RoomID: s.testRoom.ID,
		Title:  "leaking faucet",
	})
	s.NoError(err)
	s.Equal(types.MaintenanceStatusOpen, created.Request.RequestStatus)
	s.Nil(created.Request.ResolvedAt)

	inProgress, err := s.service.UpdateStatus(s.GetContext(), created.Request.ID, dto.UpdateMaintenanceStatusRequest{
		Status: types.MaintenanceStatusInProgress,
	})
	s.NoError(err)
	s.Equal(types.MaintenanceStatusInProgress, inProgress.Request.RequestStatus)

	resolved, err := s.service.UpdateStatus(s.GetContext(), created.Request.ID, dto.UpdateMaintenanceStatusRequest{
		Status: types.MaintenanceStatusResolved,
	})
	s.NoError(err)
	s.Equal(types.MaintenanceStatusResolved, resolved.Request.RequestStatus)
	s.NotNil(resolved.Request.ResolvedAt)

	// Resolved requests do not reopen
	_, err = s.service.UpdateStatus(s.GetContext(), created.Request.ID, dto.UpdateMaintenanceStatusRequest{
		Status: types.MaintenanceStatusOpen,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MaintenanceServiceSuite) TestCreateRequestUnknownRoom() {
	_, err := s.service.CreateRequest(s.GetContext(), dto.CreateMaintenanceRequest{
		RoomID: "room_missing",
		Title:  "broken window",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *MaintenanceServiceSuite) TestListRequestsByStatus() {
	for _, title := range []string{"first", "second"} {
		_, err := s.service.CreateRequest(s.GetContext(), dto.CreateMaintenanceRequest{
			RoomID: s.testRoom.ID,
			Title:  title,
		})
		s.NoError(err)
	}

	open, err := s.service.ListRequests(s.GetContext(), &maintenance.Filter{
		RequestStatus: types.MaintenanceStatusOpen,
	})
	s.NoError(err)
	s.Len(open.Items, 2)

	resolved, err := s.service.ListRequests(s.GetContext(), &maintenance.Filter{
		RequestStatus: types.MaintenanceStatusResolved,
	})
	s.NoError(err)
	s.Len(resolved.Items, 0)
}
