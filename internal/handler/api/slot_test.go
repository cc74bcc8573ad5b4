//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"cridaa-booking/internal/handler/api"
	resdto "cridaa-booking/internal/handler/dto/response"
	"cridaa-booking/internal/pkg/errs"
	"cridaa-booking/internal/usecase"
	"cridaa-booking/internal/usecase/queries"
	"cridaa-booking/tests/common/builder"
	"cridaa-booking/tests/common/httptest"
	queriesmock "cridaa-booking/tests/mock/queries"
	usecasemock "cridaa-booking/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SlotHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockBooking *usecasemock.MockBookingCommands
	mockQueries *queriesmock.MockSlotQueries
	handler     *api.SlotHandler
	userID      uuid.UUID
}

func (s *SlotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBooking = usecasemock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.handler = api.NewSlotHandler(s.mockBooking, s.mockQueries)
	s.userID = uuid.New()

	// Stand-in for the auth middleware
	withUser := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			if c.GetHeader("Authorization") != "" {
				c.Set("user_id", s.userID)
			}
			h(c)
		}
	}

	s.router.GET("/slots", s.handler.ListAvailable)
	s.router.GET("/slots/mine", withUser(s.handler.Mine))
	s.router.POST("/slots/:id/book", withUser(s.handler.Book))
	s.router.DELETE("/slots/:id/book", withUser(s.handler.Cancel))
}

func (s *SlotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSlotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SlotHandlerTestSuite))
}

func (s *SlotHandlerTestSuite) slotView() queries.SlotView {
	sl, err := builder.NewSlotBuilder().BuildDomain()
	s.Require().NoError(err)
	return *queries.FromSlot(sl)
}

func (s *SlotHandlerTestSuite) TestListAvailable() {
	s.Run("ok", func() {
		view := s.slotView()
		s.mockQueries.EXPECT().ListAvailable(gomock.Any()).Return([]queries.SlotView{view}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots", nil, "")

		var resp resdto.SlotListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Require().Len(resp.Slots, 1)
		s.Equal(view.ID, resp.Slots[0].ID)
		s.Equal("available", resp.Slots[0].Status)
	})

	s.Run("store failure maps to 503", func() {
		s.mockQueries.EXPECT().ListAvailable(gomock.Any()).
			Return(nil, usecase.ErrStoreUnavailable)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusServiceUnavailable, "unavailable")
	})
}

func (s *SlotHandlerTestSuite) TestMine() {
	s.Run("ok", func() {
		s.mockQueries.EXPECT().ListOwnedBy(gomock.Any(), s.userID).
			Return([]queries.SlotView{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots/mine", nil, "some-token")

		var resp resdto.SlotListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp.Slots)
	})

	s.Run("unauthenticated maps to 401", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots/mine", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "not authenticated")
	})
}

func (s *SlotHandlerTestSuite) TestBook() {
	slotID := uuid.New()
	path := "/slots/" + slotID.String() + "/book"

	s.Run("ok", func() {
		booked, err := builder.NewSlotBuilder().BuildBooked(s.userID, time.Now())
		s.Require().NoError(err)
		s.mockBooking.EXPECT().Book(gomock.Any(), slotID, s.userID).Return(booked, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, nil, "some-token")

		var resp resdto.BookSlotResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("Slot booked successfully", resp.Message)
		s.Require().NotNil(resp.Slot)
		s.Equal("booked", resp.Slot.Status)
		s.Require().NotNil(resp.Slot.OwnerID)
		s.Equal(s.userID, *resp.Slot.OwnerID)
	})

	s.Run("invalid id maps to 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/slots/not-a-uuid/book", nil, "some-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid slot ID")
	})

	s.Run("unauthenticated maps to 401", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "not authenticated")
	})

	// Conflict and infra errors arrive marked onto the store's cause, the
	// way BookingCommands produces them; the mapping must see through that.
	errorCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"unknown slot", usecase.ErrSlotNotFound, http.StatusNotFound, "Slot not found"},
		{"lost race", errs.Mark(errs.New("slot status changed"), usecase.ErrAlreadyBooked), http.StatusConflict, "already booked"},
		{"store down", errs.Mark(errs.New("connection refused"), usecase.ErrStoreUnavailable), http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.mockBooking.EXPECT().Book(gomock.Any(), slotID, s.userID).Return(nil, tc.err)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, nil, "some-token")
			httptest.AssertErrorResponse(s.T(), w, tc.wantStatus, tc.wantMsg)
		})
	}
}

func (s *SlotHandlerTestSuite) TestCancel() {
	slotID := uuid.New()
	path := "/slots/" + slotID.String() + "/book"

	s.Run("ok", func() {
		released, err := builder.NewSlotBuilder().BuildDomain()
		s.Require().NoError(err)
		s.mockBooking.EXPECT().Cancel(gomock.Any(), slotID, s.userID).Return(released, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, path, nil, "some-token")

		var resp resdto.CancelSlotResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("Booking cancelled successfully", resp.Message)
		s.Require().NotNil(resp.Slot)
		s.Equal("available", resp.Slot.Status)
		s.Nil(resp.Slot.OwnerID)
	})

	errorCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"unknown slot", usecase.ErrSlotNotFound, http.StatusNotFound, "Slot not found"},
		{"foreign booking", usecase.ErrNotSlotOwner, http.StatusForbidden, "another user"},
		{"not booked", errs.Mark(errs.New("slot status changed"), usecase.ErrSlotNotBooked), http.StatusConflict, "not booked"},
		{"store down", errs.Mark(errs.New("connection refused"), usecase.ErrStoreUnavailable), http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.mockBooking.EXPECT().Cancel(gomock.Any(), slotID, s.userID).Return(nil, tc.err)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, path, nil, "some-token")
			httptest.AssertErrorResponse(s.T(), w, tc.wantStatus, tc.wantMsg)
		})
	}
}
