//go:build unit

package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/handler/api"
	resdto "parking-booking/internal/handler/dto/response"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/queries"
	"parking-booking/tests/common/builder"
	"parking-booking/tests/common/httptest"
	"parking-booking/tests/common/testutil"
	commandsmock "parking-booking/tests/mock/commands"
	queriesmock "parking-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleUser)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.Create)
	s.router.GET("/bookings", authMiddleware, s.handler.ListMine)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	start := b.StartTime
	expectedResult := &commands.CreateBookingResult{
		BookingID:     b.ID,
		LotID:         b.LotID,
		SlotID:        b.SlotID,
		SlotNumber:    b.SlotNumber,
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		EstimatedCost: booking.NewMoney(1000),
	}

	bound := []testCaseBooking{
		{name: "hours boundary OK (1)", mutate: testutil.Field("hours", 1), expectCode: http.StatusCreated},
		{name: "hours boundary OK (720)", mutate: testutil.Field("hours", 720), expectCode: http.StatusCreated},
		{name: "hours boundary invalid (0)", mutate: testutil.Field("hours", 0), expectCode: http.StatusBadRequest},
		{name: "hours boundary invalid (721)", mutate: testutil.Field("hours", 721), expectCode: http.StatusBadRequest},
		{name: "hours negative", mutate: testutil.Field("hours", -2), expectCode: http.StatusBadRequest},
		{name: "vehicle number length OK (32 chars)", mutate: testutil.Field("vehicle_number", strings.Repeat("A", 32)), expectCode: http.StatusCreated},
		{name: "vehicle number length invalid (33 chars)", mutate: testutil.Field("vehicle_number", strings.Repeat("A", 33)), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseBooking{
		{name: "missing field: lot_id", mutate: testutil.Field("lot_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: slot_id", mutate: testutil.Field("slot_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: vehicle_number", mutate: testutil.Field("vehicle_number", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: vehicle_type", mutate: testutil.Field("vehicle_type", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: hours", mutate: testutil.Field("hours", nil), expectCode: http.StatusBadRequest},
	}

	malformed := []testCaseBooking{
		{name: "lot_id is not a uuid", mutate: testutil.Field("lot_id", "lot-1"), expectCode: http.StatusBadRequest},
		{name: "hours is a string", mutate: testutil.Field("hours", "two"), expectCode: http.StatusBadRequest},
	}

	allValidationTestCases := [][]testCaseBooking{bound, missing, malformed}

	s.Run("success: returns 201 with the estimate as a decimal string", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), user.NewActor(s.userID, user.RoleUser), reqBody.ToInput()).
			Return(expectedResult, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(b.ID, body.BookingID)
		s.Equal("10.00", body.EstimatedCost)
		s.Equal(b.SlotNumber, body.SlotNumber)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, group := range allValidationTestCases {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
							Return(expectedResult, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
					s.Equal(tc.expectCode, rec.Code, rec.Body.String())
				})
			}
		}
	})

	s.Run("error: usecase errors map to statuses", func() {
		cases := []struct {
			name string
			err  error
			code int
			msg  string
		}{
			{"slot taken", errs.ErrSlotUnavailable, http.StatusConflict, "no longer available"},
			{"lot missing", errs.ErrLotNotFound, http.StatusNotFound, "lot not found"},
			{"slot missing", errs.ErrSlotNotFound, http.StatusNotFound, "slot not found"},
			{"bad duration", errs.ErrInvalidDuration, http.StatusBadRequest, "duration"},
			{"domain validation", errs.Mark(booking.ErrInvalidVehicle, errs.ErrDomainValidation), http.StatusUnprocessableEntity, "validation"},
			{"storage failure", errs.Mark(errors.New("boom"), errs.ErrDatabaseOperationFailed), http.StatusInternalServerError, "Internal"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.code, tc.msg)
			})
		}
	})

	s.Run("error: 401 without credentials", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	view := builder.NewBookingBuilder().WithUser(s.userID).BuildView()

	s.Run("success: returns the booking with money formatted", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("10.00", body.EstimatedCost)
		s.Nil(body.ActualCost)
		s.Equal("active", body.Status)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: 404 when not visible to the caller", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errs.ErrBookingNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+uuid.NewString(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestListMine
// ================================================================================

func (s *BookingHandlerTestSuite) TestListMine() {
	s.Run("success: passes limit and cursor through and returns next cursor", func() {
		view := builder.NewBookingBuilder().WithUser(s.userID).BuildView()
		next := &queries.Cursor{After: "next-page"}
		s.mockQueries.EXPECT().
			ListMine(gomock.Any(), gomock.Any(), &queries.Cursor{After: "abc"}, 5).
			Return([]*queries.BookingView{view}, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=5&after=abc", nil, "bearer-token")
		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Require().NotNil(body.NextCursor)
		s.Equal("next-page", *body.NextCursor)
	})

	s.Run("success: limit above the maximum is clamped", func() {
		s.mockQueries.EXPECT().
			ListMine(gomock.Any(), gomock.Any(), gomock.Nil(), queries.MaxListLimit).
			Return([]*queries.BookingView{}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=1000", nil, "bearer-token")
		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Nil(body.NextCursor)
	})

	s.Run("error: invalid cursor is 400", func() {
		s.mockQueries.EXPECT().ListMine(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?after=zzz", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := fmt.Sprintf("/bookings/%s/cancel", id)

	s.Run("success: returns the settled cost", func() {
		end := time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC)
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), user.NewActor(s.userID, user.RoleUser), id).
			Return(&commands.SettleResult{
				BookingID:  id,
				Status:     booking.StatusCancelled,
				ActualEnd:  end,
				ActualCost: booking.NewMoney(1000),
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		var body resdto.SettleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
		s.Equal("10.00", body.ActualCost)
		s.True(end.Equal(body.ActualEnd))
	})

	s.Run("error: 409 when already settled", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), gomock.Any(), id).
			Return(nil, errs.ErrBookingNotActive).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not active")
	})
}
