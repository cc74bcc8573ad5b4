package api

import (
	"net/http"

	resdto "cridaa-booking/internal/handler/dto/response"
	"cridaa-booking/internal/handler/httperr"
	"cridaa-booking/internal/handler/middleware"
	"cridaa-booking/internal/pkg/errs"
	"cridaa-booking/internal/usecase"
	"cridaa-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingUserID = errs.New("user id missing from context")

type SlotHandler struct {
	bookingUseCase usecase.BookingCommands
	slotQueries    queries.SlotQueries
}

func NewSlotHandler(bookingUseCase usecase.BookingCommands, slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{
		bookingUseCase: bookingUseCase,
		slotQueries:    slotQueries,
	}
}

// @Summary List available slots
// @Description List all slots currently open for booking
// @Tags slots
// @Produce json
// @Success 200 {object} resdto.SlotListResponse
// @Failure 503 {object} httperr.Response
// @Router /slots [get]
func (h *SlotHandler) ListAvailable(c *gin.Context) {
	views, err := h.slotQueries.ListAvailable(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Slot store unavailable")
		return
	}

	c.JSON(http.StatusOK, resdto.SlotListResponse{Slots: views})
}

// @Summary List own bookings
// @Description List slots booked by the current user
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SlotListResponse
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /slots/mine [get]
func (h *SlotHandler) Mine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserID, "User not authenticated")
		return
	}

	views, err := h.slotQueries.ListOwnedBy(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Slot store unavailable")
		return
	}

	c.JSON(http.StatusOK, resdto.SlotListResponse{Slots: views})
}

// @Summary Book slot
// @Description Book an available slot for the current user
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} resdto.BookSlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /slots/{id}/book [post]
func (h *SlotHandler) Book(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserID, "User not authenticated")
		return
	}

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot ID format")
		return
	}

	booked, err := h.bookingUseCase.Book(c.Request.Context(), slotID, userID)
	if err != nil {
		switch {
		case errs.Is(err, usecase.ErrSlotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found")
		case errs.Is(err, usecase.ErrAlreadyBooked):
			httperr.AbortWithError(c, http.StatusConflict, err, "Slot is already booked")
		case errs.Is(err, usecase.ErrStoreUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Slot store unavailable")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	response := resdto.BookSlotResponse{
		Message: "Slot booked successfully",
		Slot:    queries.FromSlot(booked),
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Cancel booking
// @Description Cancel the current user's booking on a slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} resdto.CancelSlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /slots/{id}/book [delete]
func (h *SlotHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingUserID, "User not authenticated")
		return
	}

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot ID format")
		return
	}

	cancelled, err := h.bookingUseCase.Cancel(c.Request.Context(), slotID, userID)
	if err != nil {
		switch {
		case errs.Is(err, usecase.ErrSlotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found")
		case errs.Is(err, usecase.ErrNotSlotOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Slot is booked by another user")
		case errs.Is(err, usecase.ErrSlotNotBooked):
			httperr.AbortWithError(c, http.StatusConflict, err, "Slot is not booked")
		case errs.Is(err, usecase.ErrStoreUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Slot store unavailable")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	response := resdto.CancelSlotResponse{
		Message: "Booking cancelled successfully",
		Slot:    queries.FromSlot(cancelled),
	}
	c.JSON(http.StatusOK, response)
}
