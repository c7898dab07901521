package handlers

import (
	"context"
	"net/http"

	request "event_marketplace/internal/adapter/http/dto/request"
	response "event_marketplace/internal/adapter/http/dto/response"
	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	usecase usecase.IBookingUseCase
}

func NewBookingHandler(uc usecase.IBookingUseCase) *BookingHandler {
	return &BookingHandler{usecase: uc}
}

// CreateBooking godoc
// @Summary      Book listings directly
// @Description  Prices the booking from the listings' minimum prices.
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      request.DirectBookingRequest  true  "Booking"
// @Success      201   {object}  response.BookingResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      422   {object}  pkg.HTTPError
// @Router       /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.DirectBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	b, err := h.usecase.CreateDirect(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromBooking(b))
}

// GetBooking godoc
// @Summary      Get a booking
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  response.BookingResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	h.transition(c, h.usecase.GetByID)
}

// CancelBooking godoc
// @Summary      Cancel a booking
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true   "Booking id"
// @Param        body  body      request.CancelBookingRequest  false  "Reason"
// @Success      200   {object}  response.BookingResponse
// @Failure      409   {object}  pkg.HTTPError
// @Router       /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var payload request.CancelBookingRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	h.transition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Booking, error) {
		return h.usecase.Cancel(ctx, actor, id, payload.Reason)
	})
}

// ConfirmBooking godoc
// @Summary      Vendor confirms a paid booking
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  response.BookingResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.usecase.Confirm)
}

// CompleteBooking godoc
// @Summary      Mark a confirmed booking as completed
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  response.BookingResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /bookings/{id}/complete [post]
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.usecase.Complete)
}

// RefundBooking godoc
// @Summary      Record a refund
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true   "Booking id"
// @Param        body  body      request.RefundBookingRequest  false  "Note"
// @Success      200   {object}  response.BookingResponse
// @Failure      403   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /bookings/{id}/refund [post]
func (h *BookingHandler) RefundBooking(c *gin.Context) {
	var payload request.RefundBookingRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	h.transition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Booking, error) {
		return h.usecase.Refund(ctx, actor, id, payload.Note)
	})
}

func (h *BookingHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, actor entities.Actor, bookingID string) (entities.Booking, error),
) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	b, err := op(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBooking(b))
}

// bindOptionalJSON decodes the body into out when there is one.
func bindOptionalJSON(c *gin.Context, out any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(out); err != nil {
		respondAppError(c, errInvalidPayload)
		return false
	}
	return true
}
