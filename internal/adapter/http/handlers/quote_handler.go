package handlers

import (
	"context"
	"net/http"
	"time"

	request "event_marketplace/internal/adapter/http/dto/request"
	response "event_marketplace/internal/adapter/http/dto/response"
	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

// QuoteHandler exposes the quote lifecycle. Every route requires an
// authenticated actor.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
	now     func() time.Time
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc, now: func() time.Time { return time.Now().UTC() }}
}

// CreateQuote godoc
// @Summary      Create a draft quote
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      request.QuoteDraftRequest  true  "Draft"
// @Success      201   {object}  response.QuoteResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.QuoteDraftRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	q, err := h.usecase.CreateDraft(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q, h.now()))
}

// UpdateQuote godoc
// @Summary      Replace a draft or revised quote
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Quote id"
// @Param        body  body      request.QuoteDraftRequest  true  "Draft"
// @Success      200   {object}  response.QuoteResponse
// @Failure      409   {object}  pkg.HTTPError
// @Router       /quotes/{id} [put]
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.QuoteDraftRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	q, err := h.usecase.UpdateDraft(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, h.now()))
}

// GetQuote godoc
// @Summary      Get a quote
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	h.transition(c, h.usecase.GetByID)
}

// SendQuote godoc
// @Summary      Send a draft to the client
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{id}/send [post]
func (h *QuoteHandler) SendQuote(c *gin.Context) {
	h.transition(c, h.usecase.Send)
}

// ViewQuote godoc
// @Summary      Record that the client opened the quote
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Router       /quotes/{id}/view [post]
func (h *QuoteHandler) ViewQuote(c *gin.Context) {
	h.transition(c, h.usecase.MarkViewed)
}

// DeclineQuote godoc
// @Summary      Decline a quote
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{id}/decline [post]
func (h *QuoteHandler) DeclineQuote(c *gin.Context) {
	h.transition(c, h.usecase.Decline)
}

// ReviseQuote godoc
// @Summary      Reopen a sent quote for editing
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{id}/revise [post]
func (h *QuoteHandler) ReviseQuote(c *gin.Context) {
	h.transition(c, h.usecase.Revise)
}

// AcceptQuote godoc
// @Summary      Accept a quote and create its booking
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Quote id"
// @Param        body  body      request.AcceptanceRequest  true  "Client details"
// @Success      201   {object}  response.AcceptQuoteResponse
// @Failure      409   {object}  pkg.HTTPError
// @Failure      410   {object}  pkg.HTTPError
// @Failure      422   {object}  pkg.HTTPError
// @Router       /quotes/{id}/accept [post]
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.AcceptanceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	q, b, err := h.usecase.Accept(c.Request.Context(), actor, c.Param("id"), payload.ToDetails())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.AcceptQuoteResponse{
		Quote:   response.FromQuote(q, h.now()),
		Booking: response.FromBooking(b),
	})
}

func (h *QuoteHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error),
) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	q, err := op(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, h.now()))
}
