package handlers

import (
	"net/http"

	request "event_marketplace/internal/adapter/http/dto/request"
	response "event_marketplace/internal/adapter/http/dto/response"
	"event_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	usecase usecase.IListingUseCase
}

func NewListingHandler(uc usecase.IListingUseCase) *ListingHandler {
	return &ListingHandler{usecase: uc}
}

// CreateListing godoc
// @Summary      Publish a vendor listing
// @Tags         listings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      request.ListingRequest  true  "Listing"
// @Success      201   {object}  response.ListingResponse
// @Failure      403   {object}  pkg.HTTPError
// @Router       /listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var payload request.ListingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	l, err := h.usecase.Create(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromListing(l))
}

// GetListing godoc
// @Summary      Get a listing
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  response.ListingResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	l, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromListing(l))
}
