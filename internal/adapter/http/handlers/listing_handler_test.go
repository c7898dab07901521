package handlers

import (
	"net/http"
	"testing"

	"event_marketplace/internal/adapter/http/handlers/mocks"
	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestListingHandler(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIListingUseCase(ctrl)
		h := NewListingHandler(uc)
		r := newRouter(http.MethodPost, "/v1/listings", &vendor, h.CreateListing)

		uc.EXPECT().Create(gomock.Any(), vendor, usecase.ListingInput{Title: "Photo booth", MinPrice: 4000, AllowsCashOnDelivery: true}).
			Return(entities.Listing{ID: "l-1", ProviderID: vendor.UserID, Title: "Photo booth", MinPrice: 4000, Active: true}, nil)

		w := do(r, http.MethodPost, "/v1/listings", `{"title":"Photo booth","min_price":4000,"allows_cash_on_delivery":true}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("create without price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewListingHandler(mocks.NewMockIListingUseCase(ctrl))
		r := newRouter(http.MethodPost, "/v1/listings", &vendor, h.CreateListing)

		w := do(r, http.MethodPost, "/v1/listings", `{"title":"Photo booth"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIListingUseCase(ctrl)
		h := NewListingHandler(uc)
		r := newRouter(http.MethodGet, "/v1/listings/:id", &client, h.GetListing)

		uc.EXPECT().GetByID(gomock.Any(), "l-9").Return(entities.Listing{}, usecase.ErrListingNotFound)

		w := do(r, http.MethodGet, "/v1/listings/l-9", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
