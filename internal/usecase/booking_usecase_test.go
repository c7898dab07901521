package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingUseCase_CreateDirect(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, entities.Listing, entities.Listing) {
		t.Helper()
		f := newFixture(t)
		dj, err := f.listings.Create(ctx, vendor, ListingInput{Title: "DJ", MinPrice: 80000, AllowsCashOnDelivery: true})
		require.NoError(t, err)
		light, err := f.listings.Create(ctx, vendor, ListingInput{Title: "Iluminação", MinPrice: 20000})
		require.NoError(t, err)
		return f, dj, light
	}

	t.Run("prices from listings", func(t *testing.T) {
		f, dj, light := setup(t)
		b, err := f.bookings.CreateDirect(ctx, client, DirectBookingInput{
			ProviderID: vendor.UserID,
			ListingIDs: []string{dj.ID, light.ID},
			Details:    f.details(entities.PaymentModeDepositBalance),
		})
		require.NoError(t, err)
		assert.Equal(t, money.Cents(100000), b.PricingTotal)
		assert.Equal(t, money.Cents(30000), *b.DepositAmount)
		assert.Equal(t, []string{dj.ID, light.ID}, b.ListingIDs)
		assert.Empty(t, b.QuoteID)
		assert.Equal(t, 1, f.notifier.count(entities.EventBookingCreated))
	})

	t.Run("cash on delivery needs every listing to allow it", func(t *testing.T) {
		f, dj, light := setup(t)
		_, err := f.bookings.CreateDirect(ctx, client, DirectBookingInput{
			ProviderID: vendor.UserID,
			ListingIDs: []string{dj.ID, light.ID},
			Details:    f.details(entities.PaymentModeCashOnDelivery),
		})
		assert.ErrorIs(t, err, ErrPaymentModeMismatch)
	})

	t.Run("listing of another provider", func(t *testing.T) {
		f, dj, _ := setup(t)
		_, err := f.bookings.CreateDirect(ctx, client, DirectBookingInput{
			ProviderID: "vendor-2",
			ListingIDs: []string{dj.ID},
			Details:    f.details(""),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown listing", func(t *testing.T) {
		f, _, _ := setup(t)
		_, err := f.bookings.CreateDirect(ctx, client, DirectBookingInput{
			ProviderID: vendor.UserID,
			ListingIDs: []string{"missing"},
			Details:    f.details(""),
		})
		assert.ErrorIs(t, err, ErrListingNotFound)
	})

	t.Run("duplicate listing ids", func(t *testing.T) {
		f, dj, _ := setup(t)
		_, err := f.bookings.CreateDirect(ctx, client, DirectBookingInput{
			ProviderID: vendor.UserID,
			ListingIDs: []string{dj.ID, dj.ID},
			Details:    f.details(""),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("vendors do not book", func(t *testing.T) {
		f, dj, _ := setup(t)
		_, err := f.bookings.CreateDirect(ctx, vendor, DirectBookingInput{
			ProviderID: vendor.UserID,
			ListingIDs: []string{dj.ID},
			Details:    f.details(""),
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestBookingUseCase_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("pending booking by client", func(t *testing.T) {
		f := newFixture(t)
		b := f.acceptedBooking(1000, entities.PaymentModeFull)

		got, err := f.bookings.Cancel(ctx, client, b.ID, "date changed")
		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusCancelled, got.Status)
		assert.Equal(t, client.UserID, got.CancelledBy)
		last := got.StatusTimeline[len(got.StatusTimeline)-1]
		assert.Equal(t, "cancelled by client: date changed", last.Note)
		assert.Equal(t, 1, f.notifier.count(entities.EventBookingCancelled))
	})

	t.Run("deposit paid booking by vendor stays cancelled", func(t *testing.T) {
		f := newFixture(t)
		b := f.acceptedBooking(100000, entities.PaymentModeDepositBalance)
		f.pay(b, entities.PaymentTypeDeposit, "gw-1")

		got, err := f.bookings.Cancel(ctx, vendor, b.ID, "")
		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusCancelled, got.Status)
		assert.Equal(t, vendor.UserID, got.CancelledBy)
		assert.Equal(t, "cancelled by vendor", got.StatusTimeline[len(got.StatusTimeline)-1].Note)

		_, err = f.bookings.Refund(ctx, admin, b.ID, "deposit returned")
		assert.ErrorIs(t, err, ErrInvalidState)
		stored := f.storedBooking(b.ID)
		assert.Equal(t, entities.BookingStatusCancelled, stored.Status)
		assert.NotNil(t, stored.DepositPaidAt)
	})

	t.Run("fully paid booking is not cancellable", func(t *testing.T) {
		f := newFixture(t)
		b := f.acceptedBooking(1000, entities.PaymentModeFull)
		f.pay(b, entities.PaymentTypeFull, "gw-1")

		_, err := f.bookings.Cancel(ctx, client, b.ID, "")
		if !errors.Is(err, ErrNotCancellable) {
			t.Fatalf("expected ErrNotCancellable, got %v", err)
		}
	})

	t.Run("twice", func(t *testing.T) {
		f := newFixture(t)
		b := f.acceptedBooking(1000, entities.PaymentModeFull)
		_, err := f.bookings.Cancel(ctx, client, b.ID, "")
		require.NoError(t, err)
		_, err = f.bookings.Cancel(ctx, client, b.ID, "")
		assert.ErrorIs(t, err, ErrNotCancellable)
		assert.Len(t, f.storedBooking(b.ID).StatusTimeline, 2)
	})

	t.Run("stranger", func(t *testing.T) {
		f := newFixture(t)
		b := f.acceptedBooking(1000, entities.PaymentModeFull)
		_, err := f.bookings.Cancel(ctx, stranger, b.ID, "")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestBookingUseCase_ConfirmCompleteRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("fully paid to completed", func(t *testing.T) {
		f := newFixture(t)
		b := f.acceptedBooking(1000, entities.PaymentModeFull)
		f.pay(b, entities.PaymentTypeFull, "gw-1")

		_, err := f.bookings.Confirm(ctx, client, b.ID)
		assert.ErrorIs(t, err, ErrForbidden)

		confirmed, err := f.bookings.Confirm(ctx, vendor, b.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusConfirmed, confirmed.Status)

		_, err = f.bookings.Complete(ctx, admin, b.ID)
		assert.ErrorIs(t, err, ErrInvalidState)

		f.advance(61 * 24 * time.Hour)
		n, err := f.bookings.CompleteElapsed(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, entities.BookingStatusCompleted, f.storedBooking(b.ID).Status)

		again, err := f.bookings.Complete(ctx, admin, b.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusCompleted, again.Status)
		assert.Equal(t, 1, f.notifier.count(entities.EventBookingCompleted))
	})

	t.Run("cash on delivery confirms from pending", func(t *testing.T) {
		f := newFixture(t)
		q := f.sentQuote(1000, func(in *QuoteDraftInput) {
			in.AllowedPaymentModes = []entities.PaymentMode{entities.PaymentModeCashOnDelivery}
		})
		_, b, err := f.quotes.Accept(ctx, client, q.ID, f.details(""))
		require.NoError(t, err)
		assert.Equal(t, entities.PaymentModeCashOnDelivery, b.PaymentMode)

		got, err := f.bookings.Confirm(ctx, vendor, b.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusConfirmed, got.Status)
	})

	t.Run("online pending cannot be confirmed", func(t *testing.T) {
		f := newFixture(t)
		b := f.acceptedBooking(1000, entities.PaymentModeFull)
		_, err := f.bookings.Confirm(ctx, vendor, b.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("refund", func(t *testing.T) {
		f := newFixture(t)
		b := f.acceptedBooking(1000, entities.PaymentModeFull)
		_, err := f.bookings.Refund(ctx, vendor, b.ID, "")
		assert.ErrorIs(t, err, ErrInvalidState)

		f.pay(b, entities.PaymentTypeFull, "gw-1")
		got, err := f.bookings.Refund(ctx, admin, b.ID, "vendor unavailable")
		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusRefunded, got.Status)
		assert.Equal(t, 1, f.notifier.count(entities.EventBookingRefunded))
	})
}

func TestBookingUseCase_ScheduleDueBalances(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.acceptedBooking(100000, entities.PaymentModeDepositBalance)
	f.pay(b, entities.PaymentTypeDeposit, "gw-1")

	n, err := f.bookings.ScheduleDueBalances(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// due date is event - 7d; the window opens 3 days before it
	f.advance(51 * 24 * time.Hour)
	n, err = f.bookings.ScheduleDueBalances(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, entities.BookingStatusBalanceScheduled, f.storedBooking(b.ID).Status)
	assert.Equal(t, 1, f.notifier.count(entities.EventBookingBalanceScheduled))

	out := f.pay(b, entities.PaymentTypeBalance, "gw-2")
	assert.Equal(t, entities.BookingStatusFullyPaid, out.Booking.Status)
}

func TestBookingUseCase_GetByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.acceptedBooking(1000, entities.PaymentModeFull)

	for _, a := range []entities.Actor{client, vendor, admin} {
		got, err := f.bookings.GetByID(ctx, a, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	}
	_, err := f.bookings.GetByID(ctx, stranger, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.bookings.GetByID(ctx, admin, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
