package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"event_marketplace/internal/adapter/persistence/memory"
	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/infrastructure/locking"
	"event_marketplace/internal/usecase/interfaces"
	mock_interfaces "event_marketplace/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var (
	vendor   = entities.Actor{UserID: "vendor-1", Role: entities.RoleVendor}
	client   = entities.Actor{UserID: "client-1", Role: entities.RoleClient, Email: "ana@example.com"}
	stranger = entities.Actor{UserID: "client-2", Role: entities.RoleClient}
	admin    = entities.Actor{UserID: "admin-1", Role: entities.RoleAdmin}
)

type fixture struct {
	t        *testing.T
	store    *memory.Store
	gateway  *mock_interfaces.MockIPaymentGateway
	notifier *recordingNotifier
	quotes   *QuoteUseCase
	bookings *BookingUseCase
	payments *PaymentUseCase
	listings *ListingUseCase

	mu  sync.Mutex
	now time.Time
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		t:        t,
		store:    memory.NewStore(),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
		notifier: &recordingNotifier{},
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	all := append([]Option{WithClock(f.clock), WithGatewayRetry(3, 0)}, opts...)
	factory := NewBookingFactory(all...)
	locker := locking.NewMemoryLocker(time.Second)

	f.quotes = NewQuoteUseCase(f.store.Quotes(), f.store.Transactions(), factory, locker, f.notifier, all...)
	f.bookings = NewBookingUseCase(f.store.Bookings(), f.store.Listings(), factory, locker, f.notifier, all...)
	f.payments = NewPaymentUseCase(f.store.PaymentSessions(), f.store.Bookings(), f.store.Transactions(), f.gateway, locker, f.notifier, all...)
	f.listings = NewListingUseCase(f.store.Listings(), all...)
	return f
}

func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fixture) details(mode entities.PaymentMode) AcceptanceDetails {
	return AcceptanceDetails{
		PaymentMode:   mode,
		ClientName:    "Ana Souza",
		ClientEmail:   "ana@example.com",
		EventDate:     f.clock().Add(60 * 24 * time.Hour),
		EventLocation: "Salão Central",
		GuestsCount:   120,
	}
}

// sentQuote creates and sends a quote totalling total cents.
func (f *fixture) sentQuote(total money.Cents, mutate func(*QuoteDraftInput)) entities.Quote {
	f.t.Helper()
	in := QuoteDraftInput{
		InquiryID:  "inq-1",
		ClientID:   client.UserID,
		Items:      []entities.QuoteItem{{Description: "Buffet completo", Quantity: 1, UnitPrice: total}},
		ValidUntil: f.clock().Add(14 * 24 * time.Hour),
	}
	if mutate != nil {
		mutate(&in)
	}
	ctx := context.Background()
	q, err := f.quotes.CreateDraft(ctx, vendor, in)
	if err != nil {
		f.t.Fatalf("create draft: %v", err)
	}
	q, err = f.quotes.Send(ctx, vendor, q.ID)
	if err != nil {
		f.t.Fatalf("send: %v", err)
	}
	return q
}

// acceptedBooking runs a quote of total cents through acceptance with mode.
func (f *fixture) acceptedBooking(total money.Cents, mode entities.PaymentMode) entities.Booking {
	f.t.Helper()
	q := f.sentQuote(total, nil)
	_, b, err := f.quotes.Accept(context.Background(), client, q.ID, f.details(mode))
	if err != nil {
		f.t.Fatalf("accept: %v", err)
	}
	return b
}

// expectCheckout makes the gateway answer the next CreateCheckoutSession with
// gatewayID.
func (f *fixture) expectCheckout(gatewayID string) *gomock.Call {
	return f.gateway.EXPECT().
		CreateCheckoutSession(gomock.Any(), gomock.AssignableToTypeOf(interfaces.CheckoutRequest{})).
		Return(interfaces.CheckoutSession{SessionID: gatewayID, RedirectURL: "https://pay.example.com/" + gatewayID}, nil)
}

// pay opens a checkout for t and confirms it with the exact amount.
func (f *fixture) pay(b entities.Booking, t entities.PaymentType, gatewayID string) PaymentConfirmation {
	f.t.Helper()
	ctx := context.Background()
	f.expectCheckout(gatewayID)
	h, err := f.payments.RequestPayment(ctx, client, b.ID, t)
	if err != nil {
		f.t.Fatalf("request %s payment: %v", t, err)
	}
	out, err := f.payments.ConfirmPayment(ctx, entities.GatewayEvent{
		GatewaySessionID: gatewayID,
		AmountCaptured:   h.Session.Amount,
		CapturedAt:       f.clock(),
		Captured:         true,
	})
	if err != nil {
		f.t.Fatalf("confirm %s payment: %v", t, err)
	}
	return out
}

func (f *fixture) storedBooking(id string) entities.Booking {
	f.t.Helper()
	b, err := f.store.Bookings().GetByID(context.Background(), id)
	if err != nil || b.ID == "" {
		f.t.Fatalf("booking %s not stored: %v", id, err)
	}
	return b
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []entities.LifecycleEvent
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, ev entities.LifecycleEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return n.err
}

func (n *recordingNotifier) count(t entities.EventType) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, ev := range n.events {
		if ev.EventType == t {
			c++
		}
	}
	return c
}
