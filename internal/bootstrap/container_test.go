package bootstrap

import (
	"context"
	"testing"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/infrastructure/config"
	"event_marketplace/internal/usecase"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localConfig() config.Config {
	return config.Config{
		ServiceName:        "event-marketplace-test",
		Store:              config.StoreMemory,
		Gateway:            config.GatewayMock,
		Notifier:           config.NotifierLog,
		PaymentReturnURL:   "http://localhost/v1/payments/return",
		LockWait:           time.Second,
		Currency:           "BRL",
		DepositPercent:     30,
		PaymentSessionTTL:  time.Minute,
		GatewayMaxAttempts: 1,
	}
}

func TestNew_LocalDrivers(t *testing.T) {
	c, err := New(context.Background(), localConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, c.Close()) }()

	require.NotNil(t, c.Quotes)
	require.NotNil(t, c.Bookings)
	require.NotNil(t, c.Payments)
	require.NotNil(t, c.Listings)

	vendor := entities.Actor{UserID: "vendor-1", Role: entities.RoleVendor}
	l, err := c.Listings.Create(context.Background(), vendor, usecase.ListingInput{Title: "Catering", MinPrice: 5000})
	require.NoError(t, err)
	assert.Equal(t, "BRL", l.Currency)

	got, err := c.Listings.GetByID(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)
}

func TestNew_OmiseWithoutKeysFails(t *testing.T) {
	cfg := localConfig()
	cfg.Gateway = config.GatewayOmise
	_, err := New(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestNewConsumer_LogNotifierHasNone(t *testing.T) {
	consumer, err := NewConsumer(localConfig(), zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, consumer)
}

func TestUseCaseOptions(t *testing.T) {
	assert.Len(t, UseCaseOptions(localConfig(), zerolog.Nop()), 7)
}
