package postgres

import (
	"errors"
	"testing"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewQuoteRepository(pool))
	assert.NotNil(t, NewBookingRepository(pool))
	assert.NotNil(t, NewPaymentSessionRepository(pool))
	assert.NotNil(t, NewListingRepository(pool))
	assert.NotNil(t, NewTransactionRepository(pool))
}

func TestSchemaDeclaresLiveSessionIndex(t *testing.T) {
	assert.Contains(t, schema, liveSessionConstraint)
	assert.Contains(t, schema, "WHERE status = 'CREATED'")
}

func TestUniqueConstraint(t *testing.T) {
	name, ok := uniqueConstraint(&pgconn.PgError{Code: uniqueViolation, ConstraintName: liveSessionConstraint})
	assert.True(t, ok)
	assert.Equal(t, liveSessionConstraint, name)

	_, ok = uniqueConstraint(errors.New("boom"))
	assert.False(t, ok)
}

func TestBookingArgsMatchColumns(t *testing.T) {
	deposit, balance := money.Cents(300), money.Cents(700)
	args, err := bookingArgs(entities.Booking{
		ID:            "b-1",
		PricingTotal:  1000,
		DepositAmount: &deposit,
		BalanceAmount: &balance,
		EventDate:     time.Now(),
	})
	require.NoError(t, err)
	assert.Len(t, args, 27)
	assert.Equal(t, []byte("[]"), args[4])

	qargs, err := quoteArgs(entities.Quote{ID: "q-1"})
	require.NoError(t, err)
	assert.Len(t, qargs, 20)
	assert.Nil(t, qargs[7])
}
