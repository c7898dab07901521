package repository

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TransactionDynamoRepository writes multi-entity changes with
// TransactWriteItems, so either every condition holds and every item lands
// or nothing is written.
type TransactionDynamoRepository struct {
	ddb      DynamoAPI
	quotes   *QuoteDynamoRepository
	bookings *BookingDynamoRepository
	sessions *PaymentSessionDynamoRepository
}

var _ interfaces.ITransactionalRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(
	ddb DynamoAPI,
	quotes *QuoteDynamoRepository,
	bookings *BookingDynamoRepository,
	sessions *PaymentSessionDynamoRepository,
) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{ddb: ddb, quotes: quotes, bookings: bookings, sessions: sessions}
}

func (r *TransactionDynamoRepository) AcceptQuote(ctx context.Context, q entities.Quote, b entities.Booking) error {
	next := q.Clone()
	next.Version = q.Version + 1
	quotePut, err := versionedPut(r.quotes.tableName, toQuoteItem(next), q.Version)
	if err != nil {
		return err
	}
	bookingPut, err := createPut(r.bookings.tableName, toBookingItem(b))
	if err != nil {
		return err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{{Put: quotePut}, {Put: bookingPut}},
	})
	return transactErr(err, "accept quote "+q.ID)
}

func (r *TransactionDynamoRepository) ConfirmPayment(ctx context.Context, s entities.PaymentSession, b entities.Booking) error {
	stored, err := r.sessions.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	switch stored.Status {
	case entities.PaymentSessionStatusCreated, entities.PaymentSessionStatusExpired:
	default:
		return fmt.Errorf("payment session %s is %q: %w", s.ID, stored.Status, interfaces.ErrVersionConflict)
	}

	items, err := r.sessions.statusWrites(s, stored.Status)
	if err != nil {
		return err
	}
	next := b.Clone()
	next.Version = b.Version + 1
	bookingPut, err := versionedPut(r.bookings.tableName, toBookingItem(next), b.Version)
	if err != nil {
		return err
	}
	items = append(items, types.TransactWriteItem{Put: bookingPut})

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	return transactErr(err, "confirm payment "+s.ID)
}
