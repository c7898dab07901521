package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	puts       []*dynamodb.PutItemInput
	transacts  []*dynamodb.TransactWriteItemsInput
	getItem    map[string]types.AttributeValue
	putErr     error
	transactEr error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.getItem}, nil
}

func (f *fakeDynamo) Query(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, _ *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transacts = append(f.transacts, in)
	return &dynamodb.TransactWriteItemsOutput{}, f.transactEr
}

func cancelled(codes ...string) error {
	reasons := make([]types.CancellationReason, 0, len(codes))
	for _, c := range codes {
		reasons = append(reasons, types.CancellationReason{Code: aws.String(c)})
	}
	return &types.TransactionCanceledException{Message: aws.String("cancelled"), CancellationReasons: reasons}
}

func sampleBooking() entities.Booking {
	deposit, balance := money.Cents(30000), money.Cents(70000)
	pct := 30
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	due := at.Add(40 * 24 * time.Hour)
	return entities.Booking{
		ID:             "b-1",
		ProviderID:     "vendor-1",
		ClientID:       "client-1",
		QuoteID:        "q-1",
		ClientName:     "Ana",
		ClientEmail:    "ana@example.com",
		EventDate:      at.Add(47 * 24 * time.Hour),
		PricingTotal:   100000,
		Currency:       "BRL",
		PaymentMode:    entities.PaymentModeDepositBalance,
		DepositPercent: &pct,
		DepositAmount:  &deposit,
		BalanceAmount:  &balance,
		BalanceDueDate: &due,
		Status:         entities.BookingStatusPendingPayment,
		StatusTimeline: []entities.StatusTimelineEntry{{Status: entities.BookingStatusPendingPayment, Timestamp: at, Note: "created"}},
		Version:        3,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
}

func TestBookingDynamoRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("conditions on the stored version", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewBookingDynamoRepository(ddb, "bookings")

		stored, err := repo.Update(ctx, sampleBooking())
		require.NoError(t, err)
		assert.Equal(t, int64(4), stored.Version)

		require.Len(t, ddb.puts, 1)
		in := ddb.puts[0]
		assert.Equal(t, versionCondition, aws.ToString(in.ConditionExpression))
		assert.Equal(t, &types.AttributeValueMemberN{Value: "3"}, in.ExpressionAttributeValues[":expected"])
		assert.Equal(t, &types.AttributeValueMemberN{Value: "4"}, in.Item["version"])
	})

	t.Run("failed condition is a version conflict", func(t *testing.T) {
		ddb := &fakeDynamo{putErr: &types.ConditionalCheckFailedException{Message: aws.String("failed")}}
		repo := NewBookingDynamoRepository(ddb, "bookings")

		_, err := repo.Update(ctx, sampleBooking())
		assert.ErrorIs(t, err, interfaces.ErrVersionConflict)
	})

	t.Run("item keeps the booking intact", func(t *testing.T) {
		b := sampleBooking()
		av, err := attributevalue.MarshalMap(toBookingItem(b))
		require.NoError(t, err)
		ddb := &fakeDynamo{getItem: av}

		got, err := NewBookingDynamoRepository(ddb, "bookings").GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	})
}

func TestPaymentSessionDynamoRepository(t *testing.T) {
	ctx := context.Background()
	session := entities.PaymentSession{
		ID:          "s-1",
		BookingID:   "b-1",
		PaymentType: entities.PaymentTypeDeposit,
		Amount:      30000,
		Status:      entities.PaymentSessionStatusCreated,
	}

	t.Run("create writes a live guard", func(t *testing.T) {
		ddb := &fakeDynamo{}
		_, err := NewPaymentSessionDynamoRepository(ddb, "sessions").Create(ctx, session)
		require.NoError(t, err)

		require.Len(t, ddb.transacts, 1)
		items := ddb.transacts[0].TransactItems
		require.Len(t, items, 2)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "live#b-1#DEPOSIT"}, items[1].Put.Item["id"])
	})

	t.Run("guard taken", func(t *testing.T) {
		ddb := &fakeDynamo{transactEr: cancelled("None", "ConditionalCheckFailed")}
		_, err := NewPaymentSessionDynamoRepository(ddb, "sessions").Create(ctx, session)
		assert.ErrorIs(t, err, ErrLiveSessionTaken)
	})

	t.Run("leaving created releases the guard", func(t *testing.T) {
		ddb := &fakeDynamo{}
		expired := session
		expired.Status = entities.PaymentSessionStatusExpired
		_, err := NewPaymentSessionDynamoRepository(ddb, "sessions").UpdateStatus(ctx, expired, entities.PaymentSessionStatusCreated)
		require.NoError(t, err)

		require.Len(t, ddb.transacts, 1)
		items := ddb.transacts[0].TransactItems
		require.Len(t, items, 2)
		require.NotNil(t, items[1].Delete)
	})

	t.Run("lost race", func(t *testing.T) {
		ddb := &fakeDynamo{transactEr: cancelled("ConditionalCheckFailed", "None")}
		expired := session
		expired.Status = entities.PaymentSessionStatusExpired
		_, err := NewPaymentSessionDynamoRepository(ddb, "sessions").UpdateStatus(ctx, expired, entities.PaymentSessionStatusCreated)
		assert.ErrorIs(t, err, interfaces.ErrVersionConflict)
	})
}

func TestTransactionDynamoRepository_ConfirmPayment(t *testing.T) {
	ctx := context.Background()
	storedSession := entities.PaymentSession{ID: "s-1", BookingID: "b-1", PaymentType: entities.PaymentTypeFull, Status: entities.PaymentSessionStatusConfirmed}
	av, err := attributevalue.MarshalMap(toPaymentSessionItem(storedSession))
	require.NoError(t, err)

	ddb := &fakeDynamo{getItem: av}
	tx := NewTransactionDynamoRepository(ddb,
		NewQuoteDynamoRepository(ddb, "quotes"),
		NewBookingDynamoRepository(ddb, "bookings"),
		NewPaymentSessionDynamoRepository(ddb, "sessions"),
	)

	err = tx.ConfirmPayment(ctx, storedSession, sampleBooking())
	if !errors.Is(err, interfaces.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	assert.Empty(t, ddb.transacts)
}
