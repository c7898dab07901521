package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentSessionsTableName = "payment_sessions"
	sessionsGatewayIDIndex          = "gateway_session_id-index"
	sessionsBookingIDIndex          = "booking_id-index"
)

var ErrLiveSessionTaken = errors.New("a live payment session already exists for booking and payment type")

type paymentSessionItem struct {
	ID               string  `dynamodbav:"id"`
	BookingID        string  `dynamodbav:"booking_id"`
	PaymentType      string  `dynamodbav:"payment_type"`
	Amount           int64   `dynamodbav:"amount"`
	Currency         string  `dynamodbav:"currency"`
	GatewaySessionID string  `dynamodbav:"gateway_session_id,omitempty"`
	RedirectURL      string  `dynamodbav:"redirect_url,omitempty"`
	Status           string  `dynamodbav:"status"`
	CreatedAt        string  `dynamodbav:"created_at"`
	ExpiresAt        string  `dynamodbav:"expires_at"`
	ConfirmedAt      *string `dynamodbav:"confirmed_at,omitempty"`
	CapturedAt       *string `dynamodbav:"captured_at,omitempty"`
}

// liveGuardItem marks the one CREATED session of a (booking, payment type)
// pair. It carries none of the indexed attributes, so the GSIs skip it.
type liveGuardItem struct {
	ID        string `dynamodbav:"id"`
	SessionID string `dynamodbav:"session_id"`
}

func liveGuardID(bookingID string, t entities.PaymentType) string {
	return "live#" + bookingID + "#" + string(t)
}

// PaymentSessionDynamoRepository persists PaymentSession entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status)
//   - GSI: gateway_session_id-index (PK: gateway_session_id)
//   - GSI: booking_id-index (PK: booking_id)
type PaymentSessionDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentSessionRepository = (*PaymentSessionDynamoRepository)(nil)

func NewPaymentSessionDynamoRepository(ddb DynamoAPI, table string) *PaymentSessionDynamoRepository {
	return &PaymentSessionDynamoRepository{
		ddb:       ddb,
		tableName: tableName(table, "PAYMENT_SESSIONS_TABLE", defaultPaymentSessionsTableName),
	}
}

func (r *PaymentSessionDynamoRepository) Create(ctx context.Context, s entities.PaymentSession) (entities.PaymentSession, error) {
	put, err := createPut(r.tableName, toPaymentSessionItem(s))
	if err != nil {
		return entities.PaymentSession{}, err
	}
	if s.Status != entities.PaymentSessionStatusCreated {
		if err := putItem(ctx, r.ddb, put); err != nil {
			if isConditionalFailure(err) {
				return entities.PaymentSession{}, fmt.Errorf("payment session %s: %w", s.ID, ErrAlreadyExists)
			}
			return entities.PaymentSession{}, err
		}
		return s, nil
	}

	guard, err := createPut(r.tableName, liveGuardItem{ID: liveGuardID(s.BookingID, s.PaymentType), SessionID: s.ID})
	if err != nil {
		return entities.PaymentSession{}, err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{{Put: put}, {Put: guard}},
	})
	if err != nil {
		if idx, ok := cancelledAt(err); ok {
			if slices.Contains(idx, 1) {
				return entities.PaymentSession{}, fmt.Errorf("booking %s %s: %w", s.BookingID, s.PaymentType, ErrLiveSessionTaken)
			}
			if slices.Contains(idx, 0) {
				return entities.PaymentSession{}, fmt.Errorf("payment session %s: %w", s.ID, ErrAlreadyExists)
			}
		}
		return entities.PaymentSession{}, err
	}
	return s, nil
}

func (r *PaymentSessionDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentSession, error) {
	var it paymentSessionItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found || it.Status == "" {
		return entities.PaymentSession{}, err
	}
	return fromPaymentSessionItem(it), nil
}

// GetByGatewaySessionID reads the GSI, which is eventually consistent. The
// payment use case re-reads the session by id before deciding anything.
func (r *PaymentSessionDynamoRepository) GetByGatewaySessionID(ctx context.Context, gatewaySessionID string) (entities.PaymentSession, error) {
	items, err := queryIndex[paymentSessionItem](ctx, r.ddb, r.tableName, sessionsGatewayIDIndex, "gateway_session_id", gatewaySessionID)
	if err != nil || len(items) == 0 {
		return entities.PaymentSession{}, err
	}
	return fromPaymentSessionItem(items[0]), nil
}

func (r *PaymentSessionDynamoRepository) ListByBookingID(ctx context.Context, bookingID string) ([]entities.PaymentSession, error) {
	return r.list(ctx, sessionsBookingIDIndex, "booking_id", bookingID)
}

func (r *PaymentSessionDynamoRepository) ListByStatus(ctx context.Context, status entities.PaymentSessionStatus) ([]entities.PaymentSession, error) {
	return r.list(ctx, statusIndex, "status", string(status))
}

func (r *PaymentSessionDynamoRepository) UpdateStatus(ctx context.Context, s entities.PaymentSession, from entities.PaymentSessionStatus) (entities.PaymentSession, error) {
	items, err := r.statusWrites(s, from)
	if err != nil {
		return entities.PaymentSession{}, err
	}
	if len(items) == 1 {
		p := items[0].Put
		if err := putItem(ctx, r.ddb, p); err != nil {
			if isConditionalFailure(err) {
				return entities.PaymentSession{}, fmt.Errorf("payment session %s: %w", s.ID, interfaces.ErrVersionConflict)
			}
			return entities.PaymentSession{}, err
		}
		return s, nil
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		return entities.PaymentSession{}, transactErr(err, "payment session "+s.ID)
	}
	return s, nil
}

// statusWrites replaces the session conditioned on its stored status being
// from. Leaving CREATED also releases the live guard.
func (r *PaymentSessionDynamoRepository) statusWrites(s entities.PaymentSession, from entities.PaymentSessionStatus) ([]types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(toPaymentSessionItem(s))
	if err != nil {
		return nil, err
	}
	items := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                av,
			ConditionExpression: aws.String("#status = :from"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":from": &types.AttributeValueMemberS{Value: string(from)},
			},
		},
	}}
	if from == entities.PaymentSessionStatusCreated && s.Status != entities.PaymentSessionStatusCreated {
		items = append(items, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName:           aws.String(r.tableName),
				Key:                 idKey(liveGuardID(s.BookingID, s.PaymentType)),
				ConditionExpression: aws.String("#sid = :sid"),
				ExpressionAttributeNames: mergeNames(nil, map[string]string{
					"#sid": "session_id",
				}),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":sid": &types.AttributeValueMemberS{Value: s.ID},
				},
			},
		})
	}
	return items, nil
}

func (r *PaymentSessionDynamoRepository) list(ctx context.Context, index, attr, value string) ([]entities.PaymentSession, error) {
	items, err := queryIndex[paymentSessionItem](ctx, r.ddb, r.tableName, index, attr, value)
	if err != nil {
		return nil, err
	}
	out := make([]entities.PaymentSession, 0, len(items))
	for _, it := range items {
		out = append(out, fromPaymentSessionItem(it))
	}
	slices.SortFunc(out, func(a, b entities.PaymentSession) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func toPaymentSessionItem(s entities.PaymentSession) paymentSessionItem {
	return paymentSessionItem{
		ID:               s.ID,
		BookingID:        s.BookingID,
		PaymentType:      string(s.PaymentType),
		Amount:           int64(s.Amount),
		Currency:         s.Currency,
		GatewaySessionID: s.GatewaySessionID,
		RedirectURL:      s.RedirectURL,
		Status:           string(s.Status),
		CreatedAt:        formatTime(s.CreatedAt),
		ExpiresAt:        formatTime(s.ExpiresAt),
		ConfirmedAt:      formatTimePtr(s.ConfirmedAt),
		CapturedAt:       formatTimePtr(s.CapturedAt),
	}
}

func fromPaymentSessionItem(it paymentSessionItem) entities.PaymentSession {
	return entities.PaymentSession{
		ID:               it.ID,
		BookingID:        it.BookingID,
		PaymentType:      entities.PaymentType(it.PaymentType),
		Amount:           money.Cents(it.Amount),
		Currency:         it.Currency,
		GatewaySessionID: it.GatewaySessionID,
		RedirectURL:      it.RedirectURL,
		Status:           entities.PaymentSessionStatus(it.Status),
		CreatedAt:        parseTime(it.CreatedAt),
		ExpiresAt:        parseTime(it.ExpiresAt),
		ConfirmedAt:      parseTimePtr(it.ConfirmedAt),
		CapturedAt:       parseTimePtr(it.CapturedAt),
	}
}
