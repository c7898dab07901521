package repository

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"
)

const defaultQuotesTableName = "quotes"

type quoteLineItem struct {
	Description string `dynamodbav:"description"`
	Quantity    int    `dynamodbav:"quantity"`
	UnitPrice   int64  `dynamodbav:"unit_price"`
}

type quoteItem struct {
	ID                  string          `dynamodbav:"id"`
	InquiryID           string          `dynamodbav:"inquiry_id"`
	ProviderID          string          `dynamodbav:"provider_id"`
	ClientID            string          `dynamodbav:"client_id"`
	Items               []quoteLineItem `dynamodbav:"items"`
	Currency            string          `dynamodbav:"currency"`
	Status              string          `dynamodbav:"status"`
	ValidUntil          string          `dynamodbav:"valid_until,omitempty"`
	PaymentMode         string          `dynamodbav:"payment_mode,omitempty"`
	AllowedPaymentModes []string        `dynamodbav:"allowed_payment_modes,omitempty"`
	DepositPercent      *int            `dynamodbav:"deposit_percent,omitempty"`
	Notes               string          `dynamodbav:"notes,omitempty"`
	SentAt              *string         `dynamodbav:"sent_at,omitempty"`
	ViewedAt            *string         `dynamodbav:"viewed_at,omitempty"`
	AcceptedAt          *string         `dynamodbav:"accepted_at,omitempty"`
	DeclinedAt          *string         `dynamodbav:"declined_at,omitempty"`
	BookingID           string          `dynamodbav:"booking_id,omitempty"`
	Version             int64           `dynamodbav:"version"`
	CreatedAt           string          `dynamodbav:"created_at"`
	UpdatedAt           string          `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status)
type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, table string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: tableName(table, "QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	put, err := createPut(r.tableName, toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		if isConditionalFailure(err) {
			return entities.Quote{}, fmt.Errorf("quote %s: %w", q.ID, ErrAlreadyExists)
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	var it quoteItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	next := q.Clone()
	next.Version = q.Version + 1
	put, err := versionedPut(r.tableName, toQuoteItem(next), q.Version)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		if isConditionalFailure(err) {
			return entities.Quote{}, fmt.Errorf("quote %s: %w", q.ID, interfaces.ErrVersionConflict)
		}
		return entities.Quote{}, err
	}
	return next, nil
}

func (r *QuoteDynamoRepository) ListByStatus(ctx context.Context, status entities.QuoteStatus) ([]entities.Quote, error) {
	items, err := queryIndex[quoteItem](ctx, r.ddb, r.tableName, statusIndex, "status", string(status))
	if err != nil {
		return nil, err
	}
	out := make([]entities.Quote, 0, len(items))
	for _, it := range items {
		out = append(out, fromQuoteItem(it))
	}
	return out, nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	lines := make([]quoteLineItem, 0, len(q.Items))
	for _, li := range q.Items {
		lines = append(lines, quoteLineItem{Description: li.Description, Quantity: li.Quantity, UnitPrice: int64(li.UnitPrice)})
	}
	modes := make([]string, 0, len(q.AllowedPaymentModes))
	for _, m := range q.AllowedPaymentModes {
		modes = append(modes, string(m))
	}
	return quoteItem{
		ID:                  q.ID,
		InquiryID:           q.InquiryID,
		ProviderID:          q.ProviderID,
		ClientID:            q.ClientID,
		Items:               lines,
		Currency:            q.Currency,
		Status:              string(q.Status),
		ValidUntil:          formatTime(q.ValidUntil),
		PaymentMode:         string(q.PaymentMode),
		AllowedPaymentModes: modes,
		DepositPercent:      q.DepositPercent,
		Notes:               q.Notes,
		SentAt:              formatTimePtr(q.SentAt),
		ViewedAt:            formatTimePtr(q.ViewedAt),
		AcceptedAt:          formatTimePtr(q.AcceptedAt),
		DeclinedAt:          formatTimePtr(q.DeclinedAt),
		BookingID:           q.BookingID,
		Version:             q.Version,
		CreatedAt:           formatTime(q.CreatedAt),
		UpdatedAt:           formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	items := make([]entities.QuoteItem, 0, len(it.Items))
	for _, li := range it.Items {
		items = append(items, entities.QuoteItem{Description: li.Description, Quantity: li.Quantity, UnitPrice: money.Cents(li.UnitPrice)})
	}
	var modes []entities.PaymentMode
	for _, m := range it.AllowedPaymentModes {
		modes = append(modes, entities.PaymentMode(m))
	}
	return entities.Quote{
		ID:                  it.ID,
		InquiryID:           it.InquiryID,
		ProviderID:          it.ProviderID,
		ClientID:            it.ClientID,
		Items:               items,
		Currency:            it.Currency,
		Status:              entities.QuoteStatus(it.Status),
		ValidUntil:          parseTime(it.ValidUntil),
		PaymentMode:         entities.PaymentMode(it.PaymentMode),
		AllowedPaymentModes: modes,
		DepositPercent:      it.DepositPercent,
		Notes:               it.Notes,
		SentAt:              parseTimePtr(it.SentAt),
		ViewedAt:            parseTimePtr(it.ViewedAt),
		AcceptedAt:          parseTimePtr(it.AcceptedAt),
		DeclinedAt:          parseTimePtr(it.DeclinedAt),
		BookingID:           it.BookingID,
		Version:             it.Version,
		CreatedAt:           parseTime(it.CreatedAt),
		UpdatedAt:           parseTime(it.UpdatedAt),
	}
}
