package repository

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"
)

const defaultBookingsTableName = "bookings"

type timelineItem struct {
	Status    string `dynamodbav:"status"`
	Timestamp string `dynamodbav:"timestamp"`
	Note      string `dynamodbav:"note,omitempty"`
}

type bookingItem struct {
	ID              string         `dynamodbav:"id"`
	ProviderID      string         `dynamodbav:"provider_id"`
	ClientID        string         `dynamodbav:"client_id"`
	QuoteID         string         `dynamodbav:"quote_id,omitempty"`
	ListingIDs      []string       `dynamodbav:"listing_ids,omitempty"`
	ClientName      string         `dynamodbav:"client_name"`
	ClientEmail     string         `dynamodbav:"client_email"`
	ClientPhone     string         `dynamodbav:"client_phone,omitempty"`
	EventDate       string         `dynamodbav:"event_date"`
	EventLocation   string         `dynamodbav:"event_location,omitempty"`
	GuestsCount     int            `dynamodbav:"guests_count,omitempty"`
	SpecialRequests string         `dynamodbav:"special_requests,omitempty"`
	PricingTotal    int64          `dynamodbav:"pricing_total"`
	Currency        string         `dynamodbav:"currency"`
	PaymentMode     string         `dynamodbav:"payment_mode"`
	DepositPercent  *int           `dynamodbav:"deposit_percent,omitempty"`
	DepositAmount   *int64         `dynamodbav:"deposit_amount,omitempty"`
	BalanceAmount   *int64         `dynamodbav:"balance_amount,omitempty"`
	DepositPaidAt   *string        `dynamodbav:"deposit_paid_at,omitempty"`
	BalancePaidAt   *string        `dynamodbav:"balance_paid_at,omitempty"`
	BalanceDueDate  *string        `dynamodbav:"balance_due_date,omitempty"`
	Status          string         `dynamodbav:"status"`
	StatusTimeline  []timelineItem `dynamodbav:"status_timeline"`
	CancelledBy     string         `dynamodbav:"cancelled_by,omitempty"`
	Version         int64          `dynamodbav:"version"`
	CreatedAt       string         `dynamodbav:"created_at"`
	UpdatedAt       string         `dynamodbav:"updated_at"`
}

// BookingDynamoRepository persists Booking entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status)
type BookingDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IBookingRepository = (*BookingDynamoRepository)(nil)

func NewBookingDynamoRepository(ddb DynamoAPI, table string) *BookingDynamoRepository {
	return &BookingDynamoRepository{
		ddb:       ddb,
		tableName: tableName(table, "BOOKINGS_TABLE", defaultBookingsTableName),
	}
}

func (r *BookingDynamoRepository) Create(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	put, err := createPut(r.tableName, toBookingItem(b))
	if err != nil {
		return entities.Booking{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		if isConditionalFailure(err) {
			return entities.Booking{}, fmt.Errorf("booking %s: %w", b.ID, ErrAlreadyExists)
		}
		return entities.Booking{}, err
	}
	return b, nil
}

func (r *BookingDynamoRepository) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	var it bookingItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func (r *BookingDynamoRepository) Update(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	next := b.Clone()
	next.Version = b.Version + 1
	put, err := versionedPut(r.tableName, toBookingItem(next), b.Version)
	if err != nil {
		return entities.Booking{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		if isConditionalFailure(err) {
			return entities.Booking{}, fmt.Errorf("booking %s: %w", b.ID, interfaces.ErrVersionConflict)
		}
		return entities.Booking{}, err
	}
	return next, nil
}

func (r *BookingDynamoRepository) ListByStatus(ctx context.Context, status entities.BookingStatus) ([]entities.Booking, error) {
	items, err := queryIndex[bookingItem](ctx, r.ddb, r.tableName, statusIndex, "status", string(status))
	if err != nil {
		return nil, err
	}
	out := make([]entities.Booking, 0, len(items))
	for _, it := range items {
		out = append(out, fromBookingItem(it))
	}
	return out, nil
}

func centsPtr(v *money.Cents) *int64 {
	if v == nil {
		return nil
	}
	c := int64(*v)
	return &c
}

func fromCentsPtr(v *int64) *money.Cents {
	if v == nil {
		return nil
	}
	c := money.Cents(*v)
	return &c
}

func toBookingItem(b entities.Booking) bookingItem {
	timeline := make([]timelineItem, 0, len(b.StatusTimeline))
	for _, e := range b.StatusTimeline {
		timeline = append(timeline, timelineItem{Status: string(e.Status), Timestamp: formatTime(e.Timestamp), Note: e.Note})
	}
	return bookingItem{
		ID:              b.ID,
		ProviderID:      b.ProviderID,
		ClientID:        b.ClientID,
		QuoteID:         b.QuoteID,
		ListingIDs:      b.ListingIDs,
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		EventDate:       formatTime(b.EventDate),
		EventLocation:   b.EventLocation,
		GuestsCount:     b.GuestsCount,
		SpecialRequests: b.SpecialRequests,
		PricingTotal:    int64(b.PricingTotal),
		Currency:        b.Currency,
		PaymentMode:     string(b.PaymentMode),
		DepositPercent:  b.DepositPercent,
		DepositAmount:   centsPtr(b.DepositAmount),
		BalanceAmount:   centsPtr(b.BalanceAmount),
		DepositPaidAt:   formatTimePtr(b.DepositPaidAt),
		BalancePaidAt:   formatTimePtr(b.BalancePaidAt),
		BalanceDueDate:  formatTimePtr(b.BalanceDueDate),
		Status:          string(b.Status),
		StatusTimeline:  timeline,
		CancelledBy:     b.CancelledBy,
		Version:         b.Version,
		CreatedAt:       formatTime(b.CreatedAt),
		UpdatedAt:       formatTime(b.UpdatedAt),
	}
}

func fromBookingItem(it bookingItem) entities.Booking {
	timeline := make([]entities.StatusTimelineEntry, 0, len(it.StatusTimeline))
	for _, e := range it.StatusTimeline {
		timeline = append(timeline, entities.StatusTimelineEntry{
			Status:    entities.BookingStatus(e.Status),
			Timestamp: parseTime(e.Timestamp),
			Note:      e.Note,
		})
	}
	return entities.Booking{
		ID:              it.ID,
		ProviderID:      it.ProviderID,
		ClientID:        it.ClientID,
		QuoteID:         it.QuoteID,
		ListingIDs:      it.ListingIDs,
		ClientName:      it.ClientName,
		ClientEmail:     it.ClientEmail,
		ClientPhone:     it.ClientPhone,
		EventDate:       parseTime(it.EventDate),
		EventLocation:   it.EventLocation,
		GuestsCount:     it.GuestsCount,
		SpecialRequests: it.SpecialRequests,
		PricingTotal:    money.Cents(it.PricingTotal),
		Currency:        it.Currency,
		PaymentMode:     entities.PaymentMode(it.PaymentMode),
		DepositPercent:  it.DepositPercent,
		DepositAmount:   fromCentsPtr(it.DepositAmount),
		BalanceAmount:   fromCentsPtr(it.BalanceAmount),
		DepositPaidAt:   parseTimePtr(it.DepositPaidAt),
		BalancePaidAt:   parseTimePtr(it.BalancePaidAt),
		BalanceDueDate:  parseTimePtr(it.BalanceDueDate),
		Status:          entities.BookingStatus(it.Status),
		StatusTimeline:  timeline,
		CancelledBy:     it.CancelledBy,
		Version:         it.Version,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
