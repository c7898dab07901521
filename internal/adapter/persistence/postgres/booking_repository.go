package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, provider_id, client_id, quote_id, listing_ids, client_name, client_email, client_phone,
	event_date, event_location, guests_count, special_requests, pricing_total, currency, payment_mode,
	deposit_percent, deposit_amount, balance_amount, deposit_paid_at, balance_paid_at, balance_due_date,
	status, status_timeline, cancelled_by, version, created_at, updated_at`

type BookingRepository struct {
	db *pgxpool.Pool
}

var _ interfaces.IBookingRepository = (*BookingRepository)(nil)

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	if err := insertBooking(ctx, r.db, b); err != nil {
		return entities.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Booking{}, nil
	}
	return b, err
}

func (r *BookingRepository) Update(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	return updateBooking(ctx, r.db, b)
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status entities.BookingStatus) ([]entities.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE status = $1 ORDER BY created_at`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entities.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func insertBooking(ctx context.Context, db querier, b entities.Booking) error {
	args, err := bookingArgs(b)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25, $26, $27)`, args...)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return fmt.Errorf("booking %s: %w", b.ID, ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func updateBooking(ctx context.Context, db querier, b entities.Booking) (entities.Booking, error) {
	args, err := bookingArgs(b)
	if err != nil {
		return entities.Booking{}, err
	}
	cmd, err := db.Exec(ctx, `UPDATE bookings SET
		provider_id = $2, client_id = $3, quote_id = $4, listing_ids = $5, client_name = $6, client_email = $7,
		client_phone = $8, event_date = $9, event_location = $10, guests_count = $11, special_requests = $12,
		pricing_total = $13, currency = $14, payment_mode = $15, deposit_percent = $16, deposit_amount = $17,
		balance_amount = $18, deposit_paid_at = $19, balance_paid_at = $20, balance_due_date = $21,
		status = $22, status_timeline = $23, cancelled_by = $24, version = $25 + 1, created_at = $26,
		updated_at = $27
		WHERE id = $1 AND version = $25`, args...)
	if err != nil {
		return entities.Booking{}, err
	}
	if cmd.RowsAffected() == 0 {
		return entities.Booking{}, fmt.Errorf("booking %s: %w", b.ID, interfaces.ErrVersionConflict)
	}
	next := b.Clone()
	next.Version++
	return next, nil
}

func centsPtr(v *money.Cents) *int64 {
	if v == nil {
		return nil
	}
	c := int64(*v)
	return &c
}

func bookingArgs(b entities.Booking) ([]any, error) {
	ids := b.ListingIDs
	if ids == nil {
		ids = []string{}
	}
	listingIDs, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	timeline, err := json.Marshal(b.StatusTimeline)
	if err != nil {
		return nil, err
	}
	return []any{
		b.ID, b.ProviderID, b.ClientID, b.QuoteID, listingIDs, b.ClientName, b.ClientEmail, b.ClientPhone,
		b.EventDate.UTC(), b.EventLocation, b.GuestsCount, b.SpecialRequests, int64(b.PricingTotal), b.Currency, string(b.PaymentMode),
		b.DepositPercent, centsPtr(b.DepositAmount), centsPtr(b.BalanceAmount), utcPtr(b.DepositPaidAt), utcPtr(b.BalancePaidAt), utcPtr(b.BalanceDueDate),
		string(b.Status), timeline, b.CancelledBy, b.Version, b.CreatedAt.UTC(), b.UpdatedAt.UTC(),
	}, nil
}

func scanBooking(row pgx.Row) (entities.Booking, error) {
	var (
		b                    entities.Booking
		listingIDs, timeline []byte
		mode, status         string
		total                int64
		deposit, balance     *int64
		eventDate            time.Time
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&b.ID, &b.ProviderID, &b.ClientID, &b.QuoteID, &listingIDs, &b.ClientName, &b.ClientEmail, &b.ClientPhone,
		&eventDate, &b.EventLocation, &b.GuestsCount, &b.SpecialRequests, &total, &b.Currency, &mode,
		&b.DepositPercent, &deposit, &balance, &b.DepositPaidAt, &b.BalancePaidAt, &b.BalanceDueDate,
		&status, &timeline, &b.CancelledBy, &b.Version, &createdAt, &updatedAt)
	if err != nil {
		return entities.Booking{}, err
	}
	if err := json.Unmarshal(listingIDs, &b.ListingIDs); err != nil {
		return entities.Booking{}, fmt.Errorf("decode listing ids: %w", err)
	}
	if len(b.ListingIDs) == 0 {
		b.ListingIDs = nil
	}
	if err := json.Unmarshal(timeline, &b.StatusTimeline); err != nil {
		return entities.Booking{}, fmt.Errorf("decode status timeline: %w", err)
	}
	b.PricingTotal = money.Cents(total)
	b.PaymentMode = entities.PaymentMode(mode)
	b.Status = entities.BookingStatus(status)
	if deposit != nil {
		d := money.Cents(*deposit)
		b.DepositAmount = &d
	}
	if balance != nil {
		v := money.Cents(*balance)
		b.BalanceAmount = &v
	}
	b.EventDate = eventDate.UTC()
	b.DepositPaidAt = utcPtr(b.DepositPaidAt)
	b.BalancePaidAt = utcPtr(b.BalancePaidAt)
	b.BalanceDueDate = utcPtr(b.BalanceDueDate)
	b.CreatedAt = createdAt.UTC()
	b.UpdatedAt = updatedAt.UTC()
	return b, nil
}
