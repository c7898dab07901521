package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const quoteColumns = `id, inquiry_id, provider_id, client_id, items, currency, status, valid_until,
	payment_mode, allowed_payment_modes, deposit_percent, notes, sent_at, viewed_at, accepted_at,
	declined_at, booking_id, version, created_at, updated_at`

type QuoteRepository struct {
	db *pgxpool.Pool
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository(db *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	args, err := quoteArgs(q)
	if err != nil {
		return entities.Quote{}, err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO quotes (`+quoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`, args...)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return entities.Quote{}, fmt.Errorf("quote %s: %w", q.ID, ErrAlreadyExists)
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	q, err := scanQuote(r.db.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Quote{}, nil
	}
	return q, err
}

func (r *QuoteRepository) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	return updateQuote(ctx, r.db, q)
}

func (r *QuoteRepository) ListByStatus(ctx context.Context, status entities.QuoteStatus) ([]entities.Quote, error) {
	rows, err := r.db.Query(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE status = $1 ORDER BY created_at`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entities.Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// updateQuote replaces every mutable column when the stored version still
// equals q.Version.
func updateQuote(ctx context.Context, db querier, q entities.Quote) (entities.Quote, error) {
	args, err := quoteArgs(q)
	if err != nil {
		return entities.Quote{}, err
	}
	cmd, err := db.Exec(ctx, `UPDATE quotes SET
		inquiry_id = $2, provider_id = $3, client_id = $4, items = $5, currency = $6, status = $7,
		valid_until = $8, payment_mode = $9, allowed_payment_modes = $10, deposit_percent = $11,
		notes = $12, sent_at = $13, viewed_at = $14, accepted_at = $15, declined_at = $16,
		booking_id = $17, version = $18 + 1, created_at = $19, updated_at = $20
		WHERE id = $1 AND version = $18`, args...)
	if err != nil {
		return entities.Quote{}, err
	}
	if cmd.RowsAffected() == 0 {
		return entities.Quote{}, fmt.Errorf("quote %s: %w", q.ID, interfaces.ErrVersionConflict)
	}
	next := q.Clone()
	next.Version++
	return next, nil
}

func quoteArgs(q entities.Quote) ([]any, error) {
	items, err := json.Marshal(q.Items)
	if err != nil {
		return nil, err
	}
	modes := q.AllowedPaymentModes
	if modes == nil {
		modes = []entities.PaymentMode{}
	}
	allowed, err := json.Marshal(modes)
	if err != nil {
		return nil, err
	}
	return []any{
		q.ID, q.InquiryID, q.ProviderID, q.ClientID, items, q.Currency, string(q.Status), nullTime(q.ValidUntil),
		string(q.PaymentMode), allowed, q.DepositPercent, q.Notes, utcPtr(q.SentAt), utcPtr(q.ViewedAt), utcPtr(q.AcceptedAt),
		utcPtr(q.DeclinedAt), q.BookingID, q.Version, q.CreatedAt.UTC(), q.UpdatedAt.UTC(),
	}, nil
}

func scanQuote(row pgx.Row) (entities.Quote, error) {
	var (
		q                    entities.Quote
		status, mode         string
		items, allowed       []byte
		validUntil           *time.Time
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&q.ID, &q.InquiryID, &q.ProviderID, &q.ClientID, &items, &q.Currency, &status, &validUntil,
		&mode, &allowed, &q.DepositPercent, &q.Notes, &q.SentAt, &q.ViewedAt, &q.AcceptedAt,
		&q.DeclinedAt, &q.BookingID, &q.Version, &createdAt, &updatedAt)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := json.Unmarshal(items, &q.Items); err != nil {
		return entities.Quote{}, fmt.Errorf("decode quote items: %w", err)
	}
	if err := json.Unmarshal(allowed, &q.AllowedPaymentModes); err != nil {
		return entities.Quote{}, fmt.Errorf("decode allowed payment modes: %w", err)
	}
	if len(q.AllowedPaymentModes) == 0 {
		q.AllowedPaymentModes = nil
	}
	q.Status = entities.QuoteStatus(status)
	q.PaymentMode = entities.PaymentMode(mode)
	q.ValidUntil = valueOrZero(validUntil)
	q.SentAt = utcPtr(q.SentAt)
	q.ViewedAt = utcPtr(q.ViewedAt)
	q.AcceptedAt = utcPtr(q.AcceptedAt)
	q.DeclinedAt = utcPtr(q.DeclinedAt)
	q.CreatedAt = createdAt.UTC()
	q.UpdatedAt = updatedAt.UTC()
	return q, nil
}
