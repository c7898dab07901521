package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	sessionColumns = `id, booking_id, payment_type, amount, currency, gateway_session_id, redirect_url,
	status, created_at, expires_at, confirmed_at, captured_at`

	liveSessionConstraint = "payment_sessions_live_uniq"
)

type PaymentSessionRepository struct {
	db *pgxpool.Pool
}

var _ interfaces.IPaymentSessionRepository = (*PaymentSessionRepository)(nil)

func NewPaymentSessionRepository(db *pgxpool.Pool) *PaymentSessionRepository {
	return &PaymentSessionRepository{db: db}
}

func (r *PaymentSessionRepository) Create(ctx context.Context, s entities.PaymentSession) (entities.PaymentSession, error) {
	_, err := r.db.Exec(ctx, `INSERT INTO payment_sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.BookingID, string(s.PaymentType), int64(s.Amount), s.Currency, s.GatewaySessionID, s.RedirectURL,
		string(s.Status), s.CreatedAt.UTC(), s.ExpiresAt.UTC(), utcPtr(s.ConfirmedAt), utcPtr(s.CapturedAt))
	if err != nil {
		if name, ok := uniqueConstraint(err); ok {
			if name == liveSessionConstraint {
				return entities.PaymentSession{}, fmt.Errorf("booking %s %s: %w", s.BookingID, s.PaymentType, ErrLiveSessionTaken)
			}
			return entities.PaymentSession{}, fmt.Errorf("payment session %s: %w", s.ID, ErrAlreadyExists)
		}
		return entities.PaymentSession{}, err
	}
	return s, nil
}

func (r *PaymentSessionRepository) GetByID(ctx context.Context, id string) (entities.PaymentSession, error) {
	return r.getOne(ctx, `SELECT `+sessionColumns+` FROM payment_sessions WHERE id = $1`, id)
}

func (r *PaymentSessionRepository) GetByGatewaySessionID(ctx context.Context, gatewaySessionID string) (entities.PaymentSession, error) {
	return r.getOne(ctx, `SELECT `+sessionColumns+` FROM payment_sessions WHERE gateway_session_id = $1 LIMIT 1`, gatewaySessionID)
}

func (r *PaymentSessionRepository) ListByBookingID(ctx context.Context, bookingID string) ([]entities.PaymentSession, error) {
	return r.list(ctx, `SELECT `+sessionColumns+` FROM payment_sessions WHERE booking_id = $1 ORDER BY created_at`, bookingID)
}

func (r *PaymentSessionRepository) ListByStatus(ctx context.Context, status entities.PaymentSessionStatus) ([]entities.PaymentSession, error) {
	return r.list(ctx, `SELECT `+sessionColumns+` FROM payment_sessions WHERE status = $1 ORDER BY created_at`, string(status))
}

func (r *PaymentSessionRepository) UpdateStatus(ctx context.Context, s entities.PaymentSession, from entities.PaymentSessionStatus) (entities.PaymentSession, error) {
	if err := updateSessionStatus(ctx, r.db, s, from); err != nil {
		return entities.PaymentSession{}, err
	}
	return s, nil
}

func (r *PaymentSessionRepository) getOne(ctx context.Context, sql string, arg string) (entities.PaymentSession, error) {
	s, err := scanSession(r.db.QueryRow(ctx, sql, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.PaymentSession{}, nil
	}
	return s, err
}

func (r *PaymentSessionRepository) list(ctx context.Context, sql string, arg string) ([]entities.PaymentSession, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entities.PaymentSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// updateSessionStatus writes the status fields of s when the stored status is
// one of from.
func updateSessionStatus(ctx context.Context, db querier, s entities.PaymentSession, from ...entities.PaymentSessionStatus) error {
	allowed := make([]string, 0, len(from))
	for _, f := range from {
		allowed = append(allowed, string(f))
	}
	cmd, err := db.Exec(ctx, `UPDATE payment_sessions
		SET status = $2, confirmed_at = $3, captured_at = $4
		WHERE id = $1 AND status = ANY($5)`,
		s.ID, string(s.Status), utcPtr(s.ConfirmedAt), utcPtr(s.CapturedAt), allowed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("payment session %s: %w", s.ID, interfaces.ErrVersionConflict)
	}
	return nil
}

func scanSession(row pgx.Row) (entities.PaymentSession, error) {
	var (
		s                    entities.PaymentSession
		paymentType, status  string
		amount               int64
		createdAt, expiresAt time.Time
	)
	err := row.Scan(&s.ID, &s.BookingID, &paymentType, &amount, &s.Currency, &s.GatewaySessionID, &s.RedirectURL,
		&status, &createdAt, &expiresAt, &s.ConfirmedAt, &s.CapturedAt)
	if err != nil {
		return entities.PaymentSession{}, err
	}
	s.PaymentType = entities.PaymentType(paymentType)
	s.Status = entities.PaymentSessionStatus(status)
	s.Amount = money.Cents(amount)
	s.CreatedAt = createdAt.UTC()
	s.ExpiresAt = expiresAt.UTC()
	s.ConfirmedAt = utcPtr(s.ConfirmedAt)
	s.CapturedAt = utcPtr(s.CapturedAt)
	return s, nil
}
