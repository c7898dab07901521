package postgres

import (
	"context"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

var _ interfaces.ITransactionalRepository = (*TransactionRepository)(nil)

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) AcceptQuote(ctx context.Context, q entities.Quote, b entities.Booking) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := updateQuote(ctx, tx, q); err != nil {
			return err
		}
		return insertBooking(ctx, tx, b)
	})
}

func (r *TransactionRepository) ConfirmPayment(ctx context.Context, s entities.PaymentSession, b entities.Booking) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := updateSessionStatus(ctx, tx, s, entities.PaymentSessionStatusCreated, entities.PaymentSessionStatusExpired); err != nil {
			return err
		}
		_, err := updateBooking(ctx, tx, b)
		return err
	})
}

func (r *TransactionRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
