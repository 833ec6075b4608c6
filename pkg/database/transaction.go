package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier là phần chung của *pgxpool.Pool và pgx.Tx,
// repository viết query một lần và chạy được cả trong lẫn ngoài transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Beginner được *pgxpool.Pool và *pgx.Conn implement
type Beginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxFunc chạy bên trong transaction, trả error thì rollback
type TxFunc func(pgx.Tx) error

// Read-check-write trên posts cần READ COMMITTED + SELECT ... FOR UPDATE, không cần SERIALIZABLE
var defaultTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

// WithTransaction commit khi fn thành công, rollback khi fn lỗi hoặc panic (panic được re-throw).
// Lỗi của fn được trả nguyên vẹn để caller còn errors.Is với domain sentinel.
func WithTransaction(ctx context.Context, db Beginner, fn TxFunc) error {
	var fnErr error
	err := pgx.BeginTxFunc(ctx, db, defaultTxOptions, func(tx pgx.Tx) error {
		fnErr = fn(tx)
		return fnErr
	})
	if err == nil {
		return nil
	}
	if fnErr != nil {
		return fnErr
	}
	return fmt.Errorf("transaction failed: %w", err)
}

// WithTransactionResult giống WithTransaction nhưng trả thêm giá trị của fn
func WithTransactionResult[T any](ctx context.Context, db Beginner, fn func(pgx.Tx) (T, error)) (T, error) {
	var result T
	err := WithTransaction(ctx, db, func(tx pgx.Tx) error {
		var fnErr error
		result, fnErr = fn(tx)
		return fnErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
