package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gift-server/internal/domain/transaction"
)

// TransactionRepository MySQL実装のTransactionRepository
type TransactionRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewTransactionRepository 新しいTransactionRepositoryを作成
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		tracer: otel.Tracer("transaction-repository"),
	}
}

// Save 取引エントリを保存
func (r *TransactionRepository) Save(ctx context.Context, t *transaction.Transaction) error {
	ctx, span := r.tracer.Start(ctx, "TransactionRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.transaction_id", t.TransactionID()),
		attribute.String("db.account_id", t.AccountID()),
		attribute.String("db.transaction_type", t.TransactionType().String()),
		attribute.Int64("db.amount", t.Amount()),
		attribute.String("db.status", t.Status().String()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "bank_transactions"),
	)

	query := `
		INSERT INTO bank_transactions (
			transaction_id, account_id, transaction_type,
			amount, counterpart_amount, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			status = VALUES(status),
			updated_at = VALUES(updated_at)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.TransactionID(),
		t.AccountID(),
		t.TransactionType().String(),
		t.Amount(),
		t.CounterpartAmount(),
		t.Status().String(),
		t.CreatedAt(),
		t.UpdatedAt(),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "transaction saved")
	return nil
}

// FindByTransactionID トランザクションIDで取引を取得
func (r *TransactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	ctx, span := r.tracer.Start(ctx, "TransactionRepository.FindByTransactionID")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.transaction_id", transactionID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "bank_transactions"),
	)

	query := `
		SELECT
			transaction_id, account_id, transaction_type,
			amount, counterpart_amount, status, created_at, updated_at
		FROM bank_transactions
		WHERE transaction_id = ?
	`

	t, err := r.scanOne(r.db.QueryRowContext(ctx, query, transactionID))
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "transaction not found")
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("db.account_id", t.AccountID()),
		attribute.Int64("db.amount", t.Amount()),
	)
	span.SetStatus(otelcodes.Ok, "transaction found")
	return t, nil
}

// FindByAccountID アカウントの取引履歴を新しい順で取得（ページネーション対応）
func (r *TransactionRepository) FindByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*transaction.Transaction, error) {
	ctx, span := r.tracer.Start(ctx, "TransactionRepository.FindByAccountID")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.account_id", accountID),
		attribute.Int("db.limit", limit),
		attribute.Int("db.offset", offset),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "bank_transactions"),
	)

	query := `
		SELECT
			transaction_id, account_id, transaction_type,
			amount, counterpart_amount, status, created_at, updated_at
		FROM bank_transactions
		WHERE account_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		t, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	span.SetAttributes(attribute.Int("db.result_count", len(transactions)))
	span.SetStatus(otelcodes.Ok, fmt.Sprintf("found %d transactions", len(transactions)))
	return transactions, nil
}

// rowScanner QueryRowContextとrows.Nextの両方から復元するための共通インターフェース
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *TransactionRepository) scanOne(row rowScanner) (*transaction.Transaction, error) {
	var dbTransactionID, dbAccountID, dbTransactionType, dbStatus string
	var amount, counterpartAmount int64
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&dbTransactionID,
		&dbAccountID,
		&dbTransactionType,
		&amount,
		&counterpartAmount,
		&dbStatus,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	tt, err := transaction.NewTransactionType(dbTransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type: %w", err)
	}

	ts, err := transaction.NewTransactionStatus(dbStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction status: %w", err)
	}

	t, err := transaction.ReconstructTransaction(
		dbTransactionID,
		dbAccountID,
		tt,
		amount,
		counterpartAmount,
		ts,
		createdAt,
		updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct transaction entity: %w", err)
	}

	return t, nil
}
