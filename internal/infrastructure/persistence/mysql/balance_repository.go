package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gift-server/internal/domain/balance"
)

// BalanceRepository MySQL実装のBalanceRepository
type BalanceRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewBalanceRepository 新しいBalanceRepositoryを作成
func NewBalanceRepository(db *DB) *BalanceRepository {
	return &BalanceRepository{
		db:     db,
		tracer: otel.Tracer("balance-repository"),
	}
}

// FindByAccountIDAndDestination アカウントIDと入金先で残高を取得
func (r *BalanceRepository) FindByAccountIDAndDestination(ctx context.Context, accountID string, destination balance.Destination) (*balance.Balance, error) {
	ctx, span := r.tracer.Start(ctx, "BalanceRepository.FindByAccountIDAndDestination")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.account_id", accountID),
		attribute.String("db.destination", destination.String()),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "balances"),
	)

	query := `
		SELECT account_id, destination, balance, version
		FROM balances
		WHERE account_id = ? AND destination = ?
	`

	var dbAccountID string
	var dbDestination string
	var amount int64
	var version int

	err := r.db.QueryRowContext(ctx, query, accountID, destination.String()).Scan(
		&dbAccountID,
		&dbDestination,
		&amount,
		&version,
	)

	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "balance not found")
		return nil, balance.ErrBalanceNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find balance: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("db.balance", amount),
		attribute.Int("db.version", version),
	)
	span.SetStatus(otelcodes.Ok, "balance found")

	dest, err := balance.NewDestination(dbDestination)
	if err != nil {
		return nil, fmt.Errorf("invalid destination: %w", err)
	}

	b, err := balance.NewBalance(dbAccountID, dest, amount, version)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct balance entity: %w", err)
	}

	return b, nil
}

// Save 残高を保存（更新、楽観的ロック対応）
func (r *BalanceRepository) Save(ctx context.Context, b *balance.Balance) error {
	ctx, span := r.tracer.Start(ctx, "BalanceRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.account_id", b.AccountID()),
		attribute.String("db.destination", b.Destination().String()),
		attribute.Int64("db.balance", b.Amount()),
		attribute.Int("db.version", b.Version()),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "balances"),
	)

	// エンティティ側でCreditのたびにversionが進むため、
	// 比較対象は更新前のバージョン（version - 1）になる
	query := `
		UPDATE balances
		SET balance = ?, version = ?, updated_at = CURRENT_TIMESTAMP
		WHERE account_id = ? AND destination = ? AND version = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		b.Amount(),
		b.Version(),
		b.AccountID(),
		b.Destination().String(),
		b.Version()-1,
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		err := fmt.Errorf("optimistic lock failed: version mismatch or balance not found")
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", rowsAffected))
	span.SetStatus(otelcodes.Ok, "balance saved")
	return nil
}

// Create 新しい残高レコードを作成
func (r *BalanceRepository) Create(ctx context.Context, b *balance.Balance) error {
	ctx, span := r.tracer.Start(ctx, "BalanceRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.account_id", b.AccountID()),
		attribute.String("db.destination", b.Destination().String()),
		attribute.Int64("db.balance", b.Amount()),
		attribute.Int("db.version", b.Version()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "balances"),
	)

	query := `
		INSERT INTO balances (account_id, destination, balance, version)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			balance = VALUES(balance),
			version = VALUES(version),
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query,
		b.AccountID(),
		b.Destination().String(),
		b.Amount(),
		b.Version(),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to create balance: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "balance created")
	return nil
}
