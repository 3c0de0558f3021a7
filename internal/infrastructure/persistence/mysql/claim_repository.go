package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gift-server/internal/domain/claim"
)

// ClaimRepository MySQL実装のClaimRepository
// 受け取り済みコードの一覧はアカウントごとに1行のJSON配列として保持する
type ClaimRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewClaimRepository 新しいClaimRepositoryを作成
func NewClaimRepository(db *DB) *ClaimRepository {
	return &ClaimRepository{
		db:     db,
		tracer: otel.Tracer("claim-repository"),
	}
}

// GetClaims アカウントの受け取り記録を取得
// 行が存在しないアカウントは空の記録として返す
func (r *ClaimRepository) GetClaims(ctx context.Context, accountID string) (*claim.ClaimRecord, error) {
	ctx, span := r.tracer.Start(ctx, "ClaimRepository.GetClaims")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.account_id", accountID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "account_claims"),
	)

	query := `
		SELECT gifts
		FROM account_claims
		WHERE account_id = ?
	`

	var giftsJSON []byte
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&giftsJSON)

	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "no claims yet")
		return claim.NewClaimRecord(accountID, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}

	var codes []string
	if len(giftsJSON) > 0 {
		if err := json.Unmarshal(giftsJSON, &codes); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to decode claims: %w", err)
		}
	}

	record, err := claim.NewClaimRecord(accountID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct claim record: %w", err)
	}

	span.SetAttributes(attribute.Int("db.claim_count", record.Len()))
	span.SetStatus(otelcodes.Ok, "claims found")
	return record, nil
}

// SaveClaims アカウントの受け取り記録を永続化
func (r *ClaimRepository) SaveClaims(ctx context.Context, record *claim.ClaimRecord) error {
	ctx, span := r.tracer.Start(ctx, "ClaimRepository.SaveClaims")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.account_id", record.AccountID()),
		attribute.Int("db.claim_count", record.Len()),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.table", "account_claims"),
	)

	giftsJSON, err := json.Marshal(record.Codes())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to encode claims: %w", err)
	}

	query := `
		INSERT INTO account_claims (account_id, gifts)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE
			gifts = VALUES(gifts),
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, record.AccountID(), giftsJSON); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save claims: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "claims saved")
	return nil
}

// ClearClaims アカウントの受け取り記録を全消去
func (r *ClaimRepository) ClearClaims(ctx context.Context, accountID string) error {
	ctx, span := r.tracer.Start(ctx, "ClaimRepository.ClearClaims")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.account_id", accountID),
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.table", "account_claims"),
	)

	query := `
		DELETE FROM account_claims
		WHERE account_id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to clear claims: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "claims cleared")
	return nil
}
