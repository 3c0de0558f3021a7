package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// ギフトコード受け取り試行数（結果別）
	RedemptionCount metric.Int64Counter

	// 入金後の残高の分布
	AccountBalance metric.Int64Gauge

	// 受け取り履歴の整理で削除されたコード数
	CompactedClaimCount metric.Int64Counter

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	redemptionCount, err := meter.Int64Counter(
		"gift_redemptions_total",
		metric.WithDescription("Total number of gift code redemption attempts"),
	)
	if err != nil {
		return nil, err
	}

	accountBalance, err := meter.Int64Gauge(
		"account_balance",
		metric.WithDescription("Account balance after credit"),
	)
	if err != nil {
		return nil, err
	}

	compactedClaimCount, err := meter.Int64Counter(
		"compacted_claims_total",
		metric.WithDescription("Total number of claim entries removed by compaction"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RedemptionCount:     redemptionCount,
		AccountBalance:      accountBalance,
		CompactedClaimCount: compactedClaimCount,
		RequestCount:        requestCount,
		ResponseTime:        responseTime,
		ErrorCount:          errorCount,
	}, nil
}

// RecordRedemption ギフトコード受け取り試行を記録
// resultは"accepted"や"rejected"などの結果区分
func (m *Metrics) RecordRedemption(ctx context.Context, result, destination string) {
	m.RedemptionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("result", result),
			attribute.String("destination", destination),
		),
	)
}

// RecordAccountBalance 入金後の残高を記録
func (m *Metrics) RecordAccountBalance(ctx context.Context, accountID, destination string, balance int64) {
	m.AccountBalance.Record(ctx, balance,
		metric.WithAttributes(
			attribute.String("account_id", accountID),
			attribute.String("destination", destination),
		),
	)
}

// RecordCompactedClaims 整理で削除されたコード数を記録
func (m *Metrics) RecordCompactedClaims(ctx context.Context, removed int64) {
	if removed > 0 {
		m.CompactedClaimCount.Add(ctx, removed)
	}
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
