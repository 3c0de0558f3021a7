package wallet

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gift-server/internal/domain/balance"
	otelinfra "gift-server/internal/infrastructure/observability/otel"
)

// WalletApplicationService 残高照会アプリケーションサービス
type WalletApplicationService struct {
	balanceRepo balance.BalanceRepository
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
}

// NewWalletApplicationService 新しいWalletApplicationServiceを作成
func NewWalletApplicationService(
	balanceRepo balance.BalanceRepository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *WalletApplicationService {
	return &WalletApplicationService{
		balanceRepo: balanceRepo,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("wallet-service"),
	}
}

// GetBalance ウォレットと銀行の残高を取得
// レコードが存在しない入金先は残高0として返す
func (s *WalletApplicationService) GetBalance(ctx context.Context, req *GetBalanceRequest) (*GetBalanceResponse, error) {
	ctx, span := s.tracer.Start(ctx, "WalletApplicationService.GetBalance")
	defer span.End()

	span.SetAttributes(
		attribute.String("account_id", req.AccountID),
	)

	s.logger.Info(ctx, "Getting balance", map[string]interface{}{
		"account_id": req.AccountID,
	})

	walletBalance, err := s.balanceRepo.FindByAccountIDAndDestination(ctx, req.AccountID, balance.DestinationWallet)
	if err != nil && err != balance.ErrBalanceNotFound {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to find wallet balance", err, map[string]interface{}{
			"account_id": req.AccountID,
		})
		return nil, fmt.Errorf("failed to find wallet balance: %w", err)
	}

	bankBalance, err := s.balanceRepo.FindByAccountIDAndDestination(ctx, req.AccountID, balance.DestinationBank)
	if err != nil && err != balance.ErrBalanceNotFound {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to find bank balance", err, map[string]interface{}{
			"account_id": req.AccountID,
		})
		return nil, fmt.Errorf("failed to find bank balance: %w", err)
	}

	balances := make(map[string]int64)
	if walletBalance != nil {
		balances["wallet"] = walletBalance.Amount()
		s.metrics.RecordAccountBalance(ctx, req.AccountID, "wallet", walletBalance.Amount())
	} else {
		balances["wallet"] = 0
	}

	if bankBalance != nil {
		balances["bank"] = bankBalance.Amount()
		s.metrics.RecordAccountBalance(ctx, req.AccountID, "bank", bankBalance.Amount())
	} else {
		balances["bank"] = 0
	}

	return &GetBalanceResponse{
		AccountID: req.AccountID,
		Balances:  balances,
	}, nil
}
