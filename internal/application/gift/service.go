package gift

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gift-server/internal/domain/account"
	"gift-server/internal/domain/balance"
	"gift-server/internal/domain/claim"
	"gift-server/internal/domain/giftcode"
	"gift-server/internal/domain/service"
	"gift-server/internal/domain/transaction"
	"gift-server/internal/infrastructure/config"
	otelinfra "gift-server/internal/infrastructure/observability/otel"
)

// GiftApplicationService ギフトコード受け取りアプリケーションサービス
// コードの確認・受け取り・告知一覧と、運用向けの定義再読み込み・記録整理を提供する
type GiftApplicationService struct {
	registryMu  sync.RWMutex
	registry    *giftcode.Registry
	claimRepo   claim.ClaimRepository
	balanceRepo balance.BalanceRepository
	txnRepo     transaction.TransactionRepository
	txManager   transaction.TransactionManager
	eligibility *service.EligibilityService
	giftCfg     *config.GiftConfig
	locks       *accountLocker
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
	maxRetries  int
}

// NewGiftApplicationService 新しいGiftApplicationServiceを作成
func NewGiftApplicationService(
	registry *giftcode.Registry,
	claimRepo claim.ClaimRepository,
	balanceRepo balance.BalanceRepository,
	txnRepo transaction.TransactionRepository,
	txManager transaction.TransactionManager,
	eligibility *service.EligibilityService,
	giftCfg *config.GiftConfig,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *GiftApplicationService {
	return &GiftApplicationService{
		registry:    registry,
		claimRepo:   claimRepo,
		balanceRepo: balanceRepo,
		txnRepo:     txnRepo,
		txManager:   txManager,
		eligibility: eligibility,
		giftCfg:     giftCfg,
		locks:       newAccountLocker(),
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("gift-service"),
		maxRetries:  3,
	}
}

// currentRegistry 現在のレジストリのスナップショットを返す
// ReloadCodesによる差し替えと競合しないよう読み取りロックで取得する
func (s *GiftApplicationService) currentRegistry() *giftcode.Registry {
	s.registryMu.RLock()
	defer s.registryMu.RUnlock()
	return s.registry
}

// resolve リクエストからアカウントとコードを解決し、受け取り資格まで確認する
func (s *GiftApplicationService) resolve(accountID string, groupIDs []string, token string) (*account.Account, *giftcode.GiftCode, error) {
	if !s.giftCfg.Enabled {
		return nil, nil, ErrGiftsDisabled
	}

	acc, err := account.NewAccount(accountID, groupIDs)
	if err != nil {
		return nil, nil, err
	}

	code, ok := s.currentRegistry().Lookup(token)
	if !ok {
		return nil, nil, giftcode.ErrCodeNotFound
	}

	if !code.Redeemable() {
		return nil, nil, giftcode.ErrInvalidAmount
	}

	if !s.eligibility.IsEligible(acc, code) {
		return nil, nil, giftcode.ErrNotEligible
	}

	return acc, code, nil
}

// Preview コードの内容を確認する（受け取りは行わない）
// 受け取りを予約するものではなく、確認後に別のリクエストが先に受け取る可能性はある
func (s *GiftApplicationService) Preview(ctx context.Context, req *PreviewRequest) (*PreviewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GiftApplicationService.Preview")
	defer span.End()

	span.SetAttributes(
		attribute.String("account_id", req.AccountID),
	)

	acc, code, err := s.resolve(req.AccountID, req.GroupIDs, req.Code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	record, err := s.claimRepo.GetClaims(ctx, acc.ID())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}

	if record.Has(code.Code()) {
		span.SetStatus(otelcodes.Error, giftcode.ErrAlreadyClaimed.Error())
		return nil, giftcode.ErrAlreadyClaimed
	}

	return &PreviewResponse{
		Code:    code.Code(),
		Amount:  code.Amount(),
		Message: code.Message(),
	}, nil
}

// Redeem コードを受け取り、残高へ入金する
// 同一アカウントの処理はアカウント単位のロックで直列化され、
// 1コードにつき1アカウント1回だけ成功する
func (s *GiftApplicationService) Redeem(ctx context.Context, req *RedeemRequest) (*RedeemResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GiftApplicationService.Redeem")
	defer span.End()

	span.SetAttributes(
		attribute.String("account_id", req.AccountID),
	)

	s.logger.Info(ctx, "Redeeming gift code", map[string]interface{}{
		"account_id": req.AccountID,
	})

	acc, code, err := s.resolve(req.AccountID, req.GroupIDs, req.Code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordRedemption(ctx, "rejected", "")
		return nil, err
	}

	destination := balance.ResolveDestination(s.giftCfg.PaidIntoBank(), s.giftCfg.BankEnabled)
	span.SetAttributes(attribute.String("destination", destination.String()))

	// 受け取り確認から記録保存までを直列化する
	unlock := s.locks.Lock(acc.ID())
	defer unlock()

	record, err := s.claimRepo.GetClaims(ctx, acc.ID())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}

	if record.Has(code.Code()) {
		span.SetStatus(otelcodes.Error, giftcode.ErrAlreadyClaimed.Error())
		s.metrics.RecordRedemption(ctx, "rejected", destination.String())
		return nil, giftcode.ErrAlreadyClaimed
	}

	var result *RedeemResponse

	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		balanceAfter, err := s.credit(ctx, acc.ID(), destination, code.Amount())
		if err != nil {
			return err
		}

		// 銀行への入金は取引台帳にも記録する（相手方金額は0）
		if destination.IsBank() {
			txn, err := transaction.NewTransaction(
				s.generateTransactionID(),
				acc.ID(),
				transaction.TransactionTypeGift,
				code.Amount(),
				0,
				transaction.TransactionStatusCompleted,
			)
			if err != nil {
				return fmt.Errorf("failed to create transaction entity: %w", err)
			}
			if err := s.txnRepo.Save(ctx, txn); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}
		}

		// 入金成功後に受け取り記録を確定する
		// ここで失敗した場合は入金済みのままになるため、区別可能なエラーで返す
		// 圧縮は追加より先に行う（直後に追加するコードを誤って消さないため）
		record.Compact(s.currentRegistry())
		record.Add(code.Code())
		if err := s.claimRepo.SaveClaims(ctx, record); err != nil {
			return fmt.Errorf("%w: %v", claim.ErrPersistFailed, err)
		}

		result = &RedeemResponse{
			Code:         code.Code(),
			Amount:       code.Amount(),
			Message:      code.Message(),
			Destination:  destination.String(),
			BalanceAfter: balanceAfter,
		}
		return nil
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to redeem gift code", err, map[string]interface{}{
			"account_id": req.AccountID,
		})
		s.metrics.RecordError(ctx, "gift_redemption_failed")
		s.metrics.RecordRedemption(ctx, "failed", destination.String())
		return nil, err
	}

	s.metrics.RecordRedemption(ctx, "accepted", destination.String())
	s.metrics.RecordAccountBalance(ctx, acc.ID(), destination.String(), result.BalanceAfter)

	s.logger.Info(ctx, "Gift code redeemed successfully", map[string]interface{}{
		"account_id":  req.AccountID,
		"amount":      result.Amount,
		"destination": result.Destination,
	})

	return result, nil
}

// credit 入金先の残高へ金額を加算する（楽観的ロックのリトライ付き）
func (s *GiftApplicationService) credit(ctx context.Context, accountID string, destination balance.Destination, amount int64) (int64, error) {
	var retryErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 10 * time.Millisecond
			time.Sleep(backoff)
		}

		b, err := s.balanceRepo.FindByAccountIDAndDestination(ctx, accountID, destination)
		if err != nil && err != balance.ErrBalanceNotFound {
			return 0, fmt.Errorf("%w: %v", balance.ErrCreditFailed, err)
		}

		if b == nil {
			// 残高が存在しない場合は0で作成する
			b, err = balance.NewBalance(accountID, destination, 0, 0)
			if err != nil {
				return 0, fmt.Errorf("failed to create balance entity: %w", err)
			}
			if err := s.balanceRepo.Create(ctx, b); err != nil {
				return 0, fmt.Errorf("%w: %v", balance.ErrCreditFailed, err)
			}
		}

		if err := b.Credit(amount); err != nil {
			return 0, err
		}

		if err := s.balanceRepo.Save(ctx, b); err != nil {
			if attempt < s.maxRetries-1 {
				retryErr = err
				continue
			}
			return 0, fmt.Errorf("%w: %v", balance.ErrCreditFailed, err)
		}

		return b.Amount(), nil
	}

	return 0, fmt.Errorf("%w: %v", balance.ErrCreditFailed, retryErr)
}

// Advertised アカウントが受け取れる告知対象のギフト一覧を返す
// 表示フラグが無効なコードと受け取り済みのコードは含まれない
func (s *GiftApplicationService) Advertised(ctx context.Context, req *AdvertisedRequest) (*AdvertisedResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GiftApplicationService.Advertised")
	defer span.End()

	span.SetAttributes(
		attribute.String("account_id", req.AccountID),
	)

	if !s.giftCfg.Enabled {
		return &AdvertisedResponse{Gifts: []AdvertisedGift{}}, nil
	}

	acc, err := account.NewAccount(req.AccountID, req.GroupIDs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	record, err := s.claimRepo.GetClaims(ctx, acc.ID())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}

	gifts := []AdvertisedGift{}
	for _, code := range s.currentRegistry().All() {
		if !code.Visible() || !code.Redeemable() {
			continue
		}
		if !s.eligibility.IsEligible(acc, code) {
			continue
		}
		if record.Has(code.Code()) {
			continue
		}
		gifts = append(gifts, AdvertisedGift{
			Code:    code.Code(),
			Amount:  code.Amount(),
			Message: code.Message(),
			URL:     "/?monetarygift=" + code.Code(),
		})
	}

	span.SetAttributes(attribute.Int("gift_count", len(gifts)))
	return &AdvertisedResponse{Gifts: gifts}, nil
}

// CompactClaims レジストリに存在しないコードを受け取り記録から取り除く
func (s *GiftApplicationService) CompactClaims(ctx context.Context, req *CompactClaimsRequest) (*CompactClaimsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GiftApplicationService.CompactClaims")
	defer span.End()

	span.SetAttributes(
		attribute.String("account_id", req.AccountID),
	)

	unlock := s.locks.Lock(req.AccountID)
	defer unlock()

	record, err := s.claimRepo.GetClaims(ctx, req.AccountID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}

	before := record.Len()
	record.Compact(s.currentRegistry())
	removed := before - record.Len()

	if removed > 0 {
		if err := s.claimRepo.SaveClaims(ctx, record); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to save claims: %w", err)
		}
	}

	s.metrics.RecordCompactedClaims(ctx, int64(removed))
	s.logger.Info(ctx, "Compacted claim record", map[string]interface{}{
		"account_id": req.AccountID,
		"removed":    removed,
		"remaining":  record.Len(),
	})

	return &CompactClaimsResponse{
		AccountID: req.AccountID,
		Removed:   removed,
		Remaining: record.Len(),
	}, nil
}

// ReloadCodes コード定義ファイルを再読み込みしてレジストリを差し替える
// 読み込みに失敗した場合は現在のレジストリを維持する
func (s *GiftApplicationService) ReloadCodes(ctx context.Context) (*ReloadCodesResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GiftApplicationService.ReloadCodes")
	defer span.End()

	defs, err := config.LoadCodes(s.giftCfg.CodesFile)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to reload gift codes", err, map[string]interface{}{
			"codes_file": s.giftCfg.CodesFile,
		})
		return nil, fmt.Errorf("failed to reload codes: %w", err)
	}

	registry := giftcode.NewRegistry(defs)

	s.registryMu.Lock()
	s.registry = registry
	s.registryMu.Unlock()

	span.SetAttributes(attribute.Int("code_count", registry.Len()))
	s.logger.Info(ctx, "Gift codes reloaded", map[string]interface{}{
		"codes_file": s.giftCfg.CodesFile,
		"count":      registry.Len(),
	})

	return &ReloadCodesResponse{Count: registry.Len()}, nil
}

// ListCodes 管理API向けに全コード定義の概要を返す（非表示コードを含む）
func (s *GiftApplicationService) ListCodes(ctx context.Context) (*ListCodesResponse, error) {
	_, span := s.tracer.Start(ctx, "GiftApplicationService.ListCodes")
	defer span.End()

	codes := []CodeSummary{}
	for _, code := range s.currentRegistry().All() {
		codes = append(codes, CodeSummary{
			Code:       code.Code(),
			Amount:     code.Amount(),
			Message:    code.Message(),
			Recipients: code.Recipients(),
			Groups:     code.Groups(),
			Visible:    code.Visible(),
		})
	}

	span.SetAttributes(attribute.Int("code_count", len(codes)))
	return &ListCodesResponse{Codes: codes}, nil
}

// generateTransactionID トランザクションIDを生成
func (s *GiftApplicationService) generateTransactionID() string {
	return fmt.Sprintf("txn_%d", time.Now().UnixNano())
}
