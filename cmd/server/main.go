package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	authapp "gift-server/internal/application/auth"
	giftapp "gift-server/internal/application/gift"
	historyapp "gift-server/internal/application/history"
	walletapp "gift-server/internal/application/wallet"
	"gift-server/internal/domain/giftcode"
	"gift-server/internal/domain/service"
	"gift-server/internal/infrastructure/config"
	otelinfra "gift-server/internal/infrastructure/observability/otel"
	"gift-server/internal/infrastructure/persistence/mysql"
	"gift-server/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// コード定義の読み込み
	// 起動時に読めない場合は空のレジストリで起動し、後からreloadで投入する
	defs, err := config.LoadCodes(cfg.Gift.CodesFile)
	if err != nil {
		log.Printf("Failed to load gift codes from %s: %v (starting with empty registry)", cfg.Gift.CodesFile, err)
		defs = nil
	}
	registry := giftcode.NewRegistry(defs)

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("gift-server")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("gift-server")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// データベース接続の初期化
	db, err := mysql.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// リポジトリの初期化
	claimRepo := mysql.NewClaimRepository(db)
	balanceRepo := mysql.NewBalanceRepository(db)
	transactionRepo := mysql.NewTransactionRepository(db)

	// トランザクションマネージャーの初期化
	txManager := mysql.NewTransactionManager(db)

	// ドメインサービスの初期化
	eligibilityService := service.NewEligibilityService()

	// アプリケーションサービスの初期化
	authAppService := authapp.NewAuthApplicationService(&cfg.JWT, logger)

	giftAppService := giftapp.NewGiftApplicationService(
		registry,
		claimRepo,
		balanceRepo,
		transactionRepo,
		txManager,
		eligibilityService,
		&cfg.Gift,
		logger,
		metrics,
	)

	walletAppService := walletapp.NewWalletApplicationService(
		balanceRepo,
		logger,
		metrics,
	)

	historyAppService := historyapp.NewHistoryApplicationService(
		transactionRepo,
		logger,
		metrics,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		logger,
		metrics,
		authAppService,
		giftAppService,
		walletAppService,
		historyAppService,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		log.Printf("REST API server starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("REST API server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	// グレースフルシャットダウン
	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}
