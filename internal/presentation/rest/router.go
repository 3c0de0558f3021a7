package rest

import (
	authapp "gift-server/internal/application/auth"
	giftapp "gift-server/internal/application/gift"
	historyapp "gift-server/internal/application/history"
	walletapp "gift-server/internal/application/wallet"
	"gift-server/internal/infrastructure/config"
	otelinfra "gift-server/internal/infrastructure/observability/otel"
	"gift-server/internal/presentation/rest/handler"
	restmiddleware "gift-server/internal/presentation/rest/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Router REST APIルーター
type Router struct {
	echo           *echo.Echo
	authHandler    *handler.AuthHandler
	giftHandler    *handler.GiftHandler
	walletHandler  *handler.WalletHandler
	historyHandler *handler.HistoryHandler
	adminHandler   *handler.AdminHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	authService *authapp.AuthApplicationService,
	giftService *giftapp.GiftApplicationService,
	walletService *walletapp.WalletApplicationService,
	historyService *historyapp.HistoryApplicationService,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, cfg, logger, metrics)

	// ハンドラーの作成
	authHandler := handler.NewAuthHandler(authService)
	giftHandler := handler.NewGiftHandler(giftService)
	walletHandler := handler.NewWalletHandler(walletService)
	historyHandler := handler.NewHistoryHandler(historyService)
	adminHandler := handler.NewAdminHandler(giftService)

	// ルーティングの設定
	setupRoutes(e, cfg, logger, authHandler, giftHandler, walletHandler, historyHandler, adminHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:           e,
		authHandler:    authHandler,
		giftHandler:    giftHandler,
		walletHandler:  walletHandler,
		historyHandler: historyHandler,
		adminHandler:   adminHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	authHandler *handler.AuthHandler,
	giftHandler *handler.GiftHandler,
	walletHandler *handler.WalletHandler,
	historyHandler *handler.HistoryHandler,
	adminHandler *handler.AdminHandler,
) {
	// API v1グループ
	api := e.Group("/api/v1")

	// 認証エンドポイント（認証不要）
	api.POST("/auth/token", authHandler.GenerateToken)

	// 認証が必要なエンドポイント
	authGroup := api.Group("", restmiddleware.AuthMiddleware(&cfg.JWT, logger))

	// ギフトコード関連エンドポイント
	authGroup.GET("/gifts", giftHandler.GetAdvertisedGifts)
	authGroup.GET("/gifts/preview", giftHandler.PreviewGift)
	authGroup.POST("/gifts/accept", giftHandler.AcceptGift)

	// 残高・履歴関連エンドポイント
	authGroup.GET("/me/balance", walletHandler.GetBalance)
	authGroup.GET("/me/transactions", historyHandler.GetTransactionHistory)

	// 管理APIエンドポイント（APIキー認証）
	adminGroup := api.Group("/admin", restmiddleware.APIKeyMiddleware(&cfg.AdminAPI, logger))
	adminGroup.GET("/codes", adminHandler.ListCodes)
	adminGroup.POST("/codes/reload", adminHandler.ReloadCodes)
	adminGroup.GET("/users/:user_id/balance", walletHandler.GetBalanceAdmin)
	adminGroup.GET("/users/:user_id/transactions", historyHandler.GetTransactionHistoryAdmin)
	adminGroup.POST("/users/:user_id/claims/compact", adminHandler.CompactClaims)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
