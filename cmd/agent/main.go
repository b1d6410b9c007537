package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	authapp "github.com/kamesh07032005/Gpaydynamic/internal/application/auth"
	capabilityapp "github.com/kamesh07032005/Gpaydynamic/internal/application/capability"
	checkoutapp "github.com/kamesh07032005/Gpaydynamic/internal/application/checkout"
	historyapp "github.com/kamesh07032005/Gpaydynamic/internal/application/history"
	sheetapp "github.com/kamesh07032005/Gpaydynamic/internal/application/sheet"
	settlementapp "github.com/kamesh07032005/Gpaydynamic/internal/application/settlement"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/capability"
	"github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/cache"
	"github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/config"
	"github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/merchant"
	otelinfra "github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/observability/otel"
	"github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/paymentapp/bridge"
	"github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/persistence/memory"
	"github.com/kamesh07032005/Gpaydynamic/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

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
	tracer := otelinfra.Tracer("checkout-agent")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("checkout-agent")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// バックグラウンド掃除用のルートコンテキスト
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()

	// 能力キャッシュストアの初期化（Redisが無効ならメモリストア）
	var capabilityStore capability.Store
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		capabilityStore = cache.NewRedisStore(redisClient, cfg.Session.TTL)
	} else {
		memoryStore := cache.NewMemoryStore(cfg.Session.TTL)
		memoryStore.StartSweeper(sweepCtx, cfg.Session.SweepInterval)
		capabilityStore = memoryStore
	}

	// 試行ジャーナルの初期化
	attemptRepo := memory.NewAttemptRepository(cfg.Session.TTL)
	attemptRepo.StartSweeper(sweepCtx, cfg.Session.SweepInterval)

	// 加盟店サーバーへのゲートウェイの初期化
	merchantClient := merchant.NewClient(&cfg.Merchant, metrics)
	cartGateway := merchant.NewCartGateway(merchantClient, &cfg.Merchant)
	purchaseGateway := merchant.NewPurchaseGateway(merchantClient, &cfg.Merchant)

	// 決済ブリッジの初期化
	bridgeClient, err := bridge.NewClient(&cfg.Bridge)
	if err != nil {
		log.Fatalf("Failed to create bridge client: %v", err)
	}
	defer bridgeClient.Close()
	notifier := bridge.NewNotifier(bridgeClient, logger)

	// アプリケーションサービスの初期化
	authService := authapp.NewAuthApplicationService(&cfg.JWT, logger)

	capabilityService := capabilityapp.NewCapabilityApplicationService(
		capabilityStore,
		logger,
		metrics,
	)

	sheetService := sheetapp.NewSheetApplicationService(
		notifier,
		attemptRepo,
		cfg.Payment.SheetTimeout,
		logger,
		metrics,
	)

	settlementService := settlementapp.NewSettlementApplicationService(
		purchaseGateway,
		attemptRepo,
		logger,
		metrics,
	)

	checkoutService := checkoutapp.NewCheckoutApplicationService(
		cartGateway,
		bridgeClient,
		capabilityService,
		sheetService,
		settlementService,
		attemptRepo,
		&cfg.Payment,
		logger,
		metrics,
	)

	historyService := historyapp.NewHistoryApplicationService(
		attemptRepo,
		logger,
		metrics,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		logger,
		metrics,
		authService,
		checkoutService,
		historyService,
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
		log.Printf("Checkout agent starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("REST API server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	// 進行中のシート待機は打ち切らず、掃除ループだけ止める
	sweepCancel()

	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}
