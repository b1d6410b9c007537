package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config アプリケーション全体の設定
type Config struct {
	Server        ServerConfig
	Merchant      MerchantConfig
	Payment       PaymentConfig
	Bridge        BridgeConfig
	Session       SessionConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AdminAPI      AdminAPIConfig
	OpenTelemetry OpenTelemetryConfig
	Environment   string
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// MerchantConfig 加盟店サーバーのエンドポイント設定
type MerchantConfig struct {
	BaseURL        string
	CartTotalPath  string
	PurchasePath   string
	RequestTimeout time.Duration
}

// PaymentConfig 決済方式と加盟店データの設定
type PaymentConfig struct {
	SupportedMethod string
	PayeeAddress    string // 受取人のVPA (pa)
	PayeeName       string // 受取人名 (pn)
	MerchantCode    string // 加盟店カテゴリコード (mc)
	TransactionNote string // 取引メモ (tn)
	CallbackURL     string // コールバックURL (url)
	Currency        string
	TotalLabel      string
	SheetTimeout    time.Duration // 決済シートのタイムアウト
}

// BridgeConfig 決済シートブリッジ(gRPC)の設定
type BridgeConfig struct {
	Enabled        bool
	Address        string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration // Show以外の短いRPCに適用
}

// SessionConfig セッション設定
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration // メモリストアの掃除間隔
}

// RedisConfig Redis設定
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// JWTConfig JWT設定
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AdminAPIConfig 管理API設定
type AdminAPIConfig struct {
	Enabled    bool
	APIKey     string
	AllowedIPs []string
}

// OpenTelemetryConfig OpenTelemetry設定
type OpenTelemetryConfig struct {
	Enabled         bool
	ServiceName     string
	ServiceVersion  string
	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceExporter   string // "otlp", "stdout"
	MetricsExporter string // "otlp", "stdout"
}

// Load 設定を読み込む
func Load() (*Config, error) {
	// .envファイルを読み込む（存在しない場合は無視）
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		Environment: env,
		Server: ServerConfig{
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Merchant: MerchantConfig{
			BaseURL:        getEnv("MERCHANT_BASE_URL", ""),
			CartTotalPath:  getEnv("MERCHANT_CART_TOTAL_PATH", "/get-total"),
			PurchasePath:   getEnv("MERCHANT_PURCHASE_PATH", "/buy"),
			RequestTimeout: getEnvAsDuration("MERCHANT_REQUEST_TIMEOUT", 15*time.Second),
		},
		Payment: PaymentConfig{
			SupportedMethod: getEnv("PAYMENT_SUPPORTED_METHOD", "https://tez.google.com/pay"),
			PayeeAddress:    getEnv("PAYMENT_PAYEE_ADDRESS", ""),
			PayeeName:       getEnv("PAYMENT_PAYEE_NAME", ""),
			MerchantCode:    getEnv("PAYMENT_MERCHANT_CODE", ""),
			TransactionNote: getEnv("PAYMENT_TRANSACTION_NOTE", "Purchase"),
			CallbackURL:     getEnv("PAYMENT_CALLBACK_URL", ""),
			Currency:        getEnv("PAYMENT_CURRENCY", "INR"),
			TotalLabel:      getEnv("PAYMENT_TOTAL_LABEL", "Total"),
			SheetTimeout:    getEnvAsDuration("PAYMENT_SHEET_TIMEOUT", 20*time.Minute),
		},
		Bridge: BridgeConfig{
			Enabled:        getEnvAsBool("BRIDGE_ENABLED", true),
			Address:        getEnv("BRIDGE_ADDRESS", "localhost:50151"),
			ConnectTimeout: getEnvAsDuration("BRIDGE_CONNECT_TIMEOUT", 5*time.Second),
			RequestTimeout: getEnvAsDuration("BRIDGE_REQUEST_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			TTL:           getEnvAsDuration("SESSION_TTL", 1*time.Hour),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			Expiration: getEnvAsDuration("JWT_EXPIRATION", 24*time.Hour),
			Issuer:     getEnv("JWT_ISSUER", "checkout-agent"),
		},
		AdminAPI: AdminAPIConfig{
			Enabled:    getEnvAsBool("ADMIN_API_ENABLED", true),
			APIKey:     getEnv("ADMIN_API_KEY", ""),
			AllowedIPs: getEnvAsSlice("ADMIN_API_ALLOWED_IPS", nil),
		},
		OpenTelemetry: OpenTelemetryConfig{
			Enabled:         getEnvAsBool("OTEL_ENABLED", true),
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "checkout-agent"),
			ServiceVersion:  getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
			OTLPInsecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			TraceExporter:   getEnv("OTEL_TRACES_EXPORTER", "otlp"),
			MetricsExporter: getEnv("OTEL_METRICS_EXPORTER", "otlp"),
		},
	}

	// 必須設定の検証
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate 設定の検証
func (c *Config) validate() error {
	if c.Merchant.BaseURL == "" {
		return fmt.Errorf("MERCHANT_BASE_URL is required")
	}
	if c.Payment.PayeeAddress == "" {
		return fmt.Errorf("PAYMENT_PAYEE_ADDRESS is required")
	}
	if c.Payment.SheetTimeout <= 0 {
		return fmt.Errorf("PAYMENT_SHEET_TIMEOUT must be positive")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.AdminAPI.Enabled && c.AdminAPI.APIKey == "" {
		return fmt.Errorf("ADMIN_API_KEY is required when admin API is enabled")
	}
	return nil
}

// CartTotalURL カート合計エンドポイントの完全なURLを返す
func (c *MerchantConfig) CartTotalURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.CartTotalPath
}

// PurchaseURL 購入エンドポイントの完全なURLを返す
func (c *MerchantConfig) PurchaseURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.PurchasePath
}

// Address Redis接続アドレスを返す
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool 環境変数を真偽値として取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration 環境変数を時間として取得
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice 環境変数をカンマ区切りのリストとして取得
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
