package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）

	RedisAddr     string // Redisアドレス（localhost:6379）
	RedisPassword string
	RedisDB       int

	JWTSecret string // JWT署名シークレット

	SMTPHost string // メール送信ホスト
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string // 送信元アドレス

	AdminEmail string // 返品・問い合わせ通知の宛先

	CurrencyAPIURL string // 為替レートAPIのベースURL

	//注文の金額計算
	ShippingFlatRate  float64 // 一律送料
	TaxRate           float64 // 税率（小計に対する割合）
	DefaultCurrency   string
	OrderAllowPartial bool // 解決できない明細を黙って落とすか（falseならエラー）

	GoEnv     string // dev/prod
	ClientURL string // フロントURL（CORSとメール内リンクで使う）
}

// Loadは環境変数から設定を組み立てる
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := atoiDefault("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	smtpPort, err := atoiDefault("SMTP_PORT", 587)
	if err != nil {
		return Config{}, err
	}
	shipping, err := floatDefault("SHIPPING_FLAT_RATE", 50)
	if err != nil {
		return Config{}, err
	}
	taxRate, err := floatDefault("TAX_RATE", 0.10)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		JWTSecret: os.Getenv("JWT_SECRET"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: smtpPort,
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: getenv("MAIL_FROM", "no-reply@veritygem.com"),

		AdminEmail: os.Getenv("ADMIN_EMAIL"),

		CurrencyAPIURL: getenv("CURRENCY_API_URL", "https://api.exchangerate-api.com/v4/latest"),

		ShippingFlatRate:  shipping,
		TaxRate:           taxRate,
		DefaultCurrency:   getenv("DEFAULT_CURRENCY", "USD"),
		OrderAllowPartial: getenv("ORDER_ALLOW_PARTIAL", "true") == "true",

		GoEnv:     getenv("GO_ENV", "dev"),
		ClientURL: getenv("CLIENT_URL", "http://localhost:5173"),
	}

	//必須チェック
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func floatDefault(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return f, nil
}
