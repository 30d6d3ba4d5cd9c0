package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig は HTTP サーバの待ち受け設定。
type ServerConfig struct {
	Host string // 待ち受けアドレス、デフォルト "0.0.0.0"
	Port int    // 待ち受けポート、デフォルト 8080
}

// SMTPConfig は外部メールリレーへの接続設定。
// Secure が true のときは暗黙 TLS（465 番想定）、false のときは STARTTLS。
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool
	User     string
	Password string
}

// MailConfig は送信元・送信先アドレスの設定。
type MailConfig struct {
	From     string // 送信元アドレス（From ヘッダ）
	FromName string // From の表示名
	To       string // 運営者（お問い合わせ通知の宛先）
}

// RecaptchaConfig は reCAPTCHA ウィジェットの設定。
// トークンの検証自体は外部コラボレータの責務であり、ここでは扱わない。
type RecaptchaConfig struct {
	SiteKey string
}

// CORSConfig はクロスオリジン設定。
type CORSConfig struct {
	AllowedOrigins []string // "*" はすべての来源を許可
}

// LogConfig はログ出力の設定。
type LogConfig struct {
	Level       string // debug, info, warn, error
	Development bool   // 開発モード: コンソール出力と詳細スタック
	File        string // 空ならファイルには出力しない
	MaxSize     int    // ローテーション閾値 (MB)
	MaxBackups  int
	MaxAge      int // 世代保持日数
}

// Config はシステム全体の設定ルート。
type Config struct {
	Server    ServerConfig
	SMTP      SMTPConfig
	Mail      MailConfig
	Recaptcha RecaptchaConfig
	CORS      CORSConfig
	Log       LogConfig
}

// Load は環境変数と .env ファイルから設定を読み込む。
//
// 優先順位（高い順）:
//  1. システム環境変数
//  2. .env ファイル（存在すれば）
//  3. デフォルト値
//
// 環境変数プレフィクス: SITE_
// 例: SITE_SMTP_HOST, SITE_MAIL_TO
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetEnvPrefix("site")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("smtp.host", "")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.secure", false)
	viper.SetDefault("smtp.user", "")
	viper.SetDefault("smtp.password", "")
	viper.SetDefault("mail.from", "")
	viper.SetDefault("mail.from_name", "お問い合わせフォーム")
	viper.SetDefault("mail.to", "")
	viper.SetDefault("recaptcha.site_key", "")
	viper.SetDefault("cors.allowed_origins", "*")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.max_size", 100)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("log.max_age", 28)

	corsOrigins := parseList(viper.GetString("cors.allowed_origins"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("smtp.host"),
			Port:     viper.GetInt("smtp.port"),
			Secure:   viper.GetBool("smtp.secure"),
			User:     viper.GetString("smtp.user"),
			Password: viper.GetString("smtp.password"),
		},
		Mail: MailConfig{
			From:     viper.GetString("mail.from"),
			FromName: viper.GetString("mail.from_name"),
			To:       viper.GetString("mail.to"),
		},
		Recaptcha: RecaptchaConfig{
			SiteKey: viper.GetString("recaptcha.site_key"),
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		Log: LogConfig{
			Level:       viper.GetString("log.level"),
			Development: viper.GetBool("log.development"),
			File:        viper.GetString("log.file"),
			MaxSize:     viper.GetInt("log.max_size"),
			MaxBackups:  viper.GetInt("log.max_backups"),
			MaxAge:      viper.GetInt("log.max_age"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate はメール送信に必須の設定を検査する。
// リレー先が未設定のまま起動しても送信は必ず失敗するため、ここで落とす。
func (c *Config) validate() error {
	if c.SMTP.Host == "" {
		return fmt.Errorf("smtp.host is required: set SITE_SMTP_HOST")
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port out of range: %d", c.SMTP.Port)
	}
	if c.Mail.From == "" {
		return fmt.Errorf("mail.from is required: set SITE_MAIL_FROM")
	}
	if c.Mail.To == "" {
		return fmt.Errorf("mail.to is required: set SITE_MAIL_TO")
	}
	return nil
}

// parseList はカンマ区切り文字列をスライスにする。
func parseList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// loadEnvFile は .env ファイルの読み込みを試みる。
// ファイルは任意なので、存在しなければ黙って続行する。
// 既存の環境変数は上書きされない。
func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	parentEnv := filepath.Join("..", ".env")
	if _, err := os.Stat(parentEnv); err == nil {
		_ = godotenv.Load(parentEnv)
	}
}
