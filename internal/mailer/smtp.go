package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"corporate-site/backend/internal/config"
	"corporate-site/backend/internal/domain"
)

// SMTPMailer は SMTP リレーへ 1 通ずつ送信する Mailer 実装。
// 呼び出しごとに接続を開き、送信が終わったら閉じる。
// コネクションプールは持たない。外部呼び出しはリレーの send だけなので
// バックプレッシャ制御も不要。
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer は SMTP リレークライアントを生成する。
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// Send はメッセージを MIME に組み立ててリレーへ送る。
// Secure 設定に応じて暗黙 TLS か STARTTLS を使い分ける。
// 資格情報が与えられていれば PLAIN 認証を行う。
func (m *SMTPMailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	if m.cfg.Host == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := encodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	var client *smtp.Client
	if m.cfg.Secure {
		client, err = smtp.DialTLS(addr, tlsConfig)
	} else {
		client, err = smtp.DialStartTLS(addr, tlsConfig)
	}
	if err != nil {
		return fmt.Errorf("dial relay %s: %w", addr, err)
	}
	defer client.Close()

	if m.cfg.User != "" {
		auth := sasl.NewPlainClient("", m.cfg.User, m.cfg.Password)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("relay auth: %w", err)
		}
	}

	if err := client.SendMail(msg.From, []string{msg.To}, strings.NewReader(raw)); err != nil {
		return fmt.Errorf("relay send: %w", err)
	}

	if err := client.Quit(); err != nil {
		// 送信自体は完了しているので QUIT の失敗は記録に留める
		m.logger.Debug("relay quit failed", zap.Error(err))
	}

	m.logger.Info("mail relayed",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
