package mailer

import (
	"context"
	"errors"

	"corporate-site/backend/internal/domain"
)

// ErrNotConfigured はリレー設定が不足しているときに返る。
var ErrNotConfigured = errors.New("mail relay not configured")

// Mailer は 1 通のメールを外部リレー経由で送信する。
// 送信は同期的で、完了（または失敗）するまで返らない。
type Mailer interface {
	Send(ctx context.Context, msg *domain.EmailMessage) error
}
