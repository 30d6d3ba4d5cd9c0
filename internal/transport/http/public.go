package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"corporate-site/backend/internal/config"
	"corporate-site/backend/internal/domain"
)

// PublicHandler はフロントエンドが起動時に取得する公開設定を返す。
type PublicHandler struct {
	recaptcha config.RecaptchaConfig
}

// NewPublicHandler は公開設定ハンドラを生成する。
func NewPublicHandler(recaptcha config.RecaptchaConfig) *PublicHandler {
	return &PublicHandler{recaptcha: recaptcha}
}

// GetConfig はフォーム描画に必要な公開設定を返す。
// reCAPTCHA のサイトキーと部署の選択肢。秘匿情報は含まない。
func (h *PublicHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"recaptchaSiteKey": h.recaptcha.SiteKey,
		"departments":      domain.Departments,
	})
}
