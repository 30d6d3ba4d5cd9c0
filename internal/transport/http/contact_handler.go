package httptransport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"corporate-site/backend/internal/domain"
	"corporate-site/backend/internal/service"
)

// ContactHandler はお問い合わせ送信エンドポイントの処理器。
type ContactHandler struct {
	contacts *service.ContactService
	logger   *zap.Logger
}

// NewContactHandler はお問い合わせハンドラを生成する。
func NewContactHandler(contacts *service.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		logger:   logger,
	}
}

// Submit はお問い合わせを受け付けて 2 通のメールを送信する。
//
// 読み取れないボディや必須項目の欠落は 400、リレー障害は 500。
// どちらの場合もメッセージだけを返し、内部の詳細は漏らさない。
func (h *ContactHandler) Submit(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, MsgMissingRequired)
		return
	}

	if err := h.contacts.Submit(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrMissingRequired) {
			respond(c, http.StatusBadRequest, MsgMissingRequired)
			return
		}

		// 詳細はサーバ側のログにだけ残す
		h.logger.Error("contact submission failed", zap.Error(err))
		respond(c, http.StatusInternalServerError, MsgDeliveryFailed)
		return
	}

	respond(c, http.StatusOK, MsgSubmitSuccess)
}
