package httptransport

import "github.com/gin-gonic/gin"

// Response は API の統一レスポンス形。成功・失敗ともこの形で返す。
type Response struct {
	Message string `json:"message"`
}

// API が返すメッセージ。クライアントにそのまま表示される。
const (
	MsgSubmitSuccess    = "送信に成功しました"
	MsgMissingRequired  = "必須項目が入力されていません"
	MsgDeliveryFailed   = "メール送信に失敗しました"
	MsgMethodNotAllowed = "メソッドが許可されていません"
)

// respond はステータスコードとメッセージだけの JSON を書く。
// 障害の詳細はログにのみ残し、クライアントへは渡さない。
func respond(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Message: message})
}
