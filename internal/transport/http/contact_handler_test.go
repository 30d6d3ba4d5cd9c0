package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corporate-site/backend/internal/config"
	"corporate-site/backend/internal/domain"
	"corporate-site/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockMailer は送信されたメッセージを記録し、指定回数目で失敗する。
type mockMailer struct {
	sent   []*domain.EmailMessage
	failOn int
}

func (m *mockMailer) Send(_ context.Context, msg *domain.EmailMessage) error {
	if m.failOn > 0 && len(m.sent)+1 == m.failOn {
		return errors.New("relay refused")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		SMTP: config.SMTPConfig{Host: "smtp.example.com", Port: 587},
		Mail: config.MailConfig{
			From:     "noreply@example.com",
			FromName: "お問い合わせフォーム",
			To:       "owner@example.com",
		},
		Recaptcha: config.RecaptchaConfig{SiteKey: "site-key"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestRouter(m *mockMailer) *gin.Engine {
	cfg := testConfig()
	contacts := service.NewContactService(m, cfg.Mail, zap.NewNop())

	return NewRouter(RouterDependencies{
		Config:         cfg,
		ContactService: contacts,
		Logger:         zap.NewNop(),
	})
}

func postContact(t *testing.T, router *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Message
}

func validPayload() map[string]string {
	return map[string]string{
		"name":           "山田太郎",
		"email":          "a@b.com",
		"message":        "hello",
		"address":        "Tokyo",
		"termOfService":  "agreed",
		"recaptchaToken": "tok",
	}
}

func TestSubmitContact(t *testing.T) {
	t.Run("有効なペイロードは200で2通送信される", func(t *testing.T) {
		m := &mockMailer{}
		rec := postContact(t, newTestRouter(m), validPayload())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "送信に成功しました", decodeMessage(t, rec))

		require.Len(t, m.sent, 2)
		assert.Equal(t, "owner@example.com", m.sent[0].To)
		assert.Equal(t, "a@b.com", m.sent[0].ReplyTo)
		assert.Equal(t, "a@b.com", m.sent[1].To)
		assert.Empty(t, m.sent[1].ReplyTo)
	})

	t.Run("生年月日未入力は本文に未入力と載る", func(t *testing.T) {
		m := &mockMailer{}
		rec := postContact(t, newTestRouter(m), validPayload())

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, m.sent, 2)
		assert.Contains(t, m.sent[0].Text, "生年月日: 未入力")
	})

	t.Run("message欠落は400でメール0通", func(t *testing.T) {
		m := &mockMailer{}
		payload := validPayload()
		delete(payload, "message")

		rec := postContact(t, newTestRouter(m), payload)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "必須項目が入力されていません", decodeMessage(t, rec))
		assert.Empty(t, m.sent)
	})

	t.Run("name・email欠落も400でメール0通", func(t *testing.T) {
		for _, field := range []string{"name", "email"} {
			m := &mockMailer{}
			payload := validPayload()
			delete(payload, field)

			rec := postContact(t, newTestRouter(m), payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code, field)
			assert.Empty(t, m.sent, field)
		}
	})

	t.Run("読み取れないボディは400", func(t *testing.T) {
		m := &mockMailer{}
		req := httptest.NewRequest(http.MethodPost, "/api/contact",
			bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		newTestRouter(m).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, m.sent)
	})

	t.Run("リレー障害は500で汎用メッセージ", func(t *testing.T) {
		m := &mockMailer{failOn: 1}
		rec := postContact(t, newTestRouter(m), validPayload())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "メール送信に失敗しました", decodeMessage(t, rec))
		// 1 通目で失敗したら 2 通目は送られない
		assert.Empty(t, m.sent)
		// 内部のエラー詳細はレスポンスに漏れない
		assert.NotContains(t, rec.Body.String(), "relay refused")
	})

	t.Run("POST以外は405", func(t *testing.T) {
		m := &mockMailer{}
		router := newTestRouter(m)

		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			req := httptest.NewRequest(method, "/api/contact", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
			assert.Equal(t, "メソッドが許可されていません", decodeMessage(t, rec), method)
		}
		assert.Empty(t, m.sent)
	})

	t.Run("同一ペイロードの再送信も独立に処理される", func(t *testing.T) {
		m := &mockMailer{}
		router := newTestRouter(m)

		rec1 := postContact(t, router, validPayload())
		rec2 := postContact(t, router, validPayload())

		assert.Equal(t, http.StatusOK, rec1.Code)
		assert.Equal(t, http.StatusOK, rec2.Code)
		// 重複排除は行わない
		assert.Len(t, m.sent, 4)
	})
}

func TestGetConfig(t *testing.T) {
	router := newTestRouter(&mockMailer{})

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RecaptchaSiteKey string   `json:"recaptchaSiteKey"`
		Departments      []string `json:"departments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "site-key", resp.RecaptchaSiteKey)
	assert.Contains(t, resp.Departments, "営業部")
	assert.Len(t, resp.Departments, 9)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&mockMailer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
