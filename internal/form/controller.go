package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"corporate-site/backend/internal/domain"
	httptransport "corporate-site/backend/internal/transport/http"
)

// Variant はフォームの表示バリエーション。
// 見た目のバリエーションごとに重複実装を持つのではなく、
// 一つのコントローラをバリアントで切り替える。挙動の契約は共通。
type Variant int

const (
	// VariantSingle は全項目を 1 画面で入力する標準フォーム。
	VariantSingle Variant = iota
	// VariantSteps はランディングページの 2 ステップフォーム。
	VariantSteps
)

// 画面遷移先のルート。
const (
	RouteHome    = "/"
	RouteContact = "/contact"
	RouteThanks  = "/thanks"
)

// SubmitFailureNotice は送信失敗時にユーザーへ表示する文言。
const SubmitFailureNotice = "送信に失敗しました。もう一度お試しください。"

var (
	// ErrUnknownField は列挙外のフィールドキー。
	ErrUnknownField = errors.New("unknown form field")
	// ErrUnknownDepartment は部署リスト外の値。select の選択肢と同じ制約。
	ErrUnknownDepartment = errors.New("unknown department")
	// ErrValidationFailed はローカルバリデーションの失敗。Errors() に詳細が入る。
	ErrValidationFailed = errors.New("validation failed")
	// ErrSubmitInFlight は送信処理中の再送信。
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrSubmitFailed はネットワークまたはサーバ側の失敗。再送信で回復できる。
	ErrSubmitFailed = errors.New("submission failed")
)

// CaptchaProvider は CAPTCHA ウィジェットからトークンを取得する。
// トークンは不透明な値としてそのままサーバへ転送される。
type CaptchaProvider interface {
	Token(ctx context.Context) (string, error)
}

// CaptchaFunc は関数を CaptchaProvider に適合させる。
type CaptchaFunc func(ctx context.Context) (string, error)

func (f CaptchaFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Controller はお問い合わせフォームのクライアント側コントローラ。
// 入力の収集、ローカルバリデーション、CAPTCHA ゲート、送信、
// 結果に応じた遷移先の決定を担う。状態はページビューの間だけ保持される。
type Controller struct {
	variant  Variant
	endpoint string
	client   *http.Client
	captcha  CaptchaProvider
	session  SessionStore
	logger   *zap.Logger

	mu         sync.Mutex
	data       domain.ContactRequest
	fieldErrs  domain.FieldErrors
	step       domain.FormStep
	token      string
	submitting bool
}

// NewController はフォームコントローラを生成する。
// client が nil なら http.DefaultClient を使う。
func NewController(variant Variant, endpoint string, client *http.Client, captcha CaptchaProvider, session SessionStore, logger *zap.Logger) *Controller {
	if client == nil {
		client = http.DefaultClient
	}
	return &Controller{
		variant:   variant,
		endpoint:  endpoint,
		client:    client,
		captcha:   captcha,
		session:   session,
		logger:    logger,
		fieldErrs: domain.FieldErrors{},
		step:      domain.StepIdentity,
	}
}

// UpdateField は入力値を保存する。列挙済みのキーだけを受け付ける。
func (f *Controller) UpdateField(key domain.FieldKey, value string) error {
	if !domain.IsFormField(key) {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	if key == domain.FieldDepartmentName && !domain.IsValidDepartment(value) {
		return fmt.Errorf("%w: %s", ErrUnknownDepartment, value)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.data.Set(key, value)
	return nil
}

// Field はキーに対応する現在の入力値を返す。入力要素の再描画用。
func (f *Controller) Field(key domain.FieldKey) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.Get(key)
}

// SetAgreed はチェックボックスの状態を保存する。
// チェック時はセンチネル "agreed"、外したら空文字。
func (f *Controller) SetAgreed(checked bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if checked {
		f.data.TermOfService = domain.TermAgreed
	} else {
		f.data.TermOfService = ""
	}
}

// Data は現在の入力値のコピーを返す。
func (f *Controller) Data() domain.ContactRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// Errors は直近のバリデーション結果を返す。
func (f *Controller) Errors() domain.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := domain.FieldErrors{}
	for k, v := range f.fieldErrs {
		out[k] = v
	}
	return out
}

// Step は現在のステップを返す（単一画面バリアントでは常にステップ1）。
func (f *Controller) Step() domain.FormStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Validate は全項目のルールを検査し、通れば true を返す。
func (f *Controller) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fieldErrs = f.data.ValidateAll(f.token)
	return f.fieldErrs.Valid()
}

// Advance は次のステップへ進む。現在ステップのバリデーションに通らなければ
// 進まず false を返す。単一画面バリアントでは何もしない。
func (f *Controller) Advance() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.variant != VariantSteps || f.step != domain.StepIdentity {
		return false
	}

	f.fieldErrs = f.data.ValidateStep(domain.StepIdentity, f.token)
	if !f.fieldErrs.Valid() {
		return false
	}

	f.step = domain.StepMessage
	return true
}

// Retreat は前のステップへ戻る。入力値は保持される。
func (f *Controller) Retreat() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.variant == VariantSteps && f.step == domain.StepMessage {
		f.step = domain.StepIdentity
	}
}

// Submit はバリデーションを通過した内容をサーバへ送信する。
// 成功時はセッションへ到達マーカーを置き、遷移先（確認ページ）を返す。
// 失敗時は入力値をそのまま残す。再送信すれば新しい試行になる。
func (f *Controller) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	// CAPTCHA トークンは一度取得して使い回す
	if err := f.ensureToken(ctx); err != nil {
		f.logger.Warn("captcha token unavailable", zap.Error(err))
	}

	if !f.Validate() {
		return "", ErrValidationFailed
	}

	f.mu.Lock()
	payload := f.data
	payload.RecaptchaToken = f.token
	f.mu.Unlock()

	if err := f.post(ctx, &payload); err != nil {
		f.logger.Error("submission failed", zap.Error(err))
		return "", err
	}

	// 正規の送信経由で到達したことを確認ページに伝える
	f.session.Set(markerKey, markerValue)
	return RouteThanks, nil
}

func (f *Controller) ensureToken(ctx context.Context) error {
	f.mu.Lock()
	have := f.token != ""
	f.mu.Unlock()
	if have || f.captcha == nil {
		return nil
	}

	token, err := f.captcha.Token(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
	return nil
}

func (f *Controller) post(ctx context.Context, payload *domain.ContactRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// サーバのメッセージがあれば失敗理由として持ち帰る
		var serverResp httptransport.Response
		if decodeErr := json.NewDecoder(resp.Body).Decode(&serverResp); decodeErr == nil && serverResp.Message != "" {
			return fmt.Errorf("%w: %s", ErrSubmitFailed, serverResp.Message)
		}
		return fmt.Errorf("%w: status %d", ErrSubmitFailed, resp.StatusCode)
	}

	return nil
}
