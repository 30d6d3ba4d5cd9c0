package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() ContactRequest {
	return ContactRequest{
		Name:          "山田太郎",
		Email:         "a@b.com",
		Message:       "hello",
		Address:       "Tokyo",
		TermOfService: TermAgreed,
	}
}

func TestIsValidContactEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected bool
	}{
		{"通常のアドレス", "test@example.com", true},
		{"サブドメイン", "user@mail.example.com", true},
		{"プラス付き", "user+tag@example.com", true},
		{"@なし", "testexample.com", false},
		{"ドメインなし", "test@", false},
		{"TLDなし", "test@example", false},
		{"ローカル部なし", "@example.com", false},
		{"空文字", "", false},
		{"空白を含む", "test @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidContactEmail(tt.email))
		})
	}
}

func TestValidateAll(t *testing.T) {
	t.Run("すべて有効なら空のエラー集合", func(t *testing.T) {
		req := validRequest()
		errs := req.ValidateAll("tok")
		assert.True(t, errs.Valid())
	})

	t.Run("必須項目が欠けるとフィールドごとのメッセージ", func(t *testing.T) {
		req := ContactRequest{}
		errs := req.ValidateAll("")

		assert.Equal(t, MsgNameRequired, errs[FieldName])
		assert.Equal(t, MsgEmailRequired, errs[FieldEmail])
		assert.Equal(t, MsgMessageRequired, errs[FieldMessage])
		assert.Equal(t, MsgAddressRequired, errs[FieldAddress])
		assert.Equal(t, MsgTermRequired, errs[FieldTermOfService])
		assert.Equal(t, MsgRecaptchaRequired, errs[FieldRecaptcha])
	})

	t.Run("メール形式の誤りは形式エラーになる", func(t *testing.T) {
		req := validRequest()
		req.Email = "not-an-email"
		errs := req.ValidateAll("tok")
		assert.Equal(t, MsgEmailInvalid, errs[FieldEmail])
	})

	t.Run("生年月日の部分入力は他項目と独立に弾かれる", func(t *testing.T) {
		req := validRequest()
		req.BirthdateYear = "1990"
		errs := req.ValidateAll("tok")
		assert.Equal(t, MsgBirthdatePartial, errs[FieldBirthdateMonth])

		// 他項目が無効でも生年月日エラーは同じく出る
		req.Name = ""
		errs = req.ValidateAll("tok")
		assert.Equal(t, MsgBirthdatePartial, errs[FieldBirthdateMonth])
		assert.Equal(t, MsgNameRequired, errs[FieldName])
	})

	t.Run("年月日すべて入力されていれば通る", func(t *testing.T) {
		req := validRequest()
		req.BirthdateYear = "1990"
		req.BirthdateMonth = "4"
		req.BirthdateDay = "2"
		assert.True(t, req.ValidateAll("tok").Valid())
	})

	t.Run("トークン未取得はrecaptchaエラー", func(t *testing.T) {
		req := validRequest()
		errs := req.ValidateAll("")
		assert.Equal(t, MsgRecaptchaRequired, errs[FieldRecaptcha])
	})
}

func TestValidateStep(t *testing.T) {
	t.Run("ステップ1は本文と同意を見ない", func(t *testing.T) {
		req := ContactRequest{Name: "山田太郎", Email: "a@b.com", Address: "Tokyo"}
		errs := req.ValidateStep(StepIdentity, "")
		assert.True(t, errs.Valid())
	})

	t.Run("ステップ2は氏名や住所を見ない", func(t *testing.T) {
		req := ContactRequest{Message: "hello", TermOfService: TermAgreed}
		errs := req.ValidateStep(StepMessage, "tok")
		assert.True(t, errs.Valid())
	})

	t.Run("ステップ2で本文欠落を検出", func(t *testing.T) {
		req := validRequest()
		req.Message = ""
		errs := req.ValidateStep(StepMessage, "tok")
		assert.Equal(t, MsgMessageRequired, errs[FieldMessage])
	})
}

func TestHasRequiredForDelivery(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ContactRequest)
		expected bool
	}{
		{"完全なリクエスト", func(r *ContactRequest) {}, true},
		{"名前なし", func(r *ContactRequest) { r.Name = "" }, false},
		{"メールなし", func(r *ContactRequest) { r.Email = "" }, false},
		{"本文なし", func(r *ContactRequest) { r.Message = "" }, false},
		// サーバ側は住所・同意を検査しない（クライアントより狭い権威チェック）
		{"住所なしでも通る", func(r *ContactRequest) { r.Address = "" }, true},
		{"同意なしでも通る", func(r *ContactRequest) { r.TermOfService = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			assert.Equal(t, tt.expected, req.HasRequiredForDelivery())
		})
	}
}

func TestBirthdate(t *testing.T) {
	req := ContactRequest{BirthdateYear: "1990", BirthdateMonth: "4", BirthdateDay: "2"}
	assert.Equal(t, "1990年4月2日", req.Birthdate())

	empty := ContactRequest{}
	assert.Equal(t, PlaceholderNotEntered, empty.Birthdate())

	partial := ContactRequest{BirthdateYear: "1990"}
	assert.Equal(t, PlaceholderNotEntered, partial.Birthdate())
}

func TestDisplayHelpers(t *testing.T) {
	req := ContactRequest{}
	assert.Equal(t, PlaceholderNotEntered, req.DisplayAddress())
	assert.Equal(t, PlaceholderNotSelected, req.DisplayDepartment())
	assert.Equal(t, "未同意", req.TermStatus())

	req.Address = "東京都千代田区"
	req.DepartmentName = "営業部"
	req.TermOfService = TermAgreed
	assert.Equal(t, "東京都千代田区", req.DisplayAddress())
	assert.Equal(t, "営業部", req.DisplayDepartment())
	assert.Equal(t, "同意済み", req.TermStatus())
}

func TestSetRejectsUnknownKeys(t *testing.T) {
	req := ContactRequest{}
	assert.True(t, req.Set(FieldName, "山田太郎"))
	assert.Equal(t, "山田太郎", req.Name)

	// 列挙外のキーはテンプレートまで到達させない
	assert.False(t, req.Set(FieldKey("__proto__"), "x"))
	assert.False(t, req.Set(FieldKey("subject"), "x"))
}

func TestIsValidDepartment(t *testing.T) {
	assert.True(t, IsValidDepartment(""))
	assert.True(t, IsValidDepartment("営業部"))
	assert.True(t, IsValidDepartment("その他"))
	assert.False(t, IsValidDepartment("存在しない部署"))
}
