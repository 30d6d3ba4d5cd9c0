package domain

import "regexp"

// フォームのバリデーションメッセージ。画面にそのまま表示される。
const (
	MsgNameRequired      = "名前を入力してください"
	MsgEmailRequired     = "メールアドレスを入力してください"
	MsgEmailInvalid      = "有効なメールアドレスを入力してください"
	MsgMessageRequired   = "メッセージを入力してください"
	MsgBirthdatePartial  = "生年月日をすべて選択してください"
	MsgAddressRequired   = "住所を入力してください"
	MsgTermRequired      = "利用規約に同意してください"
	MsgRecaptchaRequired = "reCAPTCHAを完了してください"
)

// emailPattern は local@domain.tld 形式のゆるい判定。
// 厳密な RFC 検証ではなく、明らかな入力ミスを弾くための UX 用チェック。
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// IsValidContactEmail はメールアドレスが送信可能な形式かを返す。
func IsValidContactEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// FieldErrors は項目名からエラーメッセージへの対応。
// 空であれば送信（またはステップ前進）可能。
type FieldErrors map[FieldKey]string

// Valid はエラーが一つもないことを返す。
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// FormStep はマルチステップフォームのステップ番号。
type FormStep int

const (
	// StepIdentity は氏名・連絡先・住所・生年月日を入力するステップ。
	StepIdentity FormStep = 1
	// StepMessage は本文・規約同意・reCAPTCHA を完了するステップ。
	StepMessage FormStep = 2
)

// ValidateAll は全項目のクライアント側ルールを一括で検査する。
// recaptchaToken は取得済みトークン（未取得なら空文字）。
func (r *ContactRequest) ValidateAll(recaptchaToken string) FieldErrors {
	errs := FieldErrors{}
	r.validateIdentity(errs)
	r.validateMessage(recaptchaToken, errs)
	return errs
}

// ValidateStep は指定ステップに属する項目だけを検査する。
// ステップごとに前進可否を独立に判定できる。
func (r *ContactRequest) ValidateStep(step FormStep, recaptchaToken string) FieldErrors {
	errs := FieldErrors{}
	switch step {
	case StepIdentity:
		r.validateIdentity(errs)
	case StepMessage:
		r.validateMessage(recaptchaToken, errs)
	}
	return errs
}

func (r *ContactRequest) validateIdentity(errs FieldErrors) {
	if r.Name == "" {
		errs[FieldName] = MsgNameRequired
	}
	if r.Email == "" {
		errs[FieldEmail] = MsgEmailRequired
	} else if !IsValidContactEmail(r.Email) {
		errs[FieldEmail] = MsgEmailInvalid
	}
	if r.Address == "" {
		errs[FieldAddress] = MsgAddressRequired
	}

	// 生年月日は任意だが、入力するなら年月日すべて必要
	if r.BirthdateYear != "" && (r.BirthdateMonth == "" || r.BirthdateDay == "") {
		errs[FieldBirthdateMonth] = MsgBirthdatePartial
	}
}

func (r *ContactRequest) validateMessage(recaptchaToken string, errs FieldErrors) {
	if r.Message == "" {
		errs[FieldMessage] = MsgMessageRequired
	}
	if r.TermOfService != TermAgreed {
		errs[FieldTermOfService] = MsgTermRequired
	}
	if recaptchaToken == "" {
		errs[FieldRecaptcha] = MsgRecaptchaRequired
	}
}

// HasRequiredForDelivery はサーバ側の権威チェック。
// クライアントより狭い集合（name / email / message のみ）を意図的に維持している。
// 広げると観測可能な挙動が変わるため、ここでは勝手に強化しない。
func (r *ContactRequest) HasRequiredForDelivery() bool {
	return r.Name != "" && r.Email != "" && r.Message != ""
}
