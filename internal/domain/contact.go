package domain

// ContactRequest はお問い合わせフォームから送信されるペイロード。
// クライアント・サーバ間でそのまま JSON として運ばれる。
// termOfService は boolean ではなく文字列の列挙（"agreed" / ""）で持つ。
// チェックボックスの状態をテンプレートへそのまま差し込めるようにするため。
type ContactRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	BirthdateYear  string `json:"birthdateYear"`
	BirthdateMonth string `json:"birthdateMonth"`
	BirthdateDay   string `json:"birthdateDay"`
	DepartmentName string `json:"departmentName"`
	Address        string `json:"address"`
	TermOfService  string `json:"termOfService"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// TermAgreed は利用規約同意を表すセンチネル値。
const TermAgreed = "agreed"

// FieldKey はフォーム項目の識別子。
// 入力要素の name 属性をそのまま開放的に受け取るのではなく、
// 列挙済みのキーだけを境界で受け付ける。
type FieldKey string

const (
	FieldName           FieldKey = "name"
	FieldEmail          FieldKey = "email"
	FieldMessage        FieldKey = "message"
	FieldBirthdateYear  FieldKey = "birthdateYear"
	FieldBirthdateMonth FieldKey = "birthdateMonth"
	FieldBirthdateDay   FieldKey = "birthdateDay"
	FieldDepartmentName FieldKey = "departmentName"
	FieldAddress        FieldKey = "address"
	FieldTermOfService  FieldKey = "termOfService"
	FieldRecaptcha      FieldKey = "recaptcha"
)

// fieldKeySet は受け付け可能なフォーム項目の集合。
var fieldKeySet = map[FieldKey]struct{}{
	FieldName:           {},
	FieldEmail:          {},
	FieldMessage:        {},
	FieldBirthdateYear:  {},
	FieldBirthdateMonth: {},
	FieldBirthdateDay:   {},
	FieldDepartmentName: {},
	FieldAddress:        {},
	FieldTermOfService:  {},
}

// IsFormField はフォーム入力として設定可能なキーかどうかを返す。
// FieldRecaptcha はウィジェット経由でのみ設定されるため含まない。
func IsFormField(key FieldKey) bool {
	_, ok := fieldKeySet[key]
	return ok
}

// Departments はお問い合わせ先部署の固定リスト。
var Departments = []string{
	"営業部",
	"プロダクトデザイン・マーケティンググループ",
	"人事部",
	"経理部",
	"カスタマーサポート",
	"取締役",
	"経営企画",
	"バックオフィス",
	"その他",
}

// IsValidDepartment は部署名が固定リストに含まれるか（または未選択か）を返す。
func IsValidDepartment(name string) bool {
	if name == "" {
		return true
	}
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

// Set はキーを検証した上でフィールド値を設定する。
// 未知のキーは false を返し、黙って無視する代わりに呼び出し側へ知らせる。
func (r *ContactRequest) Set(key FieldKey, value string) bool {
	switch key {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldMessage:
		r.Message = value
	case FieldBirthdateYear:
		r.BirthdateYear = value
	case FieldBirthdateMonth:
		r.BirthdateMonth = value
	case FieldBirthdateDay:
		r.BirthdateDay = value
	case FieldDepartmentName:
		r.DepartmentName = value
	case FieldAddress:
		r.Address = value
	case FieldTermOfService:
		r.TermOfService = value
	default:
		return false
	}
	return true
}

// Get はキーに対応するフィールド値を返す。
func (r *ContactRequest) Get(key FieldKey) string {
	switch key {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldMessage:
		return r.Message
	case FieldBirthdateYear:
		return r.BirthdateYear
	case FieldBirthdateMonth:
		return r.BirthdateMonth
	case FieldBirthdateDay:
		return r.BirthdateDay
	case FieldDepartmentName:
		return r.DepartmentName
	case FieldAddress:
		return r.Address
	case FieldTermOfService:
		return r.TermOfService
	}
	return ""
}

// 未入力の任意項目をメール本文へ描画する際のプレースホルダ。
const (
	PlaceholderNotEntered  = "未入力" // 住所・生年月日
	PlaceholderNotSelected = "未選択" // 部署
)

// Birthdate は年月日を人間可読の一文に結合する。
// 三つ揃っていなければ「未入力」を返す（部分入力はバリデーションで弾かれる前提）。
func (r *ContactRequest) Birthdate() string {
	if r.BirthdateYear == "" || r.BirthdateMonth == "" || r.BirthdateDay == "" {
		return PlaceholderNotEntered
	}
	return r.BirthdateYear + "年" + r.BirthdateMonth + "月" + r.BirthdateDay + "日"
}

// DisplayAddress は住所、未入力ならプレースホルダを返す。
func (r *ContactRequest) DisplayAddress() string {
	if r.Address == "" {
		return PlaceholderNotEntered
	}
	return r.Address
}

// DisplayDepartment は部署名、未選択ならプレースホルダを返す。
func (r *ContactRequest) DisplayDepartment() string {
	if r.DepartmentName == "" {
		return PlaceholderNotSelected
	}
	return r.DepartmentName
}

// TermStatus は同意状態の表示文字列を返す。
func (r *ContactRequest) TermStatus() string {
	if r.TermOfService == TermAgreed {
		return "同意済み"
	}
	return "未同意"
}

// EmailMessage は送信される１通のメール。リクエストから導出されるだけで
// どこにも永続化されない。ReplyTo は運営宛コピーでのみ設定される。
type EmailMessage struct {
	From     string
	FromName string
	To       string
	Subject  string
	ReplyTo  string
	Text     string
	HTML     string
}
