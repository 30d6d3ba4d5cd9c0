package service

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"corporate-site/backend/internal/config"
	"corporate-site/backend/internal/domain"
)

// メール件名。運営宛は送信者名を差し込む。
const (
	operatorSubjectFormat = "【お問い合わせ】%s様からのお問い合わせ"
	ackSubject            = "【お問い合わせ確認】お問い合わせありがとうございます"
)

// 運営宛コピーの本文テンプレート。
const operatorTextTemplate = `
お名前: {{.Name}}
メールアドレス: {{.Email}}
生年月日: {{.Birthdate}}
住所: {{.Address}}
お問い合わせ部署: {{.Department}}
お問い合わせ内容:
{{.Message}}
利用規約への同意: {{.TermStatus}}
`

const operatorHTMLTemplate = `
<div>
  <p><strong>お名前:</strong> {{.Name}}</p>
  <p><strong>メールアドレス:</strong> {{.Email}}</p>
  <p><strong>生年月日:</strong> {{.Birthdate}}</p>
  <p><strong>住所:</strong> {{.Address}}</p>
  <p><strong>お問い合わせ部署:</strong> {{.Department}}</p>
  <p><strong>お問い合わせ内容:</strong></p>
  <p>{{nl2br .Message}}</p>
  <p><strong>利用規約への同意:</strong> {{.TermStatus}}</p>
</div>
`

// 送信者への受付確認（自動返信）テンプレート。
const ackTextTemplate = `
{{.Name}}様

お問い合わせありがとうございます。
以下の内容でお問い合わせを受け付けました。
担当者より順次ご連絡いたします。

お名前: {{.Name}}
メールアドレス: {{.Email}}
生年月日: {{.Birthdate}}
住所: {{.Address}}
お問い合わせ部署: {{.Department}}
お問い合わせ内容:
{{.Message}}

このメールは自動送信されています。
ご返信いただいても対応できない場合がございますのでご了承ください。
`

const ackHTMLTemplate = `
<div>
  <p>{{.Name}}様</p>
  <p>お問い合わせありがとうございます。<br>以下の内容でお問い合わせを受け付けました。<br>担当者より順次ご連絡いたします。</p>
  <hr>
  <p><strong>お名前:</strong> {{.Name}}</p>
  <p><strong>メールアドレス:</strong> {{.Email}}</p>
  <p><strong>生年月日:</strong> {{.Birthdate}}</p>
  <p><strong>住所:</strong> {{.Address}}</p>
  <p><strong>お問い合わせ部署:</strong> {{.Department}}</p>
  <p><strong>お問い合わせ内容:</strong></p>
  <p>{{nl2br .Message}}</p>
  <hr>
  <p><small>このメールは自動送信されています。<br>ご返信いただいても対応できない場合がございますのでご了承ください。</small></p>
</div>
`

// templateData はテンプレートへ差し込む表示用の値。
// 任意項目はプレースホルダ済みの文字列で受け取る。
type templateData struct {
	Name       string
	Email      string
	Birthdate  string
	Address    string
	Department string
	Message    string
	TermStatus string
}

// nl2br は本文をエスケープした上で改行を <br> に置き換える。
func nl2br(s string) htmltemplate.HTML {
	escaped := htmltemplate.HTMLEscapeString(s)
	return htmltemplate.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

var htmlFuncs = htmltemplate.FuncMap{"nl2br": nl2br}

var (
	operatorText = texttemplate.Must(texttemplate.New("operator_text").Parse(operatorTextTemplate))
	operatorHTML = htmltemplate.Must(htmltemplate.New("operator_html").Funcs(htmlFuncs).Parse(operatorHTMLTemplate))
	ackText      = texttemplate.Must(texttemplate.New("ack_text").Parse(ackTextTemplate))
	ackHTML      = htmltemplate.Must(htmltemplate.New("ack_html").Funcs(htmlFuncs).Parse(ackHTMLTemplate))
)

func newTemplateData(req *domain.ContactRequest) templateData {
	return templateData{
		Name:       req.Name,
		Email:      req.Email,
		Birthdate:  req.Birthdate(),
		Address:    req.DisplayAddress(),
		Department: req.DisplayDepartment(),
		Message:    req.Message,
		TermStatus: req.TermStatus(),
	}
}

// ComposeOperatorCopy はサイト運営者宛の通知メールを組み立てる。
// Reply-To を送信者のアドレスにして、返信がそのまま問い合わせ元へ届くようにする。
func ComposeOperatorCopy(req *domain.ContactRequest, mail config.MailConfig) (*domain.EmailMessage, error) {
	data := newTemplateData(req)

	var text, html strings.Builder
	if err := operatorText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("operator text template: %w", err)
	}
	if err := operatorHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("operator html template: %w", err)
	}

	return &domain.EmailMessage{
		From:     mail.From,
		FromName: mail.FromName,
		To:       mail.To,
		Subject:  fmt.Sprintf(operatorSubjectFormat, req.Name),
		ReplyTo:  req.Email,
		Text:     text.String(),
		HTML:     html.String(),
	}, nil
}

// ComposeAcknowledgment は送信者本人宛の受付確認メールを組み立てる。
// 自動返信のため Reply-To は設定しない。
func ComposeAcknowledgment(req *domain.ContactRequest, mail config.MailConfig) (*domain.EmailMessage, error) {
	data := newTemplateData(req)

	var text, html strings.Builder
	if err := ackText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("ack text template: %w", err)
	}
	if err := ackHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("ack html template: %w", err)
	}

	return &domain.EmailMessage{
		From:     mail.From,
		FromName: mail.FromName,
		To:       req.Email,
		Subject:  ackSubject,
		Text:     text.String(),
		HTML:     html.String(),
	}, nil
}
