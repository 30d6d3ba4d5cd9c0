package mailer

import (
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"corporate-site/backend/internal/domain"
)

// encodeMessage は EmailMessage を multipart/alternative の
// MIME メッセージ（ヘッダ込みの生テキスト）へ組み立てる。
// 件名や表示名は日本語を含むため RFC 2047 でエンコードする。
// 本文はプレーンテキストと HTML の二部構成、quoted-printable で運ぶ。
func encodeMessage(msg *domain.EmailMessage) (string, error) {
	if msg.From == "" || msg.To == "" {
		return "", fmt.Errorf("from/to must not be empty")
	}

	var buf strings.Builder

	from := mail.Address{Name: msg.FromName, Address: msg.From}
	to := mail.Address{Address: msg.To}

	writeHeader(&buf, "From", from.String())
	writeHeader(&buf, "To", to.String())
	if msg.ReplyTo != "" {
		replyTo := mail.Address{Address: msg.ReplyTo}
		writeHeader(&buf, "Reply-To", replyTo.String())
	}
	writeHeader(&buf, "Subject", mime.BEncoding.Encode("UTF-8", msg.Subject))
	writeHeader(&buf, "Date", time.Now().Format(time.RFC1123Z))
	writeHeader(&buf, "MIME-Version", "1.0")

	var body strings.Builder
	mw := multipart.NewWriter(&body)

	writeHeader(&buf, "Content-Type",
		fmt.Sprintf(`multipart/alternative; boundary=%q`, mw.Boundary()))
	buf.WriteString("\r\n")

	// text/plain を先、text/html を後に置く（後勝ちの慣例）
	if err := writePart(mw, "text/plain", msg.Text); err != nil {
		return "", err
	}
	if err := writePart(mw, "text/html", msg.HTML); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	buf.WriteString(body.String())
	return buf.String(), nil
}

func writeHeader(buf *strings.Builder, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

func writePart(mw *multipart.Writer, contentType, content string) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType+"; charset=UTF-8")
	header.Set("Content-Transfer-Encoding", "quoted-printable")

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}

	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(content)); err != nil {
		return err
	}
	return qp.Close()
}
