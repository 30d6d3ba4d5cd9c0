package mailer

import (
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corporate-site/backend/internal/domain"
)

func sampleMessage() *domain.EmailMessage {
	return &domain.EmailMessage{
		From:     "noreply@example.com",
		FromName: "お問い合わせフォーム",
		To:       "owner@example.com",
		Subject:  "【お問い合わせ】山田太郎様からのお問い合わせ",
		ReplyTo:  "a@b.com",
		Text:     "お名前: 山田太郎\n生年月日: 未入力\n",
		HTML:     "<p><strong>お名前:</strong> 山田太郎</p>",
	}
}

func TestEncodeMessage(t *testing.T) {
	raw, err := encodeMessage(sampleMessage())
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)

	t.Run("宛先とReply-Toがヘッダに載る", func(t *testing.T) {
		assert.Equal(t, "<owner@example.com>", parsed.Header.Get("To"))
		assert.Equal(t, "<a@b.com>", parsed.Header.Get("Reply-To"))
	})

	t.Run("日本語の件名と表示名がRFC2047で復元できる", func(t *testing.T) {
		dec := new(mime.WordDecoder)

		subject, err := dec.DecodeHeader(parsed.Header.Get("Subject"))
		require.NoError(t, err)
		assert.Equal(t, "【お問い合わせ】山田太郎様からのお問い合わせ", subject)

		from, err := dec.DecodeHeader(parsed.Header.Get("From"))
		require.NoError(t, err)
		assert.Contains(t, from, "お問い合わせフォーム")
		assert.Contains(t, from, "noreply@example.com")
	})

	t.Run("multipart alternativeで本文二部を運ぶ", func(t *testing.T) {
		mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/alternative", mediaType)

		reader := multipart.NewReader(parsed.Body, params["boundary"])

		textPart, err := reader.NextPart()
		require.NoError(t, err)
		assert.Contains(t, textPart.Header.Get("Content-Type"), "text/plain")
		textBody, err := io.ReadAll(quotedprintable.NewReader(textPart))
		require.NoError(t, err)
		assert.Contains(t, string(textBody), "山田太郎")
		assert.Contains(t, string(textBody), "未入力")

		htmlPart, err := reader.NextPart()
		require.NoError(t, err)
		assert.Contains(t, htmlPart.Header.Get("Content-Type"), "text/html")
		htmlBody, err := io.ReadAll(quotedprintable.NewReader(htmlPart))
		require.NoError(t, err)
		assert.Contains(t, string(htmlBody), "<strong>お名前:</strong>")
	})
}

func TestEncodeMessageWithoutReplyTo(t *testing.T) {
	msg := sampleMessage()
	msg.ReplyTo = ""

	raw, err := encodeMessage(msg)
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Empty(t, parsed.Header.Get("Reply-To"))
}

func TestEncodeMessageRejectsEmptyAddresses(t *testing.T) {
	msg := sampleMessage()
	msg.To = ""
	_, err := encodeMessage(msg)
	assert.Error(t, err)

	msg = sampleMessage()
	msg.From = ""
	_, err = encodeMessage(msg)
	assert.Error(t, err)
}
