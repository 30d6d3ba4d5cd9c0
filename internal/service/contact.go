package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"corporate-site/backend/internal/config"
	"corporate-site/backend/internal/domain"
	"corporate-site/backend/internal/mailer"
	"corporate-site/backend/internal/monitoring"
)

var (
	// ErrMissingRequired は必須項目（name / email / message）の欠落。
	ErrMissingRequired = errors.New("required fields missing")
)

// ContactService はお問い合わせ送信の業務処理を担う。
// 権威バリデーション、2 通のメール組み立て、リレーへの逐次送信。
// リクエストごとに独立しており、呼び出し間で状態を共有しない。
type ContactService struct {
	mailer  mailer.Mailer
	mail    config.MailConfig
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewContactService はお問い合わせサービスを生成する。
func NewContactService(m mailer.Mailer, mail config.MailConfig, logger *zap.Logger) *ContactService {
	return &ContactService{
		mailer: m,
		mail:   mail,
		logger: logger,
	}
}

// SetMetrics は監視指標を設定する（任意）。
func (s *ContactService) SetMetrics(metrics *monitoring.Metrics) {
	s.metrics = metrics
}

// Submit は 1 件の問い合わせを処理する。
//
// 状態遷移: Idle → Validating → {Rejected | Sending → {Delivered | DeliveryFailed}}。
// 再試行は行わない。新しい試行はクライアント起点の新しいインスタンスになる。
//
// サーバ側の必須チェックはクライアントより狭い（name / email / message のみ）。
// 送信は運営宛 → 送信者宛の順に逐次行い、1 通目が失敗したら 2 通目は試みない。
// 1 通目成功後に 2 通目が失敗した場合、運営宛だけが届いた状態で
// クライアントには汎用の失敗が返る（部分失敗はログでのみ区別できる）。
func (s *ContactService) Submit(ctx context.Context, req *domain.ContactRequest) error {
	if !req.HasRequiredForDelivery() {
		s.recordSubmission("rejected")
		return ErrMissingRequired
	}

	// ログ突合用の送信ID。永続化はしない。
	submissionID := uuid.NewString()

	operatorCopy, err := ComposeOperatorCopy(req, s.mail)
	if err != nil {
		s.recordSubmission("compose_failed")
		return fmt.Errorf("compose operator copy: %w", err)
	}
	ackCopy, err := ComposeAcknowledgment(req, s.mail)
	if err != nil {
		s.recordSubmission("compose_failed")
		return fmt.Errorf("compose acknowledgment: %w", err)
	}

	if err := s.send(ctx, "operator", submissionID, operatorCopy); err != nil {
		s.recordSubmission("delivery_failed")
		return fmt.Errorf("send operator copy: %w", err)
	}

	if err := s.send(ctx, "acknowledgment", submissionID, ackCopy); err != nil {
		// 運営宛は届いている。詳細はログにだけ残す。
		s.logger.Error("acknowledgment failed after operator copy was delivered",
			zap.String("submission_id", submissionID),
			zap.Error(err),
		)
		s.recordSubmission("delivery_failed")
		return fmt.Errorf("send acknowledgment: %w", err)
	}

	s.recordSubmission("delivered")
	s.logger.Info("submission delivered",
		zap.String("submission_id", submissionID),
		zap.String("department", req.DisplayDepartment()),
	)
	return nil
}

func (s *ContactService) send(ctx context.Context, copyKind, submissionID string, msg *domain.EmailMessage) error {
	start := time.Now()
	err := s.mailer.Send(ctx, msg)
	duration := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordMailSend(copyKind, err == nil, duration)
	}

	if err != nil {
		s.logger.Error("mail send failed",
			zap.String("submission_id", submissionID),
			zap.String("copy", copyKind),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("mail sent",
		zap.String("submission_id", submissionID),
		zap.String("copy", copyKind),
		zap.Duration("duration", duration),
	)
	return nil
}

func (s *ContactService) recordSubmission(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSubmission(outcome)
	}
}
