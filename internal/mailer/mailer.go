package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"app/internal/config"

	"go.uber.org/zap"
)

// OTPの帯域外送信だけを約束。Usecaseは送信手段を知らない
type Mailer interface {
	SendPasswordResetOTP(ctx context.Context, toEmail string, code string) error
}

// SMTPMailer は設定されたSMTPサーバー経由で送る。
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

func (m *SMTPMailer) SendPasswordResetOTP(ctx context.Context, toEmail string, code string) error {
	subject := "Password Reset OTP"
	body := fmt.Sprintf("Your OTP for password reset is: %s", code)

	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + toEmail + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"\r\n" +
			body + "\r\n",
	)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("mailer: send otp: %w", err)
	}
	return nil
}

// LogMailer はSMTP未設定のdev環境向け。コードはログにしか出ない
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasswordResetOTP(ctx context.Context, toEmail string, code string) error {
	m.logger.Info("password reset otp issued",
		zap.String("email", toEmail),
		zap.String("code", code),
	)
	return nil
}
