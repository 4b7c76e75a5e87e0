package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/samriddhi-018/infosys-LGD/internal/config"
)

type smtpSender struct {
	cfg      config.MailConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg config.MailConfig) Sender {
	return &smtpSender{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	// Skip sending if SMTP is not configured
	if s.cfg.SMTPHost == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", msg.To, "subject", msg.Subject)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	headers += fmt.Sprintf("To: %s\r\n", msg.To)
	headers += fmt.Sprintf("Subject: %s\r\n", msg.Subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	if err := s.sendMail(addr, auth, s.cfg.From, []string{msg.To}, []byte(headers+msg.HTMLBody)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
