package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"

	"github.com/samriddhi-018/infosys-LGD/internal/config"
)

//go:embed templates/*
var templateFS embed.FS

const SubjectCourseAssigned = "New Course Assigned to You"

// EmailService defines the interface for sending emails
type EmailService interface {
	SendCourseAssigned(ctx context.Context, to string, data CourseAssignedData) error
}

type CourseAssignedData struct {
	Title       string
	Description string
	Deadline    string
	FromName    string
}

// Message is a rendered email ready for a relay.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers a rendered message. Implementations make a single attempt.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type emailServiceImpl struct {
	sender   Sender
	fromName string
	html     *htmltemplate.Template
	text     *texttemplate.Template
}

// NewEmailService creates a new email service instance for the configured provider
func NewEmailService(cfg config.MailConfig) (EmailService, error) {
	var sender Sender
	switch cfg.Provider {
	case "", "smtp":
		sender = NewSMTPSender(cfg)
	case "sendgrid":
		sender = NewSendGridSender(cfg.SendGridAPIKey, cfg.FromName, cfg.From)
	default:
		return nil, fmt.Errorf("unsupported mail provider %q", cfg.Provider)
	}
	return NewEmailServiceWithSender(sender, cfg.FromName)
}

// NewEmailServiceWithSender wires templates to an arbitrary sender.
func NewEmailServiceWithSender(sender Sender, fromName string) (EmailService, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		sender:   sender,
		fromName: fromName,
		html:     html,
		text:     text,
	}, nil
}

// SendCourseAssigned notifies a recipient about a newly assigned course
func (s *emailServiceImpl) SendCourseAssigned(ctx context.Context, to string, data CourseAssignedData) error {
	if data.FromName == "" {
		data.FromName = s.fromName
	}

	var html, text bytes.Buffer
	if err := s.html.ExecuteTemplate(&html, "course_assigned.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	if err := s.text.ExecuteTemplate(&text, "course_assigned.txt", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	msg := Message{
		To:       to,
		Subject:  SubjectCourseAssigned,
		HTMLBody: html.String(),
		TextBody: text.String(),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		slog.Error("Failed to send email", "to", to, "subject", msg.Subject, "error", err)
		return err
	}
	slog.Info("Email sent successfully", "to", to, "subject", msg.Subject)
	return nil
}
