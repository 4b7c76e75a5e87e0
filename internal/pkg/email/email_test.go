package email

import (
	"context"
	"errors"
	"net/http"
	"net/smtp"
	"testing"

	"github.com/samriddhi-018/infosys-LGD/internal/config"
	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func TestSendCourseAssigned_RendersBothBodies(t *testing.T) {
	sender := &recordingSender{}
	svc, err := NewEmailServiceWithSender(sender, "LGD Portal")
	require.NoError(t, err)

	err = svc.SendCourseAssigned(context.Background(), "jane@example.com", CourseAssignedData{
		Title:       "Go <Basics>",
		Description: "Learn the language",
		Deadline:    "2026-12-01",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "jane@example.com", msg.To)
	assert.Equal(t, "New Course Assigned to You", msg.Subject)
	assert.Contains(t, msg.TextBody, "You have been assigned a new course: Go <Basics>.")
	assert.Contains(t, msg.TextBody, "Description: Learn the language")
	assert.Contains(t, msg.HTMLBody, "Go &lt;Basics&gt;")
	assert.Contains(t, msg.HTMLBody, "2026-12-01")
	assert.Contains(t, msg.TextBody, "LGD Portal")
}

func TestSendCourseAssigned_PropagatesSenderError(t *testing.T) {
	sender := &recordingSender{err: errors.New("relay down")}
	svc, err := NewEmailServiceWithSender(sender, "LGD Portal")
	require.NoError(t, err)

	err = svc.SendCourseAssigned(context.Background(), "jane@example.com", CourseAssignedData{Title: "T"})
	assert.EqualError(t, err, "relay down")
	assert.Len(t, sender.sent, 1, "no retries")
}

func TestNewEmailService_UnknownProvider(t *testing.T) {
	_, err := NewEmailService(config.MailConfig{Provider: "fax"})
	assert.Error(t, err)
}

func TestSMTPSender_SkipsWhenUnconfigured(t *testing.T) {
	called := false
	s := &smtpSender{cfg: config.MailConfig{}, sendMail: func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}}
	require.NoError(t, s.Send(context.Background(), Message{To: "x@example.com"}))
	assert.False(t, called)
}

func TestSMTPSender_SingleAttempt(t *testing.T) {
	calls := 0
	s := &smtpSender{
		cfg: config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, From: "no-reply@example.com", FromName: "LGD"},
		sendMail: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			calls++
			assert.Equal(t, "smtp.example.com:587", addr)
			assert.Equal(t, []string{"x@example.com"}, to)
			assert.Contains(t, string(msg), "Subject: Hello\r\n")
			return errors.New("connection refused")
		},
	}
	err := s.Send(context.Background(), Message{To: "x@example.com", Subject: "Hello", HTMLBody: "<p>hi</p>"})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestSendGridSender(t *testing.T) {
	s := NewSendGridSender("SG.key", "LGD", "no-reply@example.com").(*sendGridSender)

	m := s.prepare(Message{To: "x@example.com", Subject: "Hello", TextBody: "hi", HTMLBody: "<p>hi</p>"})
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "Hello", m.Personalizations[0].Subject)
	assert.Equal(t, "x@example.com", m.Personalizations[0].To[0].Address)
	assert.Equal(t, "no-reply@example.com", m.From.Address)
	require.Len(t, m.Content, 2)
	assert.Equal(t, "text/plain", m.Content[0].Type)

	var captured rest.Request
	s.api = func(req rest.Request) (*rest.Response, error) {
		captured = req
		return &rest.Response{StatusCode: http.StatusAccepted}, nil
	}
	require.NoError(t, s.Send(context.Background(), Message{To: "x@example.com", Subject: "Hello"}))
	assert.Equal(t, rest.Method(http.MethodPost), captured.Method)
	assert.Equal(t, "https://api.sendgrid.com/v3/mail/send", captured.BaseURL)

	s.api = func(rest.Request) (*rest.Response, error) {
		return &rest.Response{StatusCode: http.StatusUnauthorized, Body: "bad key"}, nil
	}
	assert.Error(t, s.Send(context.Background(), Message{To: "x@example.com"}))
}
