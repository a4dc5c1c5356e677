package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

type EventStatusData struct {
	OrganizerName string
	EventName     string
	Message       string
}

type ReportData struct {
	AdminName  string
	UserName   string
	UserEmail  string
	ReportName string
	ReportDesc string
}

type TicketData struct {
	UserName         string
	EventName        string
	TicketType       string
	BookingReference string
	StartDate        time.Time
}

type EmailService struct {
	mailer    Mailer
	templates *template.Template
	logger    *zap.Logger
}

func NewEmailService(mailer Mailer, logger *zap.Logger) (*EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &EmailService{
		mailer:    mailer,
		templates: tmpl,
		logger:    logger,
	}, nil
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, to, name string) error {
	return s.send(ctx, to, "Welcome to EventSphere!", "welcome.html", map[string]interface{}{
		"Name": name,
	})
}

func (s *EmailService) SendEventApproved(ctx context.Context, to string, data EventStatusData) error {
	return s.send(ctx, to, fmt.Sprintf("Your event %q was approved", data.EventName), "event-approved.html", data)
}

func (s *EmailService) SendEventDisapproved(ctx context.Context, to string, data EventStatusData) error {
	return s.send(ctx, to, fmt.Sprintf("Your event %q is pending review again", data.EventName), "event-disapproved.html", data)
}

func (s *EmailService) SendEventRejected(ctx context.Context, to string, data EventStatusData) error {
	return s.send(ctx, to, fmt.Sprintf("Your event %q was rejected", data.EventName), "event-rejected.html", data)
}

func (s *EmailService) SendReportReceived(ctx context.Context, to string, data ReportData) error {
	return s.send(ctx, to, "Report from "+data.UserName, "report-received.html", data)
}

func (s *EmailService) SendTicketConfirmation(ctx context.Context, to string, data TicketData) error {
	return s.send(ctx, to, "Your ticket for "+data.EventName, "ticket-confirmation.html", data)
}

func (s *EmailService) send(ctx context.Context, to, subject, templateName string, data interface{}) error {
	html, err := s.render(templateName, data)
	if err != nil {
		s.logger.Error("failed to render email", zap.String("template", templateName), zap.Error(err))
		return err
	}

	if err := s.mailer.Send(ctx, to, subject, html); err != nil {
		s.logger.Error("failed to send email", zap.String("to", to), zap.String("template", templateName), zap.Error(err))
		return err
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("template", templateName))
	return nil
}

func (s *EmailService) render(templateName string, data interface{}) (string, error) {
	var body bytes.Buffer
	err := s.templates.ExecuteTemplate(&body, templateName, map[string]interface{}{
		"Data": data,
		"Year": time.Now().Year(),
	})
	if err != nil {
		return "", err
	}
	return body.String(), nil
}
