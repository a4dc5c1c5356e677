package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SES credentials are optional; without them the default AWS chain (env,
// shared config, instance or task role) is used.
type SESOptions struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type MailerOptions struct {
	Provider     string // resend, ses, noop
	FromAddress  string
	FromName     string
	ResendAPIKey string
	SES          SESOptions
}

// NewMailer provider'a göre mailer seçer: "resend", "ses" ya da "noop".
func NewMailer(ctx context.Context, opts MailerOptions, log *zap.Logger) (Mailer, error) {
	from := opts.FromAddress
	if opts.FromName != "" {
		from = fmt.Sprintf("%s <%s>", opts.FromName, opts.FromAddress)
	}

	switch opts.Provider {
	case "resend":
		if opts.ResendAPIKey == "" {
			return nil, fmt.Errorf("MAIL_RESEND_API_KEY is required for the resend provider")
		}
		return &resendMailer{client: resend.NewClient(opts.ResendAPIKey), from: from, log: log}, nil
	case "ses":
		client, err := newSESClient(ctx, opts.SES)
		if err != nil {
			return nil, err
		}
		return &sesMailer{client: client, from: from, log: log}, nil
	case "noop", "":
		return &NoopMailer{log: log}, nil
	}
	return nil, fmt.Errorf("unknown email provider %q", opts.Provider)
}

func newSESClient(ctx context.Context, opts SESOptions) (*ses.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return ses.NewFromConfig(awsCfg), nil
}

type resendMailer struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

func (m *resendMailer) Send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := m.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via resend: %w", err)
	}

	m.log.Debug("email sent", zap.String("provider", "resend"), zap.String("to", to), zap.String("id", resp.Id))
	return nil
}

type sesMailer struct {
	client *ses.Client
	from   string
	log    *zap.Logger
}

func (m *sesMailer) Send(ctx context.Context, to, subject, html string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(html),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}

	m.log.Debug("email sent", zap.String("provider", "ses"), zap.String("to", to), zap.String("id", aws.ToString(result.MessageId)))
	return nil
}

type NoopMailer struct {
	log *zap.Logger
}

func NewNoopMailer(log *zap.Logger) *NoopMailer {
	return &NoopMailer{log: log}
}

func (m *NoopMailer) Send(ctx context.Context, to, subject, html string) error {
	m.log.Info("email would be sent (noop)", zap.String("to", to), zap.String("subject", subject))
	return nil
}
