package main

import (
	"context"

	"github.com/sefazor/eventsphere-backend/internal/config"
	"github.com/sefazor/eventsphere-backend/internal/handler"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/sefazor/eventsphere-backend/internal/service"
	"github.com/sefazor/eventsphere-backend/pkg/database"
	"github.com/sefazor/eventsphere-backend/pkg/email"
	"github.com/sefazor/eventsphere-backend/pkg/jwt"
	"github.com/sefazor/eventsphere-backend/pkg/payment"
	"github.com/sefazor/eventsphere-backend/pkg/qrcode"
	"github.com/sefazor/eventsphere-backend/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const qrContentPrefix = "EVENTSPHERE-TICKET:"

func provideDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewDatabase(database.Options{
		Driver:          cfg.Database.Driver,
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideRoleRepository(db *gorm.DB) *repository.Repository[models.Role] {
	return repository.NewRepository[models.Role](db)
}

func provideCategoryRepository(db *gorm.DB) *repository.Repository[models.EventCategory] {
	return repository.NewRepository[models.EventCategory](db)
}

func provideLocationRepository(db *gorm.DB) *repository.Repository[models.Location] {
	return repository.NewRepository[models.Location](db)
}

func provideMailer(cfg *config.Config, log *zap.Logger) (email.Mailer, error) {
	m := cfg.Mail
	return email.NewMailer(context.Background(), email.MailerOptions{
		Provider:     m.Provider,
		FromAddress:  m.FromAddress,
		FromName:     m.FromName,
		ResendAPIKey: m.ResendAPIKey,
		SES: email.SESOptions{
			Region:          m.SES.Region,
			AccessKeyID:     m.SES.AccessKeyID,
			SecretAccessKey: m.SES.SecretAccessKey,
		},
	}, log)
}

// Bucket tanımlı değilse orijinal resimler arşivlenmez
func provideObjectStore(cfg *config.Config, log *zap.Logger) (storage.ObjectStore, error) {
	if !cfg.Storage.Enabled() {
		log.Info("object storage disabled, original images will not be archived")
		return storage.NoopStorage{}, nil
	}
	s := cfg.Storage
	return storage.NewS3Storage(context.Background(), storage.S3Options{
		Bucket:          s.Bucket,
		Region:          s.Region,
		Endpoint:        s.Endpoint,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
	})
}

func provideTokenManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
}

func provideQRService() *qrcode.QRService {
	return qrcode.NewQRService(qrContentPrefix)
}

func provideStripeService(cfg *config.Config, log *zap.Logger) *payment.StripeService {
	if !cfg.Stripe.Enabled() {
		log.Warn("stripe is not configured, only free tickets can be booked")
		return nil
	}
	s := cfg.Stripe
	return payment.NewStripeService(s.SecretKey, s.WebhookSecret, s.Currency, s.SuccessURL, s.CancelURL)
}

// A nil *StripeService must become a nil interface, otherwise the services
// would treat payments as configured.
func provideCheckoutProvider(s *payment.StripeService) service.CheckoutProvider {
	if s == nil {
		return nil
	}
	return s
}

func provideWebhookVerifier(s *payment.StripeService) handler.WebhookVerifier {
	if s == nil {
		return nil
	}
	return s
}
