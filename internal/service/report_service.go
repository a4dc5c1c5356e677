package service

import (
	"context"
	"fmt"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/sefazor/eventsphere-backend/pkg/email"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ReportService struct {
	reportRepo    *repository.ReportRepository
	userRepo      *repository.UserRepository
	notifications *NotificationService
	emailService  *email.EmailService
	logger        *zap.Logger
}

func NewReportService(reportRepo *repository.ReportRepository, userRepo *repository.UserRepository, notifications *NotificationService, emailService *email.EmailService, logger *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo:    reportRepo,
		userRepo:      userRepo,
		notifications: notifications,
		emailService:  emailService,
		logger:        logger,
	}
}

// CreateReport persists the report and then emails and notifies every admin
// concurrently. With no admins it fails with ErrNotFound although the report
// is already stored.
func (s *ReportService) CreateReport(ctx context.Context, userID uint, req models.ReportRequest) (*models.Report, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user", userID)
	}

	report := &models.Report{
		UserID:       user.ID,
		UserName:     user.Name,
		UserLastName: user.LastName,
		UserEmail:    user.Email,
		ReportName:   req.ReportName,
		ReportDesc:   req.ReportDesc,
	}
	if err := s.reportRepo.Add(ctx, report); err != nil {
		return nil, err
	}

	admins, err := s.userRepo.GetByRole(ctx, models.RoleAdmin)
	if err != nil {
		return report, err
	}
	if len(admins) == 0 {
		s.logger.Warn("report stored without any admin to notify", zap.Uint("report_id", report.ID))
		return report, fmt.Errorf("no administrators to notify: %w", ErrNotFound)
	}

	message := fmt.Sprintf("New Report was sent from %s", user.Name)
	errs := make([]error, len(admins))

	var g errgroup.Group
	for i, admin := range admins {
		i, admin := i, admin
		g.Go(func() error {
			mailErr := s.emailService.SendReportReceived(ctx, admin.Email, email.ReportData{
				AdminName:  admin.Name,
				UserName:   user.Name,
				UserEmail:  user.Email,
				ReportName: report.ReportName,
				ReportDesc: report.ReportDesc,
			})
			_, notifyErr := s.notifications.Notify(ctx, admin.ID, message, map[string]interface{}{
				"report_id": report.ID,
				"kind":      "report_created",
			})
			errs[i] = multierr.Combine(mailErr, notifyErr)
			return nil
		})
	}
	_ = g.Wait()

	if err := multierr.Combine(errs...); err != nil {
		s.logger.Error("report fan-out failed", zap.Uint("report_id", report.ID), zap.Error(err))
		return report, fmt.Errorf("report %d saved but admins were not fully notified: %w", report.ID, err)
	}

	return report, nil
}

func (s *ReportService) GetAllReports(ctx context.Context) ([]models.Report, error) {
	return s.reportRepo.GetAll(ctx)
}

func (s *ReportService) GetReportByID(ctx context.Context, id uint) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "report", id)
	}
	return report, nil
}

func (s *ReportService) GetReportsByUserID(ctx context.Context, userID uint) ([]models.Report, error) {
	return s.reportRepo.GetByUserID(ctx, userID)
}

func (s *ReportService) UpdateReport(ctx context.Context, id uint, req models.UpdateReportRequest) (*models.Report, error) {
	if req.ID != id {
		return nil, validationError("report id mismatch")
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "report", id)
	}

	report.ReportName = req.ReportName
	report.ReportDesc = req.ReportDesc
	report.ReportAnswer = req.ReportAnswer

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id uint) error {
	return s.reportRepo.Delete(ctx, id)
}

func (s *ReportService) CountReports(ctx context.Context) (int64, error) {
	return s.reportRepo.Count(ctx)
}
