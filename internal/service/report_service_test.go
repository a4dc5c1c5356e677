package service

import (
	"context"
	"testing"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReportService(env *testEnv) *ReportService {
	return NewReportService(repository.NewReportRepository(env.db), env.users, env.notifications, env.emailService, zap.NewNop())
}

func TestCreateReportFansOutToEveryAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newReportService(env)

	reporter := env.createUser(t, "Grace", "grace@example.com", models.RoleAttendee, "secret1")
	admin1 := env.createUser(t, "Root", "root@example.com", models.RoleAdmin, "secret1")
	admin2 := env.createUser(t, "Ops", "ops@example.com", models.RoleAdmin, "secret1")

	report, err := svc.CreateReport(ctx, reporter.ID, models.ReportRequest{ReportName: "Spam", ReportDesc: "Event 3 is spam"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", report.UserName)
	assert.Equal(t, "grace@example.com", report.UserEmail)

	mails := env.mailer.Sent()
	require.Len(t, mails, 2)
	var recipients []string
	for _, m := range mails {
		recipients = append(recipients, m.To)
		assert.Equal(t, "Report from Grace", m.Subject)
	}
	assert.ElementsMatch(t, []string{"root@example.com", "ops@example.com"}, recipients)

	for _, admin := range []*models.User{admin1, admin2} {
		notes, err := env.notifications.GetNotifications(ctx, admin.ID)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "New Report was sent from Grace", notes[0].Message)
	}

	reporterNotes, err := env.notifications.GetNotifications(ctx, reporter.ID)
	require.NoError(t, err)
	assert.Empty(t, reporterNotes)
}

func TestCreateReportWithoutAdminsKeepsReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newReportService(env)
	reporter := env.createUser(t, "Grace", "grace@example.com", models.RoleAttendee, "secret1")

	report, err := svc.CreateReport(ctx, reporter.ID, models.ReportRequest{ReportName: "Spam", ReportDesc: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	require.NotNil(t, report)

	count, err := svc.CountReports(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, env.mailer.Sent())
}

func TestCreateReportAggregatesFanOutErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newReportService(env)
	reporter := env.createUser(t, "Grace", "grace@example.com", models.RoleAttendee, "secret1")
	admin := env.createUser(t, "Root", "root@example.com", models.RoleAdmin, "secret1")
	env.mailer.err = assert.AnError

	_, err := svc.CreateReport(ctx, reporter.ID, models.ReportRequest{ReportName: "Spam", ReportDesc: "x"})
	assert.ErrorIs(t, err, assert.AnError)

	// bildirim yine de kaydedilir
	notes, err := env.notifications.GetNotifications(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestReportCRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newReportService(env)
	reporter := env.createUser(t, "Grace", "grace@example.com", models.RoleAttendee, "secret1")
	env.createUser(t, "Root", "root@example.com", models.RoleAdmin, "secret1")

	_, err := svc.CreateReport(ctx, 999, models.ReportRequest{ReportName: "x", ReportDesc: "y"})
	assert.ErrorIs(t, err, ErrNotFound)

	report, err := svc.CreateReport(ctx, reporter.ID, models.ReportRequest{ReportName: "Bug", ReportDesc: "Broken"})
	require.NoError(t, err)

	_, err = svc.UpdateReport(ctx, report.ID, models.UpdateReportRequest{ID: report.ID + 1, ReportName: "Bug"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateReport(ctx, 777, models.UpdateReportRequest{ID: 777, ReportName: "Bug"})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdateReport(ctx, report.ID, models.UpdateReportRequest{ID: report.ID, ReportName: "Bug", ReportDesc: "Broken", ReportAnswer: "Fixed"})
	require.NoError(t, err)
	assert.Equal(t, "Fixed", updated.ReportAnswer)

	mine, err := svc.GetReportsByUserID(ctx, reporter.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.GetAllReports(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteReport(ctx, report.ID))
	require.NoError(t, svc.DeleteReport(ctx, report.ID))
	_, err = svc.GetReportByID(ctx, report.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
