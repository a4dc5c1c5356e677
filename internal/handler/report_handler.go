package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/service"
	"github.com/sefazor/eventsphere-backend/pkg/utils"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *service.ReportService
	validator     *utils.Validator
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, validator *utils.Validator, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		validator:     validator,
		logger:        logger,
	}
}

func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	var req models.ReportRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	report, err := h.reportService.CreateReport(c.UserContext(), currentUser(c).ID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(report, "Report submitted successfully"))
}

func (h *ReportHandler) GetAllReports(c *fiber.Ctx) error {
	reports, err := h.reportService.GetAllReports(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(reports, "Reports retrieved successfully"))
}

func (h *ReportHandler) GetMyReports(c *fiber.Ctx) error {
	reports, err := h.reportService.GetReportsByUserID(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(reports, "Reports retrieved successfully"))
}

func (h *ReportHandler) GetReportsByUser(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	reports, err := h.reportService.GetReportsByUserID(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(reports, "Reports retrieved successfully"))
}

func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid report ID")
	}

	report, err := h.reportService.GetReportByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if !currentUser(c).CanAccess(report.UserID) {
		return forbidden(c)
	}

	return c.JSON(models.SuccessResponse(report, "Report retrieved successfully"))
}

func (h *ReportHandler) UpdateReport(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid report ID")
	}

	var req models.UpdateReportRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	report, err := h.reportService.UpdateReport(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(report, "Report updated successfully"))
}

func (h *ReportHandler) DeleteReport(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid report ID")
	}

	if err := h.reportService.DeleteReport(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Report deleted successfully"))
}

func (h *ReportHandler) CountReports(c *fiber.Ctx) error {
	count, err := h.reportService.CountReports(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(models.CountResponse{Count: count}, "Reports counted"))
}
