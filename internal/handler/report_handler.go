package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dashdeck/internal/service"
)

// ReportHandler serves generated PDF reports.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateReportRequest identifies the user and report type to render.
type GenerateReportRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Type   string `json:"type" validate:"required"`
}

// Generate godoc
// @Summary Generate an analytics report PDF
// @Tags reports
// @Accept json
// @Produce application/pdf
// @Param request body GenerateReportRequest true "Report parameters"
// @Success 200 {file} binary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reports/generate [post]
func (h *ReportHandler) Generate(c echo.Context) error {
	var req GenerateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var buf bytes.Buffer
	if err := h.reportService.Generate(&buf, req.UserID, req.Type); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate report")
	}

	filename := fmt.Sprintf("report-%d.pdf", time.Now().UnixMilli())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
