package handler

import (
	"net/http"
	"strconv"
	"time"

	"podboard/internal/middleware"
	"podboard/internal/model"
	"podboard/internal/service"
	"podboard/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reportGroup := router.Group("/api/reports")
	reportGroup.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	{
		reportGroup.GET("/pnl", h.GetPnLReport)
		reportGroup.GET("/projection", h.GetProjection)
	}
}

// @Summary      Profit and loss report
// @Description  Per-order economics plus daily, monthly and global aggregates
// @Tags         Reports
// @Produce      json
// @Param        from query string false "Window start (RFC3339)"
// @Param        to   query string false "Window end (RFC3339)"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/reports/pnl [get]
func (h *ReportHandler) GetPnLReport(c *gin.Context) {
	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	report, err := h.reportService.GetPnLReport(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// @Summary      Profit projection
// @Description  Order volume, revenue and ad budget needed to hit a monthly profit target
// @Tags         Reports
// @Produce      json
// @Param        target       query string true  "Monthly profit target"
// @Param        working_days query int    false "Working days per month (default 30)"
// @Param        from         query string false "Baseline window start (RFC3339)"
// @Param        to           query string false "Baseline window end (RFC3339)"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/reports/projection [get]
func (h *ReportHandler) GetProjection(c *gin.Context) {
	target, err := decimal.NewFromString(c.Query("target"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid target: must be a decimal number"))
		return
	}

	workingDays := 0
	if raw := c.Query("working_days"); raw != "" {
		workingDays, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid working_days: must be an integer"))
			return
		}
	}

	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	projection, err := h.reportService.GetProjection(c.Request.Context(), target, workingDays, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, projection))
}

// parseWindow reads the optional from/to query params as RFC3339 timestamps.
func parseWindow(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}

	return from, to, nil
}
