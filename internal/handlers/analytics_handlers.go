package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/analytics"
	"github.com/tesseract-hub/property-service/internal/export"
	"github.com/tesseract-hub/property-service/internal/services"
)

// AnalyticsHandlers handles HTTP requests for analytics
type AnalyticsHandlers struct {
	service *services.AnalyticsService
	logger  *logrus.Logger
}

// NewAnalyticsHandlers creates a new analytics handlers instance
func NewAnalyticsHandlers(service *services.AnalyticsService, logger *logrus.Logger) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		service: service,
		logger:  logger,
	}
}

// GetDashboard retrieves the headline dashboard
// GET /api/v1/analytics/dashboard
func (h *AnalyticsHandlers) GetDashboard(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetDashboard(c.Request.Context()))
}

// GetFinancial retrieves the monthly financial summary
// GET /api/v1/analytics/financial
func (h *AnalyticsHandlers) GetFinancial(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetFinancialSummary())
}

// GetExpenses retrieves expense categories against their budgets
// GET /api/v1/analytics/expenses
func (h *AnalyticsHandlers) GetExpenses(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetExpenseCategories())
}

// GetPerformance retrieves per-property performance
// GET /api/v1/analytics/performance
func (h *AnalyticsHandlers) GetPerformance(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetPropertyPerformance())
}

// GetMaintenance retrieves work order statistics
// GET /api/v1/analytics/maintenance
func (h *AnalyticsHandlers) GetMaintenance(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetMaintenanceStats())
}

// GetLeases retrieves leases ending within ?days= (service default when omitted)
// GET /api/v1/analytics/leases
func (h *AnalyticsHandlers) GetLeases(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "days must be a non-negative integer")
			return
		}
		days = n
	}
	respond(c, http.StatusOK, h.service.GetLeaseExpirations(days))
}

// GetCollection retrieves the rent collection rate
// GET /api/v1/analytics/collection
func (h *AnalyticsHandlers) GetCollection(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetCollectionRate())
}

// GetProjections retrieves revenue projections, optionally at ?growthRate=
// GET /api/v1/analytics/projections
func (h *AnalyticsHandlers) GetProjections(c *gin.Context) {
	var rate *float64
	if raw := c.Query("growthRate"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !analytics.IsFinite(v) {
			badRequest(c, "growthRate must be a finite number")
			return
		}
		rate = &v
	}
	respond(c, http.StatusOK, h.service.GetRevenueProjections(rate))
}

// GetPropertyTypes retrieves the per-type breakdown
// GET /api/v1/analytics/property-types
func (h *AnalyticsHandlers) GetPropertyTypes(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetPropertyTypes())
}

// GetRankings ranks properties by ?by=revenue|occupancy|revenuePerUnit|tenants
// GET /api/v1/analytics/rankings
func (h *AnalyticsHandlers) GetRankings(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetRankings(c.Query("by")))
}

// GetPortfolio retrieves the portfolio summary
// GET /api/v1/analytics/portfolio
func (h *AnalyticsHandlers) GetPortfolio(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetPortfolio())
}

// GetCorrelations retrieves metric correlations
// GET /api/v1/analytics/correlations
func (h *AnalyticsHandlers) GetCorrelations(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetCorrelations())
}

// GetNotifications retrieves the derived notification list
// GET /api/v1/notifications
func (h *AnalyticsHandlers) GetNotifications(c *gin.Context) {
	respond(c, http.StatusOK, h.service.GetNotifications())
}

// ExportCollection exports one entity collection
// GET /api/v1/export/:collection
func (h *AnalyticsHandlers) ExportCollection(c *gin.Context) {
	collection := c.Param("collection")

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		badRequest(c, "Invalid format. Use 'csv' or 'json'")
		return
	}

	data, err := h.service.ExportCollection(collection, format)
	if err != nil {
		respondError(c, h.logger, err, "Failed to export "+collection)
		return
	}

	h.attachment(c, export.Filename(collection, format, time.Now()), format.ContentType(), data)
}

// ExportDashboardReport exports the dashboard report
// GET /api/v1/analytics/dashboard/export
func (h *AnalyticsHandlers) ExportDashboardReport(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		badRequest(c, "Invalid format. Use 'csv' or 'json'")
		return
	}

	var data []byte
	switch format {
	case export.FormatCSV:
		data, err = h.service.ExportDashboardReport(c.Request.Context())
	case export.FormatJSON:
		data, err = export.JSON(h.service.GetDashboard(c.Request.Context()))
	default:
		err = errors.New("unsupported format")
	}

	if err != nil {
		h.logger.WithError(err).Error("Failed to export dashboard report")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to export dashboard report"})
		return
	}

	h.attachment(c, export.Filename("dashboard-report", format, time.Now()), format.ContentType(), data)
}

func (h *AnalyticsHandlers) attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
