package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"GuardHer/internal/models"
	"GuardHer/internal/service"
	"GuardHer/pkg/config"
	"GuardHer/pkg/errors"
	"GuardHer/pkg/response"
)

func (h *Handlers) handleDashboard(context *gin.Context) {
	filters, err := parseDashboardFilters(context)
	if err != nil {
		response.Fail(context, err.Error(), nil)
		return
	}
	response.Success(context, "Dashboard data fetched", h.analytics.Dashboard(filters))
}

func (h *Handlers) handleExportCSV(context *gin.Context) {
	filters, err := parseDashboardFilters(context)
	if err != nil {
		response.Fail(context, err.Error(), nil)
		return
	}
	csvData, err := h.analytics.ExportCSV(filters)
	if err != nil {
		response.Error(context, err)
		return
	}
	context.Header("Content-Disposition", `attachment; filename="analytics.csv"`)
	context.Data(200, "text/csv", []byte(csvData))
}

func parseDashboardFilters(context *gin.Context) (service.DashboardFilters, error) {
	var filters service.DashboardFilters

	from, err := parseTimeParam(context.Query("from"))
	if err != nil {
		return filters, err
	}
	to, err := parseTimeParam(context.Query("to"))
	if err != nil {
		return filters, err
	}
	filters.From = from
	filters.To = to
	filters.Severity = models.Severity(context.Query("severity"))
	filters.Status = models.SessionStatus(context.Query("status"))

	if page := context.Query("page"); page != "" {
		filters.Page, err = strconv.Atoi(page)
		if err != nil {
			return filters, errors.Validation("invalid page value: %s", page)
		}
		filters.Limit = config.GlobalConfig.AnalyticsPageSize
	}
	if limit := context.Query("limit"); limit != "" {
		filters.Limit, err = strconv.Atoi(limit)
		if err != nil {
			return filters, errors.Validation("invalid limit value: %s", limit)
		}
	}
	return filters, nil
}

// parseTimeParam accepts RFC3339 timestamps or plain dates.
func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.Validation("invalid time value: %s", value)
}
