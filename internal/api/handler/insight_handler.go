package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hashdoctor/telehealth-api/internal/api/metrics"
	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// aiResult maps an extraction failure to its metric label.
func aiResult(err error) string {
	if errors.Is(err, domain.ErrBadAIResponse) {
		return "bad_response"
	}
	return "error"
}

// InsightHandler serves AI-derived wellness reports and feed content.
type InsightHandler struct {
	insights ports.InsightService
}

func NewInsightHandler(insights ports.InsightService) *InsightHandler {
	return &InsightHandler{insights: insights}
}

// HealthInsights handles GET /v1/insights.
//
// @Summary      Analyze the caller's medical record into a wellness report
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.HealthInsights
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/insights [get]
func (h *InsightHandler) HealthInsights(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	report, err := h.insights.HealthInsights(c.Request().Context(), callerID)
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues("insights", aiResult(err)).Inc()
		return err
	}
	metrics.AIRequestsTotal.WithLabelValues("insights", "ok").Inc()
	return c.JSON(http.StatusOK, report)
}

// Feed handles GET /v1/feed.
//
// @Summary      Generate location- and age-targeted feed entries
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.FeedBundle
// @Failure      502  {object}  map[string]string
// @Router       /v1/feed [get]
func (h *InsightHandler) Feed(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	feed, err := h.insights.Feed(c.Request().Context(), callerID)
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues("feed", aiResult(err)).Inc()
		return err
	}
	metrics.AIRequestsTotal.WithLabelValues("feed", "ok").Inc()
	return c.JSON(http.StatusOK, feed)
}
