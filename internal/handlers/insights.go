package handlers

import (
	"net/http"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/apierror"
	"github.com/JonnyWalker81/wellness/backend/internal/logger"
	"github.com/JonnyWalker81/wellness/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// unavailableRetryAfter is the Retry-After sent when the event store fails
const unavailableRetryAfter = 30

// InsightsHandler handles insights-related HTTP requests
type InsightsHandler struct {
	insightService service.InsightService
	defaultLoc     *time.Location
	now            func() time.Time
}

// NewInsightsHandler creates a new insights handler. defaultLoc resolves
// calendar days when the request has no tz parameter.
func NewInsightsHandler(insightService service.InsightService, defaultLoc *time.Location) *InsightsHandler {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &InsightsHandler{
		insightService: insightService,
		defaultLoc:     defaultLoc,
		now:            time.Now,
	}
}

// GetCheckInInsights returns the check-in insight report for the
// authenticated user
// GET /api/v1/insights/checkins?tz=America/New_York
func (h *InsightsHandler) GetCheckInInsights(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		return
	}

	loc := h.defaultLoc
	if tz := c.Query("tz"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
				invalidField("tz", "must be an IANA time zone name"),
			}))
			return
		}
		loc = parsed
	}

	report, err := h.insightService.BuildInsightReport(c.Request.Context(), userID, h.now().In(loc))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to build insight report",
			logger.Err(err),
			logger.SubjectID(userID),
		)
		apierror.WriteProblem(c, apierror.NewUnavailableError(apierror.GetRequestID(c), "insights unavailable", unavailableRetryAfter))
		return
	}

	c.JSON(http.StatusOK, report)
}
