package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/analytics"
	"github.com/JonnyWalker81/wellness/backend/internal/apierror"
	"github.com/JonnyWalker81/wellness/backend/internal/logger"
	"github.com/JonnyWalker81/wellness/backend/internal/models"
	"github.com/JonnyWalker81/wellness/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type PhaseTagHandler struct {
	phaseTagService service.PhaseTagService
	defaultLoc      *time.Location
	now             func() time.Time
}

// NewPhaseTagHandler creates a new phase tag handler. defaultLoc decides
// "today" for the default listing range.
func NewPhaseTagHandler(phaseTagService service.PhaseTagService, defaultLoc *time.Location) *PhaseTagHandler {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &PhaseTagHandler{
		phaseTagService: phaseTagService,
		defaultLoc:      defaultLoc,
		now:             time.Now,
	}
}

// SetPhaseTag handles PUT /api/v1/phase-tags/:date
func (h *PhaseTagHandler) SetPhaseTag(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		return
	}
	requestID := apierror.GetRequestID(c)

	var fieldErrors []apierror.FieldError

	day, err := models.ParseDate(c.Param("date"))
	if err != nil {
		fieldErrors = append(fieldErrors, invalidField("date", "must be a YYYY-MM-DD date"))
	}

	var req models.UpsertPhaseTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fieldErrors = append(fieldErrors, requiredField("phase"))
	} else if !models.IsKnownPhase(req.Phase) {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "phase",
			Message: "must be one of menstrual, follicular, ovulation, luteal",
			Code:    "invalid_value",
		})
	}

	if len(fieldErrors) > 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	tag, err := h.phaseTagService.SetPhaseTag(c.Request.Context(), userID, day, req.Phase)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPhase) || errors.Is(err, service.ErrMissingField) {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid phase tag"))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to set phase tag", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, tag)
}

// GetPhaseTags handles GET /api/v1/phase-tags?start=YYYY-MM-DD&end=YYYY-MM-DD
// The default range is the last 30 days ending today.
func (h *PhaseTagHandler) GetPhaseTags(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		return
	}
	requestID := apierror.GetRequestID(c)

	end := models.DateOf(h.now().In(h.defaultLoc))
	start := end.AddDays(-analytics.PeriodDays)

	var fieldErrors []apierror.FieldError
	if s := c.Query("start"); s != "" {
		parsed, err := models.ParseDate(s)
		if err != nil {
			fieldErrors = append(fieldErrors, invalidField("start", "must be a YYYY-MM-DD date"))
		}
		start = parsed
	}
	if s := c.Query("end"); s != "" {
		parsed, err := models.ParseDate(s)
		if err != nil {
			fieldErrors = append(fieldErrors, invalidField("end", "must be a YYYY-MM-DD date"))
		}
		end = parsed
	}
	if len(fieldErrors) > 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	tags, err := h.phaseTagService.ListPhaseTags(c.Request.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) || errors.Is(err, service.ErrRangeTooLong) {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Please choose a shorter date range"))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to list phase tags", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewUnavailableError(requestID, "phase tags unavailable", unavailableRetryAfter))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"phase_tags": tags,
		"start":      start,
		"end":        end,
	})
}
