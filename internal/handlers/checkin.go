package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/analytics"
	"github.com/JonnyWalker81/wellness/backend/internal/apierror"
	"github.com/JonnyWalker81/wellness/backend/internal/logger"
	"github.com/JonnyWalker81/wellness/backend/internal/models"
	"github.com/JonnyWalker81/wellness/backend/internal/repository"
	"github.com/JonnyWalker81/wellness/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	checkInService service.CheckInService
	now            func() time.Time
}

// NewCheckInHandler creates a new check-in handler
func NewCheckInHandler(checkInService service.CheckInService) *CheckInHandler {
	return &CheckInHandler{
		checkInService: checkInService,
		now:            time.Now,
	}
}

// CreateCheckIn handles POST /api/v1/checkins
func (h *CheckInHandler) CreateCheckIn(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		return
	}
	requestID := apierror.GetRequestID(c)

	// Bind to the raw shape so every invalid field is reported at once
	var raw models.RawCreateCheckInRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	var fieldErrors []apierror.FieldError
	req := models.CreateCheckInRequest{
		ID:         raw.ID,
		CategoryID: raw.CategoryID,
		Label:      raw.Label,
	}

	if raw.CategoryID == "" {
		fieldErrors = append(fieldErrors, requiredField("category_id"))
	}
	if raw.Label == "" {
		fieldErrors = append(fieldErrors, requiredField("label"))
	}
	if raw.OccurredAt == "" {
		fieldErrors = append(fieldErrors, requiredField("occurred_at"))
	} else {
		ts, err := time.Parse(time.RFC3339, raw.OccurredAt)
		if err != nil {
			fieldErrors = append(fieldErrors, invalidField("occurred_at", "must be a valid RFC3339 timestamp"))
		} else {
			req.OccurredAt = ts
		}
	}

	if len(fieldErrors) > 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	checkIn, err := h.checkInService.CreateCheckIn(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUUID), errors.Is(err, service.ErrNotUUIDv7):
			apierror.WriteProblem(c, apierror.NewInvalidUUIDError(requestID, "id", req.ID))
		case errors.Is(err, service.ErrFutureTimestamp):
			apierror.WriteProblem(c, apierror.NewFutureTimestampError(requestID, "id"))
		case errors.Is(err, repository.ErrDuplicate):
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, "A check-in with this ID already exists"))
		default:
			logger.Ctx(c.Request.Context()).Error("failed to create check-in", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusCreated, checkIn)
}

// GetCheckIns handles GET /api/v1/checkins?start=&end=
// Both bounds are RFC3339; the default is the current insight period.
func (h *CheckInHandler) GetCheckIns(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		return
	}
	requestID := apierror.GetRequestID(c)

	end := h.now()
	start := end.AddDate(0, 0, -analytics.PeriodDays)

	var fieldErrors []apierror.FieldError
	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			fieldErrors = append(fieldErrors, invalidField("start", "must be a valid RFC3339 timestamp"))
		}
		start = parsed
	}
	if s := c.Query("end"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			fieldErrors = append(fieldErrors, invalidField("end", "must be a valid RFC3339 timestamp"))
		}
		end = parsed
	}
	if len(fieldErrors) > 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	checkIns, err := h.checkInService.ListCheckIns(c.Request.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) || errors.Is(err, service.ErrRangeTooLong) {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Please choose a shorter date range"))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to list check-ins", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewUnavailableError(requestID, "check-ins unavailable", unavailableRetryAfter))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkins": checkIns,
		"start":    start,
		"end":      end,
	})
}
