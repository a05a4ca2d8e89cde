package handlers

import (
	"github.com/JonnyWalker81/wellness/backend/internal/apierror"
	"github.com/JonnyWalker81/wellness/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// subjectID returns the authenticated user's id, writing a 401 when the
// auth middleware did not run
func subjectID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c), ""))
		return "", false
	}
	return userID, true
}

func requiredField(field string) apierror.FieldError {
	return apierror.FieldError{Field: field, Message: "is required", Code: "required"}
}

func invalidField(field, message string) apierror.FieldError {
	return apierror.FieldError{Field: field, Message: message, Code: "invalid_format"}
}
