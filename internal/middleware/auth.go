package middleware

import (
	"context"
	"strings"

	"github.com/JonnyWalker81/wellness/backend/internal/apierror"
	"github.com/JonnyWalker81/wellness/backend/internal/logger"
	"github.com/JonnyWalker81/wellness/backend/pkg/supabase"
	"github.com/gin-gonic/gin"
)

// Context keys set by Auth
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserToken = "user_token"
)

// TokenVerifier resolves a bearer token to a user. *supabase.Client
// satisfies it.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*supabase.User, error)
}

// Auth middleware to verify JWT tokens
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())
		requestID := apierror.GetRequestID(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Debug("authentication failed: missing authorization header")
			apierror.AbortWithProblem(c, apierror.NewUnauthorizedError(requestID, ""))
			return
		}

		// Extract token from "Bearer <token>"
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || token == "" {
			log.Debug("authentication failed: invalid authorization format")
			apierror.AbortWithProblem(c, apierror.NewUnauthorizedError(requestID, "Authorization header must be 'Bearer <token>'"))
			return
		}

		user, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			log.Warn("authentication failed: token verification error",
				logger.Err(err),
			)
			apierror.AbortWithProblem(c, apierror.NewUnauthorizedError(requestID, "Invalid or expired token"))
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserEmail, user.Email)
		c.Set(ContextUserToken, token)

		ctx := logger.WithSubjectID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		log.Debug("authentication successful", logger.SubjectID(user.ID))

		c.Next()
	}
}

// DevTokenVerifier treats the bearer token itself as the user id. It
// lets the sqlite store run without Supabase and must not be used in
// production.
type DevTokenVerifier struct{}

func (DevTokenVerifier) VerifyToken(ctx context.Context, token string) (*supabase.User, error) {
	return &supabase.User{ID: token}, nil
}
