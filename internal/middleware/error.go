package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/logger"
)

// ErrorHandler converts errors attached with c.Error into the JSON error
// envelope. AppErrors keep their code and message; anything else is logged
// and masked as INTERNAL_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.Named("http").With("request_id", c.GetString(requestIDKey), "path", c.Request.URL.Path)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				log.Errorw("app error", "code", appErr.Code, "internal", appErr.Internal.Error())
			}
			respondAppError(c, appErr)
			return
		}

		log.Errorw("unexpected error", "error", err.Error(), "method", c.Request.Method)
		respondAppError(c, apperrors.ErrInternalServer)
	}
}

// Recovery turns a panicking handler into an INTERNAL_ERROR envelope instead
// of an empty 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Named("http").Errorw("handler panic",
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		respondAppError(c, apperrors.ErrInternalServer)
	})
}

// NotFound answers unknown routes with the NOT_FOUND envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondAppError(c, apperrors.WithMessage(apperrors.ErrNotFound, "No route for "+c.Request.Method+" "+c.Request.URL.Path))
	}
}

func respondAppError(c *gin.Context, appErr *apperrors.AppError) {
	abortWithError(c, appErr.StatusCode, appErr.Code, appErr.Message)
}
