package server

import (
	"errors"
	"net/http"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/pkg/i18n"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// statusFor maps a usecase error onto an HTTP status and a message id.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, i18n.MsgNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, i18n.MsgInvalidInput
	case errors.Is(err, model.ErrInvalidTransition):
		return http.StatusConflict, i18n.MsgInvalidTransition
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, i18n.MsgUnauthenticated
	case errors.Is(err, model.ErrForbidden), errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, i18n.MsgForbidden
	default:
		return http.StatusInternalServerError, i18n.MsgInternal
	}
}

// ErrorHandler renders the last error a handler attached with c.Error.
// Internal errors are logged and their detail is not exposed.
func ErrorHandler(tr *i18n.Translator, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, msgID := statusFor(err)

		resp := ErrorResponse{Error: tr.T(c.GetHeader("Accept-Language"), msgID)}
		if status == http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		} else {
			resp.Detail = err.Error()
		}
		c.AbortWithStatusJSON(status, resp)
	}
}
