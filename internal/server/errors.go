package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/apperr"
)

// fail renders err as {"error": ..., "details": ...}. The cause is logged,
// never sent.
func (s *Server) fail(c *gin.Context, err error) {
	e := apperr.From(err)
	fields := []zap.Field{
		zap.String("kind", string(e.Kind)),
		zap.Int("status", e.Status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	}
	if e.Status >= http.StatusInternalServerError {
		s.logger.Error(e.Message, fields...)
	} else {
		s.logger.Info(e.Message, fields...)
	}

	body := gin.H{"error": e.Message}
	if e.Details != "" {
		body["details"] = e.Details
	}
	c.AbortWithStatusJSON(e.Status, body)
}

func (s *Server) badBody(c *gin.Context, err error) {
	s.fail(c, &apperr.Error{
		Kind:    apperr.KindValidation,
		Status:  http.StatusBadRequest,
		Message: "Invalid request body",
		Err:     err,
	})
}
