package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iate-log/internal/logger"
	"iate-log/internal/service"
)

func statusFor(kind string) int {
	switch kind {
	case service.KindInvalid:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindParse:
		return http.StatusUnprocessableEntity
	case service.KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the single error boundary for HTTP and MCP callers.
func writeError(c *gin.Context, err error) {
	kind := service.Kind(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		logger.Error("request.failed", "path", c.FullPath(), "kind", kind, "err", err)
	} else {
		logger.Warn("request.rejected", "path", c.FullPath(), "kind", kind, "err", err)
	}
	c.JSON(status, gin.H{"error": service.Message(err), "kind": kind})
}
