package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/vidquiz/internal/types"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
)

// CORSMiddleware handles CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequestLoggerMiddleware logs incoming requests
func RequestLoggerMiddleware(logger *Logger.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logger.Infof("[%s] %s %s %d %s %s",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency,
			param.ClientIP,
		)
		return ""
	})
}

// ErrorHandlerMiddleware handles panics and errors
func ErrorHandlerMiddleware(logger *Logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorf("Panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
			Code:  types.CodeInternal,
		})
	})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(code types.ErrorCode) int {
	switch code {
	case types.CodeNotFound:
		return http.StatusNotFound
	case types.CodeValidation:
		return http.StatusBadRequest
	case types.CodeExternalTool:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as the error envelope. Internal failures hide
// their cause from the client and are logged instead.
func respondError(c *gin.Context, logger *Logger.Logger, err error) {
	code := types.CodeOf(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}
	if code == types.CodeInternal {
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		resp.Error = "Internal server error"
	}
	c.JSON(statusFor(code), resp)
}

// respondBadRequest reports a malformed request body or parameter.
func respondBadRequest(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{Error: msg, Code: types.CodeValidation}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
