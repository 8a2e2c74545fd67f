package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siherrmann/ranker/api/dto"
)

// Recovery turns panics into a 500 error response
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Recovered from panic",
					slog.String("path", c.Request.URL.Path),
					slog.String("panic", fmt.Sprint(err)),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, fmt.Sprintf("internal server error: %v", err)))
			}
		}()
		c.Next()
	}
}
