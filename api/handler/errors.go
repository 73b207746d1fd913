package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/summarizer/models"
)

// respondError maps err to an HTTP status and writes the shared error body.
func respondError(c *gin.Context, err error) {
	se := models.AsScrapeError(err)
	c.JSON(statusFor(se), models.ErrorResponse{
		Success: false,
		Error:   se.ToDetail(),
	})
}

func badRequest(c *gin.Context, err error) {
	respondError(c, models.NewScrapeError(models.ErrCodeInvalidInput, err.Error(), err))
}

// statusFor translates error codes to HTTP status codes.
func statusFor(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeNavigationTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation, models.ErrCodeSearch, models.ErrCodeConversion:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeNoResults:
		return http.StatusNotFound // 404
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
