package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reviewhub/internal/api/service"
	"reviewhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP statuses in one place. Unknown
// errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenreNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrReviewExists),
		errors.Is(err, service.ErrScoreTooLow),
		errors.Is(err, service.ErrScoreTooHigh),
		errors.Is(err, service.ErrYearInFuture),
		errors.Is(err, service.ErrReservedUsername),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrSignupConflict),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrUnknownGenre):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrMailDelivery):
		c.JSON(http.StatusBadGateway, gin.H{"error": service.ErrMailDelivery.Error()})

	default:
		log := logger.Get()
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pagination reads and clamps the page/page_size query parameters.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
