package controller

import (
	"errors"
	"net/http"
	"strconv"

	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates service sentinels into HTTP responses.
// Anything unrecognized is logged and surfaced as a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrPermissionDenied),
		errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(c, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrAlreadyEnrolled),
		errors.Is(err, util.ErrCourseNotPublished),
		errors.Is(err, util.ErrQuizExists),
		errors.Is(err, util.ErrAttemptLimitExceeded):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrEnrollmentNotFound):
		util.NotFound(c)
	default:
		util.LogInternalError(c, err)
	}
}

// uintParam parses a numeric path parameter. A second return of false
// means the response has already been written.
func uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		util.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}
