package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/gin-gonic/gin"
)

// errorStatus pairs a sentinel with the status it is answered with.
type errorStatus struct {
	err    error
	status int
}

var errorStatuses = []errorStatus{
	{common.ErrInvalidCredentials, http.StatusUnauthorized},
	{common.ErrUserNotFound, http.StatusUnauthorized},
	{common.ErrorUnauthorized, http.StatusUnauthorized},
	{common.ErrorForbidden, http.StatusForbidden},

	{common.ErrUsernameTaken, http.StatusBadRequest},
	{common.ErrEmailTaken, http.StatusBadRequest},
	{common.ErrorAlreadyExists, http.StatusBadRequest},
	{common.ErrNotificationFailure, http.StatusBadRequest},
	{common.ErrSignupNotFound, http.StatusBadRequest},
	{common.ErrOTPExpired, http.StatusBadRequest},
	{common.ErrOTPMismatch, http.StatusBadRequest},
	{common.ErrAccountAlreadyActive, http.StatusBadRequest},

	{common.ErrStudentNotFound, http.StatusNotFound},
	{common.ErrResumeNotFound, http.StatusNotFound},
}

// statusFor maps err to a status code and the text sent to the client.
// Known kinds are answered with the sentinel text only, so wrapped causes
// (driver or SMTP errors) never leave the process.
func statusFor(err error) (int, string) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status, es.err.Error()
		}
	}
	if errors.Is(err, common.ErrorValidation) {
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, common.ErrorInternal.Error()
}

// abortWithError writes the plain-text answer for err and stops the chain.
func abortWithError(c *gin.Context, l logging.Logger, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		l.Error(c.Request.Context(), "request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	_ = c.Error(err)
	c.String(status, msg)
	c.Abort()
}
