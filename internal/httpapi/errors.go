package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/mediascribe/internal/analyzer"
	"github.com/nguyentantai21042004/mediascribe/internal/archive"
	"github.com/nguyentantai21042004/mediascribe/internal/export"
	"github.com/nguyentantai21042004/mediascribe/internal/media"
	"github.com/nguyentantai21042004/mediascribe/internal/processor"
	"github.com/nguyentantai21042004/mediascribe/internal/transcript"
	"github.com/nguyentantai21042004/mediascribe/pkg/response"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var validation *media.ValidationError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, analyzer.ErrNoMedia),
		errors.Is(err, analyzer.ErrNoMIMEType),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, transcript.ErrSegmentIndex):
		return http.StatusBadRequest
	case errors.Is(err, archive.ErrRecordNotFound),
		errors.Is(err, archive.ErrFolderNotFound):
		return http.StatusNotFound
	case errors.Is(err, archive.ErrFolderNotEmpty),
		errors.Is(err, archive.ErrDefaultFolder):
		return http.StatusConflict
	case errors.Is(err, processor.ErrBusy):
		return http.StatusTooManyRequests
	case errors.Is(err, analyzer.ErrMissingCredentials):
		return http.StatusServiceUnavailable
	case errors.Is(err, analyzer.ErrAPI),
		errors.Is(err, analyzer.ErrTransport),
		errors.Is(err, analyzer.ErrEmptyResponse),
		errors.Is(err, media.ErrFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		if errors.Is(err, archive.ErrStorageFailure) {
			msg = "archive storage is unavailable"
		} else {
			msg = "internal error"
		}
	}
	response.Fail(c, status, msg)
}
