// Package handler contains the thin HTTP orchestration layer: bind and
// validate the request, call a service, map the result to a JSON body or a
// file download. All failures are logged here before being converted.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	errs "clientdesk/internal/errors"
)

// respondError logs err and writes the mapped status and error body.
func respondError(c echo.Context, log zerolog.Logger, err error, context string) error {
	status := errs.HTTPStatus(err)
	evt := log.Warn()
	if status >= http.StatusInternalServerError {
		evt = log.Error()
	}
	evt.Err(err).Str("path", c.Path()).Msg(context)
	return c.JSON(status, errs.ErrorResponse{Error: errs.UserMessage(err)})
}

func respondMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, errs.MessageResponse{Message: message})
}
