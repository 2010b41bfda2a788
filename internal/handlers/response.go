package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// HTTPErrorHandler writes every error as {"success": false, "error": {...}}.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := errs.StatusCode(err)
	code := errs.Code(err)
	message := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		code = strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_"))
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	if status >= http.StatusInternalServerError {
		full := err.Error()
		var appErr *errs.AppErr
		if errors.As(err, &appErr) {
			full = appErr.FullError()
		}
		l := logger.Ctx(c.Request().Context())
		l.Error().Str("error", full).Msg("request failed")
		message = http.StatusText(status)
	}

	body := echo.Map{"success": false, "error": echo.Map{"code": code, "message": message}}
	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		l := logger.Ctx(c.Request().Context())
		l.Error().Err(writeErr).Msg("failed to write error response")
	}
}

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errs.BadRequest("invalid " + name)
	}
	return uint(id), nil
}

// parsePage reads the optional limit and offset query parameters.
func parsePage(c echo.Context) (models.Page, error) {
	var page models.Page
	for name, dst := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return models.Page{}, errs.BadRequest("invalid " + name)
		}
		*dst = n
	}
	return page, nil
}

// bind decodes the JSON body into req and validates it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errs.BadRequest("malformed request body")
	}
	return c.Validate(req)
}
