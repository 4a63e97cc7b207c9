package middleware

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders uncaught errors as {"message": ...}. Handlers map
// domain errors to echo.HTTPError themselves; anything else is treated as
// an internal fault and its detail is kept out of the response.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(http.StatusInternalServerError)

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if code >= http.StatusInternalServerError {
		log.Printf("[ErrorHandler] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	_ = c.JSON(code, map[string]string{"message": msg})
}
