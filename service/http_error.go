package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler installs HTTPErrorHandler as the echo error handler.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates the APIError code to HTTP status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	return map[string]int{
		ErrBadParameter:        http.StatusBadRequest,
		ErrUnauthorized:        http.StatusUnauthorized,
		ErrNotFound:            http.StatusNotFound,
		ErrInternalServerError: http.StatusInternalServerError,
	}
}

// HTTPErrorHandler turns handler errors into the {"error":{...}} response.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       log.With(logger, "component", "HTTPErrorHandler"),
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	if status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// codeForStatus picks an APIError code for an echo.HTTPError that carries no APIError.
func codeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound, status == http.StatusMethodNotAllowed:
		return ErrNotFound
	case status >= 400 && status < 500:
		return ErrBadParameter
	default:
		return ErrInternalServerError
	}
}

// Handler handles errors returned by echo handlers and middleware.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apiErr := ToAPIError(err)
	statusCode := 0
	var he *echo.HTTPError
	if errors.As(err, &he) && apiErr == nil {
		code := codeForStatus(he.Code)
		var requestError *openapi3filter.RequestError
		if errors.As(he.Internal, &requestError) {
			code = ErrBadParameter
		}
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		apiErr = NewAPIError(code, msg, err)
		statusCode = he.Code
	}
	if apiErr == nil {
		apiErr = NewAPIError(ErrInternalServerError, "an internal server error has occurred", err)
	}
	if statusCode == 0 {
		statusCode = h.getStatusCode(apiErr.Code)
	}

	lvl := level.Info
	if statusCode >= http.StatusInternalServerError {
		lvl = level.Error
	}
	lvl(h.logger).Log(
		"msg", "HTTP request error",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"status", statusCode,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"err", err,
	)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(statusCode)
		return
	}
	_ = c.JSON(statusCode, ErrResponse{Error: apiErr})
}

// ErrResponse from server.
type ErrResponse struct {
	Error *APIError `json:"error,omitempty"`
}
