package handler

import (
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/smart-insights/errors"
	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/smart-insights/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID reads X-Request-ID from the request, falling back to the id set by the middleware
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusOK, data)
}

func handleSuccessStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    status,
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps domain and use case errors onto API errors
func toAppError(err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var formatErr *entities.FormatError
	if stdErrors.As(err, &formatErr) {
		return errors.ErrInvalidFormat(formatErr.Required, formatErr.Found)
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	var persistErr *entities.PersistenceError
	if stdErrors.As(err, &persistErr) {
		return errors.ErrDBTransactionFailed(persistErr)
	}

	switch {
	case stdErrors.Is(err, entities.ErrInvoiceNotFound):
		return errors.ErrNotFound("Invoice")
	case stdErrors.Is(err, entities.ErrInsightNotFound):
		return errors.ErrNotFound("Insights")
	case stdErrors.Is(err, usecaseErrors.ErrUnreadableFile):
		return errors.ErrFileUnreadable(err)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput),
		stdErrors.Is(err, usecaseErrors.ErrEmptyUpload),
		stdErrors.Is(err, usecaseErrors.ErrInvalidTranscript),
		stdErrors.Is(err, usecaseErrors.ErrInvalidDate),
		stdErrors.Is(err, usecaseErrors.ErrInvalidAmount),
		stdErrors.Is(err, usecaseErrors.ErrInvalidWindow),
		stdErrors.Is(err, usecaseErrors.ErrEmptySearch):
		return errors.ErrInvalidArgument(err.Error())
	}

	return errors.ErrInternal(err)
}

// fromHTTPError maps errors raised by echo itself, such as routing misses and body limits
func fromHTTPError(httpErr *echo.HTTPError) error {
	switch {
	case httpErr.Code == http.StatusRequestEntityTooLarge:
		return errors.ErrPayloadTooLarge(httpErr)
	case httpErr.Code == http.StatusNotFound:
		return errors.ErrNotFound("Route")
	case httpErr.Code >= http.StatusInternalServerError:
		return errors.ErrInternal(httpErr)
	}
	return errors.AppError{
		HTTPCode: httpErr.Code,
		Code:     errors.ErrorCode_INVALID_ARGUMENT,
		Message:  fmt.Sprint(httpErr.Message),
	}
}

// HTTPErrorHandler renders errors that never reached a handler in the standard envelope
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if werr := HandleError(logger, c, toAppError(err)); werr != nil && logger != nil {
			logger.Error("http.response.write_failed", zap.Error(werr))
		}
	}
}

// parseIDParam reads a positive numeric path parameter
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.ErrInvalidArgument("invalid " + name)
	}
	return uint(id), nil
}

// readUpload loads the multipart file field into memory
func readUpload(c echo.Context, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var httpErr *echo.HTTPError
		if stdErrors.As(err, &httpErr) {
			return "", nil, fromHTTPError(httpErr)
		}
		return "", nil, errors.ErrInvalidArgument("file is required")
	}

	src, err := fh.Open()
	if err != nil {
		return "", nil, errors.ErrFileUnreadable(err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", nil, errors.ErrFileUnreadable(err)
	}
	return fh.Filename, data, nil
}
