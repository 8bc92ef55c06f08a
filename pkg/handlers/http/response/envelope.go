package response

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorCode is the closed taxonomy of API error codes. Every code maps to
// exactly one HTTP status; anything outside the map falls back to 500.
type ErrorCode string

const (
	CodeUnauthorized         ErrorCode = "unauthorized"
	CodeForbidden            ErrorCode = "forbidden"
	CodeValidation           ErrorCode = "validation_error"
	CodeNotFound             ErrorCode = "not_found"
	CodeConflict             ErrorCode = "conflict"
	CodeRateLimited          ErrorCode = "rate_limited"
	CodeCsrfMissing          ErrorCode = "csrf_token_missing"
	CodeCsrfInvalid          ErrorCode = "csrf_validation_failed"
	CodeVersionUnsupported   ErrorCode = "version_unsupported"
	CodeVersionUnimplemented ErrorCode = "version_unimplemented"
	CodeDatabase             ErrorCode = "database_error"
	CodeInternal             ErrorCode = "internal_error"
	CodeExternalService      ErrorCode = "external_service_error"
)

var statusByCode = map[ErrorCode]int{
	CodeUnauthorized:         fiber.StatusUnauthorized,
	CodeForbidden:            fiber.StatusForbidden,
	CodeValidation:           fiber.StatusBadRequest,
	CodeNotFound:             fiber.StatusNotFound,
	CodeConflict:             fiber.StatusConflict,
	CodeRateLimited:          fiber.StatusTooManyRequests,
	CodeCsrfMissing:          fiber.StatusForbidden,
	CodeCsrfInvalid:          fiber.StatusForbidden,
	CodeVersionUnsupported:   fiber.StatusBadRequest,
	CodeVersionUnimplemented: fiber.StatusNotImplemented,
	CodeDatabase:             fiber.StatusInternalServerError,
	CodeInternal:             fiber.StatusInternalServerError,
	CodeExternalService:      fiber.StatusServiceUnavailable,
}

// StatusFor maps a code to its HTTP status, defaulting to 500 for codes
// outside the taxonomy.
func StatusFor(code ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

type SuccessBody struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type ErrorBody struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Field   string      `json:"field,omitempty"`
}

const genericServerMessage = "an internal error occurred"

// maskedCodes are the codes whose messages carry raw internals (driver
// errors, upstream failures). Other 5xx codes, like version_unimplemented,
// deliberately describe the rejection to the client and pass through.
var maskedCodes = map[ErrorCode]bool{
	CodeDatabase:        true,
	CodeInternal:        true,
	CodeExternalService: true,
}

// Writer renders the uniform envelope. Server-fault errors are logged at
// error level with full context, client-fault at warning level; outside
// development the raw message of a server-fault error is replaced with a
// generic one so internals never leak.
type Writer struct {
	logger     *logrus.Logger
	production bool
}

func NewWriter(logger *logrus.Logger, production bool) *Writer {
	return &Writer{logger: logger, production: production}
}

func (w *Writer) OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(SuccessBody{Success: true, Data: data})
}

func (w *Writer) Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessBody{Success: true, Data: data})
}

func (w *Writer) OKWithMeta(c *fiber.Ctx, data, meta interface{}) error {
	return c.Status(fiber.StatusOK).JSON(SuccessBody{Success: true, Data: data, Meta: meta})
}

func (w *Writer) OKMessage(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusOK).JSON(SuccessBody{Success: true, Data: data, Message: message})
}

// Error writes the error envelope for the code and message.
func (w *Writer) Error(c *fiber.Ctx, code ErrorCode, message string) error {
	return w.write(c, ErrorDetail{Code: code, Message: message})
}

// FieldError attaches the offending field to a validation failure.
func (w *Writer) FieldError(c *fiber.Ctx, code ErrorCode, message, field string) error {
	return w.write(c, ErrorDetail{Code: code, Message: message, Field: field})
}

// DetailedError carries data (e.g. the supported version list) alongside
// the message.
func (w *Writer) DetailedError(c *fiber.Ctx, code ErrorCode, message string, details interface{}) error {
	return w.write(c, ErrorDetail{Code: code, Message: message, Details: details})
}

func (w *Writer) write(c *fiber.Ctx, detail ErrorDetail) error {
	status := StatusFor(detail.Code)

	fields := logrus.Fields{
		"code":   detail.Code,
		"status": status,
		"path":   c.Path(),
		"method": c.Method(),
		"ip":     c.IP(),
	}
	if status >= fiber.StatusInternalServerError {
		w.logger.WithFields(fields).WithField("message", detail.Message).Error("request failed")
		if w.production && maskedCodes[detail.Code] {
			detail.Message = genericServerMessage
			detail.Details = nil
		}
	} else {
		w.logger.WithFields(fields).WithField("message", detail.Message).Warn("request rejected")
	}

	return c.Status(status).JSON(ErrorBody{Success: false, Error: detail})
}
