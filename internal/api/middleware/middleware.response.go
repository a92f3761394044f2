package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/nadiag01/apre/internal/common"
)

// JSONResponse trả về JSON với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SuccessResponse trả envelope thành công {code, message, data, status}
func SuccessResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	return JSONResponse(c, statusCode, fiber.Map{
		"code":    statusCode,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// ErrorBody dựng status và body lỗi thống nhất cho client.
// Lỗi gốc (cause) của *common.Error không bao giờ xuất hiện trong body.
func ErrorBody(err error) (int, fiber.Map) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		body := fiber.Map{
			"code":    customErr.Code.Code,
			"kind":    customErr.Code.SubCategory,
			"message": customErr.Message,
			"status":  "error",
		}
		if customErr.Details != nil {
			body["details"] = customErr.Details
		}
		return customErr.StatusCode, body
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiber.Map{
			"code":    errorCodeForStatus(fiberErr.Code),
			"message": fiberErr.Message,
			"status":  "error",
		}
	}

	return common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.MsgInternalError,
		"status":  "error",
	}
}

// HandleErrorResponse ghi body lỗi ra response
func HandleErrorResponse(c fiber.Ctx, err error) error {
	status, body := ErrorBody(err)
	return JSONResponse(c, status, body)
}

func errorCodeForStatus(status int) string {
	switch {
	case status == fiber.StatusTooManyRequests:
		return common.ErrCodeBusinessOperation.Code
	case status == fiber.StatusNotFound:
		return common.ErrCodeDatabaseQuery.Code
	case status >= 400 && status < 500:
		return common.ErrCodeValidationInput.Code
	}
	return common.ErrCodeInternalServer.Code
}
