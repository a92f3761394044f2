// Package basehdl chứa các helper dùng chung cho HTTP handler: response envelope, bắt panic, parse body.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/nadiag01/apre/internal/api/middleware"
	"github.com/nadiag01/apre/internal/common"
	"github.com/nadiag01/apre/internal/logger"
)

// JSONResponse trả về JSON với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	return middleware.JSONResponse(c, statusCode, data)
}

// SafeHandlerWrapper chạy fn, bắt panic và chuyển lỗi trả về thành body lỗi thống nhất
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("stack", string(debug.Stack())).
				Error(fmt.Sprintf("Panic trong handler: %v", r))
			err = middleware.HandleErrorResponse(c, common.NewError(
				common.ErrCodeInternalServer,
				common.MsgInternalError,
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	if err := fn(); err != nil {
		return middleware.HandleErrorResponse(c, err)
	}
	return nil
}

// HandleResponse trả envelope thành công với statusCode, hoặc body lỗi nếu err != nil
func HandleResponse(c fiber.Ctx, statusCode int, data interface{}, err error) error {
	if err != nil {
		return middleware.HandleErrorResponse(c, err)
	}
	return middleware.SuccessResponse(c, statusCode, data)
}

// ParseBody đọc JSON body vào T và validate theo tag `validate`
func ParseBody[T any](c fiber.Ctx, v *validator.Validate) (T, error) {
	var input T
	if err := c.Bind().JSON(&input); err != nil {
		return input, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, nil)
	}
	if v == nil {
		return input, nil
	}
	if err := v.Struct(input); err != nil {
		return input, validationError(err)
	}
	return input, nil
}

// validationError gom lỗi validator thành map field -> rule vi phạm
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.WrapError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, nil, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, fields)
}
