// Package userhdl chứa HTTP handler cho domain User.
package userhdl

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	basehdl "github.com/nadiag01/apre/internal/api/base/handler"
	userdto "github.com/nadiag01/apre/internal/api/user/dto"
	usersvc "github.com/nadiag01/apre/internal/api/user/service"
	"github.com/nadiag01/apre/internal/common"
	"github.com/nadiag01/apre/internal/logger"
	"github.com/nadiag01/apre/internal/utility"
)

const resourceUser = "user"

// UserHandler xử lý CRUD /users
type UserHandler struct {
	svc      *usersvc.UserService
	validate *validator.Validate
}

// NewUserHandler tạo handler
func NewUserHandler(svc *usersvc.UserService, v *validator.Validate) *UserHandler {
	return &UserHandler{svc: svc, validate: v}
}

// HandleList xử lý GET /users
func (h *UserHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		users, err := h.svc.List(c.Context())
		return basehdl.HandleResponse(c, common.StatusOK, users, err)
	})
}

// HandleGet xử lý GET /users/:id
func (h *UserHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := utility.ParseObjectID(c.Params("id"))
		if err != nil {
			return err
		}
		user, err := h.svc.Get(c.Context(), id)
		return basehdl.HandleResponse(c, common.StatusOK, user, err)
	})
}

// HandleCreate xử lý POST /users
func (h *UserHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		in, err := basehdl.ParseBody[userdto.UserCreateInput](c, h.validate)
		if err != nil {
			return err
		}
		user, err := h.svc.Create(c.Context(), in)
		if err != nil {
			return err
		}
		logger.LogCRUD("create", resourceUser, user.ID.Hex(), c, map[string]any{"username": user.Username, "role": user.Role})
		return basehdl.HandleResponse(c, common.StatusCreated, userdto.UserIDResult{ID: user.ID.Hex()}, nil)
	})
}

// HandleUpdate xử lý PUT /users/:id
func (h *UserHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := utility.ParseObjectID(c.Params("id"))
		if err != nil {
			return err
		}
		in, err := basehdl.ParseBody[userdto.UserUpdateInput](c, h.validate)
		if err != nil {
			return err
		}
		user, err := h.svc.Update(c.Context(), id, in)
		if err != nil {
			return err
		}
		logger.LogCRUD("update", resourceUser, id.Hex(), c, map[string]any{"password_changed": in.Password != ""})
		return basehdl.HandleResponse(c, common.StatusOK, user, nil)
	})
}

// HandleDelete xử lý DELETE /users/:id
func (h *UserHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := utility.ParseObjectID(c.Params("id"))
		if err != nil {
			return err
		}
		if err := h.svc.Delete(c.Context(), id); err != nil {
			return err
		}
		logger.LogCRUD("delete", resourceUser, id.Hex(), c, nil)
		return basehdl.HandleResponse(c, common.StatusOK, userdto.UserIDResult{ID: id.Hex()}, nil)
	})
}
