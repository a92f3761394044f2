// Package router đăng ký các route thuộc domain User.
package router

import (
	"github.com/gofiber/fiber/v3"
	userhdl "github.com/nadiag01/apre/internal/api/user/handler"
	apirouter "github.com/nadiag01/apre/internal/api/router"
)

// Register đăng ký CRUD /users lên v1
func Register(v1 fiber.Router, h *userhdl.UserHandler) {
	apirouter.RegisterRoutes(v1, "/users", []apirouter.Route{
		{Method: fiber.MethodGet, Path: "", Handler: h.HandleList},
		{Method: fiber.MethodGet, Path: "/:id", Handler: h.HandleGet},
		{Method: fiber.MethodPost, Path: "", Handler: h.HandleCreate},
		{Method: fiber.MethodPut, Path: "/:id", Handler: h.HandleUpdate},
		{Method: fiber.MethodDelete, Path: "/:id", Handler: h.HandleDelete},
	})
}
