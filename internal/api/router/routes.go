package router

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Lưu ý Fiber v3: middleware truyền trực tiếp vào router.Get(path, mw, handler) không được gọi.
// Middleware của một nhóm route phải gắn qua group.Use(), xem RegisterRoutes.

// RoutePrefix chứa các prefix của API
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

// NewRoutePrefix tạo prefix mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{Base: base, V1: base + "/v1"}
}

// Route mô tả một route trong nhóm
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
}

// RegisterRoutes đăng ký một nhóm route dưới prefix, middleware gắn qua Use() của group
func RegisterRoutes(router fiber.Router, prefix string, routes []Route, middlewares ...fiber.Handler) fiber.Router {
	group := router.Group(prefix)
	for _, mw := range middlewares {
		group.Use(mw)
	}
	for _, r := range routes {
		register(group, r.Method, r.Path, r.Handler)
	}
	return group
}

// RegisterRouteWithMiddleware đăng ký một route đơn lẻ kèm middleware riêng
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	RegisterRoutes(router, prefix, []Route{{Method: method, Path: path, Handler: handler}}, middlewares...)
}

func register(group fiber.Router, method, path string, handler fiber.Handler) {
	switch strings.ToUpper(method) {
	case fiber.MethodGet:
		group.Get(path, handler)
	case fiber.MethodPost:
		group.Post(path, handler)
	case fiber.MethodPut:
		group.Put(path, handler)
	case fiber.MethodPatch:
		group.Patch(path, handler)
	case fiber.MethodDelete:
		group.Delete(path, handler)
	}
}
