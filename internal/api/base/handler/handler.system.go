package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/nadiag01/apre/internal/common"
)

// SystemHandler xử lý các route hệ thống (health)
type SystemHandler struct {
	ping    func(ctx context.Context) error
	timeout time.Duration
}

// NewSystemHandler tạo SystemHandler; ping có thể nil khi chưa có kết nối database
func NewSystemHandler(ping func(ctx context.Context) error) *SystemHandler {
	return &SystemHandler{ping: ping, timeout: 2 * time.Second}
}

// HandleHealth kiểm tra API và kết nối MongoDB
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	if h.ping == nil {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
		return JSONResponse(c, common.StatusOK, envelope(common.StatusOK, common.MsgSuccess, healthData, "success"))
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()
	if err := h.ping(ctx); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		return JSONResponse(c, common.StatusServiceUnavailable,
			envelope(common.StatusServiceUnavailable, "Hệ thống đang gặp sự cố", healthData, "error"))
	}
	services["database"] = "ok"
	return JSONResponse(c, common.StatusOK, envelope(common.StatusOK, common.MsgSuccess, healthData, "success"))
}

func envelope(code int, message string, data interface{}, status string) fiber.Map {
	return fiber.Map{"code": code, "message": message, "data": data, "status": status}
}
