// Package router đăng ký các route báo cáo.
package router

import (
	"github.com/gofiber/fiber/v3"
	reporthdl "github.com/nadiag01/apre/internal/api/report/handler"
	apirouter "github.com/nadiag01/apre/internal/api/router"
)

// Register đăng ký các route báo cáo lên v1 (chỉ đọc)
func Register(v1 fiber.Router, h *reporthdl.ReportHandler) {
	apirouter.RegisterRoutes(v1, "/reports/sales", []apirouter.Route{
		{Method: fiber.MethodGet, Path: "/regions", Handler: h.HandleDistinctRegions},
		{Method: fiber.MethodGet, Path: "/regions/:region", Handler: h.HandleSalesByRegion},
		{Method: fiber.MethodGet, Path: "/categories", Handler: h.HandleDistinctCategories},
		{Method: fiber.MethodGet, Path: "/categories/:category", Handler: h.HandleSalesByCategory},
		{Method: fiber.MethodGet, Path: "/sales-data", Handler: h.HandleSalesDataSelectors},
		{Method: fiber.MethodGet, Path: "/sales-data/:selector", Handler: h.HandleSalesData},
	})
	apirouter.RegisterRoutes(v1, "/reports/agent-performance", []apirouter.Route{
		{Method: fiber.MethodGet, Path: "/call-duration-by-date-range", Handler: h.HandleCallDurationByDateRange},
	})
}
