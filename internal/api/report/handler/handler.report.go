// Package reporthdl chứa HTTP handler cho các báo cáo bán hàng và hiệu suất agent.
package reporthdl

import (
	"github.com/gofiber/fiber/v3"
	basehdl "github.com/nadiag01/apre/internal/api/base/handler"
	reportdto "github.com/nadiag01/apre/internal/api/report/dto"
	reportsvc "github.com/nadiag01/apre/internal/api/report/service"
	"github.com/nadiag01/apre/internal/common"
	"github.com/nadiag01/apre/internal/logger"
)

// ReportHandler chuyển request HTTP thành ReportRequest cho dispatcher
type ReportHandler struct {
	dispatcher *reportsvc.Dispatcher
}

// NewReportHandler tạo handler từ dispatcher đã cấu hình
func NewReportHandler(d *reportsvc.Dispatcher) *ReportHandler {
	return &ReportHandler{dispatcher: d}
}

// HandleDistinctRegions xử lý GET /reports/sales/regions
func (h *ReportHandler) HandleDistinctRegions(c fiber.Ctx) error {
	return h.serve(c, reportsvc.DistinctRegions, nil)
}

// HandleSalesByRegion xử lý GET /reports/sales/regions/:region
func (h *ReportHandler) HandleSalesByRegion(c fiber.Ctx) error {
	return h.serve(c, reportsvc.SalesByRegion, map[string]string{
		reportsvc.ParamRegion: c.Params("region"),
	})
}

// HandleDistinctCategories xử lý GET /reports/sales/categories
func (h *ReportHandler) HandleDistinctCategories(c fiber.Ctx) error {
	return h.serve(c, reportsvc.DistinctCategories, nil)
}

// HandleSalesByCategory xử lý GET /reports/sales/categories/:category
func (h *ReportHandler) HandleSalesByCategory(c fiber.Ctx) error {
	return h.serve(c, reportsvc.SalesByCategory, map[string]string{
		reportsvc.ParamCategory: c.Params("category"),
	})
}

// HandleSalesDataSelectors xử lý GET /reports/sales/sales-data: danh mục selector, không truy vấn store
func (h *ReportHandler) HandleSalesDataSelectors(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		return basehdl.HandleResponse(c, common.StatusOK, reportdto.SelectorList{Selectors: h.dispatcher.Selectors()}, nil)
	})
}

// HandleSalesData xử lý GET /reports/sales/sales-data/:selector
func (h *ReportHandler) HandleSalesData(c fiber.Ctx) error {
	return h.serve(c, reportsvc.SalesData, map[string]string{
		reportsvc.ParamSelector: c.Params("selector"),
	})
}

// HandleCallDurationByDateRange xử lý
// GET /reports/agent-performance/call-duration-by-date-range?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *ReportHandler) HandleCallDurationByDateRange(c fiber.Ctx) error {
	var q reportdto.DateRangeQuery
	if err := c.Bind().Query(&q); err != nil {
		return basehdl.HandleResponse(c, common.StatusBadRequest, nil, common.ErrInvalidFormat)
	}
	params := map[string]string{}
	if q.StartDate != "" {
		params[reportsvc.ParamStartDate] = q.StartDate
	}
	if q.EndDate != "" {
		params[reportsvc.ParamEndDate] = q.EndDate
	}
	return h.serve(c, reportsvc.CallDurationByDateRange, params)
}

// serve chạy dispatcher và trả envelope; báo cáo distinct trả về mảng chuỗi
func (h *ReportHandler) serve(c fiber.Ctx, kind reportsvc.ReportKind, params map[string]string) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		ctx := logger.ContextWithRequestID(c.Context(), logger.RequestID(c))
		rows, err := h.dispatcher.Handle(ctx, reportsvc.ReportRequest{Kind: kind, Params: params})
		if err != nil {
			return err
		}
		if kind.IsDistinct() {
			return basehdl.HandleResponse(c, common.StatusOK, reportsvc.DistinctValues(kind, rows), nil)
		}
		return basehdl.HandleResponse(c, common.StatusOK, rows, nil)
	})
}
