package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// ContextKey là type cho context keys
type ContextKey string

const (
	// RequestIDKey là key cho request ID trong context.Context và fiber Locals
	RequestIDKey ContextKey = "requestid"
	// ReportKindKey là key cho loại báo cáo đang xử lý
	ReportKindKey ContextKey = "reportKind"
)

// HeaderRequestID là header mang request ID
const HeaderRequestID = "X-Request-ID"

// ContextWithRequestID gắn request ID vào context để tầng service log cùng ID
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithContext trả về entry của app logger kèm các field lấy từ context
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)
	if rid, ok := ctx.Value(RequestIDKey).(string); ok && rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	if kind, ok := ctx.Value(ReportKindKey).(string); ok && kind != "" {
		entry = entry.WithField("report_kind", kind)
	}
	return entry
}

// RequestID lấy request ID của request hiện tại (Locals trước, rồi header)
func RequestID(c fiber.Ctx) string {
	if rid, ok := c.Locals(string(RequestIDKey)).(string); ok && rid != "" {
		return rid
	}
	if rid := c.Get(HeaderRequestID); rid != "" {
		return rid
	}
	return c.GetRespHeader(HeaderRequestID)
}

// WithRequest trả về logger entry với thông tin request từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := GetAppLogger().WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
	if rid := RequestID(c); rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	return entry
}

// WithModule trả về logger entry với module name
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// WithCollection trả về logger entry với module và collection
func WithCollection(module, collection string) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields{
		"module":     module,
		"collection": collection,
	})
}
