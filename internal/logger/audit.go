package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// LogAction ghi một hành động làm thay đổi dữ liệu vào audit log
func LogAction(action string, c fiber.Ctx, details map[string]any) {
	fields := logrus.Fields{
		"action":     action,
		"ip":         c.IP(),
		"user_agent": c.Get("User-Agent"),
	}
	if rid := RequestID(c); rid != "" {
		fields["request_id"] = rid
	}
	if len(details) > 0 {
		fields["details"] = details
	}
	GetAuditLogger().WithFields(fields).Info("Audit log")
}

// LogCRUD ghi các thao tác tạo/sửa/xóa tài nguyên
func LogCRUD(operation, resourceType, resourceID string, c fiber.Ctx, details map[string]any) {
	if details == nil {
		details = make(map[string]any)
	}
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID
	LogAction(resourceType+"_"+operation, c, details)
}
