package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = NewValidator()
}

// NewValidator tạo validator mới với các custom rule của ứng dụng
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("no_xss", validateNoXSS)
	_ = v.RegisterValidation("objectid", validateObjectID)
	_ = v.RegisterValidation("user_role", validateUserRole)
	return v
}

// Các vai trò người dùng hợp lệ
var UserRoles = []string{"admin", "user"}

var xssPatterns = []string{
	"<script",
	"javascript:",
	"onerror=",
	"onload=",
	"onclick=",
	"eval(",
	"document.cookie",
	"<iframe",
	"<object",
	"<embed",
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	for _, pattern := range xssPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateObjectID kiểm tra chuỗi hex 24 ký tự của MongoDB ObjectID
func validateObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}

func validateUserRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	for _, r := range UserRoles {
		if r == role {
			return true
		}
	}
	return false
}
