package global

import (
	"github.com/go-playground/validator/v10"
	"github.com/nadiag01/apre/config"
	"github.com/nadiag01/apre/internal/registry"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Sales            string // Dữ liệu bán hàng
	AgentPerformance string // Dữ liệu cuộc gọi của agent
	Users            string // Người dùng
}

// Names trả về danh sách tên collection (bỏ tên rỗng)
func (n MongoDB_CollectionName) Names() []string {
	var out []string
	for _, name := range []string{n.Sales, n.AgentPerformance, n.Users} {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Các biến toàn cục, chỉ được gán trong cmd/server lúc khởi động
var Validate *validator.Validate                  // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                 // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration    // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName       // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
