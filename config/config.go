package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Nó chứa thông tin cơ sở dữ liệu và các tham số của report engine
type Configuration struct {
	InitMode              bool   `env:"INITMODE" envDefault:"false"`              // Chế độ khởi tạo (seed dữ liệu mẫu)
	Address               string `env:"ADDRESS" envDefault:"8080"`                // Cổng server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`          // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                  // Tên cơ sở dữ liệu
	MongoDB_MaxPoolSize   int    `env:"MONGODB_MAX_POOL_SIZE" envDefault:"50"`    // Số connection tối đa trong pool
	MongoDB_MinPoolSize   int    `env:"MONGODB_MIN_POOL_SIZE" envDefault:"10"`    // Số connection tối thiểu giữ trong pool
	MongoDB_ColSales      string `env:"MONGODB_COL_SALES" envDefault:"sales"`     // Collection dữ liệu bán hàng
	MongoDB_ColAgentPerf  string `env:"MONGODB_COL_AGENT_PERFORMANCE" envDefault:"agentPerformance"`
	MongoDB_ColUsers      string `env:"MONGODB_COL_USERS" envDefault:"users"`     // Collection người dùng
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`              // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`          // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`        // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`     // Bật/tắt rate limiting
	// Report engine
	Report_QueryTimeout      int    `env:"REPORT_QUERY_TIMEOUT" envDefault:"10"`                              // Giới hạn thời gian một truy vấn báo cáo (giây)
	Report_Timezone          string `env:"REPORT_TIMEZONE" envDefault:"UTC"`                                  // Múi giờ cắt ngày cho báo cáo theo khoảng ngày
	Report_SalesDataSelector string `env:"REPORT_SALES_DATA_SELECTORS" envDefault:"online,retail,wholesale,partner"` // Danh sách selector hợp lệ, phân cách bởi dấu phẩy
	Report_SortDistinct      bool   `env:"REPORT_SORT_DISTINCT" envDefault:"true"`                            // Sắp xếp danh sách giá trị distinct
	// Users
	User_BcryptCost int `env:"USER_BCRYPT_COST" envDefault:"10"` // Cost cho bcrypt khi hash mật khẩu
	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// QueryTimeout trả về giới hạn thời gian truy vấn báo cáo
func (c *Configuration) QueryTimeout() time.Duration {
	if c.Report_QueryTimeout <= 0 {
		return 0
	}
	return time.Duration(c.Report_QueryTimeout) * time.Second
}

// SalesDataSelectors tách danh sách selector từ cấu hình
func (c *Configuration) SalesDataSelectors() []string {
	return SplitList(c.Report_SalesDataSelector)
}

// CORSOrigins tách danh sách origins, "*" giữ nguyên
func (c *Configuration) CORSOrigins() []string {
	if strings.TrimSpace(c.CORS_Origins) == "*" {
		return []string{"*"}
	}
	return SplitList(c.CORS_Origins)
}

// ReportLocation trả về *time.Location dùng để cắt ngày
func (c *Configuration) ReportLocation() (*time.Location, error) {
	if c.Report_Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Report_Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", c.Report_Timezone, err)
	}
	return loc, nil
}

// SplitList tách chuỗi phân cách bởi dấu phẩy, bỏ phần tử rỗng
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc dữ liệu cấu hình từ file env (nếu có) rồi từ biến môi trường.
// Có thể truyền đường dẫn file env cụ thể, khi đó bỏ qua việc tìm config/env.
// Trả về nil nếu parse thất bại.
func NewConfig(files ...string) *Configuration {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = []string{envPath}
		}
	}

	for _, f := range files {
		// File env là tùy chọn: khi chạy trong container, biến môi trường được set trực tiếp
		if err := godotenv.Load(f); err != nil {
			fmt.Printf("Không thể load file env tại %s: %v\n", f, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
