package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env"
)

// Các kênh log của ứng dụng
const (
	ChannelApp         = "app"
	ChannelAudit       = "audit"
	ChannelPerformance = "performance"
	ChannelError       = "error"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"`                     // trace, debug, info, warn, error, fatal
	Format string `env:"LOG_FORMAT"`                    // json, text
	Output string `env:"LOG_OUTPUT" envDefault:"both"`  // file, stdout, both

	// Rotation (lumberjack)
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"` // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"` // ngày
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`

	LogPath    string `env:"LOG_PATH" envDefault:"./logs"`
	BufferSize int    `env:"LOG_BUFFER_SIZE" envDefault:"1000"` // số entry tối đa chờ ghi

	// Bộ lọc, phân cách bởi dấu phẩy, rỗng hoặc "*" = cho phép tất cả
	FilterModules     string `env:"LOG_FILTER_MODULES"`
	FilterCollections string `env:"LOG_FILTER_COLLECTIONS"`
	FilterLevels      string `env:"LOG_FILTER_LEVELS"`
}

// DefaultConfig đọc cấu hình từ biến môi trường, level/format mặc định theo GO_ENV
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		cfg = &LogConfig{Output: "both", MaxSize: 100, MaxBackups: 7, MaxAge: 7, Compress: true, LogPath: "./logs", BufferSize: 1000}
	}

	production := os.Getenv("GO_ENV") == "production"
	if cfg.Level == "" {
		cfg.Level = "debug"
		if production {
			cfg.Level = "info"
		}
	}
	if cfg.Format == "" {
		cfg.Format = "text"
		if production {
			cfg.Format = "json"
		}
	}

	cfg.Level = strings.ToLower(cfg.Level)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Output = strings.ToLower(cfg.Output)
	return cfg
}

// fileName trả về tên file log của một kênh
func (c *LogConfig) fileName(channel string) string {
	return channel + ".log"
}

func (c *LogConfig) writesFile() bool {
	return c.Output == "file" || c.Output == "both"
}

func (c *LogConfig) writesStdout() bool {
	return c.Output == "stdout" || c.Output == "both"
}
