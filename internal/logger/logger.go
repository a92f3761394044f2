package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampFormat = "2006-01-02 15:04:05.000"

var (
	loggers   = make(map[string]*logrus.Logger)
	hooks     []*AsyncHook
	loggersMu sync.Mutex

	config *LogConfig
)

// Init khởi tạo hệ thống logging. Gọi lại Init sẽ đóng các logger cũ.
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()

	closeHooksLocked()
	loggers = make(map[string]*logrus.Logger)
	config = cfg

	if cfg.writesFile() {
		if err := os.MkdirAll(logDir(), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	return nil
}

// Close flush và đóng toàn bộ async hook, gọi khi tắt server
func Close() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	closeHooksLocked()
}

func closeHooksLocked() {
	for _, h := range hooks {
		_ = h.Close()
	}
	hooks = nil
}

// logDir trả về thư mục chứa file log; LOG_ROOT_DIR (nếu có) làm gốc cho đường dẫn tương đối
func logDir() string {
	if filepath.IsAbs(config.LogPath) {
		return config.LogPath
	}
	if root := os.Getenv("LOG_ROOT_DIR"); root != "" {
		return filepath.Join(root, config.LogPath)
	}
	return config.LogPath
}

// GetLogger trả về logger theo kênh (app, audit, performance, error)
func GetLogger(channel string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		config = DefaultConfig()
		if config.writesFile() {
			if err := os.MkdirAll(logDir(), 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "logger: không tạo được thư mục log: %v\n", err)
				config.Output = "stdout"
			}
		}
	}

	if l, ok := loggers[channel]; ok {
		return l
	}
	l := newLogger(channel)
	loggers[channel] = l
	return l
}

func newLogger(channel string) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(newFormatter(config.Format))
	l.SetReportCaller(true)

	var writers []io.Writer
	if config.writesFile() {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(logDir(), config.fileName(channel)),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.writesStdout() {
		writers = append(writers, os.Stdout)
	}

	// Thứ tự hook: gắn kênh, lọc, rồi mới đưa vào hàng đợi ghi
	l.AddHook(channelHook{channel: channel})
	l.AddHook(NewFilterHook(config))
	l.SetOutput(io.Discard)
	if len(writers) > 0 {
		h := NewAsyncHook(writers, config.BufferSize)
		hooks = append(hooks, h)
		l.AddHook(h)
	}

	return l
}

func newFormatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyFunc: "function",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			parts := strings.Split(f.Function, ".")
			return parts[len(parts)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	}
}

// GetAppLogger trả về logger chính của ứng dụng
func GetAppLogger() *logrus.Logger {
	return GetLogger(ChannelApp)
}

// GetAuditLogger trả về logger cho audit
func GetAuditLogger() *logrus.Logger {
	return GetLogger(ChannelAudit)
}

// GetPerformanceLogger trả về logger cho thời gian thực thi báo cáo
func GetPerformanceLogger() *logrus.Logger {
	return GetLogger(ChannelPerformance)
}

// GetErrorLogger trả về logger cho errors
func GetErrorLogger() *logrus.Logger {
	return GetLogger(ChannelError)
}
