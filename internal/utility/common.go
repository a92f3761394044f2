package utility

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/nadiag01/apre/internal/logger"
)

// GoProtect chạy f và bắt panic, ghi log thay vì làm dừng chương trình
func GoProtect(f func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().WithField("stack", string(debug.Stack())).
				Error(fmt.Sprintf("Đã bắt lỗi panic: %v", r))
		}
	}()
	f()
}

// CurrentTimeInMilli trả về timestamp hiện tại (mili giây)
func CurrentTimeInMilli() int64 {
	return time.Now().UnixMilli()
}
