package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// filteredKey đánh dấu entry đã bị FilterHook loại
const filteredKey = "_filtered"

// channelHook gắn tên kênh vào mọi entry
type channelHook struct {
	channel string
}

func (h channelHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h channelHook) Fire(entry *logrus.Entry) error {
	entry.Data["channel"] = h.channel
	return nil
}

// AsyncHook ghi log bất đồng bộ ra nhiều writer trong một goroutine riêng.
// Khi hàng đợi đầy, entry mới bị bỏ để không chặn request.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

// NewAsyncHook tạo hook với bufferSize entry chờ ghi (mặc định 1000)
func NewAsyncHook(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	h := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *AsyncHook) Levels() []logrus.Level { return logrus.AllLevels }

// Fire không block: sau khi Close thì ghi trực tiếp
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	if isFiltered(entry) {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.write(entry)
		return nil
	}

	select {
	case h.entries <- snapshot(entry):
	default:
		h.dropped.Add(1)
	}
	return nil
}

func (h *AsyncHook) run() {
	defer h.wg.Done()
	for entry := range h.entries {
		h.safeWrite(entry)
	}
}

func (h *AsyncHook) safeWrite(entry *logrus.Entry) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER PANIC] %v\n", r)
		}
	}()
	h.write(entry)
}

func (h *AsyncHook) write(entry *logrus.Entry) {
	data, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return
	}
	for _, w := range h.writers {
		_, _ = w.Write(data)
	}
}

// Dropped trả về số entry bị bỏ do hàng đợi đầy
func (h *AsyncHook) Dropped() uint64 {
	return h.dropped.Load()
}

// Close đóng hàng đợi và chờ ghi hết các entry còn lại
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	for _, w := range h.writers {
		if c, ok := w.(io.Closer); ok && w != os.Stdout {
			_ = c.Close()
		}
	}
	return nil
}

func isFiltered(entry *logrus.Entry) bool {
	v, ok := entry.Data[filteredKey].(bool)
	return ok && v
}

// snapshot copy entry (Dup không giữ level, message, caller)
func snapshot(entry *logrus.Entry) *logrus.Entry {
	c := entry.Dup()
	c.Level = entry.Level
	c.Message = entry.Message
	c.Caller = entry.Caller
	return c
}
