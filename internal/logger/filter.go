package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FilterHook loại các entry không khớp bộ lọc module, collection hoặc level.
// Entry không mang field tương ứng thì không bị lọc theo field đó.
type FilterHook struct {
	mu          sync.RWMutex
	modules     map[string]bool
	collections map[string]bool
	levels      map[string]bool
}

// NewFilterHook tạo filter hook từ cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	h := &FilterHook{}
	h.UpdateFilters(cfg)
	return h
}

// UpdateFilters thay bộ lọc lúc runtime
func (h *FilterHook) UpdateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.modules = parseFilter(cfg.FilterModules)
	h.collections = parseFilter(cfg.FilterCollections)
	h.levels = parseFilter(cfg.FilterLevels)
}

// parseFilter trả về nil khi cho phép tất cả ("" hoặc "*")
func parseFilter(s string) map[string]bool {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return nil
	}
	out := make(map[string]bool)
	for _, v := range strings.Split(s, ",") {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out[v] = true
		}
	}
	if out["*"] || len(out) == 0 {
		return nil
	}
	return out
}

func (h *FilterHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.allows(entry) {
		entry.Data[filteredKey] = true
	}
	return nil
}

func (h *FilterHook) allows(entry *logrus.Entry) bool {
	if h.levels != nil && !h.levels[entry.Level.String()] {
		return false
	}
	if !matchField(h.modules, entry, "module") {
		return false
	}
	return matchField(h.collections, entry, "collection")
}

func matchField(allowed map[string]bool, entry *logrus.Entry, key string) bool {
	if allowed == nil {
		return true
	}
	v, ok := entry.Data[key].(string)
	if !ok || v == "" {
		return true
	}
	return allowed[strings.ToLower(v)]
}
