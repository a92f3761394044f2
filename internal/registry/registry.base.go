// Package registry cung cấp registry generic, thread-safe, dùng để giữ các
// đối tượng dùng chung trong suốt vòng đời process (collections, services).
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nadiag01/apre/internal/common"
)

// Registry lưu các item theo tên.
//
// Example:
//
//	cols := NewRegistry[*mongo.Collection]()
//	cols.Register("sales", db.Collection("sales"))
//	if col, ok := cols.Get("sales"); ok { ... }
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo registry rỗng
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Register đăng ký item, ghi đè nếu tên đã tồn tại.
// isNew = false khi ghi đè; lỗi khi name rỗng.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// MustGet giống Get nhưng trả lỗi ErrNotFound khi không có item
func (r *Registry[T]) MustGet(name string) (T, error) {
	item, ok := r.Get(name)
	if !ok {
		return item, fmt.Errorf("registry item %q: %w", name, common.ErrNotFound)
	}
	return item, nil
}

// GetOrCreate trả item có sẵn hoặc tạo mới bằng creator (creator chạy khi giữ lock)
func (r *Registry[T]) GetOrCreate(name string, creator func() (T, error)) (T, error) {
	if item, ok := r.Get(name); ok {
		return item, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[name]; ok {
		return item, nil
	}
	item, err := creator()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("create registry item %q: %w", name, err)
	}
	r.items[name] = item
	return item, nil
}

// Names trả về danh sách tên đã đăng ký, sắp xếp tăng dần
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClearAll xóa toàn bộ item, gọi cleanup cho từng item (nếu có).
// Trả về số item đã xóa và lỗi cleanup đầu tiên.
func (r *Registry[T]) ClearAll(cleanup func(T) error) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	count := len(r.items)
	for name, item := range r.items {
		if cleanup != nil {
			if err := cleanup(item); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("cleanup %q: %w", name, err)
			}
		}
	}
	r.items = make(map[string]T)
	return count, firstErr
}
