package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/nadiag01/apre/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("sales", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("sales", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, ok := r.Get("sales")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, err = r.Register("", 3)
	assert.ErrorIs(t, err, common.ErrRequiredField)

	_, err = r.MustGet("users")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRegistry_GetOrCreateConcurrent(t *testing.T) {
	r := NewRegistry[string]()
	calls := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := r.GetOrCreate("k", func() (string, error) {
				calls++
				return "v", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "v", v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)

	_, err := r.GetOrCreate("bad", func() (string, error) { return "", errors.New("boom") })
	assert.Error(t, err)
	_, ok := r.Get("bad")
	assert.False(t, ok)
}

func TestRegistry_NamesAndClear(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("users", 1)
	_, _ = r.Register("agentPerformance", 2)
	_, _ = r.Register("sales", 3)
	assert.Equal(t, []string{"agentPerformance", "sales", "users"}, r.Names())

	sum := 0
	n, err := r.ClearAll(func(v int) error { sum += v; return nil })
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 6, sum)
	assert.Empty(t, r.Names())
}
