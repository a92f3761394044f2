package logger

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer cho phép goroutine ghi log và test đọc cùng lúc
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(cfg *LogConfig, out io.Writer) (*logrus.Logger, *AsyncHook) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.DebugLevel)
	l.AddHook(channelHook{channel: ChannelApp})
	l.AddHook(NewFilterHook(cfg))
	h := NewAsyncHook([]io.Writer{out}, 10)
	l.AddHook(h)
	return l, h
}

func TestAsyncHook_WritesAfterClose(t *testing.T) {
	out := &syncBuffer{}
	l, h := newTestLogger(&LogConfig{}, out)

	l.WithField("module", "report").Info("first")
	require.NoError(t, h.Close())
	l.Info("second")

	s := out.String()
	assert.Contains(t, s, "first")
	assert.Contains(t, s, "second")
	assert.Contains(t, s, "channel=app")
}

func TestFilterHook_DropsUnmatchedModule(t *testing.T) {
	out := &syncBuffer{}
	l, h := newTestLogger(&LogConfig{FilterModules: "report"}, out)

	l.WithField("module", "user").Info("user-line")
	l.WithField("module", "Report").Info("report-line")
	l.Info("no-module-line")
	require.NoError(t, h.Close())

	s := out.String()
	assert.NotContains(t, s, "user-line")
	assert.Contains(t, s, "report-line")
	assert.Contains(t, s, "no-module-line")
}

func TestFilterHook_Levels(t *testing.T) {
	out := &syncBuffer{}
	l, h := newTestLogger(&LogConfig{FilterLevels: "error,warning"}, out)

	l.Info("info-line")
	l.Warn("warn-line")
	l.Error("error-line")
	require.NoError(t, h.Close())

	s := out.String()
	assert.NotContains(t, s, "info-line")
	assert.Contains(t, s, "warn-line")
	assert.Contains(t, s, "error-line")
}

func TestParseFilter(t *testing.T) {
	assert.Nil(t, parseFilter(""))
	assert.Nil(t, parseFilter(" * "))
	assert.Nil(t, parseFilter("a,*"))
	assert.Equal(t, map[string]bool{"a": true, "b": true}, parseFilter("A, b ,"))
}
