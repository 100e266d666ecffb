package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWritesDailyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	l, err := New(dir, "debug", false)
	require.NoError(t, err)
	l.Infow("hello", "k", "v")
	_ = l.Sync()

	b, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"k":"v"`)
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core).Sugar().With("request_id", "abc")

	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Infow("scoped")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "scoped", entry.Message)
	assert.Equal(t, "abc", entry.ContextMap()["request_id"])

	assert.Same(t, zap.S(), FromContext(context.Background()))
}
