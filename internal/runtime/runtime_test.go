package runtime

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sathvik70004-cmyk/mindfulmate/internal/errors"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/output"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()

	opts := DefaultOptions()
	opts.InMemory = true
	ctx, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

func TestNewContext(t *testing.T) {
	ctx := newTestContext(t)

	assert.NotNil(t, ctx.DB)
	assert.NotNil(t, ctx.GoalRepo)
	assert.NotNil(t, ctx.MoodRepo)
	assert.NotNil(t, ctx.SettingsRepo)
	assert.NotNil(t, ctx.HistoryRepo)
	assert.NotNil(t, ctx.Formatter)
}

func TestMemoryDatabaseOverride(t *testing.T) {
	t.Setenv("MINDFULMATE_DATABASE", ":memory:")

	opts := DefaultOptions()
	ctx, err := New(opts)
	require.NoError(t, err)
	defer ctx.Close()

	assert.Empty(t, ctx.DB.Path())
}

func TestFormatModes(t *testing.T) {
	ctx := newTestContext(t)

	assert.True(t, ctx.IsCLI())
	assert.False(t, ctx.IsJSON())

	ctx.Formatter.Format = output.FormatJSON
	assert.True(t, ctx.IsJSON())
	assert.False(t, ctx.IsCLI())
}

func TestFormatErrorIncludesSuggestion(t *testing.T) {
	msg := FormatError(apperrors.ErrGoalNotFound)
	assert.Contains(t, msg, apperrors.ErrGoalNotFound.Error())
	assert.Contains(t, msg, apperrors.GetSuggestion(apperrors.ErrGoalNotFound))
}

func TestIsDiskFullError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"enospc", syscall.ENOSPC, true},
		{"sentinel", ErrDiskFull, true},
		{"wrapped_sentinel", fmt.Errorf("save: %w", ErrDiskFull), true},
		{"message_pattern", errors.New("write failed: no space left on device"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDiskFullError(tt.err))
		})
	}
}

func TestWrapDiskFullError(t *testing.T) {
	wrapped := WrapDiskFullError(syscall.ENOSPC, "write", "/tmp/db")
	assert.True(t, IsDiskFullError(wrapped))
	assert.Contains(t, wrapped.Error(), "/tmp/db")

	plain := errors.New("some other failure")
	assert.Equal(t, plain, WrapDiskFullError(plain, "write", ""))

	assert.NoError(t, WrapDiskFullError(nil, "write", ""))
}
