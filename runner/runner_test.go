package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRun(Te *testing.T) {
	var out bytes.Buffer
	c := &Command{Path: "sh", Args: []string{"-c", "echo hello"}, Stdout: &out}
	require.NoError(Te, c.Run(context.Background()))
	assert.Equal(Te, "hello\n", out.String())

	bad := &Command{Path: "sh", Args: []string{"-c", "echo oops >&2; exit 3"}}
	err := bad.Run(context.Background())
	assert.ErrorIs(Te, err, ErrNotRunning)
	assert.Contains(Te, err.Error(), "oops")

	missing := &Command{Path: "surely-not-a-real-program-name"}
	assert.ErrorIs(Te, missing.Run(context.Background()), ErrNotRunning)
}

func TestCommandTimeout(Te *testing.T) {
	c := &Command{Path: "sleep", Args: []string{"5"}, Timeout: 50 * time.Millisecond}
	start := time.Now()
	err := c.Run(context.Background())
	assert.ErrorIs(Te, err, ErrNotRunning)
	assert.Less(Te, time.Since(start), 4*time.Second)
}

func TestRetry(Te *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(Te, err)
	assert.Equal(Te, 3, calls)

	calls = 0
	sentinel := errors.New("bad input")
	err = Retry(context.Background(), 5, time.Millisecond, func(context.Context) error {
		calls++
		return Permanent(sentinel)
	})
	assert.ErrorIs(Te, err, sentinel)
	assert.Equal(Te, 1, calls)

	calls = 0
	err = Retry(context.Background(), 2, time.Millisecond, func(context.Context) error {
		calls++
		return errors.New("always")
	})
	assert.EqualError(Te, err, "always")
	assert.Equal(Te, 2, calls)
}

func TestRetryCancelled(Te *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Hour, func(context.Context) error { return errors.New("nope") })
	assert.ErrorIs(Te, err, context.Canceled)
}

func TestRetryWarnings(Te *testing.T) {
	var warnings []string
	ctx := WithWarnf(context.Background(), func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})
	err := Retry(ctx, 3, time.Millisecond, func(context.Context) error { return errors.New("flaky") })
	assert.EqualError(Te, err, "flaky")
	assert.Equal(Te, []string{"attempt 1/3 failed: flaky", "attempt 2/3 failed: flaky"}, warnings)
}
