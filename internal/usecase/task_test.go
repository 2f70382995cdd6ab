package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_WaitReturnsResult(t *testing.T) {
	task := StartTask(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	v, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestTask_WaitReturnsError(t *testing.T) {
	boom := errors.New("boom")
	task := StartTask(context.Background(), func(ctx context.Context) (int, error) {
		return 0, boom
	})

	_, err := task.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

// Test: 呼び出し元がキャンセルしても処理は最後まで走る
func TestTask_RunsToCompletionAfterCallerCancels(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan error, 1)

	ctx, cancel := context.WithCancel(context.Background())
	task := StartTask(ctx, func(ctx context.Context) (string, error) {
		<-release
		finished <- ctx.Err()
		return "done", nil
	})

	cancel()
	_, err := task.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	select {
	case innerErr := <-finished:
		// 切り離したctxはキャンセルされない
		assert.NoError(t, innerErr)
	case <-time.After(time.Second):
		t.Fatal("task did not finish")
	}
	<-task.Done()
}

func TestTask_Discard(t *testing.T) {
	task := StartTask(context.Background(), func(ctx context.Context) (int, error) {
		return 1, nil
	})
	<-task.Done()

	task.Discard()
	_, err := task.Wait(context.Background())
	assert.ErrorIs(t, err, ErrTaskDiscarded)
}
