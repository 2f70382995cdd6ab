package usecase

import (
	"context"
	"errors"
	"sync/atomic"
)

// 待つ側が結果を不要にした
var ErrTaskDiscarded = errors.New("task result discarded")

// Task はリモート呼び出し1回分。
// 呼び出し自体はキャンセルされず最後まで実行される（サーバー側では完了する）。
// 待つ側だけがWaitのctxやDiscardで結果を見捨てられる。
type Task[T any] struct {
	done      chan struct{}
	val       T
	err       error
	discarded atomic.Bool
}

func StartTask[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	detached := context.WithoutCancel(ctx)

	go func() {
		defer close(t.done)
		t.val, t.err = fn(detached)
	}()
	return t
}

// Wait は完了を待つ。ctxが先に終わればctx.Err()。
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	var zero T
	if t.discarded.Load() {
		return zero, ErrTaskDiscarded
	}

	select {
	case <-t.done:
		if t.discarded.Load() {
			return zero, ErrTaskDiscarded
		}
		return t.val, t.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Discard は結果に関心が無くなったことを示す（画面を離れたなど）。
func (t *Task[T]) Discard() {
	t.discarded.Store(true)
}

func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}
