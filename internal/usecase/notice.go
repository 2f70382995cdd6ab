package usecase

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type NoticeKind string

const (
	NoticeError NoticeKind = "error"
	NoticeInfo  NoticeKind = "info"
)

// ユーザー向けの一時的な通知
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	At      time.Time  `json:"at"`
}

type Notifier interface {
	Notify(kind NoticeKind, message string)
}

// NoticeBoard は直近の通知を上限件数まで保持する。
type NoticeBoard struct {
	mu       sync.Mutex
	capacity int
	items    []Notice
	logger   *zap.Logger
	now      func() time.Time
}

func NewNoticeBoard(capacity int, logger *zap.Logger) *NoticeBoard {
	if capacity <= 0 {
		capacity = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeBoard{
		capacity: capacity,
		logger:   logger,
		now:      time.Now,
	}
}

func (b *NoticeBoard) Notify(kind NoticeKind, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(b.items, Notice{Kind: kind, Message: message, At: b.now()})
	//古いものから捨てる
	if over := len(b.items) - b.capacity; over > 0 {
		b.items = append([]Notice(nil), b.items[over:]...)
	}

	b.logger.Debug("notice", zap.String("kind", string(kind)), zap.String("message", message))
}

// Drain は保持中の通知を返して空にする。
func (b *NoticeBoard) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.items
	b.items = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}
