package memory

import (
	"context"
	"sync"
	"time"

	"github.com/namomi/Account/internal/app/account/domain"
	"github.com/namomi/Account/internal/app/account/usecase"
)

// keyLock 單一帳號的鎖，以容量 1 的 channel 實作
// refs 記錄等待者數量，歸零時從 Map 移除避免鎖物件無限累積
type keyLock struct {
	ch   chan struct{}
	refs int
}

// LockManager 單機版的帳號互斥鎖
//
// 語意對齊分散式鎖：同一帳號同一時間只有一個持有者，等待超過
// waitTime 取不到鎖時回傳 domain.ErrAccountTransactionLock。
// 僅適用於單一 process 的部署（本機模式、測試）。
type LockManager struct {
	mu       sync.Mutex
	locks    map[string]*keyLock
	waitTime time.Duration
}

func NewLockManager(waitTime time.Duration) *LockManager {
	return &LockManager{
		locks:    make(map[string]*keyLock),
		waitTime: waitTime,
	}
}

// WithLock 取得帳號鎖後執行 fn，結束時保證釋放
func (m *LockManager) WithLock(ctx context.Context, accountNumber string, fn func(ctx context.Context) error) error {
	lock := m.acquireRef(accountNumber)
	defer m.releaseRef(accountNumber)

	timer := time.NewTimer(m.waitTime)
	defer timer.Stop()

	select {
	case lock.ch <- struct{}{}:
	case <-timer.C:
		return domain.ErrAccountTransactionLock
	case <-ctx.Done():
		return domain.ErrAccountTransactionLock
	}

	defer func() { <-lock.ch }()
	return fn(ctx)
}

func (m *LockManager) acquireRef(key string) *keyLock {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[key]
	if !ok {
		lock = &keyLock{ch: make(chan struct{}, 1)}
		m.locks[key] = lock
	}
	lock.refs++
	return lock
}

func (m *LockManager) releaseRef(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[key]
	if !ok {
		return
	}
	lock.refs--
	if lock.refs <= 0 {
		delete(m.locks, key)
	}
}

var _ usecase.LockManager = (*LockManager)(nil)
