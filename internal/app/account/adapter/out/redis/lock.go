package redis

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"go.uber.org/zap"

	"github.com/namomi/Account/internal/app/account/domain"
	"github.com/namomi/Account/internal/app/account/usecase"
	pkgredis "github.com/namomi/Account/pkg/redis"
)

// 鎖的 key 前綴，完整 key 為 "ACLK:" + 帳號
const lockKeyPrefix = "ACLK:"

// LockConfig 定義帳戶鎖的時間參數
type LockConfig struct {
	// WaitTime: 等待取鎖的時間上限，超過即放棄
	WaitTime time.Duration `yaml:"waitTime"`
	// LeaseTime: 鎖的租約時間，持有者異常時鎖最晚在租約到期後自動釋放
	LeaseTime time.Duration `yaml:"leaseTime"`
	// RetryDelay: 重試取鎖的間隔
	RetryDelay time.Duration `yaml:"retryDelay"`
}

// DefaultLockConfig 回傳預設的鎖參數
func DefaultLockConfig() LockConfig {
	return LockConfig{
		WaitTime:   1 * time.Second,
		LeaseTime:  5 * time.Second,
		RetryDelay: 200 * time.Millisecond,
	}
}

// LockManager 以 Redis 實作的帳戶互斥鎖
//
// 同一個帳號同一時間只允許一個持有者，跨 process 也成立。
// 取鎖在 WaitTime 內重試，取不到即失敗；取到的鎖帶 LeaseTime 租約，
// 持有者崩潰時租約到期自動釋放，避免鎖被永久佔住。
type LockManager struct {
	rs     *redsync.Redsync
	cfg    LockConfig
	logger *zap.Logger
}

func NewLockManager(client *pkgredis.Client, cfg LockConfig, logger *zap.Logger) *LockManager {
	pool := goredis.NewPool(client.RDB())
	return &LockManager{
		rs:     redsync.New(pool),
		cfg:    cfg,
		logger: logger,
	}
}

// WithLock 取得帳號鎖後執行 fn，結束時保證釋放
//
// 在 WaitTime 內取不到鎖時回傳 domain.ErrAccountTransactionLock，
// fn 不會被執行。釋放失敗（例如租約已先到期）只記 log，不影響 fn 的結果。
func (m *LockManager) WithLock(ctx context.Context, accountNumber string, fn func(ctx context.Context) error) error {
	mutex := m.rs.NewMutex(lockKey(accountNumber),
		redsync.WithExpiry(m.cfg.LeaseTime),
		redsync.WithTries(m.tries()),
		redsync.WithRetryDelay(m.cfg.RetryDelay),
	)

	if err := mutex.LockContext(ctx); err != nil {
		m.logger.Warn("failed to acquire account lock",
			zap.String("accountNumber", accountNumber),
			zap.Error(err))
		return domain.ErrAccountTransactionLock
	}

	defer func() {
		if ok, err := mutex.UnlockContext(ctx); !ok || err != nil {
			m.logger.Error("failed to release account lock",
				zap.String("accountNumber", accountNumber),
				zap.Bool("unlockOk", ok),
				zap.Error(err))
		}
	}()

	return fn(ctx)
}

// tries 由 WaitTime / RetryDelay 換算取鎖的嘗試次數，至少一次
func (m *LockManager) tries() int {
	if m.cfg.RetryDelay <= 0 {
		return 1
	}
	return int(m.cfg.WaitTime/m.cfg.RetryDelay) + 1
}

func lockKey(accountNumber string) string {
	return lockKeyPrefix + accountNumber
}

var _ usecase.LockManager = (*LockManager)(nil)
