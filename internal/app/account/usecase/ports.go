package usecase

import (
	"context"

	"github.com/namomi/Account/internal/app/account/domain"
)

// AccountUserRepository 使用者資料存取介面
type AccountUserRepository interface {
	// FindByID 依內部 ID 查詢使用者，查無資料時回傳 domain.ErrUserNotFound
	FindByID(ctx context.Context, userID int64) (*domain.AccountUser, error)
}

// AccountRepository 帳戶資料存取介面
type AccountRepository interface {
	// FindByNumber 依帳號查詢帳戶，查無資料時回傳 domain.ErrAccountNotFound
	FindByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	// FindByUserID 查詢使用者持有的所有帳戶
	FindByUserID(ctx context.Context, userID int64) ([]*domain.Account, error)
	// CountByUserID 計算使用者持有的帳戶數
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	// FindLatest 查詢最近一次開立的帳戶，尚無任何帳戶時回傳 domain.ErrAccountNotFound
	FindLatest(ctx context.Context) (*domain.Account, error)
	// Save 新增或更新帳戶，回傳帶有 ID 的帳戶
	Save(ctx context.Context, account *domain.Account) (*domain.Account, error)
}

// TransactionRepository 交易紀錄存取介面
type TransactionRepository interface {
	// FindByTransactionID 依追蹤號查詢交易，查無資料時回傳 domain.ErrTransactionNotFound
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// Save 寫入一筆交易紀錄（僅新增，不更新）
	Save(ctx context.Context, tran *domain.Transaction) (*domain.Transaction, error)
}

// LockManager 以帳號為 key 的互斥鎖介面
//
// WithLock 在取得鎖之後執行 fn，無論 fn 結果如何都保證釋放鎖。
// 在等待時間內取不到鎖時回傳 domain.ErrAccountTransactionLock，且不執行 fn。
type LockManager interface {
	WithLock(ctx context.Context, accountNumber string, fn func(ctx context.Context) error) error
}
