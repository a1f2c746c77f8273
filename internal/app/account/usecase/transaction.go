package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/namomi/Account/internal/app/account/domain"
)

// TransactionService 餘額異動的核心邏輯
//
// 所有會變更餘額的操作（UseBalance / CancelBalance）都必須在該帳號的
// 分散式鎖保護下執行：載入帳戶、變更餘額、寫入帳戶、寫入交易紀錄為
// 同一個臨界區，確保同一帳號不會有兩筆操作交錯。
type TransactionService struct {
	users        AccountUserRepository
	accounts     AccountRepository
	transactions TransactionRepository
	lock         LockManager
	logger       *zap.Logger
}

func NewTransactionService(
	users AccountUserRepository,
	accounts AccountRepository,
	transactions TransactionRepository,
	lock LockManager,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		users:        users,
		accounts:     accounts,
		transactions: transactions,
		lock:         lock,
		logger:       logger,
	}
}

// UseBalance 扣款
//
// 驗證順序: 使用者存在 -> 帳戶存在 -> 擁有者一致 -> 帳戶未解除註冊 -> 餘額足夠。
// 任一驗證失敗立即中止，不寫入任何資料。
// 成功時先扣減餘額並寫回帳戶，再以扣減後的餘額作為快照寫入 SUCCESS/USE 紀錄，
// 兩個寫入都在同一個鎖臨界區內完成。
func (s *TransactionService) UseBalance(ctx context.Context, userID int64, accountNumber string, amount int64) (*domain.Transaction, error) {
	var saved *domain.Transaction

	err := s.lock.WithLock(ctx, accountNumber, func(ctx context.Context) error {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		account, err := s.accounts.FindByNumber(ctx, accountNumber)
		if err != nil {
			return err
		}

		if err := validateUseBalance(user, account); err != nil {
			return err
		}

		// 先變更餘額再產生紀錄，快照即為變更後餘額
		if err := account.UseBalance(amount); err != nil {
			return err
		}
		if _, err := s.accounts.Save(ctx, account); err != nil {
			return err
		}

		saved, err = s.saveTransaction(ctx, domain.TransactionTypeUse, domain.TransactionResultSuccess, account, amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// SaveFailedUseTransaction 記錄一筆被拒絕的扣款
//
// 由呼叫端在扣款被拒絕後另行呼叫，補上稽核用的 FAIL/USE 紀錄。
// 不變更餘額，快照為帳戶當前餘額。雖然沒有餘額變更，仍在帳號鎖內
// 執行以維持同一帳號交易紀錄的先後順序。
func (s *TransactionService) SaveFailedUseTransaction(ctx context.Context, accountNumber string, amount int64) error {
	return s.saveFailedTransaction(ctx, domain.TransactionTypeUse, accountNumber, amount)
}

// SaveFailedCancelTransaction 記錄一筆被拒絕的取消
func (s *TransactionService) SaveFailedCancelTransaction(ctx context.Context, accountNumber string, amount int64) error {
	return s.saveFailedTransaction(ctx, domain.TransactionTypeCancel, accountNumber, amount)
}

func (s *TransactionService) saveFailedTransaction(ctx context.Context, tranType domain.TransactionType, accountNumber string, amount int64) error {
	return s.lock.WithLock(ctx, accountNumber, func(ctx context.Context) error {
		account, err := s.accounts.FindByNumber(ctx, accountNumber)
		if err != nil {
			return err
		}

		_, err = s.saveTransaction(ctx, tranType, domain.TransactionResultFail, account, amount)
		return err
	})
}

// CancelBalance 取消扣款，退回款項
//
// 驗證順序: 交易存在 -> 帳戶存在 -> 交易屬於該帳戶（比對內部 ID，
// 不是帳號字串）-> 金額與原交易完全一致（不允許部分取消）-> 未超過
// 一年的可取消期限。
func (s *TransactionService) CancelBalance(ctx context.Context, transactionID string, accountNumber string, amount int64) (*domain.Transaction, error) {
	var saved *domain.Transaction

	err := s.lock.WithLock(ctx, accountNumber, func(ctx context.Context) error {
		tran, err := s.transactions.FindByTransactionID(ctx, transactionID)
		if err != nil {
			return err
		}

		account, err := s.accounts.FindByNumber(ctx, accountNumber)
		if err != nil {
			return err
		}

		if err := validateCancelBalance(tran, account, amount); err != nil {
			return err
		}

		if err := account.CancelBalance(amount); err != nil {
			return err
		}
		if _, err := s.accounts.Save(ctx, account); err != nil {
			return err
		}

		saved, err = s.saveTransaction(ctx, domain.TransactionTypeCancel, domain.TransactionResultSuccess, account, amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// QueryTransaction 依追蹤號查詢交易，純讀取不加鎖
func (s *TransactionService) QueryTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.transactions.FindByTransactionID(ctx, transactionID)
}

func (s *TransactionService) saveTransaction(
	ctx context.Context,
	tranType domain.TransactionType,
	result domain.TransactionResult,
	account *domain.Account,
	amount int64,
) (*domain.Transaction, error) {
	saved, err := s.transactions.Save(ctx, &domain.Transaction{
		TransactionID:   domain.NewTransactionID(),
		Type:            tranType,
		Result:          result,
		AccountID:       account.ID,
		AccountNumber:   account.AccountNumber,
		Amount:          amount,
		BalanceSnapshot: account.Balance,
		TransactedAt:    time.Now(),
	})
	if err != nil {
		s.logger.Error("failed to save transaction",
			zap.String("accountNumber", account.AccountNumber),
			zap.String("type", string(tranType)),
			zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func validateUseBalance(user *domain.AccountUser, account *domain.Account) error {
	if account.UserID != user.ID {
		return domain.ErrUserAccountUnMatch
	}
	if account.Status == domain.AccountStatusUnregistered {
		return domain.ErrAccountAlreadyUnregistered
	}
	return nil
}

func validateCancelBalance(tran *domain.Transaction, account *domain.Account, amount int64) error {
	if tran.AccountID != account.ID {
		return domain.ErrTransactionAccountUnMatch
	}
	if tran.Amount != amount {
		return domain.ErrCancelMustFully
	}
	if !tran.CancelableBy(time.Now()) {
		return domain.ErrTooOldOrderToCancel
	}
	return nil
}
