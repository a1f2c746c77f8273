package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/namomi/Account/internal/app/account/domain"
)

const (
	// 單一使用者可持有的帳戶上限
	maxAccountPerUser = 10
	// 第一個帳號由此起算
	firstAccountNumber = 1000000000
)

// AccountService 帳戶生命週期管理（開戶、銷戶、查詢）
// 餘額異動不在這裡，見 TransactionService
type AccountService struct {
	users    AccountUserRepository
	accounts AccountRepository
	logger   *zap.Logger
}

func NewAccountService(users AccountUserRepository, accounts AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		users:    users,
		accounts: accounts,
		logger:   logger,
	}
}

// CreateAccount 開戶
// 帳號為 10 位數字，取目前最大的帳號加一；超過持有上限時回傳錯誤
func (s *AccountService) CreateAccount(ctx context.Context, userID int64, initialBalance int64) (*domain.Account, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.accounts.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if count >= maxAccountPerUser {
		return nil, domain.ErrMaxAccountPerUser10
	}

	number, err := s.nextAccountNumber(ctx)
	if err != nil {
		return nil, err
	}

	saved, err := s.accounts.Save(ctx, &domain.Account{
		UserID:        user.ID,
		AccountNumber: number,
		Status:        domain.AccountStatusInUse,
		Balance:       initialBalance,
		RegisteredAt:  time.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		zap.Int64("userId", user.ID),
		zap.String("accountNumber", saved.AccountNumber))
	return saved, nil
}

// DeleteAccount 銷戶
// 只有擁有者本人、帳戶使用中且餘額為零時才允許；不實際刪除資料，
// 僅把狀態改為 UNREGISTERED 並記錄時間
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64, accountNumber string) (*domain.Account, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if account.UserID != user.ID {
		return nil, domain.ErrUserAccountUnMatch
	}
	if err := account.Unregister(time.Now()); err != nil {
		return nil, err
	}

	return s.accounts.Save(ctx, account)
}

// GetAccountsByUserID 查詢使用者持有的所有帳戶
func (s *AccountService) GetAccountsByUserID(ctx context.Context, userID int64) ([]*domain.Account, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.accounts.FindByUserID(ctx, user.ID)
}

// nextAccountNumber 取下一個帳號
func (s *AccountService) nextAccountNumber(ctx context.Context) (string, error) {
	latest, err := s.accounts.FindLatest(ctx)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return strconv.FormatInt(firstAccountNumber, 10), nil
	}
	if err != nil {
		return "", err
	}

	n, err := strconv.ParseInt(latest.AccountNumber, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse latest account number %q: %w", latest.AccountNumber, err)
	}
	return fmt.Sprintf("%010d", n+1), nil
}
