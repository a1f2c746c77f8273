package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/namomi/Account/internal/app/account/domain"
	"github.com/namomi/Account/internal/app/account/usecase"
	"github.com/namomi/Account/pkg/mysql"
)

// AccountUserRepository 使用者資料的 MySQL 實作
type AccountUserRepository struct {
	client *mysql.Client
}

func NewAccountUserRepository(client *mysql.Client) *AccountUserRepository {
	return &AccountUserRepository{client: client}
}

func (r *AccountUserRepository) FindByID(ctx context.Context, userID int64) (*domain.AccountUser, error) {
	var user sqlAccountUser
	err := r.client.DB().WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account user %d: %w", userID, err)
	}
	return user.toDomain(), nil
}

// AccountRepository 帳戶資料的 MySQL 實作
type AccountRepository struct {
	client *mysql.Client
}

func NewAccountRepository(client *mysql.Client) *AccountRepository {
	return &AccountRepository{client: client}
}

func (r *AccountRepository) FindByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	var account sqlAccount
	err := r.client.DB().WithContext(ctx).Where("account_number = ?", accountNumber).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account %s: %w", accountNumber, err)
	}
	return account.toDomain(), nil
}

func (r *AccountRepository) FindByUserID(ctx context.Context, userID int64) ([]*domain.Account, error) {
	var accounts []sqlAccount
	err := r.client.DB().WithContext(ctx).
		Where("account_user_id = ?", userID).
		Order("id").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("find accounts of user %d: %w", userID, err)
	}

	result := make([]*domain.Account, 0, len(accounts))
	for i := range accounts {
		result = append(result, accounts[i].toDomain())
	}
	return result, nil
}

func (r *AccountRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.client.DB().WithContext(ctx).
		Model(&sqlAccount{}).
		Where("account_user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count accounts of user %d: %w", userID, err)
	}
	return count, nil
}

// FindLatest 取最近開立的帳戶（ID 最大者），用於產生下一個帳號
func (r *AccountRepository) FindLatest(ctx context.Context) (*domain.Account, error) {
	var account sqlAccount
	err := r.client.DB().WithContext(ctx).Order("id DESC").First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find latest account: %w", err)
	}
	return account.toDomain(), nil
}

func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	entity := fromDomainAccount(account)
	if err := r.client.DB().WithContext(ctx).Save(entity).Error; err != nil {
		return nil, fmt.Errorf("save account %s: %w", account.AccountNumber, err)
	}
	return entity.toDomain(), nil
}

// TransactionRepository 交易紀錄的 MySQL 實作
type TransactionRepository struct {
	client *mysql.Client
}

func NewTransactionRepository(client *mysql.Client) *TransactionRepository {
	return &TransactionRepository{client: client}
}

func (r *TransactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var tran sqlTransaction
	err := r.client.DB().WithContext(ctx).Where("transaction_id = ?", transactionID).First(&tran).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction %s: %w", transactionID, err)
	}
	return tran.toDomain(), nil
}

// Save 新增一筆交易紀錄，紀錄不可更新
func (r *TransactionRepository) Save(ctx context.Context, tran *domain.Transaction) (*domain.Transaction, error) {
	entity := fromDomainTransaction(tran)
	if err := r.client.DB().WithContext(ctx).Create(entity).Error; err != nil {
		return nil, fmt.Errorf("save transaction %s: %w", tran.TransactionID, err)
	}
	return entity.toDomain(), nil
}

var (
	_ usecase.AccountUserRepository = (*AccountUserRepository)(nil)
	_ usecase.AccountRepository     = (*AccountRepository)(nil)
	_ usecase.TransactionRepository = (*TransactionRepository)(nil)
)
