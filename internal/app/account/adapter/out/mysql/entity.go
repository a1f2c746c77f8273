package mysql

import (
	"time"

	"github.com/namomi/Account/internal/app/account/domain"
)

// sqlAccountUser 對應資料庫的 account_user 表
type sqlAccountUser struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (*sqlAccountUser) TableName() string {
	return "account_user"
}

func (u *sqlAccountUser) toDomain() *domain.AccountUser {
	return &domain.AccountUser{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// sqlAccount 對應資料庫的 account 表
type sqlAccount struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	AccountUserID  int64  `gorm:"index"`
	AccountNumber  string `gorm:"size:10;uniqueIndex"`
	AccountStatus  string `gorm:"size:16"`
	Balance        int64
	RegisteredAt   time.Time
	UnregisteredAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (*sqlAccount) TableName() string {
	return "account"
}

func (a *sqlAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:             a.ID,
		UserID:         a.AccountUserID,
		AccountNumber:  a.AccountNumber,
		Status:         domain.AccountStatus(a.AccountStatus),
		Balance:        a.Balance,
		RegisteredAt:   a.RegisteredAt,
		UnregisteredAt: a.UnregisteredAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func fromDomainAccount(a *domain.Account) *sqlAccount {
	return &sqlAccount{
		ID:             a.ID,
		AccountUserID:  a.UserID,
		AccountNumber:  a.AccountNumber,
		AccountStatus:  string(a.Status),
		Balance:        a.Balance,
		RegisteredAt:   a.RegisteredAt,
		UnregisteredAt: a.UnregisteredAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// sqlTransaction 對應資料庫的 transaction 表，只新增不更新
type sqlTransaction struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	TransactionID     string `gorm:"size:32;uniqueIndex"`
	TransactionType   string `gorm:"size:8"`
	TransactionResult string `gorm:"size:8"`
	AccountID         int64  `gorm:"index"`
	AccountNumber     string `gorm:"size:10;index"`
	Amount            int64
	BalanceSnapshot   int64
	TransactedAt      time.Time
	CreatedAt         time.Time
}

func (*sqlTransaction) TableName() string {
	return "transaction"
}

func (t *sqlTransaction) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:              t.ID,
		TransactionID:   t.TransactionID,
		Type:            domain.TransactionType(t.TransactionType),
		Result:          domain.TransactionResult(t.TransactionResult),
		AccountID:       t.AccountID,
		AccountNumber:   t.AccountNumber,
		Amount:          t.Amount,
		BalanceSnapshot: t.BalanceSnapshot,
		TransactedAt:    t.TransactedAt,
		CreatedAt:       t.CreatedAt,
	}
}

func fromDomainTransaction(t *domain.Transaction) *sqlTransaction {
	return &sqlTransaction{
		ID:                t.ID,
		TransactionID:     t.TransactionID,
		TransactionType:   string(t.Type),
		TransactionResult: string(t.Result),
		AccountID:         t.AccountID,
		AccountNumber:     t.AccountNumber,
		Amount:            t.Amount,
		BalanceSnapshot:   t.BalanceSnapshot,
		TransactedAt:      t.TransactedAt,
		CreatedAt:         t.CreatedAt,
	}
}
