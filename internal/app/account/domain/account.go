package domain

import "time"

// AccountStatus 帳戶狀態
type AccountStatus string

const (
	AccountStatusInUse        AccountStatus = "IN_USE"
	AccountStatusUnregistered AccountStatus = "UNREGISTERED"
)

// AccountUser 帳戶擁有者
type AccountUser struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account 帳戶
// AccountNumber 是對外識別碼（10 位數字），ID 是內部識別碼，兩者不可混用
type Account struct {
	ID             int64
	UserID         int64
	AccountNumber  string
	Status         AccountStatus
	Balance        int64
	RegisteredAt   time.Time
	UnregisteredAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UseBalance 扣款，餘額不足時回傳錯誤且不變更餘額
func (a *Account) UseBalance(amount int64) error {
	if amount > a.Balance {
		return ErrAmountExceedBalance
	}

	a.Balance -= amount
	return nil
}

// CancelBalance 退回款項
func (a *Account) CancelBalance(amount int64) error {
	if amount < 0 {
		return ErrInvalidRequest
	}

	a.Balance += amount
	return nil
}

// Unregister 解除註冊，餘額必須為零
func (a *Account) Unregister(now time.Time) error {
	if a.Status == AccountStatusUnregistered {
		return ErrAccountAlreadyUnregistered
	}
	if a.Balance > 0 {
		return ErrBalanceNotEmpty
	}

	a.Status = AccountStatusUnregistered
	a.UnregisteredAt = &now
	return nil
}
