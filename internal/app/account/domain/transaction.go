package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionType 交易類型
type TransactionType string

const (
	// 扣款
	TransactionTypeUse TransactionType = "USE"
	// 取消扣款
	TransactionTypeCancel TransactionType = "CANCEL"
)

// TransactionResult 交易結果
type TransactionResult string

const (
	TransactionResultSuccess TransactionResult = "SUCCESS"
	TransactionResultFail    TransactionResult = "FAIL"
)

// CancelWindow 交易可取消的期限
const CancelWindow = time.Hour * 24 * 365

// Transaction 交易紀錄，寫入後不可修改
// 更正一律以新的 CANCEL 紀錄表示，不回頭改舊紀錄
//
// 欄位:
//
//	TransactionID: 外部追蹤號，32 碼十六進位字串，全域唯一
//	BalanceSnapshot: 本筆交易生效後引擎所見的帳戶餘額
type Transaction struct {
	ID              int64
	TransactionID   string
	Type            TransactionType
	Result          TransactionResult
	AccountID       int64
	AccountNumber   string
	Amount          int64
	BalanceSnapshot int64
	TransactedAt    time.Time
	CreatedAt       time.Time
}

// NewTransactionID 產生交易追蹤號 (UUID 去掉連字號)
func NewTransactionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// CancelableBy 此交易在 now 時點是否仍可取消
func (t *Transaction) CancelableBy(now time.Time) bool {
	return !t.TransactedAt.Before(now.Add(-CancelWindow))
}
