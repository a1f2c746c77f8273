package http

import (
	"time"

	"github.com/namomi/Account/internal/app/account/domain"
)

// 請求/回應的 JSON 格式

type createAccountRequest struct {
	UserID         int64 `json:"userId"`
	InitialBalance int64 `json:"initialBalance"`
}

type createAccountResponse struct {
	UserID        int64     `json:"userId"`
	AccountNumber string    `json:"accountNumber"`
	RegisteredAt  time.Time `json:"registeredAt"`
}

type deleteAccountRequest struct {
	UserID        int64  `json:"userId"`
	AccountNumber string `json:"accountNumber"`
}

type deleteAccountResponse struct {
	UserID         int64      `json:"userId"`
	AccountNumber  string     `json:"accountNumber"`
	UnregisteredAt *time.Time `json:"unRegisteredAt"`
}

type accountInfo struct {
	AccountNumber string `json:"accountNumber"`
	Balance       int64  `json:"balance"`
}

type useBalanceRequest struct {
	UserID        int64  `json:"userId"`
	AccountNumber string `json:"accountNumber"`
	Amount        int64  `json:"amount"`
}

type cancelBalanceRequest struct {
	TransactionID string `json:"transactionId"`
	AccountNumber string `json:"accountNumber"`
	Amount        int64  `json:"amount"`
}

// transactionResponse 扣款/取消的共同回應格式
type transactionResponse struct {
	AccountNumber     string    `json:"accountNumber"`
	TransactionResult string    `json:"transactionResult"`
	TransactionID     string    `json:"transactionId"`
	Amount            int64     `json:"amount"`
	TransactedAt      time.Time `json:"transactedAt"`
}

type queryTransactionResponse struct {
	AccountNumber     string    `json:"accountNumber"`
	TransactionType   string    `json:"transactionType"`
	TransactionResult string    `json:"transactionResult"`
	TransactionID     string    `json:"transactionId"`
	Amount            int64     `json:"amount"`
	TransactedAt      time.Time `json:"transactedAt"`
}

func newTransactionResponse(tran *domain.Transaction) transactionResponse {
	return transactionResponse{
		AccountNumber:     tran.AccountNumber,
		TransactionResult: string(tran.Result),
		TransactionID:     tran.TransactionID,
		Amount:            tran.Amount,
		TransactedAt:      tran.TransactedAt,
	}
}

func newQueryTransactionResponse(tran *domain.Transaction) queryTransactionResponse {
	return queryTransactionResponse{
		AccountNumber:     tran.AccountNumber,
		TransactionType:   string(tran.Type),
		TransactionResult: string(tran.Result),
		TransactionID:     tran.TransactionID,
		Amount:            tran.Amount,
		TransactedAt:      tran.TransactedAt,
	}
}
