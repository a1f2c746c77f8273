package domain

import "errors"

// ErrorCode 業務錯誤碼，跨層傳遞時只帶碼與訊息，不帶例外物件
type ErrorCode string

const (
	CodeInternalServerError        ErrorCode = "INTERNAL_SERVER_ERROR"
	CodeInvalidRequest             ErrorCode = "INVALID_REQUEST"
	CodeUserNotFound               ErrorCode = "USER_NOT_FOUND"
	CodeAccountNotFound            ErrorCode = "ACCOUNT_NOT_FOUND"
	CodeTransactionNotFound        ErrorCode = "TRANSACTION_NOT_FOUND"
	CodeUserAccountUnMatch         ErrorCode = "USER_ACCOUNT_UN_MATCH"
	CodeTransactionAccountUnMatch  ErrorCode = "TRANSACTION_ACCOUNT_UN_MATCH"
	CodeAccountAlreadyUnregistered ErrorCode = "ACCOUNT_ALREADY_UNREGISTERED"
	CodeBalanceNotEmpty            ErrorCode = "BALANCE_NOT_EMPTY"
	CodeMaxAccountPerUser10        ErrorCode = "MAX_ACCOUNT_PER_USER_10"
	CodeAmountExceedBalance        ErrorCode = "AMOUNT_EXCEED_BALANCE"
	CodeCancelMustFully            ErrorCode = "CANCEL_MUST_FULLY"
	CodeTooOldOrderToCancel        ErrorCode = "TOO_OLD_ORDER_TO_CANCEL"
	CodeAccountTransactionLock     ErrorCode = "ACCOUNT_TRANSACTION_LOCK"
)

// AccountError 帶錯誤碼的業務錯誤
type AccountError struct {
	Code    ErrorCode
	Message string
}

func (e *AccountError) Error() string {
	return string(e.Code) + ": " + e.Message
}

var (
	// ErrInternalServerError 內部錯誤
	ErrInternalServerError = &AccountError{Code: CodeInternalServerError, Message: "internal server error"}

	// ErrInvalidRequest 請求參數不合法
	ErrInvalidRequest = &AccountError{Code: CodeInvalidRequest, Message: "invalid request"}

	// ErrUserNotFound 找不到使用者
	ErrUserNotFound = &AccountError{Code: CodeUserNotFound, Message: "user not found"}

	// ErrAccountNotFound 找不到帳戶
	ErrAccountNotFound = &AccountError{Code: CodeAccountNotFound, Message: "account not found"}

	// ErrTransactionNotFound 找不到交易
	ErrTransactionNotFound = &AccountError{Code: CodeTransactionNotFound, Message: "transaction not found"}

	// ErrUserAccountUnMatch 使用者與帳戶擁有者不一致
	ErrUserAccountUnMatch = &AccountError{Code: CodeUserAccountUnMatch, Message: "user and account owner do not match"}

	// ErrTransactionAccountUnMatch 交易所屬帳戶與指定帳戶不一致
	ErrTransactionAccountUnMatch = &AccountError{Code: CodeTransactionAccountUnMatch, Message: "transaction does not belong to the account"}

	// ErrAccountAlreadyUnregistered 帳戶已解除註冊
	ErrAccountAlreadyUnregistered = &AccountError{Code: CodeAccountAlreadyUnregistered, Message: "account is already unregistered"}

	// ErrBalanceNotEmpty 帳戶餘額不為零，無法解除註冊
	ErrBalanceNotEmpty = &AccountError{Code: CodeBalanceNotEmpty, Message: "account balance is not empty"}

	// ErrMaxAccountPerUser10 單一使用者最多持有 10 個帳戶
	ErrMaxAccountPerUser10 = &AccountError{Code: CodeMaxAccountPerUser10, Message: "user already has the maximum number of accounts"}

	// ErrAmountExceedBalance 餘額不足
	ErrAmountExceedBalance = &AccountError{Code: CodeAmountExceedBalance, Message: "use amount exceeds account balance"}

	// ErrCancelMustFully 僅允許全額取消
	ErrCancelMustFully = &AccountError{Code: CodeCancelMustFully, Message: "cancel amount must equal the original amount"}

	// ErrTooOldOrderToCancel 超過可取消期限（一年）
	ErrTooOldOrderToCancel = &AccountError{Code: CodeTooOldOrderToCancel, Message: "transaction is too old to cancel"}

	// ErrAccountTransactionLock 帳戶交易鎖取得失敗
	ErrAccountTransactionLock = &AccountError{Code: CodeAccountTransactionLock, Message: "failed to acquire account transaction lock"}
)

// CodeOf 取出錯誤碼，非業務錯誤一律視為 INTERNAL_SERVER_ERROR
func CodeOf(err error) ErrorCode {
	var accErr *AccountError
	if errors.As(err, &accErr) {
		return accErr.Code
	}
	return CodeInternalServerError
}
