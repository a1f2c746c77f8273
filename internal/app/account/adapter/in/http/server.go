package http

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/namomi/Account/internal/app/account/domain"
	"github.com/namomi/Account/internal/app/account/usecase"
)

var accountNumberPattern = regexp.MustCompile(`^\d{10}$`)

// Server HTTP 介接層，負責參數驗證、錯誤轉換與失敗稽核的補記
type Server struct {
	account     *usecase.AccountService
	transaction *usecase.TransactionService
	logger      *zap.Logger
}

func NewServer(account *usecase.AccountService, transaction *usecase.TransactionService, logger *zap.Logger) *Server {
	return &Server{
		account:     account,
		transaction: transaction,
		logger:      logger,
	}
}

// Register 掛載所有路由
func (s *Server) Register(app *fiber.App) {
	app.Post("/account", s.createAccount)
	app.Delete("/account", s.deleteAccount)
	app.Get("/account", s.getAccountsByUserID)

	app.Post("/transaction/use", s.useBalance)
	app.Post("/transaction/cancel", s.cancelBalance)
	app.Get("/transaction/:transactionId", s.queryTransaction)
}

func (s *Server) createAccount(c *fiber.Ctx) error {
	var req createAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, domain.ErrInvalidRequest)
	}
	if req.UserID <= 0 || req.InitialBalance < 0 {
		return writeError(c, domain.ErrInvalidRequest)
	}

	account, err := s.account.CreateAccount(c.Context(), req.UserID, req.InitialBalance)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(createAccountResponse{
		UserID:        account.UserID,
		AccountNumber: account.AccountNumber,
		RegisteredAt:  account.RegisteredAt,
	})
}

func (s *Server) deleteAccount(c *fiber.Ctx) error {
	var req deleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, domain.ErrInvalidRequest)
	}
	if req.UserID <= 0 || !accountNumberPattern.MatchString(req.AccountNumber) {
		return writeError(c, domain.ErrInvalidRequest)
	}

	account, err := s.account.DeleteAccount(c.Context(), req.UserID, req.AccountNumber)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(deleteAccountResponse{
		UserID:         account.UserID,
		AccountNumber:  account.AccountNumber,
		UnregisteredAt: account.UnregisteredAt,
	})
}

func (s *Server) getAccountsByUserID(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	if userID <= 0 {
		return writeError(c, domain.ErrInvalidRequest)
	}

	accounts, err := s.account.GetAccountsByUserID(c.Context(), int64(userID))
	if err != nil {
		return writeError(c, err)
	}

	result := make([]accountInfo, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, accountInfo{
			AccountNumber: account.AccountNumber,
			Balance:       account.Balance,
		})
	}
	return c.JSON(result)
}

// useBalance 扣款
// 扣款被拒絕時仍補記一筆 FAIL 稽核紀錄，再回傳原始錯誤
func (s *Server) useBalance(c *fiber.Ctx) error {
	var req useBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, domain.ErrInvalidRequest)
	}
	if req.UserID <= 0 || req.Amount <= 0 || !accountNumberPattern.MatchString(req.AccountNumber) {
		return writeError(c, domain.ErrInvalidRequest)
	}

	tran, err := s.transaction.UseBalance(c.Context(), req.UserID, req.AccountNumber, req.Amount)
	if err != nil {
		if saveErr := s.transaction.SaveFailedUseTransaction(c.Context(), req.AccountNumber, req.Amount); saveErr != nil {
			s.logger.Error("failed to save failed use transaction",
				zap.String("accountNumber", req.AccountNumber),
				zap.Error(saveErr))
		}
		return writeError(c, err)
	}

	return c.JSON(newTransactionResponse(tran))
}

// cancelBalance 取消扣款
// 與 useBalance 相同，被拒絕時補記 FAIL 稽核紀錄
func (s *Server) cancelBalance(c *fiber.Ctx) error {
	var req cancelBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, domain.ErrInvalidRequest)
	}
	if req.TransactionID == "" || req.Amount <= 0 || !accountNumberPattern.MatchString(req.AccountNumber) {
		return writeError(c, domain.ErrInvalidRequest)
	}

	tran, err := s.transaction.CancelBalance(c.Context(), req.TransactionID, req.AccountNumber, req.Amount)
	if err != nil {
		if saveErr := s.transaction.SaveFailedCancelTransaction(c.Context(), req.AccountNumber, req.Amount); saveErr != nil {
			s.logger.Error("failed to save failed cancel transaction",
				zap.String("accountNumber", req.AccountNumber),
				zap.Error(saveErr))
		}
		return writeError(c, err)
	}

	return c.JSON(newTransactionResponse(tran))
}

func (s *Server) queryTransaction(c *fiber.Ctx) error {
	transactionID := c.Params("transactionId")
	if transactionID == "" {
		return writeError(c, domain.ErrInvalidRequest)
	}

	tran, err := s.transaction.QueryTransaction(c.Context(), transactionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(newQueryTransactionResponse(tran))
}
