package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/namomi/Account/internal/app/account/domain"
)

// errorResponse 統一的錯誤回應格式
type errorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// statusOf 業務錯誤碼對應 HTTP 狀態碼
// 查無資料 404、鎖衝突 409、內部錯誤 500，其餘一律 400
func statusOf(code domain.ErrorCode) int {
	switch code {
	case domain.CodeUserNotFound, domain.CodeAccountNotFound, domain.CodeTransactionNotFound:
		return fiber.StatusNotFound
	case domain.CodeAccountTransactionLock:
		return fiber.StatusConflict
	case domain.CodeInternalServerError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

func writeError(c *fiber.Ctx, err error) error {
	code := domain.CodeOf(err)
	return c.Status(statusOf(code)).JSON(errorResponse{
		ErrorCode:    string(code),
		ErrorMessage: err.Error(),
	})
}
