package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/namomi/Account/internal/app/account/adapter/out/memory"
	"github.com/namomi/Account/internal/app/account/domain"
	"github.com/namomi/Account/internal/app/account/usecase"
)

func newAccountService(store *memory.Store) *usecase.AccountService {
	return usecase.NewAccountService(store, store, zap.NewNop())
}

func TestCreateAccount_First(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	service := newAccountService(store)

	account, err := service.CreateAccount(context.Background(), user.ID, 1000)

	require.NoError(t, err)
	assert.Equal(t, "1000000000", account.AccountNumber)
	assert.Equal(t, user.ID, account.UserID)
	assert.Equal(t, int64(1000), account.Balance)
	assert.Equal(t, domain.AccountStatusInUse, account.Status)
	assert.False(t, account.RegisteredAt.IsZero())
}

func TestCreateAccount_NextNumber(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 0)
	service := newAccountService(store)

	account, err := service.CreateAccount(context.Background(), user.ID, 0)

	require.NoError(t, err)
	assert.Equal(t, "1000000013", account.AccountNumber)
	assert.Regexp(t, `^\d{10}$`, account.AccountNumber)
}

func TestCreateAccount_UserNotFound(t *testing.T) {
	store := memory.NewStore()
	service := newAccountService(store)

	_, err := service.CreateAccount(context.Background(), 1, 1000)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateAccount_MaxAccountPerUser(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	for i := 0; i < 10; i++ {
		seedAccount(t, store, user.ID, fmt.Sprintf("10000000%02d", i), 0)
	}
	service := newAccountService(store)

	_, err := service.CreateAccount(context.Background(), user.ID, 1000)

	assert.ErrorIs(t, err, domain.ErrMaxAccountPerUser10)
}

func TestDeleteAccount_Success(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 0)
	service := newAccountService(store)

	account, err := service.DeleteAccount(context.Background(), user.ID, "1000000012")

	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusUnregistered, account.Status)
	assert.NotNil(t, account.UnregisteredAt)
}

func TestDeleteAccount_UserNotFound(t *testing.T) {
	store := memory.NewStore()
	service := newAccountService(store)

	_, err := service.DeleteAccount(context.Background(), 1, "1000000012")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteAccount_AccountNotFound(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	service := newAccountService(store)

	_, err := service.DeleteAccount(context.Background(), user.ID, "1000000012")

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDeleteAccount_UserAccountUnMatch(t *testing.T) {
	store := memory.NewStore()
	pobi := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	harry := store.AddUser(&domain.AccountUser{Name: "Harry"})
	seedAccount(t, store, harry.ID, "1000000012", 0)
	service := newAccountService(store)

	_, err := service.DeleteAccount(context.Background(), pobi.ID, "1000000012")

	assert.ErrorIs(t, err, domain.ErrUserAccountUnMatch)
}

func TestDeleteAccount_BalanceNotEmpty(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 100)
	service := newAccountService(store)

	_, err := service.DeleteAccount(context.Background(), user.ID, "1000000012")

	assert.ErrorIs(t, err, domain.ErrBalanceNotEmpty)
}

func TestDeleteAccount_AlreadyUnregistered(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	account := seedAccount(t, store, user.ID, "1000000012", 0)
	account.Status = domain.AccountStatusUnregistered
	_, err := store.Save(context.Background(), account)
	require.NoError(t, err)
	service := newAccountService(store)

	_, err = service.DeleteAccount(context.Background(), user.ID, "1000000012")

	assert.ErrorIs(t, err, domain.ErrAccountAlreadyUnregistered)
}

func TestGetAccountsByUserID(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1111111111", 1000)
	seedAccount(t, store, user.ID, "2222222222", 2000)
	seedAccount(t, store, user.ID, "3333333333", 3000)
	service := newAccountService(store)

	accounts, err := service.GetAccountsByUserID(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Len(t, accounts, 3)

	balances := make(map[string]int64)
	for _, account := range accounts {
		balances[account.AccountNumber] = account.Balance
	}
	assert.Equal(t, int64(1000), balances["1111111111"])
	assert.Equal(t, int64(2000), balances["2222222222"])
	assert.Equal(t, int64(3000), balances["3333333333"])
}

func TestGetAccountsByUserID_UserNotFound(t *testing.T) {
	store := memory.NewStore()
	service := newAccountService(store)

	_, err := service.GetAccountsByUserID(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
