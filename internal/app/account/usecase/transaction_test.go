package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/namomi/Account/internal/app/account/adapter/out/memory"
	"github.com/namomi/Account/internal/app/account/domain"
	"github.com/namomi/Account/internal/app/account/usecase"
)

// deniedLock 永遠取不到鎖的 LockManager，模擬鎖後端逾時
type deniedLock struct{}

func (deniedLock) WithLock(ctx context.Context, accountNumber string, fn func(ctx context.Context) error) error {
	return domain.ErrAccountTransactionLock
}

func newTransactionService(store *memory.Store) *usecase.TransactionService {
	return usecase.NewTransactionService(
		store, store, store.TransactionRepository(),
		memory.NewLockManager(5*time.Second),
		zap.NewNop(),
	)
}

func seedAccount(t *testing.T, store *memory.Store, userID int64, number string, balance int64) *domain.Account {
	t.Helper()
	account, err := store.Save(context.Background(), &domain.Account{
		UserID:        userID,
		AccountNumber: number,
		Status:        domain.AccountStatusInUse,
		Balance:       balance,
		RegisteredAt:  time.Now(),
	})
	require.NoError(t, err)
	return account
}

func TestUseBalance_Success(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 10000)
	service := newTransactionService(store)

	tran, err := service.UseBalance(context.Background(), user.ID, "1000000012", 200)

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeUse, tran.Type)
	assert.Equal(t, domain.TransactionResultSuccess, tran.Result)
	assert.Equal(t, int64(200), tran.Amount)
	assert.Equal(t, int64(9800), tran.BalanceSnapshot, "snapshot equals the balance after deduction")
	assert.Len(t, tran.TransactionID, 32)

	account, err := store.FindByNumber(context.Background(), "1000000012")
	require.NoError(t, err)
	assert.Equal(t, int64(9800), account.Balance)
}

func TestUseBalance_UserNotFound(t *testing.T) {
	store := memory.NewStore()
	service := newTransactionService(store)

	_, err := service.UseBalance(context.Background(), 1, "1000000012", 200)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUseBalance_AccountNotFound(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	service := newTransactionService(store)

	_, err := service.UseBalance(context.Background(), user.ID, "1000000012", 200)

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestUseBalance_UserAccountUnMatch(t *testing.T) {
	store := memory.NewStore()
	pobi := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	harry := store.AddUser(&domain.AccountUser{Name: "Harry"})
	seedAccount(t, store, harry.ID, "1000000012", 10000)
	service := newTransactionService(store)

	_, err := service.UseBalance(context.Background(), pobi.ID, "1000000012", 200)

	assert.ErrorIs(t, err, domain.ErrUserAccountUnMatch)
}

func TestUseBalance_AlreadyUnregistered(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	account := seedAccount(t, store, user.ID, "1000000012", 0)
	account.Status = domain.AccountStatusUnregistered
	_, err := store.Save(context.Background(), account)
	require.NoError(t, err)
	service := newTransactionService(store)

	_, err = service.UseBalance(context.Background(), user.ID, "1000000012", 200)

	assert.ErrorIs(t, err, domain.ErrAccountAlreadyUnregistered)
}

func TestUseBalance_AmountExceedBalance(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 100)
	service := newTransactionService(store)

	_, err := service.UseBalance(context.Background(), user.ID, "1000000012", 1000)

	assert.ErrorIs(t, err, domain.ErrAmountExceedBalance)

	// 餘額不變，也沒有任何交易紀錄
	account, findErr := store.FindByNumber(context.Background(), "1000000012")
	require.NoError(t, findErr)
	assert.Equal(t, int64(100), account.Balance)
	assert.Empty(t, store.Transactions())
}

func TestUseBalance_LockNotAcquired(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 10000)
	service := usecase.NewTransactionService(
		store, store, store.TransactionRepository(), deniedLock{}, zap.NewNop())

	_, err := service.UseBalance(context.Background(), user.ID, "1000000012", 200)

	assert.ErrorIs(t, err, domain.ErrAccountTransactionLock)

	account, findErr := store.FindByNumber(context.Background(), "1000000012")
	require.NoError(t, findErr)
	assert.Equal(t, int64(10000), account.Balance)
	assert.Empty(t, store.Transactions())
}

func TestSaveFailedUseTransaction(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 10000)
	service := newTransactionService(store)

	err := service.SaveFailedUseTransaction(context.Background(), "1000000012", 200)

	require.NoError(t, err)
	trans := store.Transactions()
	require.Len(t, trans, 1)
	assert.Equal(t, domain.TransactionTypeUse, trans[0].Type)
	assert.Equal(t, domain.TransactionResultFail, trans[0].Result)
	assert.Equal(t, int64(200), trans[0].Amount)
	assert.Equal(t, int64(10000), trans[0].BalanceSnapshot, "snapshot is the unmutated balance")

	account, err := store.FindByNumber(context.Background(), "1000000012")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), account.Balance)
}

func TestSaveFailedUseTransaction_AccountNotFound(t *testing.T) {
	store := memory.NewStore()
	service := newTransactionService(store)

	err := service.SaveFailedUseTransaction(context.Background(), "1000000012", 200)

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestSaveFailedCancelTransaction(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 10000)
	service := newTransactionService(store)

	err := service.SaveFailedCancelTransaction(context.Background(), "1000000012", 200)

	require.NoError(t, err)
	trans := store.Transactions()
	require.Len(t, trans, 1)
	assert.Equal(t, domain.TransactionTypeCancel, trans[0].Type)
	assert.Equal(t, domain.TransactionResultFail, trans[0].Result)
	assert.Equal(t, int64(10000), trans[0].BalanceSnapshot)
}

func TestCancelBalance_RoundTrip(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 10000)
	service := newTransactionService(store)

	used, err := service.UseBalance(context.Background(), user.ID, "1000000012", 200)
	require.NoError(t, err)

	canceled, err := service.CancelBalance(context.Background(), used.TransactionID, "1000000012", 200)

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeCancel, canceled.Type)
	assert.Equal(t, domain.TransactionResultSuccess, canceled.Result)
	assert.Equal(t, int64(10000), canceled.BalanceSnapshot)
	assert.NotEqual(t, used.TransactionID, canceled.TransactionID)

	// 全額取消後餘額完全復原
	account, err := store.FindByNumber(context.Background(), "1000000012")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), account.Balance)
}

func TestCancelBalance_TransactionNotFound(t *testing.T) {
	store := memory.NewStore()
	service := newTransactionService(store)

	_, err := service.CancelBalance(context.Background(), "missing", "1000000012", 200)

	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestCancelBalance_AccountNotFound(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 10000)
	service := newTransactionService(store)

	used, err := service.UseBalance(context.Background(), user.ID, "1000000012", 200)
	require.NoError(t, err)

	_, err = service.CancelBalance(context.Background(), used.TransactionID, "1000000099", 200)

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestCancelBalance_TransactionAccountUnMatch(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 10000)
	seedAccount(t, store, user.ID, "1000000013", 10000)
	service := newTransactionService(store)

	used, err := service.UseBalance(context.Background(), user.ID, "1000000012", 200)
	require.NoError(t, err)

	_, err = service.CancelBalance(context.Background(), used.TransactionID, "1000000013", 200)

	assert.ErrorIs(t, err, domain.ErrTransactionAccountUnMatch)
}

func TestCancelBalance_MustFully(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 10000)
	service := newTransactionService(store)

	used, err := service.UseBalance(context.Background(), user.ID, "1000000012", 200)
	require.NoError(t, err)

	// 金額不一致一律拒絕，不論多扣或少扣
	_, err = service.CancelBalance(context.Background(), used.TransactionID, "1000000012", 100)
	assert.ErrorIs(t, err, domain.ErrCancelMustFully)

	_, err = service.CancelBalance(context.Background(), used.TransactionID, "1000000012", 300)
	assert.ErrorIs(t, err, domain.ErrCancelMustFully)

	account, findErr := store.FindByNumber(context.Background(), "1000000012")
	require.NoError(t, findErr)
	assert.Equal(t, int64(9800), account.Balance)
}

func TestCancelBalance_TooOldOrder(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	account := seedAccount(t, store, user.ID, "1000000012", 9800)
	service := newTransactionService(store)

	// 一年又一天前的交易
	old, err := store.SaveTransaction(context.Background(), &domain.Transaction{
		TransactionID:   domain.NewTransactionID(),
		Type:            domain.TransactionTypeUse,
		Result:          domain.TransactionResultSuccess,
		AccountID:       account.ID,
		AccountNumber:   account.AccountNumber,
		Amount:          200,
		BalanceSnapshot: 9800,
		TransactedAt:    time.Now().Add(-domain.CancelWindow - 24*time.Hour),
	})
	require.NoError(t, err)

	_, err = service.CancelBalance(context.Background(), old.TransactionID, "1000000012", 200)

	assert.ErrorIs(t, err, domain.ErrTooOldOrderToCancel)
}

func TestQueryTransaction(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 10000)
	service := newTransactionService(store)

	used, err := service.UseBalance(context.Background(), user.ID, "1000000012", 200)
	require.NoError(t, err)

	tran, err := service.QueryTransaction(context.Background(), used.TransactionID)

	require.NoError(t, err)
	assert.Equal(t, used.TransactionID, tran.TransactionID)
	assert.Equal(t, domain.TransactionTypeUse, tran.Type)
	assert.Equal(t, int64(200), tran.Amount)
}

func TestQueryTransaction_NotFound(t *testing.T) {
	store := memory.NewStore()
	service := newTransactionService(store)

	_, err := service.QueryTransaction(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

// 同一帳號的並發扣款不可遺失任何一筆更新
func TestUseBalance_ConcurrentSameAccount(t *testing.T) {
	store := memory.NewStore()
	user := store.AddUser(&domain.AccountUser{Name: "Pobi"})
	seedAccount(t, store, user.ID, "1000000012", 10000)
	service := newTransactionService(store)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.UseBalance(context.Background(), user.ID, "1000000012", 100)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	account, err := store.FindByNumber(context.Background(), "1000000012")
	require.NoError(t, err)
	assert.Equal(t, int64(10000-workers*100), account.Balance)

	// 每筆快照都不同，代表沒有兩筆交易讀到同一個餘額
	snapshots := make(map[int64]bool)
	for _, tran := range store.Transactions() {
		require.Equal(t, domain.TransactionResultSuccess, tran.Result)
		snapshots[tran.BalanceSnapshot] = true
	}
	assert.Len(t, snapshots, workers)
}
