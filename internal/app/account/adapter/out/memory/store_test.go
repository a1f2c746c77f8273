package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namomi/Account/internal/app/account/domain"
)

func TestStore_FindLatest(t *testing.T) {
	store := NewStore()

	_, err := store.FindLatest(context.Background())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = store.Save(context.Background(), &domain.Account{AccountNumber: "1000000000"})
	require.NoError(t, err)
	_, err = store.Save(context.Background(), &domain.Account{AccountNumber: "1000000001"})
	require.NoError(t, err)

	latest, err := store.FindLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1000000001", latest.AccountNumber)
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := NewStore()

	saved, err := store.Save(context.Background(), &domain.Account{
		AccountNumber: "1000000000",
		Balance:       1000,
	})
	require.NoError(t, err)

	// 改動取回的物件不影響 Store 內部狀態
	saved.Balance = 0

	reloaded, err := store.FindByNumber(context.Background(), "1000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), reloaded.Balance)
}

func TestStore_TransactionRepository(t *testing.T) {
	store := NewStore()
	repo := store.TransactionRepository()

	_, err := repo.FindByTransactionID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	saved, err := repo.Save(context.Background(), &domain.Transaction{
		TransactionID: "abc",
		Type:          domain.TransactionTypeUse,
		Result:        domain.TransactionResultSuccess,
		Amount:        100,
	})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	found, err := repo.FindByTransactionID(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(100), found.Amount)
}
