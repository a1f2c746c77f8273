package memory

import (
	"context"
	"sync"

	"github.com/namomi/Account/internal/app/account/domain"
	"github.com/namomi/Account/internal/app/account/usecase"
)

// Store 以記憶體 Map 實作的資料存取層
//
// 同時實作使用者、帳戶、交易三個 Repository 介面，
// 供本機模式與測試使用。內部以 RWMutex 保護，所有讀寫都回傳複本，
// 呼叫端拿到的物件不會與 Store 內部共用。
type Store struct {
	mu sync.RWMutex

	users        map[int64]*domain.AccountUser
	accounts     map[string]*domain.Account // key: 帳號
	transactions map[string]*domain.Transaction

	nextUserID    int64
	nextAccountID int64
	nextTranID    int64
}

// NewStore 建立一個空的 Store
func NewStore() *Store {
	return &Store{
		users:        make(map[int64]*domain.AccountUser),
		accounts:     make(map[string]*domain.Account),
		transactions: make(map[string]*domain.Transaction),
	}
}

// AddUser 寫入一個使用者，回傳帶 ID 的複本
func (s *Store) AddUser(user *domain.AccountUser) *domain.AccountUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		s.nextUserID++
		user.ID = s.nextUserID
	} else if user.ID > s.nextUserID {
		s.nextUserID = user.ID
	}
	clone := *user
	s.users[clone.ID] = &clone

	result := clone
	return &result
}

func (s *Store) FindByID(ctx context.Context, userID int64) (*domain.AccountUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *Store) FindByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *account
	return &clone, nil
}

func (s *Store) FindByUserID(ctx context.Context, userID int64) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Account, 0)
	for _, account := range s.accounts {
		if account.UserID == userID {
			clone := *account
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (s *Store) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, account := range s.accounts {
		if account.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *Store) FindLatest(ctx context.Context) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.Account
	for _, account := range s.accounts {
		if latest == nil || account.ID > latest.ID {
			latest = account
		}
	}
	if latest == nil {
		return nil, domain.ErrAccountNotFound
	}
	clone := *latest
	return &clone, nil
}

func (s *Store) Save(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *account
	if clone.ID == 0 {
		s.nextAccountID++
		clone.ID = s.nextAccountID
	}
	s.accounts[clone.AccountNumber] = &clone

	result := clone
	return &result, nil
}

func (s *Store) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tran, ok := s.transactions[transactionID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	clone := *tran
	return &clone, nil
}

func (s *Store) SaveTransaction(ctx context.Context, tran *domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *tran
	if clone.ID == 0 {
		s.nextTranID++
		clone.ID = s.nextTranID
	}
	s.transactions[clone.TransactionID] = &clone

	result := clone
	return &result, nil
}

// Transactions 取出所有交易紀錄的複本，測試驗證用
func (s *Store) Transactions() []*domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Transaction, 0, len(s.transactions))
	for _, tran := range s.transactions {
		clone := *tran
		result = append(result, &clone)
	}
	return result
}

// transactionRepo 讓 Store 同時滿足 TransactionRepository 的 Save 簽名
// （Store.Save 已被帳戶占用）
type transactionRepo struct {
	store *Store
}

// TransactionRepository 以此 Store 為後端的交易紀錄 Repository
func (s *Store) TransactionRepository() usecase.TransactionRepository {
	return &transactionRepo{store: s}
}

func (r *transactionRepo) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.store.FindByTransactionID(ctx, transactionID)
}

func (r *transactionRepo) Save(ctx context.Context, tran *domain.Transaction) (*domain.Transaction, error) {
	return r.store.SaveTransaction(ctx, tran)
}

var (
	_ usecase.AccountUserRepository = (*Store)(nil)
	_ usecase.AccountRepository     = (*Store)(nil)
	_ usecase.TransactionRepository = (*transactionRepo)(nil)
)
