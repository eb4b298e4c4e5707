// Package mocks provides hand-rolled mock implementations of the usecase
// interfaces. Every method can be overridden per test via its Func field;
// without an override the mock behaves like a small in-memory store.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[domain.AccountKey]*domain.Account

	GetByKeyFunc          func(ctx context.Context, key domain.AccountKey) (*domain.Account, error)
	GetByKeyForUpdateFunc func(ctx context.Context, tx usecase.Transaction, key domain.AccountKey) (*domain.Account, error)
	GetByNumberFunc       func(ctx context.Context, number string) (*domain.Account, error)
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[domain.AccountKey]*domain.Account),
	}
}

// Seed stores an account in the in-memory map.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.Key()] = account
}

func (m *MockAccountRepository) GetByKey(ctx context.Context, key domain.AccountKey) (*domain.Account, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[key]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByKeyForUpdate(ctx context.Context, tx usecase.Transaction, key domain.AccountKey) (*domain.Account, error) {
	if m.GetByKeyForUpdateFunc != nil {
		return m.GetByKeyForUpdateFunc(ctx, tx, key)
	}
	return m.GetByKey(ctx, key)
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Number == number {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.ID == id {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.ID == id {
			acc.Balance = balance
			acc.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	GetByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Seed(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns []*domain.Transaction

	CreateFunc      func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Transaction, error)
	ListFunc        func(ctx context.Context, limit, offset int) ([]*domain.Transaction, error)
	CountFunc       func(ctx context.Context) (int64, error)
	ListByUserFunc  func(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
	CountByUserFunc func(ctx context.Context, userID string) (int64, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Created returns all transactions stored through Create.
func (m *MockTransactionRepository) Created() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Transaction(nil), m.txns...)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txn)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, txn := range m.txns {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if offset >= len(m.txns) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.txns) {
		end = len(m.txns)
	}
	return append([]*domain.Transaction(nil), m.txns[offset:end]...), nil
}

func (m *MockTransactionRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.txns)), nil
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	return m.List(ctx, limit, offset)
}

func (m *MockTransactionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if m.CountByUserFunc != nil {
		return m.CountByUserFunc(ctx, userID)
	}
	return m.Count(ctx)
}

// MockTransactionLogRepository is a mock implementation of
// TransactionLogRepository.
type MockTransactionLogRepository struct {
	mu   sync.RWMutex
	logs []*domain.TransactionLog

	CreateFunc             func(ctx context.Context, log *domain.TransactionLog) error
	CreateTxFunc           func(ctx context.Context, tx usecase.Transaction, log *domain.TransactionLog) error
	GetByTransactionIDFunc func(ctx context.Context, transactionID string) (*domain.TransactionLog, error)
	SetActiveFunc          func(ctx context.Context, id string, active bool, updatedAt time.Time) error
}

func NewMockTransactionLogRepository() *MockTransactionLogRepository {
	return &MockTransactionLogRepository{}
}

// Logs returns all stored logs.
func (m *MockTransactionLogRepository) Logs() []*domain.TransactionLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.TransactionLog(nil), m.logs...)
}

func (m *MockTransactionLogRepository) store(log *domain.TransactionLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if log.ID == "" {
		log.ID = fmt.Sprintf("log-%d", len(m.logs)+1)
	}
	m.logs = append(m.logs, log)
}

func (m *MockTransactionLogRepository) Create(ctx context.Context, log *domain.TransactionLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.store(log)
	return nil
}

func (m *MockTransactionLogRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.TransactionLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	m.store(log)
	return nil
}

func (m *MockTransactionLogRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.TransactionLog, error) {
	if m.GetByTransactionIDFunc != nil {
		return m.GetByTransactionIDFunc(ctx, transactionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, log := range m.logs {
		if log.TransactionID == transactionID {
			return log, nil
		}
	}
	return nil, domain.ErrTransactionLogNotFound
}

func (m *MockTransactionLogRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, log := range m.logs {
		if log.ID == id {
			log.Active = active
			return nil
		}
	}
	return domain.ErrTransactionLogNotFound
}

// MockTransaction records commit/rollback calls.
type MockTransaction struct {
	mu         sync.Mutex
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu    sync.Mutex
	Begun []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%d", m.next)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
