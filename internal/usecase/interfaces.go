package usecase

import (
	"context"
	"time"

	"github.com/trongnd106/Banking-system/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	GetByKey(ctx context.Context, key domain.AccountKey) (*domain.Account, error)
	GetByKeyForUpdate(ctx context.Context, tx Transaction, key domain.AccountKey) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance int64, updatedAt time.Time) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error)
	Count(ctx context.Context) (int64, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// TransactionLogRepository defines data access for transaction status logs.
// Create commits on its own connection, outside any open transfer
// transaction, so a failure log survives the rollback it documents.
type TransactionLogRepository interface {
	Create(ctx context.Context, log *domain.TransactionLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.TransactionLog) error
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.TransactionLog, error)
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs a unit of work when the store reports a transient
// serialization or deadlock failure.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	// Get returns (nil, nil) on a cache miss.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
