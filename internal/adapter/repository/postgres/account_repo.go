package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

const accountColumns = `id, number, bank_name, user_id, balance, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByKey retrieves an account by (number, bank name).
func (r *AccountRepository) GetByKey(ctx context.Context, key domain.AccountKey) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE number = $1 AND bank_name = $2
	`

	return r.scanAccount(r.pool.QueryRow(ctx, query, key.Number, key.BankName))
}

// GetByKeyForUpdate retrieves an account by (number, bank name) with a
// FOR UPDATE row lock inside tx.
func (r *AccountRepository) GetByKeyForUpdate(ctx context.Context, tx usecase.Transaction, key domain.AccountKey) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE number = $1 AND bank_name = $2
		FOR UPDATE
	`

	return r.scanAccount(pgxTx.QueryRow(ctx, query, key.Number, key.BankName))
}

// GetByNumber retrieves an account by number alone. Detail views resolve the
// snapshotted party numbers this way.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE number = $1
	`

	return r.scanAccount(r.pool.QueryRow(ctx, query, number))
}

// GetByID retrieves an account by its surrogate ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`

	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

// UpdateBalance updates the balance of an account inside tx.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE accounts
		SET balance = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := pgxTx.Exec(ctx, query, id, balance, updatedAt)

	return err
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Number,
		&account.BankName,
		&account.UserID,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return &account, nil
}
