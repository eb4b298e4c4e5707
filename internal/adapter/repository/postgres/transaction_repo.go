package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

const transactionColumns = `id, sender_number, sender_bank, receiver_number, receiver_bank, amount, fee, time, type`

// TransactionRepository implements usecase.TransactionRepository.
// Transactions are append-only; there is no update or delete path.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction record inside tx.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.SenderNumber,
		txn.SenderBank,
		txn.ReceiverNumber,
		txn.ReceiverBank,
		txn.Amount,
		txn.Fee,
		txn.Time,
		txn.Type,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
	`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// activeFilter scopes listing queries to transactions whose log is still
// active. Soft-deleted transactions stay retrievable by id but drop out of
// listings.
const activeFilter = `id IN (SELECT transaction_id FROM transaction_logs WHERE active)`

// List retrieves one page of active transactions in insertion order.
func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ` + activeFilter + `
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

// Count returns the total number of active transactions.
func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE `+activeFilter).Scan(&count)

	return count, err
}

// ListByUser retrieves one page of transactions touching any account owned
// by userID, on either side of the transfer.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (sender_number IN (SELECT number FROM accounts WHERE user_id = $1)
		   OR receiver_number IN (SELECT number FROM accounts WHERE user_id = $1))
		  AND ` + activeFilter + `
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

// CountByUser returns the number of transactions touching userID's accounts.
func (r *TransactionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE (sender_number IN (SELECT number FROM accounts WHERE user_id = $1)
		   OR receiver_number IN (SELECT number FROM accounts WHERE user_id = $1))
		  AND ` + activeFilter + `
	`

	var count int64
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)

	return count, err
}

func (r *TransactionRepository) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.ID,
		&txn.SenderNumber,
		&txn.SenderBank,
		&txn.ReceiverNumber,
		&txn.ReceiverBank,
		&txn.Amount,
		&txn.Fee,
		&txn.Time,
		&txn.Type,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return &txn, nil
}

func (r *TransactionRepository) collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		err := rows.Scan(
			&txn.ID,
			&txn.SenderNumber,
			&txn.SenderBank,
			&txn.ReceiverNumber,
			&txn.ReceiverBank,
			&txn.Amount,
			&txn.Fee,
			&txn.Time,
			&txn.Type,
		)
		if err != nil {
			return nil, err
		}

		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}
