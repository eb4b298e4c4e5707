package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

const logColumns = `id, transaction_id, status, active, remarks, created_at`
const insertLogQuery = `
	INSERT INTO transaction_logs (id, transaction_id, status, active, remarks, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// TransactionLogRepository implements usecase.TransactionLogRepository.
type TransactionLogRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionLogRepository creates a new TransactionLogRepository.
func NewTransactionLogRepository(pool *pgxpool.Pool) *TransactionLogRepository {
	return &TransactionLogRepository{pool: pool}
}

// Create inserts a log on the pool's own connection. This path commits
// independently of any open transfer transaction, which is what lets a
// failure log survive the rollback of the transfer it documents.
func (r *TransactionLogRepository) Create(ctx context.Context, log *domain.TransactionLog) error {
	fillLogDefaults(log)

	_, err := r.pool.Exec(ctx, insertLogQuery,
		log.ID,
		log.TransactionID,
		log.Status,
		log.Active,
		log.Remarks,
		log.CreatedAt,
	)

	return err
}

// CreateTx inserts a log inside tx, so a success log commits or rolls back
// together with the transfer effects.
func (r *TransactionLogRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.TransactionLog) error {
	fillLogDefaults(log)

	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, insertLogQuery,
		log.ID,
		log.TransactionID,
		log.Status,
		log.Active,
		log.Remarks,
		log.CreatedAt,
	)

	return err
}

// GetByTransactionID retrieves the log for a transaction.
func (r *TransactionLogRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.TransactionLog, error) {
	query := `
		SELECT ` + logColumns + `
		FROM transaction_logs
		WHERE transaction_id = $1
	`

	var log domain.TransactionLog
	err := r.pool.QueryRow(ctx, query, transactionID).Scan(
		&log.ID,
		&log.TransactionID,
		&log.Status,
		&log.Active,
		&log.Remarks,
		&log.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionLogNotFound
		}

		return nil, err
	}

	return &log, nil
}

// SetActive flips the active flag. The status column is never touched here;
// a log's outcome is immutable.
func (r *TransactionLogRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	query := `
		UPDATE transaction_logs
		SET active = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, active, updatedAt)

	return err
}

func fillLogDefaults(log *domain.TransactionLog) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
}
