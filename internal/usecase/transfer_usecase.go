package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/infrastructure/metrics"
)

// TransferUseCase executes peer-to-peer fund transfers. A transfer debits the
// sender by amount+fee, credits the receiver by amount, and records one
// immutable Transaction plus one TransactionLog per attempt.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	logRepo     TransactionLogRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. retrier may be nil, in
// which case the unit of work runs exactly once. metrics may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	logRepo TransactionLogRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		logRepo:     logRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// CreateTransactionInput represents a transfer request. Amount is in the
// smallest currency unit and permissions are assumed already checked by the
// calling layer.
type CreateTransactionInput struct {
	SenderNumber   string
	SenderBank     string
	ReceiverNumber string
	ReceiverBank   string
	Amount         int64
	Type           string
}

// Create executes a transfer. Either all four effects (debit, credit,
// transaction insert, success log) commit together, or none of them do and a
// failure log is written instead. Every attempt leaves exactly one log row.
func (uc *TransferUseCase) Create(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	senderKey := domain.AccountKey{Number: input.SenderNumber, BankName: input.SenderBank}
	receiverKey := domain.AccountKey{Number: input.ReceiverNumber, BankName: input.ReceiverBank}

	// Self-transfers would only burn the fee; reject them up front.
	if senderKey == receiverKey {
		return nil, domain.ErrSameAccount
	}

	// The attempted transaction is shared with the failure path so a fail
	// log can reference whatever snapshot was built before the error.
	txn := &domain.Transaction{}
	start := time.Now()

	operation := func() error {
		return uc.execute(ctx, txn, senderKey, receiverKey, input)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}

	if err != nil {
		uc.writeFailureLog(ctx, txn.ID)

		if uc.metrics != nil {
			uc.metrics.TransactionsFailed.WithLabelValues(failureCause(err)).Inc()
		}

		return nil, fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.Inc()
		uc.metrics.TransferAmount.Observe(float64(txn.Amount))
		uc.metrics.FeesCollected.Add(float64(txn.Fee))
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
	}

	return txn, nil
}

func failureCause(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	default:
		return "other"
	}
}

// execute runs the transfer effects inside one database transaction.
func (uc *TransferUseCase) execute(
	ctx context.Context,
	txn *domain.Transaction,
	senderKey, receiverKey domain.AccountKey,
	input CreateTransactionInput,
) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock both accounts in key order so concurrent opposing transfers
	// cannot deadlock.
	first, second := senderKey, receiverKey
	if second.Less(first) {
		first, second = second, first
	}

	locked := make(map[domain.AccountKey]*domain.Account, 2)
	for _, key := range []domain.AccountKey{first, second} {
		account, err := uc.accountRepo.GetByKeyForUpdate(ctx, tx, key)
		if err != nil {
			return err
		}

		locked[key] = account
	}

	sender := locked[senderKey]
	receiver := locked[receiverKey]

	fee := domain.ComputeFee(input.Amount)
	if !sender.CanCover(input.Amount + fee) {
		return domain.ErrInsufficientBalance
	}

	// Both accounts get the same instant.
	now := time.Now().UTC()

	err = uc.accountRepo.UpdateBalance(ctx, tx, sender.ID, sender.ApplyDebit(input.Amount+fee), now)
	if err != nil {
		return err
	}

	err = uc.accountRepo.UpdateBalance(ctx, tx, receiver.ID, receiver.ApplyCredit(input.Amount), now)
	if err != nil {
		return err
	}

	txn.ID = uc.idGen.Generate()
	txn.SenderNumber = sender.Number
	txn.SenderBank = sender.BankName
	txn.ReceiverNumber = receiver.Number
	txn.ReceiverBank = receiver.BankName
	txn.Amount = input.Amount
	txn.Fee = fee
	txn.Time = now
	txn.Type = input.Type

	err = uc.txnRepo.Create(ctx, tx, txn)
	if err != nil {
		return err
	}

	err = uc.logRepo.CreateTx(ctx, tx, &domain.TransactionLog{
		TransactionID: txn.ID,
		Status:        domain.StatusSuccess,
		Active:        true,
		Remarks:       "",
		CreatedAt:     now,
	})
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// writeFailureLog durably records a failed attempt. It runs after the
// transfer transaction has been rolled back, on the repository's own
// always-committing path, so the audit trail survives the rollback.
func (uc *TransferUseCase) writeFailureLog(ctx context.Context, transactionID string) {
	failLog := &domain.TransactionLog{
		TransactionID: transactionID,
		Status:        domain.StatusFail,
		Active:        true,
		Remarks:       "",
		CreatedAt:     time.Now().UTC(),
	}

	if err := uc.logRepo.Create(ctx, failLog); err != nil {
		log.Error().
			Err(err).
			Str("transaction_id", transactionID).
			Msg("failed to write failure log")
	}
}
