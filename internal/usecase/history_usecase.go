package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/infrastructure/metrics"
)

// HistoryUseCase reconstructs transaction history: global and per-user
// listings plus single-transaction detail views.
type HistoryUseCase struct {
	txnRepo     TransactionRepository
	accountRepo AccountRepository
	userRepo    UserRepository
	logRepo     TransactionLogRepository
	cache       Cache
	perPage     int
	metrics     *metrics.Metrics
}

// NewHistoryUseCase creates a new HistoryUseCase. cache may be nil to
// disable detail-view caching, metrics may be nil.
func NewHistoryUseCase(
	txnRepo TransactionRepository,
	accountRepo AccountRepository,
	userRepo UserRepository,
	logRepo TransactionLogRepository,
	cache Cache,
	perPage int,
	metrics *metrics.Metrics,
) *HistoryUseCase {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	return &HistoryUseCase{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		logRepo:     logRepo,
		cache:       cache,
		perPage:     perPage,
		metrics:     metrics,
	}
}

// GetAll returns one page of all transactions in store order.
func (uc *HistoryUseCase) GetAll(ctx context.Context, page int) (domain.Page[*domain.Transaction], error) {
	if page < 1 {
		page = 1
	}

	total, err := uc.txnRepo.Count(ctx)
	if err != nil {
		return domain.Page[*domain.Transaction]{}, err
	}

	items, err := uc.txnRepo.List(ctx, uc.perPage, (page-1)*uc.perPage)
	if err != nil {
		return domain.Page[*domain.Transaction]{}, err
	}

	return domain.NewPage(items, total, page, uc.perPage), nil
}

// GetMyTransactions returns one page of transactions touching any account
// owned by the named caller.
func (uc *HistoryUseCase) GetMyTransactions(ctx context.Context, username string, page int) (domain.Page[*domain.Transaction], error) {
	if page < 1 {
		page = 1
	}

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Page[*domain.Transaction]{}, err
	}

	total, err := uc.txnRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return domain.Page[*domain.Transaction]{}, err
	}

	items, err := uc.txnRepo.ListByUser(ctx, user.ID, uc.perPage, (page-1)*uc.perPage)
	if err != nil {
		return domain.Page[*domain.Transaction]{}, err
	}

	return domain.NewPage(items, total, page, uc.perPage), nil
}

// TransactionDetail is the fully composed view of one transaction, including
// live-resolved party display names and the log outcome.
type TransactionDetail struct {
	TransactionID  string
	SenderUser     string
	SenderBank     string
	SenderNumber   string
	ReceiverUser   string
	ReceiverBank   string
	ReceiverNumber string
	Amount         int64
	Fee            int64
	Status         string
	Remarks        string
	Time           time.Time
}

// GetDetail composes a detail view for one transaction. The parties are
// re-resolved live by their snapshotted numbers, so a closed account can make
// a historically valid transaction unresolvable. That is accepted behavior,
// not a reason to snapshot display names.
func (uc *HistoryUseCase) GetDetail(ctx context.Context, id string) (*TransactionDetail, error) {
	if cached := uc.cachedDetail(ctx, id); cached != nil {
		if uc.metrics != nil {
			uc.metrics.DetailCacheHits.Inc()
		}

		return cached, nil
	}

	if uc.metrics != nil {
		uc.metrics.DetailCacheMiss.Inc()
	}

	txn, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	senderUser, err := uc.resolveOwner(ctx, txn.SenderNumber)
	if err != nil {
		return nil, err
	}

	receiverUser, err := uc.resolveOwner(ctx, txn.ReceiverNumber)
	if err != nil {
		return nil, err
	}

	txnLog, err := uc.logRepo.GetByTransactionID(ctx, txn.ID)
	if err != nil {
		return nil, err
	}

	detail := &TransactionDetail{
		TransactionID:  txn.ID,
		SenderUser:     senderUser.DisplayName(),
		SenderBank:     txn.SenderBank,
		SenderNumber:   txn.SenderNumber,
		ReceiverUser:   receiverUser.DisplayName(),
		ReceiverBank:   txn.ReceiverBank,
		ReceiverNumber: txn.ReceiverNumber,
		Amount:         txn.Amount,
		Fee:            txn.Fee,
		Status:         txnLog.Status,
		Remarks:        txnLog.Remarks,
		Time:           txn.Time,
	}

	uc.storeDetail(ctx, id, detail)

	return detail, nil
}

// Delete hides a transaction from active-scoped views by flipping its log to
// inactive. Neither the transaction nor the log row is ever removed.
func (uc *HistoryUseCase) Delete(ctx context.Context, id string) error {
	txnLog, err := uc.logRepo.GetByTransactionID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionLogNotFound) {
			return domain.ErrTransactionNotFound
		}

		return err
	}

	err = uc.logRepo.SetActive(ctx, txnLog.ID, false, time.Now().UTC())
	if err != nil {
		return err
	}

	uc.invalidateDetail(ctx, id)

	if uc.metrics != nil {
		uc.metrics.TransactionsHidden.Inc()
	}

	return nil
}

func (uc *HistoryUseCase) resolveOwner(ctx context.Context, accountNumber string) (*domain.User, error) {
	account, err := uc.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, account.UserID)
}

func detailCacheKey(id string) string {
	return "transaction:detail:" + id
}

func (uc *HistoryUseCase) cachedDetail(ctx context.Context, id string) *TransactionDetail {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, detailCacheKey(id))
	if err != nil || data == nil {
		return nil
	}

	var detail TransactionDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil
	}

	return &detail
}

func (uc *HistoryUseCase) storeDetail(ctx context.Context, id string, detail *TransactionDetail) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(detail)
	if err != nil {
		return
	}

	_ = uc.cache.Set(ctx, detailCacheKey(id), data, DetailCacheTTL)
}

func (uc *HistoryUseCase) invalidateDetail(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, detailCacheKey(id))
}
