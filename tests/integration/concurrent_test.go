package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

func TestConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("opposing transfers conserve funds minus fees", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		alice := env.db.CreateTestUser(ctx, "alice", domain.RoleOperator)
		bob := env.db.CreateTestUser(ctx, "bob", domain.RoleOperator)
		env.db.CreateTestAccount(ctx, "111", "VCB", alice.ID, 1000000)
		env.db.CreateTestAccount(ctx, "222", "ACB", bob.ID, 1000000)

		const transfersPerDirection = 10

		var wg sync.WaitGroup
		for i := 0; i < transfersPerDirection; i++ {
			wg.Add(2)

			go func() {
				defer wg.Done()

				_, err := env.transferUC.Create(ctx, usecase.CreateTransactionInput{
					SenderNumber: "111", SenderBank: "VCB",
					ReceiverNumber: "222", ReceiverBank: "ACB",
					Amount: 10000,
				})
				if err != nil {
					t.Errorf("forward transfer failed: %v", err)
				}
			}()

			go func() {
				defer wg.Done()

				_, err := env.transferUC.Create(ctx, usecase.CreateTransactionInput{
					SenderNumber: "222", SenderBank: "ACB",
					ReceiverNumber: "111", ReceiverBank: "VCB",
					Amount: 10000,
				})
				if err != nil {
					t.Errorf("reverse transfer failed: %v", err)
				}
			}()
		}

		wg.Wait()

		sender, err := env.accountRepo.GetByNumber(ctx, "111")
		if err != nil {
			t.Fatalf("failed to load account: %v", err)
		}

		receiver, err := env.accountRepo.GetByNumber(ctx, "222")
		if err != nil {
			t.Fatalf("failed to load account: %v", err)
		}

		// Each transfer of 10000 burns a fee of 1; 20 transfers burn 20.
		wantTotal := int64(2000000 - 2*transfersPerDirection)
		if got := sender.Balance + receiver.Balance; got != wantTotal {
			t.Errorf("expected combined balance %d, got %d", wantTotal, got)
		}
	})

	t.Run("concurrent debits never overdraw the sender", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		alice := env.db.CreateTestUser(ctx, "alice", domain.RoleOperator)
		bob := env.db.CreateTestUser(ctx, "bob", domain.RoleViewer)
		env.db.CreateTestAccount(ctx, "111", "VCB", alice.ID, 10000)
		env.db.CreateTestAccount(ctx, "222", "ACB", bob.ID, 0)

		const attempts = 5

		var (
			wg        sync.WaitGroup
			successes atomic.Int64
		)

		// Balance covers at most one 6000-unit transfer.
		for i := 0; i < attempts; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, err := env.transferUC.Create(ctx, usecase.CreateTransactionInput{
					SenderNumber: "111", SenderBank: "VCB",
					ReceiverNumber: "222", ReceiverBank: "ACB",
					Amount: 6000,
				})
				if err == nil {
					successes.Add(1)
				}
			}()
		}

		wg.Wait()

		if got := successes.Load(); got != 1 {
			t.Errorf("expected exactly 1 transfer to pass the balance check, got %d", got)
		}

		sender, err := env.accountRepo.GetByNumber(ctx, "111")
		if err != nil {
			t.Fatalf("failed to load sender: %v", err)
		}

		if sender.Balance != 4000 {
			t.Errorf("expected sender balance 4000, got %d", sender.Balance)
		}

		count, err := env.txnRepo.Count(ctx)
		if err != nil {
			t.Fatalf("failed to count transactions: %v", err)
		}

		if count != 1 {
			t.Errorf("expected 1 committed transaction, got %d", count)
		}

		// Every failed attempt still left an audit record.
		var failLogs int
		err = env.db.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM transaction_logs WHERE status = $1`,
			domain.StatusFail,
		).Scan(&failLogs)
		if err != nil {
			t.Fatalf("failed to count failure logs: %v", err)
		}

		if failLogs != attempts-1 {
			t.Errorf("expected %d failure logs, got %d", attempts-1, failLogs)
		}
	})
}
