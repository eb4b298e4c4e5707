package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adapterhttp "github.com/trongnd106/Banking-system/internal/adapter/http"
	"github.com/trongnd106/Banking-system/internal/adapter/http/handler"
	"github.com/trongnd106/Banking-system/internal/adapter/repository/postgres"
	redisrepo "github.com/trongnd106/Banking-system/internal/adapter/repository/redis"
	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/infrastructure/auth"
	infraredis "github.com/trongnd106/Banking-system/internal/infrastructure/redis"
	"github.com/trongnd106/Banking-system/internal/usecase"
	"github.com/trongnd106/Banking-system/tests/testutil"
)

const testPerPage = 2

// testEnv wires the full HTTP stack against live postgres and redis, the
// same way cmd/server does.
type testEnv struct {
	db          *testutil.TestDB
	router      http.Handler
	jwtManager  *auth.JWTManager
	accountRepo *postgres.AccountRepository
	txnRepo     *postgres.TransactionRepository
	logRepo     *postgres.TransactionLogRepository
	transferUC  *usecase.TransferUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	logRepo := postgres.NewTransactionLogRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}

	t.Cleanup(func() { redisClient.Close() })
	flushRedis(t, redisClient)

	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, txnRepo, logRepo, idGen, retrier, nil)
	historyUC := usecase.NewHistoryUseCase(txnRepo, accountRepo, userRepo, logRepo, redisrepo.NewCache(redisClient), testPerPage, nil)

	jwtManager := auth.NewJWTManager("integration-secret", time.Hour)

	router := adapterhttp.NewRouter(adapterhttp.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transferUC, historyUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
		Logger:             zerolog.Nop(),
	})

	return &testEnv{
		db:          testDB,
		router:      router,
		jwtManager:  jwtManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		logRepo:     logRepo,
		transferUC:  transferUC,
	}
}

func flushRedis(t *testing.T, client *redis.Client) {
	t.Helper()

	if err := client.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}
}

func (e *testEnv) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()

	token, err := e.jwtManager.Generate(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}

		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, body)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)

	return w
}

func (e *testEnv) doWithIdempotencyKey(t *testing.T, token, key string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/", bytes.NewReader(data))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+token)
	r.Header.Set("Idempotency-Key", key)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)

	return w
}
