package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/trongnd106/Banking-system/internal/adapter/http/dto"
	"github.com/trongnd106/Banking-system/internal/adapter/http/middleware"
	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

type transferServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
}

func (s *transferServiceStub) Create(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
	return s.createFn(ctx, input)
}

type historyServiceStub struct {
	getAllFn    func(ctx context.Context, page int) (domain.Page[*domain.Transaction], error)
	getMineFn   func(ctx context.Context, username string, page int) (domain.Page[*domain.Transaction], error)
	getDetailFn func(ctx context.Context, id string) (*usecase.TransactionDetail, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (s *historyServiceStub) GetAll(ctx context.Context, page int) (domain.Page[*domain.Transaction], error) {
	return s.getAllFn(ctx, page)
}

func (s *historyServiceStub) GetMyTransactions(ctx context.Context, username string, page int) (domain.Page[*domain.Transaction], error) {
	return s.getMineFn(ctx, username, page)
}

func (s *historyServiceStub) GetDetail(ctx context.Context, id string) (*usecase.TransactionDetail, error) {
	return s.getDetailFn(ctx, id)
}

func (s *historyServiceStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validCreateRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		SenderNumber:   "111",
		SenderBank:     "VCB",
		ReceiverNumber: "222",
		ReceiverBank:   "ACB",
		Amount:         50000,
		Type:           "transfer",
	}
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateTransactionInput
	handler := NewTransactionHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
			captured = input
			return &domain.Transaction{ID: "txn-1", Amount: input.Amount, Fee: domain.ComputeFee(input.Amount)}, nil
		},
	}, &historyServiceStub{})

	body, _ := json.Marshal(validCreateRequest())
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	if captured.SenderNumber != "111" || captured.ReceiverNumber != "222" || captured.Amount != 50000 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "txn-1" || resp.Fee != 5 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTransactionHandler_Create_InvalidBody(t *testing.T) {
	handler := NewTransactionHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
			t.Fatal("Create should not be called")
			return nil, nil
		},
	}, &historyServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_Create_InvalidAmount(t *testing.T) {
	handler := NewTransactionHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
			t.Fatal("Create should not be called on invalid amount")
			return nil, nil
		},
	}, &historyServiceStub{})

	reqBody := validCreateRequest()
	reqBody.Amount = -5

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_Create_InsufficientBalance(t *testing.T) {
	handler := NewTransactionHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
			return nil, fmt.Errorf("%w: %w", domain.ErrTransferFailed, domain.ErrInsufficientBalance)
		},
	}, &historyServiceStub{})

	body, _ := json.Marshal(validCreateRequest())
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for insufficient balance, got %d", rec.Code)
	}
}

func TestTransactionHandler_List(t *testing.T) {
	handler := NewTransactionHandler(&transferServiceStub{}, &historyServiceStub{
		getAllFn: func(ctx context.Context, page int) (domain.Page[*domain.Transaction], error) {
			if page != 2 {
				t.Fatalf("expected page 2, got %d", page)
			}
			return domain.NewPage([]*domain.Transaction{{ID: "txn-1"}}, 25, page, 10), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transactions?page=2", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TransactionPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CurPage != 2 || resp.TotalPages != 3 || len(resp.Items) != 1 {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestTransactionHandler_ListMine(t *testing.T) {
	handler := NewTransactionHandler(&transferServiceStub{}, &historyServiceStub{
		getMineFn: func(ctx context.Context, username string, page int) (domain.Page[*domain.Transaction], error) {
			if username != "trong" {
				t.Fatalf("expected caller username, got %s", username)
			}
			return domain.NewPage([]*domain.Transaction{{ID: "txn-1"}}, 1, page, 10), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transactions/my", nil)
	user := &domain.User{ID: "user-1", Username: "trong", Role: domain.RoleViewer}
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, user))
	rec := httptest.NewRecorder()

	handler.ListMine(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTransactionHandler_ListMine_NoUser(t *testing.T) {
	handler := NewTransactionHandler(&transferServiceStub{}, &historyServiceStub{
		getMineFn: func(ctx context.Context, username string, page int) (domain.Page[*domain.Transaction], error) {
			t.Fatal("GetMyTransactions should not be called without a user")
			return domain.Page[*domain.Transaction]{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transactions/my", nil)
	rec := httptest.NewRecorder()

	handler.ListMine(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTransactionHandler_Get(t *testing.T) {
	handler := NewTransactionHandler(&transferServiceStub{}, &historyServiceStub{
		getDetailFn: func(ctx context.Context, id string) (*usecase.TransactionDetail, error) {
			return &usecase.TransactionDetail{TransactionID: id, SenderUser: "Trong Nguyen", Status: domain.StatusSuccess}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transactions/txn-1", nil)
	req = setChiURLParam(req, "id", "txn-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TransactionDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TransactionID != "txn-1" || resp.SenderUser != "Trong Nguyen" {
		t.Fatalf("unexpected detail: %+v", resp)
	}
}

func TestTransactionHandler_Get_NotFound(t *testing.T) {
	handler := NewTransactionHandler(&transferServiceStub{}, &historyServiceStub{
		getDetailFn: func(ctx context.Context, id string) (*usecase.TransactionDetail, error) {
			return nil, domain.ErrTransactionNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transactions/ghost", nil)
	req = setChiURLParam(req, "id", "ghost")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransactionHandler_Delete(t *testing.T) {
	var deleted string
	handler := NewTransactionHandler(&transferServiceStub{}, &historyServiceStub{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/transactions/txn-1", nil)
	req = setChiURLParam(req, "id", "txn-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "txn-1" {
		t.Fatalf("expected txn-1 to be deleted, got %s", deleted)
	}
}

func TestTransactionHandler_Delete_NotFound(t *testing.T) {
	handler := NewTransactionHandler(&transferServiceStub{}, &historyServiceStub{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrTransactionNotFound
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/transactions/ghost", nil)
	req = setChiURLParam(req, "id", "ghost")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
