package dto

import (
	"time"

	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID             string    `json:"id"`
	SenderNumber   string    `json:"sender_number"`
	SenderBank     string    `json:"sender_bank"`
	ReceiverNumber string    `json:"receiver_number"`
	ReceiverBank   string    `json:"receiver_bank"`
	Amount         int64     `json:"amount"`
	Fee            int64     `json:"fee"`
	Time           time.Time `json:"time"`
	Type           string    `json:"type"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:             t.ID,
		SenderNumber:   t.SenderNumber,
		SenderBank:     t.SenderBank,
		ReceiverNumber: t.ReceiverNumber,
		ReceiverBank:   t.ReceiverBank,
		Amount:         t.Amount,
		Fee:            t.Fee,
		Time:           t.Time,
		Type:           t.Type,
	}
}

// TransactionPageResponse represents one page of transaction history.
type TransactionPageResponse struct {
	TotalPages int                    `json:"total_pages"`
	PerPage    int                    `json:"per_page"`
	CurPage    int                    `json:"cur_page"`
	NextPage   int                    `json:"next_page"`
	PrevPage   int                    `json:"prev_page"`
	Items      []*TransactionResponse `json:"items"`
}

// TransactionPageFromDomain converts a domain page to a response.
func TransactionPageFromDomain(page domain.Page[*domain.Transaction]) *TransactionPageResponse {
	items := make([]*TransactionResponse, len(page.Items))
	for i, t := range page.Items {
		items[i] = TransactionFromDomain(t)
	}

	return &TransactionPageResponse{
		TotalPages: page.TotalPages,
		PerPage:    page.PerPage,
		CurPage:    page.CurPage,
		NextPage:   page.NextPage,
		PrevPage:   page.PrevPage,
		Items:      items,
	}
}

// TransactionDetailResponse represents the resolved detail view of a transaction.
type TransactionDetailResponse struct {
	TransactionID  string    `json:"transaction_id"`
	SenderUser     string    `json:"sender_user"`
	SenderBank     string    `json:"sender_bank"`
	SenderNumber   string    `json:"sender_number"`
	ReceiverUser   string    `json:"receiver_user"`
	ReceiverBank   string    `json:"receiver_bank"`
	ReceiverNumber string    `json:"receiver_number"`
	Amount         int64     `json:"amount"`
	Fee            int64     `json:"fee"`
	Status         string    `json:"status"`
	Remarks        string    `json:"remarks"`
	Time           time.Time `json:"time"`
}

// DetailFromUseCase converts a use case detail view to a response.
func DetailFromUseCase(d *usecase.TransactionDetail) *TransactionDetailResponse {
	return &TransactionDetailResponse{
		TransactionID:  d.TransactionID,
		SenderUser:     d.SenderUser,
		SenderBank:     d.SenderBank,
		SenderNumber:   d.SenderNumber,
		ReceiverUser:   d.ReceiverUser,
		ReceiverBank:   d.ReceiverBank,
		ReceiverNumber: d.ReceiverNumber,
		Amount:         d.Amount,
		Fee:            d.Fee,
		Status:         d.Status,
		Remarks:        d.Remarks,
		Time:           d.Time,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
