package dto

import (
	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

// CreateTransactionRequest represents a request to move funds between accounts.
type CreateTransactionRequest struct {
	SenderNumber   string `json:"sender_number"`
	SenderBank     string `json:"sender_bank"`
	ReceiverNumber string `json:"receiver_number"`
	ReceiverBank   string `json:"receiver_bank"`
	Amount         int64  `json:"amount"`
	Type           string `json:"type"`
}

// Validate checks the request fields before they reach the use case.
func (r *CreateTransactionRequest) Validate() error {
	if r.SenderNumber == "" || r.SenderBank == "" {
		return domain.ErrAccountNotFound
	}
	if r.ReceiverNumber == "" || r.ReceiverBank == "" {
		return domain.ErrAccountNotFound
	}
	if r.Amount <= 0 {
		return domain.ErrInvalidAmount
	}

	return nil
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		SenderNumber:   r.SenderNumber,
		SenderBank:     r.SenderBank,
		ReceiverNumber: r.ReceiverNumber,
		ReceiverBank:   r.ReceiverBank,
		Amount:         r.Amount,
		Type:           r.Type,
	}
}
