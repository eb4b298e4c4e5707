package domain

import "time"

// One fee unit is charged per 10,000 units transferred. The fee is deducted
// from the sender on top of the amount; the receiver gets the full amount.
const feeDivisor = 10000

// ComputeFee returns the transfer fee for amount, truncating toward zero.
func ComputeFee(amount int64) int64 {
	return amount / feeDivisor
}

// Transaction is an immutable record of a transfer attempt that reached the
// persistence stage. Sender and receiver are snapshotted by number and bank
// name at transfer time; later changes to the accounts never rewrite history.
type Transaction struct {
	ID             string
	SenderNumber   string
	SenderBank     string
	ReceiverNumber string
	ReceiverBank   string
	Amount         int64
	Fee            int64
	Time           time.Time
	Type           string
}

// Transaction log statuses.
const (
	StatusSuccess = "Success"
	StatusFail    = "Fail"
)

// TransactionLog records the outcome of a single transfer attempt. Exactly
// one log is written per attempt, success or failure. Only the Active flag is
// ever mutated afterwards: flipping it to false hides the transaction from
// active-scoped views without destroying history.
type TransactionLog struct {
	ID            string
	TransactionID string
	Status        string
	Active        bool
	Remarks       string
	CreatedAt     time.Time
}
