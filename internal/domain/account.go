package domain

import "time"

// Account represents a bank account that can send and receive transfers.
// Transfer requests identify accounts by the (Number, BankName) pair; ID is
// the surrogate key used by foreign references.
type Account struct {
	ID        string
	Number    string
	BankName  string
	UserID    string
	Balance   int64 // smallest currency unit, never fractional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountKey identifies an account by number and bank name.
type AccountKey struct {
	Number   string
	BankName string
}

// Key returns the (number, bank) identity of the account.
func (a *Account) Key() AccountKey {
	return AccountKey{Number: a.Number, BankName: a.BankName}
}

// Less orders keys lexicographically by bank then number. Transfers lock
// accounts in key order to avoid deadlocks between concurrent transfers.
func (k AccountKey) Less(other AccountKey) bool {
	if k.BankName != other.BankName {
		return k.BankName < other.BankName
	}

	return k.Number < other.Number
}

// CanCover reports whether the balance covers a debit of total.
func (a *Account) CanCover(total int64) bool {
	return a.Balance >= total
}

// ApplyDebit returns the balance after removing amount.
func (a *Account) ApplyDebit(amount int64) int64 {
	return a.Balance - amount
}

// ApplyCredit returns the balance after adding amount.
func (a *Account) ApplyCredit(amount int64) int64 {
	return a.Balance + amount
}
