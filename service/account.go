package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// MaxPIN is the exclusive upper bound of generated PINs.
const MaxPIN = 10000

// Account represents a customer account in the bank.
type Account struct {
	Name         string
	Number       int64
	HashedPIN    string
	Funds        decimal.Decimal
	Transactions []string
}

// NewAccount creates a new empty account, hashing the given PIN with the given bcrypt cost.
func NewAccount(name string, number int64, pin string, cost int) (*Account, error) {
	hashed, err := HashPIN(pin, cost)
	if err != nil {
		return nil, err
	}

	return &Account{
		Name:         name,
		Number:       number,
		HashedPIN:    hashed,
		Funds:        decimal.Zero,
		Transactions: []string{},
	}, nil
}

// HashPIN normalizes pin and hashes it with bcrypt.
func HashPIN(pin string, cost int) (string, error) {
	normalized, err := NormalizePIN(pin)
	if err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(normalized), cost)
	if err != nil {
		return "", fmt.Errorf("cannot hash pin: %w", err)
	}
	return string(hashed), nil
}

// IsCorrectPIN checks if the provided PIN matches the account's hashed PIN.
func (acc *Account) IsCorrectPIN(pin string) error {
	normalized, err := NormalizePIN(pin)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.HashedPIN), []byte(normalized)); err != nil {
		return ErrIncorrectPIN
	}
	return nil
}

// Clone creates a copy of the account that shares no mutable state with it.
func (acc *Account) Clone() (*Account, error) {
	other := &Account{}
	if err := copier.Copy(other, acc); err != nil {
		return nil, fmt.Errorf("cannot copy account: %w", err)
	}
	other.Transactions = append([]string{}, acc.Transactions...)
	return other, nil
}

// NormalizePIN accepts "42", "0042" or " 0042 " and returns the canonical four-digit form.
func NormalizePIN(pin string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(pin))
	if err != nil || n < 0 || n >= MaxPIN {
		return "", ErrIncorrectPIN
	}
	return FormatPIN(n), nil
}

// FormatPIN renders a PIN zero-padded to four digits.
func FormatPIN(pin int) string {
	return fmt.Sprintf("%04d", pin)
}
