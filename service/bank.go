// Package service implements the bank accounts, their file-backed store and
// the balance operations run against them.
package service

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// TimestampLayout formats the time of every transaction log entry.
const TimestampLayout = time.RFC3339

// MaxScale is the number of decimal places an amount may carry.
const MaxScale = 2

const maxAmountExponent = 15

// MaxAmount is the exclusive upper bound of a single amount.
var MaxAmount = decimal.New(1, maxAmountExponent)

// Bank applies account operations to a snapshot of the store and persists
// the whole collection after every successful mutation.
type Bank struct {
	store    AccountStore
	accounts []*Account
	random   RandomSource
	now      func() time.Time
	pinCost  int
	logger   *slog.Logger
}

// Option configures a Bank.
type Option func(*Bank)

// WithRandom sets the source used for account numbers and PINs.
func WithRandom(source RandomSource) Option {
	return func(b *Bank) { b.random = source }
}

// WithClock sets the clock used to timestamp transactions.
func WithClock(now func() time.Time) Option {
	return func(b *Bank) { b.now = now }
}

// WithPINCost sets the bcrypt cost for new PINs.
func WithPINCost(cost int) Option {
	return func(b *Bank) { b.pinCost = cost }
}

// WithLogger sets the logger for committed mutations.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bank) { b.logger = logger }
}

// NewBank creates a bank working on accounts, which are usually the result of store.Load.
func NewBank(store AccountStore, accounts []*Account, opts ...Option) *Bank {
	b := &Bank{
		store:    store,
		accounts: accounts,
		random:   globalRandom{},
		now:      time.Now,
		pinCost:  bcrypt.DefaultCost,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Accounts returns copies of every account, in store order.
func (b *Bank) Accounts() ([]*Account, error) {
	out := make([]*Account, 0, len(b.accounts))
	for _, account := range b.accounts {
		other, err := account.Clone()
		if err != nil {
			return nil, err
		}
		out = append(out, other)
	}
	return out, nil
}

// Find returns a copy of the account with the given number.
func (b *Bank) Find(number int64) (*Account, error) {
	account, _, err := b.find(number)
	if err != nil {
		return nil, err
	}
	return account.Clone()
}

// CreateAccount opens an empty account for name and returns it together with
// its plaintext PIN, which is not stored anywhere.
func (b *Bank) CreateAccount(name string) (*Account, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", ErrBlankName
	}

	number, err := newAccountNumber(b.random, func(n int64) bool {
		_, _, err := b.find(n)
		return err == nil
	})
	if err != nil {
		return nil, "", err
	}

	pin := newPIN(b.random)
	account, err := NewAccount(name, number, pin, b.pinCost)
	if err != nil {
		return nil, "", err
	}

	next, err := b.Accounts()
	if err != nil {
		return nil, "", err
	}
	next = append(next, account)
	if err := b.commit(next); err != nil {
		return nil, "", err
	}

	b.logger.Info("account created", "event", "create", "account", number)
	created, err := account.Clone()
	if err != nil {
		return nil, "", err
	}
	return created, pin, nil
}

// Deposit adds amount to the account after checking its PIN.
func (b *Bank) Deposit(number int64, pin string, amount decimal.Decimal) (*Account, error) {
	_, idx, err := b.authenticate(number, pin)
	if err != nil {
		return nil, err
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	next, err := b.Accounts()
	if err != nil {
		return nil, err
	}
	updated := next[idx]
	updated.Funds = updated.Funds.Add(amount)
	updated.Transactions = append(updated.Transactions,
		fmt.Sprintf("Deposit of %s at %s", amount, b.timestamp()))

	if err := b.commit(next); err != nil {
		return nil, err
	}

	b.logger.Info("deposit committed", "event", "deposit", "account", number, "amount", amount.String())
	return updated.Clone()
}

// Withdraw removes amount from the account after checking its PIN. The
// balance never goes negative.
func (b *Bank) Withdraw(number int64, pin string, amount decimal.Decimal) (*Account, error) {
	account, idx, err := b.authenticate(number, pin)
	if err != nil {
		return nil, err
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if account.Funds.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	next, err := b.Accounts()
	if err != nil {
		return nil, err
	}
	updated := next[idx]
	updated.Funds = updated.Funds.Sub(amount)
	updated.Transactions = append(updated.Transactions,
		fmt.Sprintf("Withdrawal of %s at %s", amount, b.timestamp()))

	if err := b.commit(next); err != nil {
		return nil, err
	}

	b.logger.Info("withdrawal committed", "event", "withdraw", "account", number, "amount", amount.String())
	return updated.Clone()
}

// Transfer moves amount from the sender, authenticated by pin, to the
// recipient. It returns the updated sender and recipient.
func (b *Bank) Transfer(from int64, pin string, to int64, amount decimal.Decimal) (*Account, *Account, error) {
	recipient, toIdx, err := b.find(to)
	if err != nil {
		return nil, nil, err
	}
	sender, fromIdx, err := b.authenticate(from, pin)
	if err != nil {
		return nil, nil, err
	}
	if from == to {
		return nil, nil, ErrSameAccount
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, nil, err
	}
	if sender.Funds.LessThan(amount) {
		return nil, nil, ErrInsufficientFunds
	}

	next, err := b.Accounts()
	if err != nil {
		return nil, nil, err
	}
	at := b.timestamp()
	credited := next[toIdx]
	credited.Funds = credited.Funds.Add(amount)
	credited.Transactions = append(credited.Transactions,
		fmt.Sprintf("Credit of %s from %s at %s", amount, sender.Name, at))

	debited := next[fromIdx]
	debited.Funds = debited.Funds.Sub(amount)
	debited.Transactions = append(debited.Transactions,
		fmt.Sprintf("Transfer of %s to %s at %s", amount, recipient.Name, at))

	if err := b.commit(next); err != nil {
		return nil, nil, err
	}

	b.logger.Info("transfer committed", "event", "transfer", "from", from, "to", to, "amount", amount.String())
	senderCopy, err := debited.Clone()
	if err != nil {
		return nil, nil, err
	}
	recipientCopy, err := credited.Clone()
	if err != nil {
		return nil, nil, err
	}
	return senderCopy, recipientCopy, nil
}

// Statement returns a copy of the account for balance display.
func (b *Bank) Statement(number int64) (*Account, error) {
	return b.Find(number)
}

// History returns the account name and its transaction log in chronological order.
func (b *Bank) History(number int64) (string, []string, error) {
	account, _, err := b.find(number)
	if err != nil {
		return "", nil, err
	}
	return account.Name, append([]string{}, account.Transactions...), nil
}

func (b *Bank) find(number int64) (*Account, int, error) {
	for i, account := range b.accounts {
		if account.Number == number {
			return account, i, nil
		}
	}
	return nil, -1, ErrAccountNotFound
}

func (b *Bank) authenticate(number int64, pin string) (*Account, int, error) {
	account, idx, err := b.find(number)
	if err != nil {
		return nil, -1, err
	}
	if err := account.IsCorrectPIN(pin); err != nil {
		b.logger.Warn("pin rejected", "account", number)
		return nil, -1, err
	}
	return account, idx, nil
}

// commit persists next and, only once that succeeded, makes it the current state.
func (b *Bank) commit(next []*Account) error {
	if err := b.store.Save(next); err != nil {
		return err
	}
	b.accounts = next
	return nil
}

func (b *Bank) timestamp() string {
	return b.now().Format(TimestampLayout)
}

// ParseAccountNumber parses user input as an account number. Input that can
// never match an account is reported as ErrAccountNotFound.
func ParseAccountNumber(input string) (int64, error) {
	number, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil || number < 0 || number >= MaxAccountNumber {
		return 0, ErrAccountNotFound
	}
	return number, nil
}

// ParseAmount parses user input as a positive decimal amount.
func ParseAmount(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ValidateAmount accepts positive amounts below MaxAmount with at most
// MaxScale decimal places. The exponent is checked before any comparison,
// since comparing rescales both operands to a common exponent.
func ValidateAmount(amount decimal.Decimal) error {
	exp := amount.Exponent()
	if exp < -MaxScale || exp > maxAmountExponent {
		return ErrInvalidAmount
	}
	if !amount.IsPositive() || !amount.LessThan(MaxAmount) {
		return ErrInvalidAmount
	}
	return nil
}
