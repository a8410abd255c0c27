package client

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-http-server/consolebank/service"
	"github.com/shopspring/decimal"
)

// Bank is the set of account operations the console drives.
type Bank interface {
	Find(number int64) (*service.Account, error)
	CreateAccount(name string) (*service.Account, string, error)
	Deposit(number int64, pin string, amount decimal.Decimal) (*service.Account, error)
	Withdraw(number int64, pin string, amount decimal.Decimal) (*service.Account, error)
	Transfer(from int64, pin string, to int64, amount decimal.Decimal) (*service.Account, *service.Account, error)
	Statement(number int64) (*service.Account, error)
	History(number int64) (string, []string, error)
}

// BankClient runs one console dialogue per operation against a Bank.
// Every method prints its own outcome and returns the error that ended it, if any.
type BankClient struct {
	bank     Bank
	prompter *Prompter
	logger   *slog.Logger
}

// NewBankClient creates a new BankClient instance.
func NewBankClient(bank Bank, prompter *Prompter, logger *slog.Logger) *BankClient {
	return &BankClient{bank: bank, prompter: prompter, logger: logger}
}

// CreateAccount asks for a name and opens an account for it.
func (c *BankClient) CreateAccount(ctx context.Context) error {
	name, err := c.prompter.Ask(ctx, "Enter account name: ")
	if err != nil {
		return err
	}

	account, pin, err := c.bank.CreateAccount(name)
	if err != nil {
		return c.report(err)
	}

	c.prompter.Println("Account created successfully")
	c.prompter.Printf("Your account name is %s\nYour account number is %d\nYour pin is %s\n", account.Name, account.Number, pin)
	return nil
}

// Deposit credits an authenticated account.
func (c *BankClient) Deposit(ctx context.Context) error {
	account, pin, err := c.authenticate(ctx)
	if err != nil {
		return err
	}

	amount, err := c.askAmount(ctx, "Enter the amount to deposit: ")
	if err != nil {
		return err
	}

	updated, err := c.bank.Deposit(account.Number, pin, amount)
	if err != nil {
		return c.report(err)
	}

	c.prompter.Printf("Deposit successful. Your new balance is: %s\n", updated.Funds)
	return nil
}

// Withdraw debits an authenticated account, never below zero.
func (c *BankClient) Withdraw(ctx context.Context) error {
	account, pin, err := c.authenticate(ctx)
	if err != nil {
		return err
	}

	input, err := c.prompter.Ask(ctx, "Enter the amount to withdraw: ")
	if err != nil {
		return err
	}

	amount, err := service.ParseAmount(input)
	if err == nil {
		var updated *service.Account
		updated, err = c.bank.Withdraw(account.Number, pin, amount)
		if err == nil {
			c.prompter.Printf("Withdrawal successful. Your new balance is: %s\n", updated.Funds)
			return nil
		}
	}

	if errors.Is(err, service.ErrInvalidAmount) || errors.Is(err, service.ErrInsufficientFunds) {
		c.prompter.Println("Invalid amount or insufficient funds")
		return err
	}
	return c.report(err)
}

// Transfer moves money from an authenticated sender to a recipient.
func (c *BankClient) Transfer(ctx context.Context) error {
	input, err := c.prompter.Ask(ctx, "Enter Recepient Account Number: ")
	if err != nil {
		return err
	}
	recipient, err := c.find(input)
	if err != nil {
		return c.report(err)
	}
	c.prompter.Println(recipient.Name)

	sender, pin, err := c.authenticate(ctx)
	if err != nil {
		return err
	}
	if sender.Number == recipient.Number {
		return c.report(service.ErrSameAccount)
	}

	amount, err := c.askAmount(ctx, "Enter the amount to Transfer: ")
	if err != nil {
		return err
	}

	updated, _, err := c.bank.Transfer(sender.Number, pin, recipient.Number, amount)
	if err != nil {
		return c.report(err)
	}

	c.prompter.Printf("Transfer successful. Your new balance is: %s\n", updated.Funds)
	return nil
}

// Statement prints the holder and balance of an account.
func (c *BankClient) Statement(ctx context.Context) error {
	input, err := c.prompter.Ask(ctx, "Input your account number? ")
	if err != nil {
		return err
	}
	number, err := service.ParseAccountNumber(input)
	if err != nil {
		return c.report(err)
	}

	account, err := c.bank.Statement(number)
	if err != nil {
		return c.report(err)
	}

	c.prompter.Println("Hello " + account.Name)
	c.prompter.Printf("Your account number is %d\n", account.Number)
	c.prompter.Printf("Your account balance is: %s\n", account.Funds)
	return nil
}

// History prints the transaction log of an account on one line.
func (c *BankClient) History(ctx context.Context) error {
	input, err := c.prompter.Ask(ctx, "Input your account number? ")
	if err != nil {
		return err
	}
	number, err := service.ParseAccountNumber(input)
	if err != nil {
		return c.report(err)
	}

	name, history, err := c.bank.History(number)
	if err != nil {
		return c.report(err)
	}

	c.prompter.Println("Hello " + name)
	c.prompter.Println("Your history is: " + strings.Join(history, ", "))
	return nil
}

// authenticate asks for an account number and its PIN. Failures are reported
// before returning.
func (c *BankClient) authenticate(ctx context.Context) (*service.Account, string, error) {
	input, err := c.prompter.Ask(ctx, "Input your account number? ")
	if err != nil {
		return nil, "", err
	}
	account, err := c.find(input)
	if err != nil {
		return nil, "", c.report(err)
	}

	pin, err := c.prompter.Ask(ctx, "Enter Your PIN? ")
	if err != nil {
		return nil, "", err
	}
	if err := account.IsCorrectPIN(pin); err != nil {
		return nil, "", c.report(err)
	}
	return account, pin, nil
}

func (c *BankClient) find(input string) (*service.Account, error) {
	number, err := service.ParseAccountNumber(input)
	if err != nil {
		return nil, err
	}
	return c.bank.Find(number)
}

func (c *BankClient) askAmount(ctx context.Context, prompt string) (decimal.Decimal, error) {
	input, err := c.prompter.Ask(ctx, prompt)
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := service.ParseAmount(input)
	if err != nil {
		return decimal.Zero, c.report(err)
	}
	return amount, nil
}

// report prints the user-facing message for err and returns err unchanged.
func (c *BankClient) report(err error) error {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		c.prompter.Println("User not found")
	case errors.Is(err, service.ErrIncorrectPIN):
		c.prompter.Println("Incorrect PIN")
	case errors.Is(err, service.ErrInvalidAmount):
		c.prompter.Println("Invalid amount")
	case errors.Is(err, service.ErrInsufficientFunds):
		c.prompter.Println("Insufficient funds")
	case errors.Is(err, service.ErrSameAccount):
		c.prompter.Println("Cannot transfer to the same account")
	case errors.Is(err, service.ErrBlankName):
		c.prompter.Println("Provide a unique name")
	default:
		c.logger.Error("operation failed", "err", err)
		c.prompter.Println("Something went wrong, please try again later")
	}
	return err
}
