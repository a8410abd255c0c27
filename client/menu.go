package client

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidOption is returned when the menu choice is not a listed option.
var ErrInvalidOption = errors.New("invalid menu option")

type option struct {
	label string
	run   func(ctx context.Context) error
}

// Menu lists the operations and runs the one the user picks.
type Menu struct {
	prompter *Prompter
	options  []option
}

// NewMenu creates the menu of every BankClient operation.
func NewMenu(client *BankClient) *Menu {
	return &Menu{
		prompter: client.prompter,
		options: []option{
			{"Create Account", client.CreateAccount},
			{"Deposit Money", client.Deposit},
			{"Withdraw Money", client.Withdraw},
			{"Transfer Money", client.Transfer},
			{"Check Statement", client.Statement},
			{"Transaction History", client.History},
		},
	}
}

// Run prints the menu, reads a single choice and runs that operation.
// There is no second attempt after an invalid choice.
func (m *Menu) Run(ctx context.Context) error {
	for i, opt := range m.options {
		m.prompter.Printf("%d %s\n", i+1, opt.label)
	}

	input, err := m.prompter.Ask(ctx, "Enter your option: ")
	if err != nil {
		return err
	}

	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || choice < 1 || choice > len(m.options) {
		m.prompter.Println("Enter correct option")
		return ErrInvalidOption
	}

	return m.options[choice-1].run(ctx)
}
