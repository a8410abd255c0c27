// Package sample provides random account data for tests and demos.
package sample

import "github.com/shopspring/decimal"

// NewAccountName returns a random "First Last" account holder name.
func NewAccountName() string {
	return randomFirstName() + " " + randomLastName()
}

// NewAmount returns a random positive amount with two decimal places.
func NewAmount(min, max int) decimal.Decimal {
	cents := randomInt(min*100, max*100)
	if cents == 0 {
		cents = 1
	}
	return decimal.New(int64(cents), -2)
}
