package service

import "math/rand/v2"

// MaxAccountNumber is the exclusive upper bound of generated account numbers.
const MaxAccountNumber = 1_000_000_000

const maxNumberAttempts = 32

// RandomSource is the subset of *rand.Rand used to draw account numbers and PINs.
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.IntN(n)
}

// newAccountNumber draws numbers until one is not taken.
func newAccountNumber(source RandomSource, taken func(int64) bool) (int64, error) {
	for range maxNumberAttempts {
		number := int64(source.IntN(MaxAccountNumber))
		if !taken(number) {
			return number, nil
		}
	}
	return 0, ErrNumberSpaceExhausted
}

func newPIN(source RandomSource) string {
	return FormatPIN(source.IntN(MaxPIN))
}
