package sample

import (
	"math/rand/v2"
)

func randomInt(min, max int) int {
	return min + rand.IntN(max-min+1)
}

func randomStringFromSet(values ...string) string {
	n := len(values)
	if n == 0 {
		return ""
	}

	return values[rand.IntN(n)]
}

func randomFirstName() string {
	return randomStringFromSet(
		"Alice",
		"Bob",
		"Chioma",
		"Dmitri",
		"Emeka",
		"Fatima",
		"Grace",
		"Hiro",
		"Ngozi",
		"Yun",
	)
}

func randomLastName() string {
	return randomStringFromSet(
		"Adeyemi",
		"Brown",
		"Chen",
		"Okafor",
		"Ivanova",
		"Nakamura",
		"Smith",
		"Tanaka",
	)
}
