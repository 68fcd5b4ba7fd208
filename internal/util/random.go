// Package util provides small helpers shared across DialogPipe components.
package util

import (
	"math/rand/v2"
)

// PickRandom returns a uniformly random element of items. Sampling is
// memoryless: repeated calls may return the same element back to back.
// Panics on an empty slice, matching the contract of rand.IntN.
func PickRandom[T any](items []T) T {
	return items[rand.IntN(len(items))]
}
