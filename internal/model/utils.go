package model

import "github.com/google/uuid"

// ValidUUID :
// Used to check whether the input string can be interpreted
// as a valid identifier.
//
// The `id` defines the element to check.
//
// Returns `true` if this identifier is valid and `false` if
// this is not the case.
func ValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// clampInt :
// Clamps `v` to the closed interval [min, max].
func clampInt(v int, min int, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampFloat :
// Clamps `v` to the closed interval [min, max].
func clampFloat(v float64, min float64, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
