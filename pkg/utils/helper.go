package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID parses an operator-typed identifier. Only positive integers are ids.
func ParseID(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("an ID is required")
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%q is not a valid ID", value)
	}

	return id, nil
}

// ParseInt converts string to int, rejecting anything that is not a whole number.
func ParseInt(value string) (int, error) {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", value)
	}
	return result, nil
}

// IsYes accepts the usual affirmative answers, including the Spanish "s"/"si".
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	return false
}

// Truncate keeps fixed-width table columns aligned.
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
