package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	orderNumberPrefix = "ORD"
	orderNumberDate   = "20060102"
	// MaxDailySequence is the largest sequence that fits the 4-digit suffix.
	MaxDailySequence = 9999
)

// OrderNumberPrefix returns "ORD" followed by the calendar day of t.
func OrderNumberPrefix(t time.Time) string {
	return orderNumberPrefix + t.Format(orderNumberDate)
}

func FormatOrderNumber(t time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", OrderNumberPrefix(t), seq)
}

// ParseOrderNumber splits an order number into its day prefix and sequence.
func ParseOrderNumber(number string) (string, int, error) {
	prefixLen := len(orderNumberPrefix) + len(orderNumberDate)
	if len(number) != prefixLen+4 || !strings.HasPrefix(number, orderNumberPrefix) {
		return "", 0, fmt.Errorf("%w: malformed order number %q", ErrValidation, number)
	}
	if _, err := time.Parse(orderNumberDate, number[len(orderNumberPrefix):prefixLen]); err != nil {
		return "", 0, fmt.Errorf("%w: malformed order date in %q", ErrValidation, number)
	}
	seq, err := strconv.Atoi(number[prefixLen:])
	if err != nil || seq < 0 {
		return "", 0, fmt.Errorf("%w: malformed order sequence in %q", ErrValidation, number)
	}
	return number[:prefixLen], seq, nil
}
