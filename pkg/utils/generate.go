package utils

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

func GenerateSessionID() uuid.UUID {
	return uuid.New()
}

// GenerateReceiptCode returns a printable receipt number.
// Format: RCPT-YYYYMMDD-HHMMSS-NNNN
func GenerateReceiptCode(now time.Time) string {
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.IntN(10000))

	return fmt.Sprintf("RCPT-%s-%s-%s", datePart, timePart, randomPart)
}
