package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const receiptSuffixMax = 10000

// GenerateReceiptNumber produces a human-quotable receipt number of the form
// RCP-20260214153045-0471: a timestamp plus a random 4-digit suffix so two
// receipts issued in the same second do not collide in practice.
func GenerateReceiptNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(receiptSuffixMax))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("RCP-%s-%04d", now.UTC().Format("20060102150405"), suffix)
}

// FormatDisplayID renders a registration number from its prefix, year and
// sequence value, e.g. ("GRS", 2026, 14) -> "GRS/2026/014".
func FormatDisplayID(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s/%d/%03d", prefix, year, seq)
}
