package utils

import (
	"crypto/rand"
	"fmt"
)

// ReferralCodeLength is the length of generated transfer-destination codes.
const ReferralCodeLength = 8

// Codes are stored and compared upper-case, so the alphabet only contains
// upper-case letters and digits.
const referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferralCode produces a cryptographically random short code used
// to address an account as a transfer destination. Uniqueness is enforced
// by the database; the caller retries on a duplicate.
func GenerateReferralCode() (string, error) {
	b := make([]byte, ReferralCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = referralCodeAlphabet[int(b[i])%len(referralCodeAlphabet)]
	}
	return string(b), nil
}
