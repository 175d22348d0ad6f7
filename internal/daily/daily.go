package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic bot seed for a date using
// HMAC(salt, YYYY-MM-DD). Every player faces the same bot sequence for
// a given date and salt.
func Seed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes, sign bit cleared so the seed is stable and positive
	return int64(binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63))
}
